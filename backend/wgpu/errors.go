package wgpu

import "errors"

var (
	// ErrNoActivePass is returned when Render is called outside a
	// BeginFrame/EndFrame pair.
	ErrNoActivePass = errors.New("wgpu: no active render pass")

	// ErrClosed is returned when the renderer is used after Close.
	ErrClosed = errors.New("wgpu: renderer closed")

	// ErrNoDevice is returned by New when the device or queue is nil.
	ErrNoDevice = errors.New("wgpu: nil device or queue")
)
