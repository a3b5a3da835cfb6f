// Package imdraw translates an immediate-mode GUI's per-frame draw
// output into concrete GPU operations on a pluggable rendering backend.
//
// # Overview
//
// An immediate-mode GUI library emits one frame-local snapshot per
// frame: draw lists of vertices, 16-bit indices and draw commands with
// clip rectangles and texture ids ([DrawData]). imdraw compiles that
// snapshot into GPU work — coordinate-space conversion, clip-rect
// culling and scissor transformation, batching into growable GPU
// buffers, projection-matrix construction and texture-handle
// resolution — while staying agnostic of the graphics API underneath.
//
// # Architecture
//
// A backend is two independent halves composed by [Backend]:
//
//   - [Platform]: translates window-system events into [IO] state and
//     prepares each frame (platform/glfwplatform).
//   - [RenderBackend]: consumes [DrawData] and drives a GPU API
//     (backend/wgpu, backend/gl).
//
// The rendering halves share the core compiler: [ParamsIterator] walks
// the draw lists, culls invisible commands and yields normalized
// [DrawParams]; [DrawDriver] batches those into uploads, scissor and
// texture state, and indexed draws against the narrow [Device]
// capability contract each adapter implements.
//
// # Quick start
//
//	rend, err := wgpu.New(device, queue, wgpu.Config{Format: format}, atlas)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rend.Close()
//
//	// each frame, after widget submission closes:
//	rend.BeginFrame(pass)
//	if err := rend.Render(drawData); err != nil {
//		slog.Warn("frame skipped", "err", err)
//	}
//	rend.EndFrame()
//
// # Threading
//
// Draw-list compilation is single-threaded and synchronous: one frame
// is processed to completion on the thread owning the graphics context
// before the next begins. Renderers, registries and buffers are not
// safe for concurrent use.
package imdraw
