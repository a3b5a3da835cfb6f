// Copyright 2026 The gogpu Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/imdraw"
)

// Config configures a Renderer.
type Config struct {
	// Format is the color format of the render target the caller's
	// pass draws into. Required.
	Format wgpu.TextureFormat

	// Samples is the MSAA sample count of the target. Zero means 1.
	Samples uint32

	// InitialQuads sizes the vertex and index buffers created up
	// front, counted in quads (4 vertices, 6 indices each). Zero
	// means 8192.
	InitialQuads int
}

func (c *Config) setDefaults() {
	if c.Samples == 0 {
		c.Samples = 1
	}
	if c.InitialQuads == 0 {
		c.InitialQuads = 8192
	}
}

// Renderer draws translated draw parameters into a caller-owned WebGPU
// render pass. It implements the geometry upload, scissor, texture
// binding and indexed draw operations the translation layer drives, and
// satisfies the render backend contract used by the backend registry.
//
// Not safe for concurrent use.
type Renderer struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	state      *pipelineState
	sampler    *wgpu.Sampler
	uniformBuf *wgpu.Buffer
	uniformBG  *wgpu.BindGroup

	vtx geometryBuffer
	idx geometryBuffer

	textures *imdraw.TextureRegistry[*imdraw.Shared[*Texture]]
	disposal imdraw.DisposalQueue

	pass     *wgpu.RenderPassEncoder
	fbWidth  float32
	fbHeight float32

	driver imdraw.DrawDriver
	closed bool
}

// New creates a renderer for the given device and queue. atlas, when
// non-nil, is built and uploaded as the font atlas texture; without it
// draw commands referencing the atlas sentinel fail.
func New(device *wgpu.Device, queue *wgpu.Queue, cfg Config, atlas imdraw.AtlasSource) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	cfg.setDefaults()

	r := &Renderer{
		device:   device,
		queue:    queue,
		textures: imdraw.NewTextureRegistry[*imdraw.Shared[*Texture]](),
	}
	r.vtx = geometryBuffer{
		elemSize: imdraw.VertexSize,
		usage:    wgpu.BufferUsageVertex,
		label:    "imdraw vertices",
	}
	r.idx = geometryBuffer{
		elemSize: imdraw.IndexSize,
		usage:    wgpu.BufferUsageIndex,
		label:    "imdraw indices",
	}

	ok := false
	defer func() {
		if !ok {
			r.Close()
		}
	}()

	var err error
	r.state, err = newPipelineState(device, cfg.Format, cfg.Samples)
	if err != nil {
		return nil, err
	}

	r.sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "imdraw sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}

	r.uniformBuf, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "imdraw projection",
		Size:  64,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: projection buffer: %v", imdraw.ErrBackendAllocation, err)
	}

	r.uniformBG, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "imdraw uniforms",
		Layout: r.state.uniformLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.uniformBuf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create uniform bind group: %w", err)
	}

	if err := r.vtx.alloc(device, uint64(cfg.InitialQuads)*4*imdraw.VertexSize); err != nil {
		return nil, err
	}
	if err := r.idx.alloc(device, uint64(cfg.InitialQuads)*6*imdraw.IndexSize); err != nil {
		return nil, err
	}

	if atlas != nil {
		pix, w, h := atlas.BuildRGBA()
		tex, texErr := r.createTexture("imdraw font atlas", pix, w, h)
		if texErr != nil {
			return nil, texErr
		}
		r.textures.SetFontAtlas(r.shareTexture(tex))
	}

	r.driver = imdraw.DrawDriver{Device: r, ProjectionAxis: imdraw.YAxisDown}
	ok = true
	return r, nil
}

// BeginFrame points the renderer at the pass all of this frame's draw
// calls are recorded into. The pass must outlive Render.
func (r *Renderer) BeginFrame(pass *wgpu.RenderPassEncoder) {
	r.pass = pass
}

// Render translates and records data into the current pass.
func (r *Renderer) Render(data *imdraw.DrawData) error {
	if r.closed {
		return ErrClosed
	}
	if r.pass == nil {
		return ErrNoActivePass
	}
	r.fbWidth, r.fbHeight = data.FramebufferSize()
	return r.driver.Render(data)
}

// EndFrame drops the pass reference and releases GPU resources retired
// during the frame. Call it after the frame's command buffer has been
// submitted.
func (r *Renderer) EndFrame() {
	r.pass = nil
	r.disposal.Flush()
}

// shareTexture wraps tex in a ref-counted handle whose final release
// queues the GPU teardown for the next frame sync point rather than
// destroying mid-frame.
func (r *Renderer) shareTexture(tex *Texture) *imdraw.Shared[*Texture] {
	return imdraw.NewShared(tex, func(t *Texture) {
		r.disposal.Add(t.release)
	})
}

// RegisterTexture uploads an RGBA image and returns its id for use in
// draw commands. The registry holds one reference to the texture.
func (r *Renderer) RegisterTexture(pix []byte, width, height int) (imdraw.TextureID, error) {
	if r.closed {
		return 0, ErrClosed
	}
	tex, err := r.createTexture("imdraw user texture", pix, width, height)
	if err != nil {
		return 0, err
	}
	return r.textures.Register(r.shareTexture(tex)), nil
}

// UnregisterTexture recycles id and drops the registry's reference.
// With no outstanding [Renderer.RetainTexture] handles the texture is
// queued for disposal at the end of the frame.
func (r *Renderer) UnregisterTexture(id imdraw.TextureID) {
	sh, err := r.textures.Resolve(id)
	if err != nil {
		return
	}
	r.textures.Unregister(id)
	sh.Release()
}

// RetainTexture adds a reference to id's texture and returns the shared
// handle, keeping the GPU resources alive past UnregisterTexture until
// the handle is released. Release handles before Close.
func (r *Renderer) RetainTexture(id imdraw.TextureID) (*imdraw.Shared[*Texture], error) {
	sh, err := r.textures.Resolve(id)
	if err != nil {
		return nil, err
	}
	return sh.Retain(), nil
}

// Texture returns the registered texture for id.
func (r *Renderer) Texture(id imdraw.TextureID) (*Texture, error) {
	sh, err := r.textures.Resolve(id)
	if err != nil {
		return nil, err
	}
	return sh.Handle(), nil
}

// BeforeRender binds the pipeline and projection ahead of the frame's
// draws.
func (r *Renderer) BeforeRender() error {
	if r.pass == nil {
		return ErrNoActivePass
	}
	r.pass.SetPipeline(r.state.pipeline)
	r.pass.SetBindGroup(0, r.uniformBG, nil)
	return nil
}

// AfterRender is a no-op; retired resources are flushed in EndFrame,
// after the queue has the frame's commands.
func (r *Renderer) AfterRender() {}

// UploadGeometry streams a draw list's vertices and indices to the GPU
// and binds the buffers on the pass.
func (r *Renderer) UploadGeometry(vtx []imdraw.DrawVert, idx []imdraw.DrawIdx, idxWide []uint32) error {
	if len(vtx) > 0 {
		data := unsafe.Slice((*byte)(unsafe.Pointer(&vtx[0])), len(vtx)*imdraw.VertexSize)
		if err := r.vtx.upload(r.device, r.queue, &r.disposal, data); err != nil {
			return err
		}
	}
	switch {
	case len(idxWide) > 0:
		data := unsafe.Slice((*byte)(unsafe.Pointer(&idxWide[0])), len(idxWide)*4)
		if err := r.idx.upload(r.device, r.queue, &r.disposal, data); err != nil {
			return err
		}
		r.pass.SetIndexBuffer(r.idx.buf, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	case len(idx) > 0:
		data := unsafe.Slice((*byte)(unsafe.Pointer(&idx[0])), len(idx)*imdraw.IndexSize)
		if err := r.idx.upload(r.device, r.queue, &r.disposal, data); err != nil {
			return err
		}
		r.pass.SetIndexBuffer(r.idx.buf, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	}
	if r.vtx.buf != nil {
		r.pass.SetVertexBuffer(0, r.vtx.buf, 0, wgpu.WholeSize)
	}
	return nil
}

// SetProjection writes the projection matrix into the uniform buffer.
func (r *Renderer) SetProjection(m mgl32.Mat4) {
	data := unsafe.Slice((*byte)(unsafe.Pointer(&m[0])), 64)
	r.queue.WriteBuffer(r.uniformBuf, 0, data)
}

// SetScissor applies rect, clamped to the framebuffer, as the scissor
// for subsequent draws. Coordinates are top-left origin, matching
// WebGPU's convention directly.
func (r *Renderer) SetScissor(rect imdraw.Rect) {
	x, y, w, h := imdraw.ScissorFromRect(rect, r.fbHeight, imdraw.YAxisDown)
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if max := int32(r.fbWidth); x+w > max {
		w = max - x
	}
	if max := int32(r.fbHeight); y+h > max {
		h = max - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.pass.SetScissorRect(uint32(x), uint32(y), uint32(w), uint32(h))
}

// BindTexture binds the bind group for id on the pass.
func (r *Renderer) BindTexture(id imdraw.TextureID) error {
	sh, err := r.textures.Resolve(id)
	if err != nil {
		return err
	}
	r.pass.SetBindGroup(1, sh.Handle().bind, nil)
	return nil
}

// DrawIndexed records one indexed draw. indexByteSize has already
// selected the bound index format in UploadGeometry.
func (r *Renderer) DrawIndexed(elemCount, idxOffset, vtxOffset, indexByteSize int) error {
	r.pass.DrawIndexed(uint32(elemCount), 1, uint32(idxOffset), int32(vtxOffset), 0)
	return nil
}

// Close releases every GPU resource the renderer owns. The renderer is
// unusable afterwards.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.disposal.Flush()
	if atlas, ok := r.textures.FontAtlas(); ok {
		atlas.Release()
	}
	r.textures.Range(func(id imdraw.TextureID, sh *imdraw.Shared[*Texture]) bool {
		sh.Release()
		return true
	})
	r.disposal.Flush()
	r.vtx.release()
	r.idx.release()
	if r.uniformBG != nil {
		r.uniformBG.Release()
		r.uniformBG = nil
	}
	if r.uniformBuf != nil {
		r.uniformBuf.Release()
		r.uniformBuf = nil
	}
	if r.sampler != nil {
		r.sampler.Release()
		r.sampler = nil
	}
	if r.state != nil {
		r.state.release()
		r.state = nil
	}
}
