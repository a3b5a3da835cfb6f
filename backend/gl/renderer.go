// Copyright 2026 The gogpu Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package gl

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/imdraw"
)

// ErrClosed is returned when the renderer is used after Close.
var ErrClosed = errors.New("gl: renderer closed")

// Texture is a GL texture name together with its pixel dimensions.
type Texture struct {
	id     uint32
	width  int32
	height int32
}

// Size returns the texture dimensions in pixels.
func (t Texture) Size() (width, height int) {
	return int(t.width), int(t.height)
}

// Config configures a Renderer.
type Config struct {
	// InitialQuads sizes the vertex and index buffers allocated up
	// front, counted in quads (4 vertices, 6 indices each). Zero
	// means 8192.
	InitialQuads int
}

func (c *Config) setDefaults() {
	if c.InitialQuads == 0 {
		c.InitialQuads = 8192
	}
}

// savedState captures the GL state Render touches so it can be put back
// afterwards.
type savedState struct {
	program       int32
	texture       int32
	vao           int32
	arrayBuf      int32
	elementBuf    int32
	blendSrcRGB   int32
	blendDstRGB   int32
	blendSrcAlpha int32
	blendDstAlpha int32
	blendEqRGB    int32
	blendEqAlpha  int32
	scissorBox    [4]int32
	blend         bool
	depth         bool
	cull          bool
	scissor       bool
}

func captureState() savedState {
	var s savedState
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &s.texture)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &s.vao)
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &s.arrayBuf)
	gl.GetIntegerv(gl.ELEMENT_ARRAY_BUFFER_BINDING, &s.elementBuf)
	gl.GetIntegerv(gl.BLEND_SRC_RGB, &s.blendSrcRGB)
	gl.GetIntegerv(gl.BLEND_DST_RGB, &s.blendDstRGB)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrcAlpha)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDstAlpha)
	gl.GetIntegerv(gl.BLEND_EQUATION_RGB, &s.blendEqRGB)
	gl.GetIntegerv(gl.BLEND_EQUATION_ALPHA, &s.blendEqAlpha)
	gl.GetIntegerv(gl.SCISSOR_BOX, &s.scissorBox[0])
	s.blend = gl.IsEnabled(gl.BLEND)
	s.depth = gl.IsEnabled(gl.DEPTH_TEST)
	s.cull = gl.IsEnabled(gl.CULL_FACE)
	s.scissor = gl.IsEnabled(gl.SCISSOR_TEST)
	return s
}

func (s savedState) restore() {
	gl.UseProgram(uint32(s.program))
	gl.BindTexture(gl.TEXTURE_2D, uint32(s.texture))
	gl.BindVertexArray(uint32(s.vao))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(s.arrayBuf))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(s.elementBuf))
	gl.BlendEquationSeparate(uint32(s.blendEqRGB), uint32(s.blendEqAlpha))
	gl.BlendFuncSeparate(uint32(s.blendSrcRGB), uint32(s.blendDstRGB),
		uint32(s.blendSrcAlpha), uint32(s.blendDstAlpha))
	setEnabled(gl.BLEND, s.blend)
	setEnabled(gl.DEPTH_TEST, s.depth)
	setEnabled(gl.CULL_FACE, s.cull)
	setEnabled(gl.SCISSOR_TEST, s.scissor)
	gl.Scissor(s.scissorBox[0], s.scissorBox[1], s.scissorBox[2], s.scissorBox[3])
}

func setEnabled(cap uint32, on bool) {
	if on {
		gl.Enable(cap)
	} else {
		gl.Disable(cap)
	}
}

// Renderer draws translated draw parameters through an OpenGL 4.1 core
// context. It satisfies the render backend contract used by the backend
// registry.
//
// Must be used on the thread that owns the GL context.
type Renderer struct {
	program uint32
	projLoc int32
	texLoc  int32

	vao uint32
	vbo uint32
	ebo uint32

	vboCap int
	eboCap int

	textures *imdraw.TextureRegistry[Texture]

	fbWidth  float32
	fbHeight float32
	saved    savedState

	driver imdraw.DrawDriver
	closed bool
}

// New creates a renderer against the current GL context. atlas, when
// non-nil, is built and uploaded as the font atlas texture. The caller
// must have called gl.Init and made the context current.
func New(cfg Config, atlas imdraw.AtlasSource) (*Renderer, error) {
	cfg.setDefaults()

	program, err := linkProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		program:  program,
		projLoc:  gl.GetUniformLocation(program, gl.Str("uProj\x00")),
		texLoc:   gl.GetUniformLocation(program, gl.Str("uTex\x00")),
		textures: imdraw.NewTextureRegistry[Texture](),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	r.vboCap = cfg.InitialQuads * 4 * imdraw.VertexSize
	gl.BufferData(gl.ARRAY_BUFFER, r.vboCap, nil, gl.STREAM_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	r.eboCap = cfg.InitialQuads * 6 * imdraw.IndexSize
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, r.eboCap, nil, gl.STREAM_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, imdraw.VertexSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, imdraw.VertexSize, 8)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, imdraw.VertexSize, 16)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	if atlas != nil {
		pix, w, h := atlas.BuildRGBA()
		tex, texErr := uploadTexture(pix, w, h)
		if texErr != nil {
			r.Close()
			return nil, texErr
		}
		r.textures.SetFontAtlas(tex)
	}

	r.driver = imdraw.DrawDriver{Device: r, ProjectionAxis: imdraw.YAxisDown}
	return r, nil
}

// Render translates data and issues it into the currently bound
// framebuffer.
func (r *Renderer) Render(data *imdraw.DrawData) error {
	if r.closed {
		return ErrClosed
	}
	r.fbWidth, r.fbHeight = data.FramebufferSize()
	return r.driver.Render(data)
}

// RegisterTexture uploads an RGBA image and returns its id for use in
// draw commands.
func (r *Renderer) RegisterTexture(pix []byte, width, height int) (imdraw.TextureID, error) {
	if r.closed {
		return 0, ErrClosed
	}
	tex, err := uploadTexture(pix, width, height)
	if err != nil {
		return 0, err
	}
	return r.textures.Register(tex), nil
}

// UnregisterTexture recycles id and deletes its GL texture. GL permits
// deleting textures referenced by earlier draws, so no disposal
// deferral is needed.
func (r *Renderer) UnregisterTexture(id imdraw.TextureID) {
	tex, err := r.textures.Resolve(id)
	if err != nil {
		return
	}
	r.textures.Unregister(id)
	gl.DeleteTextures(1, &tex.id)
}

// Texture returns the registered texture for id.
func (r *Renderer) Texture(id imdraw.TextureID) (Texture, error) {
	return r.textures.Resolve(id)
}

// BeforeRender saves GL state and configures the draw-list pipeline.
func (r *Renderer) BeforeRender() error {
	r.saved = captureState()

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(r.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.texLoc, 0)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	return nil
}

// AfterRender restores the GL state captured in BeforeRender.
func (r *Renderer) AfterRender() {
	r.saved.restore()
}

// UploadGeometry streams a draw list's vertices and indices into the
// renderer's buffers, growing them to the exact needed size plus one
// element when the frame outgrows them.
func (r *Renderer) UploadGeometry(vtx []imdraw.DrawVert, idx []imdraw.DrawIdx, idxWide []uint32) error {
	if len(vtx) > 0 {
		size := len(vtx) * imdraw.VertexSize
		if newCap, grow := growCapacity(size, r.vboCap, imdraw.VertexSize); grow {
			r.vboCap = newCap
			gl.BufferData(gl.ARRAY_BUFFER, r.vboCap, nil, gl.STREAM_DRAW)
		}
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(vtx))
	}
	switch {
	case len(idxWide) > 0:
		r.uploadIndices(len(idxWide)*4, 4, gl.Ptr(idxWide))
	case len(idx) > 0:
		r.uploadIndices(len(idx)*imdraw.IndexSize, imdraw.IndexSize, gl.Ptr(idx))
	}
	return nil
}

func (r *Renderer) uploadIndices(size, elemSize int, ptr unsafe.Pointer) {
	if newCap, grow := growCapacity(size, r.eboCap, elemSize); grow {
		r.eboCap = newCap
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, r.eboCap, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, size, ptr)
}

// growCapacity decides whether a buffer of the given byte capacity must
// be reallocated to hold size bytes. When it must, the new capacity is
// the size plus one element of headroom.
func growCapacity(size, capacity, elemSize int) (int, bool) {
	if size <= capacity {
		return capacity, false
	}
	return size + elemSize, true
}

// SetProjection loads the projection matrix uniform.
func (r *Renderer) SetProjection(m mgl32.Mat4) {
	gl.UniformMatrix4fv(r.projLoc, 1, false, &m[0])
}

// SetScissor applies rect as the scissor box. glScissor addresses from
// the bottom-left corner, so the rectangle is flipped against the
// framebuffer height.
func (r *Renderer) SetScissor(rect imdraw.Rect) {
	x, y, w, h := imdraw.ScissorFromRect(rect, r.fbHeight, imdraw.YAxisUp)
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	gl.Scissor(x, y, w, h)
}

// BindTexture binds the GL texture for id.
func (r *Renderer) BindTexture(id imdraw.TextureID) error {
	tex, err := r.textures.Resolve(id)
	if err != nil {
		return err
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	return nil
}

// DrawIndexed issues one indexed draw with base-vertex and index-offset
// addressing into the bound buffers.
func (r *Renderer) DrawIndexed(elemCount, idxOffset, vtxOffset, indexByteSize int) error {
	elemType := uint32(gl.UNSIGNED_SHORT)
	if indexByteSize == 4 {
		elemType = gl.UNSIGNED_INT
	}
	gl.DrawElementsBaseVertexWithOffset(
		gl.TRIANGLES,
		int32(elemCount),
		elemType,
		uintptr(idxOffset*indexByteSize),
		int32(vtxOffset),
	)
	return nil
}

// Close deletes every GL resource the renderer owns.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	if atlas, ok := r.textures.FontAtlas(); ok && atlas.id != 0 {
		gl.DeleteTextures(1, &atlas.id)
	}
	r.textures.Range(func(id imdraw.TextureID, tex Texture) bool {
		gl.DeleteTextures(1, &tex.id)
		return true
	})
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// uploadTexture creates a GL texture from RGBA pixel data.
func uploadTexture(pix []byte, width, height int) (Texture, error) {
	if width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return Texture{}, fmt.Errorf("gl: invalid %dx%d pixel data (%d bytes)", width, height, len(pix))
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return Texture{id: tex, width: int32(width), height: int32(height)}, nil
}
