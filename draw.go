package imdraw

// TextureID identifies a texture known to a renderer's texture registry.
// IDs for user textures are allocated starting from 0; the value
// [FontAtlasID] is reserved for the font atlas and is never handed out
// by [TextureRegistry.Register].
type TextureID uint64

// FontAtlasID is the reserved identifier for the font atlas texture.
// It is the maximum representable TextureID, keeping it disjoint from
// the registry's allocation range.
const FontAtlasID TextureID = ^TextureID(0)

// Sizes of the wire-level geometry types in bytes.
const (
	// VertexSize is the byte size of one DrawVert (pos + uv + packed color).
	VertexSize = 20

	// IndexSize is the byte size of one DrawIdx.
	IndexSize = 2
)

// DrawVert is a single vertex as produced by the GUI library:
// screen-space position, texture coordinate, and a packed RGBA color.
// The memory layout matches what backends feed to the GPU verbatim.
type DrawVert struct {
	Pos [2]float32
	UV  [2]float32
	Col uint32
}

// DrawIdx is the default 16-bit vertex index type. Draw lists that
// address more than 64k vertices carry 32-bit indices in
// [DrawList.IdxWide] instead.
type DrawIdx = uint16

// PackColor packs an RGBA color into the DrawVert color format
// (R in the lowest byte).
func PackColor(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// DrawCallback is invoked for RawCallback commands during draw-list
// iteration. It receives the owning list and the command's user payload.
// The callback runs on the render thread, between the draw calls that
// surround it in the command stream.
type DrawCallback func(list *DrawList, userData any)

// DrawCmdKind discriminates the DrawCmd variants.
type DrawCmdKind uint8

const (
	// CmdElements draws ElemCount indexed triangles with a clip rect
	// and texture. This is the common case.
	CmdElements DrawCmdKind = iota

	// CmdResetRenderState asks the backend to restore its default
	// render state. Backends without an implementation log and skip it.
	CmdResetRenderState

	// CmdRawCallback invokes a user callback during iteration.
	CmdRawCallback
)

// DrawCmd is one instruction within a DrawList. It is a tagged variant:
// only the fields relevant to Kind are populated.
type DrawCmd struct {
	Kind DrawCmdKind

	// Elements fields.
	ElemCount int
	VtxOffset int
	IdxOffset int
	// ClipRect is [left, top, right, bottom] in logical display space,
	// y axis pointing down (the draw-list convention).
	ClipRect  [4]float32
	TextureID TextureID

	// RawCallback fields.
	Callback DrawCallback
	UserData any
}

// Elements builds the common triangle-drawing command.
func Elements(elemCount, vtxOffset, idxOffset int, clip [4]float32, tex TextureID) DrawCmd {
	return DrawCmd{
		Kind:      CmdElements,
		ElemCount: elemCount,
		VtxOffset: vtxOffset,
		IdxOffset: idxOffset,
		ClipRect:  clip,
		TextureID: tex,
	}
}

// ResetRenderState builds a reset-render-state command.
func ResetRenderState() DrawCmd {
	return DrawCmd{Kind: CmdResetRenderState}
}

// RawCallback builds a raw-callback command.
func RawCallback(fn DrawCallback, userData any) DrawCmd {
	return DrawCmd{Kind: CmdRawCallback, Callback: fn, UserData: userData}
}

// DrawList is the per-frame geometry and command stream for one logical
// drawing surface. It is owned by the frame and read-only to the
// compiler.
type DrawList struct {
	// Vtx is the vertex buffer shared by all commands in the list.
	Vtx []DrawVert

	// Idx is the 16-bit index buffer. Exactly one of Idx and IdxWide
	// is populated.
	Idx []DrawIdx

	// IdxWide is the 32-bit index buffer for lists that exceed the
	// 16-bit vertex range.
	IdxWide []uint32

	// Cmds is the ordered command stream.
	Cmds []DrawCmd

	// RawHandle is an opaque backend-facing handle passed to
	// RawCallback commands. The compiler never inspects it.
	RawHandle any
}

// IndexByteSize reports the byte width of the list's indices: 2 for the
// common 16-bit case, 4 when IdxWide is populated.
func (l *DrawList) IndexByteSize() int {
	if l.IdxWide != nil {
		return 4
	}
	return IndexSize
}

// IndexCount returns the number of indices in the list.
func (l *DrawList) IndexCount() int {
	if l.IdxWide != nil {
		return len(l.IdxWide)
	}
	return len(l.Idx)
}

// DrawData is the immutable per-frame snapshot produced by the GUI
// library after widget submission closes. It is consumed exactly once
// per frame and discarded after render.
type DrawData struct {
	// DisplayPos is the top-left of the visible area in logical units.
	// (0, 0) for single-viewport applications.
	DisplayPos [2]float32

	// DisplaySize is the visible area size in logical units.
	DisplaySize [2]float32

	// FramebufferScale converts logical units to physical pixels,
	// per axis (e.g. 2 on high-density displays).
	FramebufferScale [2]float32

	// Lists is the ordered draw-list sequence.
	Lists []*DrawList
}

// FramebufferSize returns the physical pixel dimensions of the frame.
// Either dimension being non-positive marks a degenerate frame (e.g. a
// minimized window); nothing should be drawn.
func (d *DrawData) FramebufferSize() (w, h float32) {
	return d.DisplaySize[0] * d.FramebufferScale[0],
		d.DisplaySize[1] * d.FramebufferScale[1]
}

// DisplayRect returns the logical display rectangle with the y axis
// pointing up, suitable for projection-matrix construction.
func (d *DrawData) DisplayRect() Rect {
	return Rect{
		Left:   d.DisplayPos[0],
		Right:  d.DisplayPos[0] + d.DisplaySize[0],
		Top:    d.DisplayPos[1] + d.DisplaySize[1],
		Bottom: d.DisplayPos[1],
	}
}

// TotalVtxCount sums the vertex counts of all lists.
func (d *DrawData) TotalVtxCount() int {
	n := 0
	for _, l := range d.Lists {
		n += len(l.Vtx)
	}
	return n
}

// TotalIdxCount sums the index counts of all lists.
func (d *DrawData) TotalIdxCount() int {
	n := 0
	for _, l := range d.Lists {
		n += l.IndexCount()
	}
	return n
}

// AtlasSource is the init-time font atlas hook. The GUI library (or the
// fontatlas package) rasterizes its glyphs into a tightly packed RGBA
// buffer; the renderer uploads it and records it under [FontAtlasID]
// before the first frame begins.
type AtlasSource interface {
	// BuildRGBA returns the atlas pixels (4 bytes per pixel, row-major)
	// and its dimensions.
	BuildRGBA() (pix []byte, width, height int)
}
