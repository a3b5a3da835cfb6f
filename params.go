package imdraw

import "iter"

// DrawParams is the normalized descriptor for one GPU draw call,
// derived from an Elements command. It references the owning list's
// buffers; it is valid for one iteration step and must not be retained.
type DrawParams struct {
	// Display is the logical display rectangle (y up), for projection
	// matrix construction.
	Display Rect

	// Vtx is the owning list's full vertex buffer; VtxOffset is the
	// base vertex for this call.
	Vtx       []DrawVert
	VtxOffset int

	// Idx (or IdxWide for 32-bit lists) is the owning list's full index
	// buffer; IdxOffset is the first index of this call.
	Idx       []DrawIdx
	IdxWide   []uint32
	IdxOffset int

	// ElemCount is the number of indices to draw (triangle count * 3).
	ElemCount int

	// TextureID names the texture to sample.
	TextureID TextureID

	// Scissor is the command's clip rectangle transformed to
	// framebuffer space (y down). Backends convert it to their native
	// origin with [ScissorFromRect].
	Scissor Rect

	// IndexByteSize is 2 for 16-bit indices, 4 for wide lists.
	IndexByteSize int
}

// ParamsIterator walks a frame's draw lists and yields one DrawParams
// per visible Elements command. It is lazy, finite, and single-pass:
// once exhausted it stays exhausted.
//
// Commands whose transformed clip rect lies entirely outside the
// framebuffer are culled and never reach batching. ResetRenderState is
// logged as unsupported and skipped. RawCallback commands are invoked
// during iteration (with the list's RawHandle and the command payload)
// and yield nothing.
type ParamsIterator struct {
	fbWidth   float32
	fbHeight  float32
	clipOff   [2]float32
	clipScale [2]float32
	display   Rect

	lists   []*DrawList
	listIdx int
	cmdIdx  int
	done    bool

	culled      int
	unsupported int
}

// NewParamsIterator prepares iteration over one frame's draw data.
// A non-positive framebuffer dimension (minimized window) makes the
// sequence empty.
func NewParamsIterator(data *DrawData) *ParamsIterator {
	fbW, fbH := data.FramebufferSize()

	it := &ParamsIterator{
		fbWidth:   fbW,
		fbHeight:  fbH,
		clipOff:   data.DisplayPos,
		clipScale: data.FramebufferScale,
		display:   data.DisplayRect(),
		lists:     data.Lists,
	}
	if fbW <= 0 || fbH <= 0 {
		it.done = true
	}
	return it
}

// Next returns the next visible draw call. ok is false once the
// sequence is exhausted.
func (it *ParamsIterator) Next() (p DrawParams, ok bool) {
	if it.done {
		return DrawParams{}, false
	}

	for it.listIdx < len(it.lists) {
		list := it.lists[it.listIdx]
		if it.cmdIdx >= len(list.Cmds) {
			it.listIdx++
			it.cmdIdx = 0
			continue
		}
		cmd := &list.Cmds[it.cmdIdx]
		it.cmdIdx++

		switch cmd.Kind {
		case CmdElements:
			clip := TransformClipRect(cmd.ClipRect, it.clipOff, it.clipScale)
			if clip.Left >= it.fbWidth || clip.Top >= it.fbHeight ||
				clip.Right < 0 || clip.Bottom < 0 {
				it.culled++
				continue
			}

			return DrawParams{
				Display:       it.display,
				Vtx:           list.Vtx,
				VtxOffset:     cmd.VtxOffset,
				Idx:           list.Idx,
				IdxWide:       list.IdxWide,
				IdxOffset:     cmd.IdxOffset,
				ElemCount:     cmd.ElemCount,
				TextureID:     cmd.TextureID,
				Scissor:       clip,
				IndexByteSize: list.IndexByteSize(),
			}, true

		case CmdResetRenderState:
			it.unsupported++
			Logger().Warn("imdraw: ResetRenderState is not supported, skipping")

		case CmdRawCallback:
			if cmd.Callback != nil {
				cmd.Callback(list, cmd.UserData)
			}
		}
	}

	it.done = true
	return DrawParams{}, false
}

// All returns the remaining draw calls as a single-use sequence for
// range-over-func consumption. It shares state with Next: ranging
// consumes the iterator.
func (it *ParamsIterator) All() iter.Seq[DrawParams] {
	return func(yield func(DrawParams) bool) {
		for {
			p, ok := it.Next()
			if !ok {
				return
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Culled reports how many Elements commands were skipped as fully
// outside the framebuffer.
func (it *ParamsIterator) Culled() int { return it.culled }

// Unsupported reports how many commands were skipped because the
// compiler has no implementation for them (ResetRenderState).
func (it *ParamsIterator) Unsupported() int { return it.unsupported }

// FramebufferSize returns the physical pixel dimensions computed for
// the frame under iteration.
func (it *ParamsIterator) FramebufferSize() (w, h float32) {
	return it.fbWidth, it.fbHeight
}
