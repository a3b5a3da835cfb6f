package imdraw

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Device is the narrow capability contract a backend adapter exposes to
// the draw-list compiler: upload geometry into (growable) GPU buffers,
// set the projection uniform, set the scissor rectangle, bind a texture
// by id, and issue an indexed draw. Everything behind it is
// backend-specific.
//
// All methods run synchronously on the render thread. Geometry and
// projection state set before the first Elements command of a list is
// assumed to survive intervening RawCallback invocations; a backend
// that cannot guarantee this must re-establish the state itself.
type Device interface {
	// UploadGeometry replaces the device's vertex and index buffers
	// with the given list-level slices, growing the GPU allocations
	// when capacity is exceeded. Exactly one of idx/idxWide is
	// non-nil. Allocation failure is fatal and reported as (or
	// wrapping) ErrBackendAllocation.
	UploadGeometry(vtx []DrawVert, idx []DrawIdx, idxWide []uint32) error

	// SetProjection sets the projection-matrix uniform.
	SetProjection(m mgl32.Mat4)

	// SetScissor sets the scissor rectangle from a framebuffer-space
	// clip rect (y down). The device converts to its native origin.
	SetScissor(r Rect)

	// BindTexture resolves id through the device's texture registry
	// and binds the result for the next draw. Unknown ids return an
	// *UnknownTextureError.
	BindTexture(id TextureID) error

	// DrawIndexed draws elemCount indices starting at idxOffset, with
	// vtxOffset added to each index. indexByteSize is 2 unless the
	// owning draw list carries wide indices.
	DrawIndexed(elemCount, idxOffset, vtxOffset, indexByteSize int) error
}

// FrameHooks is optionally implemented by a Device. BeforeRender runs
// ahead of the first draw of a frame (bind the pipeline, set a
// non-premultiplied or backend-appropriate blend state); AfterRender
// runs after the last draw, including on error paths (restore prior
// state, flush deferred disposals).
type FrameHooks interface {
	BeforeRender() error
	AfterRender()
}

// DrawDriver is the batching orchestrator. Per frame it moves through
// Idle, ListBound and Drawing states: the first Elements command of
// each draw list (index offset zero) uploads that list's geometry and
// recomputes the projection uniform; every command sets the scissor,
// binds its texture and issues an indexed draw; end of frame returns
// to Idle.
//
// One DrawDriver drives one Device and must not be shared across
// goroutines; Render must not be called concurrently.
type DrawDriver struct {
	// Device receives the compiled GPU operations.
	Device Device

	// ProjectionAxis selects the projection's vertical convention.
	// The zero value (YAxisDown) matches draw lists whose origin is
	// the top-left corner.
	ProjectionAxis YAxis
}

// Render compiles one frame's draw data into device operations.
//
// A texture resolution failure aborts the frame and is returned to the
// caller, which may log and skip the frame; geometry upload failures
// are fatal. AfterRender (if implemented) runs on every path once
// BeforeRender has succeeded.
func (d *DrawDriver) Render(data *DrawData) error {
	hooks, hasHooks := d.Device.(FrameHooks)
	if hasHooks {
		if err := hooks.BeforeRender(); err != nil {
			return err
		}
		defer hooks.AfterRender()
	}

	it := NewParamsIterator(data)
	for {
		p, ok := it.Next()
		if !ok {
			return nil
		}

		if p.IdxOffset == 0 {
			// First command of a list: bind its geometry and refresh
			// the projection for the frame's display rect.
			if err := d.Device.UploadGeometry(p.Vtx, p.Idx, p.IdxWide); err != nil {
				return err
			}
			d.Device.SetProjection(OrthoFor(p.Display, d.ProjectionAxis))
		}

		d.Device.SetScissor(p.Scissor)

		if err := d.Device.BindTexture(p.TextureID); err != nil {
			return err
		}
		if err := d.Device.DrawIndexed(p.ElemCount, p.IdxOffset, p.VtxOffset, p.IndexByteSize); err != nil {
			return err
		}
	}
}
