package wgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/imdraw"
)

// geometryBuffer is a GPU buffer that grows to fit each frame's data.
// Growth allocates exactly the requested size plus one element of
// headroom; the outgrown buffer is queued for disposal rather than
// released mid-frame, since encoded commands may still reference it.
type geometryBuffer struct {
	buf      *wgpu.Buffer
	capacity uint64
	elemSize uint64
	usage    wgpu.BufferUsage
	label    string
}

// alloc creates the buffer at the given byte size, discarding any
// current allocation immediately. Only valid outside a frame.
func (g *geometryBuffer) alloc(device *wgpu.Device, size uint64) error {
	g.release()
	size = pad4(size)
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: g.label,
		Size:  size,
		Usage: g.usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("%w: %s (%d bytes): %v", imdraw.ErrBackendAllocation, g.label, size, err)
	}
	g.buf = buf
	g.capacity = size
	return nil
}

// growTarget decides whether need bytes fit in the current capacity.
// When they do not, it returns the byte size to reallocate at: the
// need plus one element of headroom, padded to a multiple of 4.
func (g *geometryBuffer) growTarget(need uint64) (size uint64, grow bool) {
	if need <= g.capacity {
		return g.capacity, false
	}
	return pad4(need + g.elemSize), true
}

// upload writes data into the buffer, reallocating first if the current
// capacity is too small. WriteBuffer requires sizes in multiples of 4,
// so odd-length payloads (16-bit indices) are padded.
func (g *geometryBuffer) upload(device *wgpu.Device, queue *wgpu.Queue, disposal *imdraw.DisposalQueue, data []byte) error {
	need := pad4(uint64(len(data)))
	if need == 0 {
		return nil
	}
	if size, grow := g.growTarget(need); grow || g.buf == nil {
		if g.buf != nil {
			old := g.buf
			disposal.Add(old.Release)
		}
		buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: g.label,
			Size:  size,
			Usage: g.usage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("%w: %s (%d bytes): %v", imdraw.ErrBackendAllocation, g.label, size, err)
		}
		g.buf = buf
		g.capacity = size
	}
	if rem := len(data) % 4; rem != 0 {
		padded := make([]byte, pad4(uint64(len(data))))
		copy(padded, data)
		data = padded
	}
	queue.WriteBuffer(g.buf, 0, data)
	return nil
}

func (g *geometryBuffer) release() {
	if g.buf != nil {
		g.buf.Release()
		g.buf = nil
		g.capacity = 0
	}
}

func pad4(n uint64) uint64 {
	return (n + 3) &^ 3
}
