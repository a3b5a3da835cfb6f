package imdraw

// IO is the per-frame input state a Platform fills in and the GUI
// library reads before building widgets. It is the hand-off point
// between the input half and the GUI: imdraw never interprets it.
type IO struct {
	// DisplaySize is the logical window size.
	DisplaySize [2]float32

	// FramebufferScale converts logical units to physical pixels.
	FramebufferScale [2]float32

	// DeltaTime is the seconds elapsed since the previous frame.
	DeltaTime float32

	// MousePos is the cursor position in logical units.
	MousePos [2]float32

	// MouseDown holds the left, right and middle button states.
	MouseDown [3]bool

	// MouseWheel is the scroll delta accumulated since the last frame
	// (x, y).
	MouseWheel [2]float32

	// KeysDown is indexed by platform key code.
	KeysDown map[int]bool

	// InputChars holds the text input received since the last frame.
	InputChars []rune
}

// NewFrameReset clears the per-frame accumulators (wheel deltas, text
// input) after the GUI library has consumed them.
func (io *IO) NewFrameReset() {
	io.MouseWheel = [2]float32{}
	io.InputChars = io.InputChars[:0]
}

// Platform is the input half of a backend: it translates window-system
// events into IO state and prepares each frame. E is the platform's
// event type, W its window handle type.
type Platform[E, W any] interface {
	// HandleEvent feeds one event into io. It reports whether the GUI
	// captured the event (so the application can skip its own
	// handling).
	HandleEvent(io *IO, ev E) bool

	// PrepareFrame refreshes io's display size, framebuffer scale and
	// timing from the window before the GUI builds a frame.
	PrepareFrame(io *IO, window W) error

	// PrepareRender runs after widget submission closes and before
	// rendering (e.g. update the native cursor shape).
	PrepareRender(window W)
}

// RenderBackend is the rendering half of a backend: it consumes one
// frame's draw data and drives a GPU API. Implementations live in
// backend/wgpu and backend/gl.
type RenderBackend interface {
	// Render compiles and submits one frame. See DrawDriver.Render for
	// the error contract.
	Render(data *DrawData) error

	// Close releases the backend's GPU resources. The backend must not
	// be used afterwards. Close on an already-closed backend is a
	// no-op.
	Close()
}

// Backend composes a Platform and a RenderBackend into one unit, so any
// input half works with any rendering half. It owns the IO state they
// share.
type Backend[E, W any] struct {
	IO       IO
	Platform Platform[E, W]
	Renderer RenderBackend
}

// NewBackend composes the two halves.
func NewBackend[E, W any](p Platform[E, W], r RenderBackend) *Backend[E, W] {
	return &Backend[E, W]{
		IO: IO{
			FramebufferScale: [2]float32{1, 1},
			KeysDown:         make(map[int]bool),
		},
		Platform: p,
		Renderer: r,
	}
}

// HandleEvent forwards one event to the platform half.
func (b *Backend[E, W]) HandleEvent(ev E) bool {
	return b.Platform.HandleEvent(&b.IO, ev)
}

// NewFrame prepares the IO state for the next GUI frame.
func (b *Backend[E, W]) NewFrame(window W) error {
	return b.Platform.PrepareFrame(&b.IO, window)
}

// Render runs the platform's pre-render step and submits the frame's
// draw data to the rendering half.
func (b *Backend[E, W]) Render(window W, data *DrawData) error {
	b.Platform.PrepareRender(window)
	err := b.Renderer.Render(data)
	b.IO.NewFrameReset()
	return err
}

// Close releases the rendering half's resources.
func (b *Backend[E, W]) Close() {
	b.Renderer.Close()
}
