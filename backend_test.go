package imdraw

import (
	"errors"
	"testing"
)

// fakeEvent is a minimal platform event for composition tests.
type fakeEvent struct {
	wheel float32
	char  rune
}

// fakePlatform implements Platform over string windows.
type fakePlatform struct {
	prepared     int
	renderPreps  int
	lastWindow   string
	prepareErr   error
	captureEvent bool
}

func (p *fakePlatform) HandleEvent(io *IO, ev fakeEvent) bool {
	if ev.wheel != 0 {
		io.MouseWheel[1] += ev.wheel
	}
	if ev.char != 0 {
		io.InputChars = append(io.InputChars, ev.char)
	}
	return p.captureEvent
}

func (p *fakePlatform) PrepareFrame(io *IO, window string) error {
	p.prepared++
	p.lastWindow = window
	io.DisplaySize = [2]float32{640, 480}
	return p.prepareErr
}

func (p *fakePlatform) PrepareRender(window string) {
	p.renderPreps++
}

// fakeRenderer implements RenderBackend.
type fakeRenderer struct {
	rendered  int
	lastData  *DrawData
	renderErr error
	closed    int
}

func (r *fakeRenderer) Render(data *DrawData) error {
	r.rendered++
	r.lastData = data
	return r.renderErr
}

func (r *fakeRenderer) Close() {
	r.closed++
}

func TestNewBackendDefaults(t *testing.T) {
	b := NewBackend[fakeEvent, string](&fakePlatform{}, &fakeRenderer{})

	if b.IO.FramebufferScale != [2]float32{1, 1} {
		t.Errorf("FramebufferScale = %v, want [1 1]", b.IO.FramebufferScale)
	}
	if b.IO.KeysDown == nil {
		t.Error("KeysDown map not initialized")
	}
}

func TestBackendComposition(t *testing.T) {
	p := &fakePlatform{captureEvent: true}
	r := &fakeRenderer{}
	b := NewBackend[fakeEvent, string](p, r)

	if !b.HandleEvent(fakeEvent{wheel: 2}) {
		t.Error("HandleEvent did not report capture")
	}
	b.HandleEvent(fakeEvent{char: 'x'})

	if err := b.NewFrame("main"); err != nil {
		t.Fatalf("NewFrame() = %v", err)
	}
	if p.prepared != 1 || p.lastWindow != "main" {
		t.Errorf("PrepareFrame calls = %d on %q, want 1 on %q", p.prepared, p.lastWindow, "main")
	}
	if b.IO.DisplaySize != [2]float32{640, 480} {
		t.Errorf("DisplaySize = %v after NewFrame", b.IO.DisplaySize)
	}

	data := &DrawData{DisplaySize: [2]float32{640, 480}, FramebufferScale: [2]float32{1, 1}}
	if err := b.Render("main", data); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if p.renderPreps != 1 {
		t.Errorf("PrepareRender calls = %d, want 1", p.renderPreps)
	}
	if r.rendered != 1 || r.lastData != data {
		t.Error("renderer did not receive the frame's draw data")
	}

	// Render resets the per-frame accumulators.
	if b.IO.MouseWheel != [2]float32{} {
		t.Errorf("MouseWheel = %v after Render, want reset", b.IO.MouseWheel)
	}
	if len(b.IO.InputChars) != 0 {
		t.Errorf("InputChars = %v after Render, want reset", b.IO.InputChars)
	}

	b.Close()
	if r.closed != 1 {
		t.Errorf("Close calls = %d, want 1", r.closed)
	}
}

func TestBackendRenderErrorStillResetsIO(t *testing.T) {
	renderErr := errors.New("device lost")
	p := &fakePlatform{}
	r := &fakeRenderer{renderErr: renderErr}
	b := NewBackend[fakeEvent, string](p, r)

	b.HandleEvent(fakeEvent{wheel: 1})

	err := b.Render("main", &DrawData{})
	if !errors.Is(err, renderErr) {
		t.Fatalf("Render() = %v, want %v", err, renderErr)
	}
	if b.IO.MouseWheel != [2]float32{} {
		t.Error("per-frame IO state not reset after render error")
	}
}

func TestIONewFrameReset(t *testing.T) {
	io := &IO{
		MouseWheel: [2]float32{1, 2},
		InputChars: []rune{'a', 'b'},
		MousePos:   [2]float32{10, 20},
		MouseDown:  [3]bool{true, false, false},
	}
	io.NewFrameReset()

	if io.MouseWheel != [2]float32{} || len(io.InputChars) != 0 {
		t.Error("accumulators not cleared")
	}
	// Positional and button state persists across frames.
	if io.MousePos != [2]float32{10, 20} || !io.MouseDown[0] {
		t.Error("persistent state was cleared")
	}
}
