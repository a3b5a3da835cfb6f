package imdraw

import (
	"math"
	"testing"
)

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestOrthoYUp(t *testing.T) {
	// 800x600 display, y up: bottom = 0, top = 600.
	m := Ortho(0, 800, 0, 600, 0, 1)

	if got, want := m[0], float32(2.0/800.0); !almostEqual(got, want) {
		t.Errorf("m[0] = %v, want %v", got, want)
	}
	if got, want := m[5], float32(2.0/600.0); !almostEqual(got, want) {
		t.Errorf("m[5] = %v, want %v", got, want)
	}
	if got, want := m[10], float32(-2.0); !almostEqual(got, want) {
		t.Errorf("m[10] = %v, want %v", got, want)
	}
	if got, want := m[12], float32(-1.0); !almostEqual(got, want) {
		t.Errorf("m[12] = %v, want %v", got, want)
	}
	if got, want := m[13], float32(-1.0); !almostEqual(got, want) {
		t.Errorf("m[13] = %v, want %v", got, want)
	}
	if m[15] != 1 {
		t.Errorf("m[15] = %v, want 1", m[15])
	}
}

func TestOrthoForFlipsAxis(t *testing.T) {
	display := Rect{Left: 0, Right: 800, Top: 600, Bottom: 0}

	up := OrthoFor(display, YAxisUp)
	down := OrthoFor(display, YAxisDown)

	// Transform the display's top-left corner (0, 0 in draw-list
	// space is logical top, which is display.Top with y up).
	// Under the y-down projection, y = 0 must land at clip-space +1
	// (top); under y up it lands at -1.
	yDown := down[5]*0 + down[13]
	if !almostEqual(yDown, 1) {
		t.Errorf("y-down projection maps y=0 to %v, want 1", yDown)
	}
	yUp := up[5]*0 + up[13]
	if !almostEqual(yUp, -1) {
		t.Errorf("y-up projection maps y=0 to %v, want -1", yUp)
	}

	// Both projections agree on x.
	if !almostEqual(up[0], down[0]) || !almostEqual(up[12], down[12]) {
		t.Error("x-axis terms differ between y-up and y-down projections")
	}
}

func TestOrthoDoublePrecision(t *testing.T) {
	// A display rectangle with a large offset: the subtraction
	// right-left must not collapse in float32 before the division.
	const off = 1 << 22
	m := Ortho(off, off+799, 0, 600, 0, 1)
	if got, want := m[0], float32(2.0/799.0); !almostEqual(got, want) {
		t.Errorf("m[0] = %v, want %v", got, want)
	}
}

func TestTransformClipRectIdentity(t *testing.T) {
	got := TransformClipRect([4]float32{10, 20, 110, 220}, [2]float32{}, [2]float32{1, 1})
	want := Rect{Left: 10, Top: 20, Right: 110, Bottom: 220}
	if got != want {
		t.Errorf("TransformClipRect identity = %+v, want %+v", got, want)
	}
}

func TestTransformClipRectOffsetScale(t *testing.T) {
	// Display offset (100, 50), framebuffer scale 2x.
	got := TransformClipRect([4]float32{110, 60, 210, 160}, [2]float32{100, 50}, [2]float32{2, 2})
	want := Rect{Left: 20, Top: 20, Right: 220, Bottom: 220}
	if got != want {
		t.Errorf("TransformClipRect = %+v, want %+v", got, want)
	}
}

func TestScissorFromRect(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Right: 110, Bottom: 220}

	x, y, w, h := ScissorFromRect(r, 600, YAxisDown)
	if x != 10 || y != 20 || w != 100 || h != 200 {
		t.Errorf("top-left origin scissor = (%d, %d, %d, %d), want (10, 20, 100, 200)", x, y, w, h)
	}

	x, y, w, h = ScissorFromRect(r, 600, YAxisUp)
	if x != 10 || y != 380 || w != 100 || h != 200 {
		t.Errorf("bottom-left origin scissor = (%d, %d, %d, %d), want (10, 380, 100, 200)", x, y, w, h)
	}
}

func TestScissorFromRectClampsNegativeExtent(t *testing.T) {
	// Inverted rectangles clamp to zero area rather than going
	// negative.
	r := Rect{Left: 100, Top: 100, Right: 50, Bottom: 50}
	_, _, w, h := ScissorFromRect(r, 600, YAxisDown)
	if w != 0 || h != 0 {
		t.Errorf("inverted rect scissor extent = (%d, %d), want (0, 0)", w, h)
	}
}
