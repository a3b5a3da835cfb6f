package imdraw

import "github.com/go-gl/mathgl/mgl32"

// YAxis selects the vertical axis convention for projection and scissor
// construction. The two are independent: a backend may want a y-down
// projection while its scissor origin is bottom-left (OpenGL) or
// top-left (WebGPU, D3D). Never assume one implies the other.
type YAxis uint8

const (
	// YAxisDown means y grows toward the bottom of the framebuffer.
	YAxisDown YAxis = iota

	// YAxisUp means y grows toward the top of the framebuffer.
	YAxisUp
)

// Ortho builds an orthographic projection matrix in OpenGL clip-space
// conventions. Intermediate math runs at double precision and is
// truncated to single precision at the boundary, so large display
// dimensions do not lose precision in the subtractions.
//
// The y axis points up with the arguments as named; swap bottom and top
// to obtain a y-down projection, or use [OrthoFor].
func Ortho(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	l, r := float64(left), float64(right)
	b, t := float64(bottom), float64(top)
	n, f := float64(near), float64(far)

	return mgl32.Mat4{
		float32(2 / (r - l)), 0, 0, 0,
		0, float32(2 / (t - b)), 0, 0,
		0, 0, float32(-(2 / (f - n))), 0,
		float32(-((r + l) / (r - l))), float32(-((t + b) / (t - b))), float32(n / (n - f)), 1,
	}
}

// OrthoFor builds the projection matrix for a logical display rectangle
// (y up, as returned by [DrawData.DisplayRect]). For a y-down backend
// the top and bottom arguments are swapped, flipping the axis.
func OrthoFor(display Rect, axis YAxis) mgl32.Mat4 {
	if axis == YAxisDown {
		return Ortho(display.Left, display.Right, display.Top, display.Bottom, 0, 1)
	}
	return Ortho(display.Left, display.Right, display.Bottom, display.Top, 0, 1)
}

// TransformClipRect converts a raw draw-list clip rectangle
// ([left, top, right, bottom], logical space, y down) into framebuffer
// space: (raw - offset) * scale per axis. With a zero offset and unit
// scale this is the identity.
func TransformClipRect(raw [4]float32, displayOffset, fbScale [2]float32) Rect {
	ox, oy := float64(displayOffset[0]), float64(displayOffset[1])
	sx, sy := float64(fbScale[0]), float64(fbScale[1])

	return Rect{
		Left:   float32((float64(raw[0]) - ox) * sx),
		Top:    float32((float64(raw[1]) - oy) * sy),
		Right:  float32((float64(raw[2]) - ox) * sx),
		Bottom: float32((float64(raw[3]) - oy) * sy),
	}
}

// ScissorFromRect converts a framebuffer-space clip rectangle (y down)
// into the x, y, width, height quadruple a backend's scissor call
// expects. For bottom-left-origin backends ([YAxisUp], OpenGL) the
// vertical coordinate is flipped against the framebuffer height; for
// top-left-origin backends ([YAxisDown], WebGPU/D3D) it is used as is.
func ScissorFromRect(r Rect, fbHeight float32, origin YAxis) (x, y, w, h int32) {
	x = int32(r.Left)
	w = int32(r.Right - r.Left)
	h = int32(r.Bottom - r.Top)
	if origin == YAxisUp {
		y = int32(fbHeight - r.Bottom)
	} else {
		y = int32(r.Top)
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return x, y, w, h
}
