package imdraw

// Rect is an axis-aligned rectangle. The y-axis direction is not fixed
// by the type: display rectangles built by [DrawData.DisplayRect] have
// y pointing up, while clip/scissor rectangles in framebuffer space
// have y pointing down. Functions taking a Rect document which
// convention they expect.
type Rect struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 {
	w := r.Right - r.Left
	if w < 0 {
		return -w
	}
	return w
}

// Height returns the vertical extent regardless of the y-axis
// convention in effect.
func (r Rect) Height() float32 {
	h := r.Bottom - r.Top
	if h < 0 {
		return -h
	}
	return h
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width() == 0 || r.Height() == 0
}
