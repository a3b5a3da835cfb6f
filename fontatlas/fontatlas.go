// Package fontatlas builds a minimal builtin font atlas so draw lists
// can render text without an external font stack. Glyphs come from the
// fixed 7x13 face in golang.org/x/image/font/basicfont, rasterized once
// into a tightly packed RGBA grid.
package fontatlas

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/imdraw"
)

const (
	firstRune = ' '
	lastRune  = '~'
	columns   = 16
)

// Glyph is one character's placement in the atlas, UV coordinates
// normalized to [0, 1].
type Glyph struct {
	U0, V0, U1, V1 float32
	// Advance is the pen advance in pixels.
	Advance float32
}

// Atlas is a rasterized ASCII glyph grid. It implements the atlas
// source contract consumed by renderers at init.
type Atlas struct {
	pix    []byte
	width  int
	height int

	glyphs map[rune]Glyph
	cellW  int
	cellH  int
}

// New rasterizes the builtin face into an atlas.
func New() *Atlas {
	face := basicfont.Face7x13
	cellW := face.Advance
	cellH := face.Height
	runes := int(lastRune-firstRune) + 1
	rows := (runes + columns - 1) / columns

	img := image.NewRGBA(image.Rect(0, 0, columns*cellW, rows*cellH))
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	a := &Atlas{
		pix:    img.Pix,
		width:  img.Rect.Dx(),
		height: img.Rect.Dy(),
		glyphs: make(map[rune]Glyph, runes),
		cellW:  cellW,
		cellH:  cellH,
	}

	w := float32(a.width)
	h := float32(a.height)
	for i := 0; i < runes; i++ {
		r := rune(firstRune + i)
		col := i % columns
		row := i / columns
		x := col * cellW
		y := row * cellH

		drawer.Dot = fixed.P(x, y+face.Ascent)
		drawer.DrawString(string(r))

		a.glyphs[r] = Glyph{
			U0:      float32(x) / w,
			V0:      float32(y) / h,
			U1:      float32(x+cellW) / w,
			V1:      float32(y+cellH) / h,
			Advance: float32(cellW),
		}
	}
	return a
}

// BuildRGBA returns the atlas pixels and dimensions.
func (a *Atlas) BuildRGBA() (pix []byte, width, height int) {
	return a.pix, a.width, a.height
}

// Glyph returns the placement for r, if the atlas contains it.
func (a *Atlas) Glyph(r rune) (Glyph, bool) {
	g, ok := a.glyphs[r]
	return g, ok
}

// LineHeight returns the vertical advance between text lines in pixels.
func (a *Atlas) LineHeight() float32 {
	return float32(a.cellH)
}

// AppendText appends one textured quad per glyph of text to list,
// anchored at the top-left corner (x, y), and returns the number of
// indices added. Runes outside the atlas are skipped. The caller is
// responsible for emitting a draw command covering the new geometry
// with [imdraw.FontAtlasID] as its texture.
func (a *Atlas) AppendText(list *imdraw.DrawList, x, y float32, col uint32, text string) int {
	added := 0
	penX := x
	for _, r := range text {
		if r == '\n' {
			penX = x
			y += a.LineHeight()
			continue
		}
		g, ok := a.glyphs[r]
		if !ok {
			continue
		}
		base := imdraw.DrawIdx(len(list.Vtx))
		x1 := penX + float32(a.cellW)
		y1 := y + float32(a.cellH)
		list.Vtx = append(list.Vtx,
			imdraw.DrawVert{Pos: [2]float32{penX, y}, UV: [2]float32{g.U0, g.V0}, Col: col},
			imdraw.DrawVert{Pos: [2]float32{x1, y}, UV: [2]float32{g.U1, g.V0}, Col: col},
			imdraw.DrawVert{Pos: [2]float32{x1, y1}, UV: [2]float32{g.U1, g.V1}, Col: col},
			imdraw.DrawVert{Pos: [2]float32{penX, y1}, UV: [2]float32{g.U0, g.V1}, Col: col},
		)
		list.Idx = append(list.Idx,
			base, base+1, base+2,
			base, base+2, base+3,
		)
		penX += g.Advance
		added += 6
	}
	return added
}
