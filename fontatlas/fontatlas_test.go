package fontatlas

import (
	"testing"

	"github.com/gogpu/imdraw"
)

func TestNewCoversPrintableASCII(t *testing.T) {
	a := New()

	pix, w, h := a.BuildRGBA()
	if w <= 0 || h <= 0 {
		t.Fatalf("atlas dimensions %dx%d", w, h)
	}
	if len(pix) != w*h*4 {
		t.Fatalf("pixel buffer %d bytes, want %d", len(pix), w*h*4)
	}

	for r := rune(' '); r <= '~'; r++ {
		g, ok := a.Glyph(r)
		if !ok {
			t.Fatalf("missing glyph %q", r)
		}
		if g.U0 < 0 || g.U1 > 1 || g.V0 < 0 || g.V1 > 1 {
			t.Errorf("glyph %q UVs out of range: %+v", r, g)
		}
		if g.U1 <= g.U0 || g.V1 <= g.V0 {
			t.Errorf("glyph %q has empty UV rect: %+v", r, g)
		}
	}

	if _, ok := a.Glyph('\t'); ok {
		t.Error("control rune unexpectedly present")
	}

	// The rasterized 'A' cell must contain opaque pixels.
	g, _ := a.Glyph('A')
	x0 := int(g.U0 * float32(w))
	x1 := int(g.U1 * float32(w))
	y0 := int(g.V0 * float32(h))
	y1 := int(g.V1 * float32(h))
	found := false
	for y := y0; y < y1 && !found; y++ {
		for x := x0; x < x1; x++ {
			if pix[(y*w+x)*4+3] != 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("glyph cell for 'A' has no coverage")
	}
}

func TestAppendText(t *testing.T) {
	a := New()
	list := &imdraw.DrawList{}
	col := imdraw.PackColor(255, 255, 255, 255)

	added := a.AppendText(list, 10, 20, col, "hi")
	if added != 12 {
		t.Fatalf("added = %d indices, want 12", added)
	}
	if len(list.Vtx) != 8 {
		t.Fatalf("len(Vtx) = %d, want 8", len(list.Vtx))
	}
	if len(list.Idx) != 12 {
		t.Fatalf("len(Idx) = %d, want 12", len(list.Idx))
	}
	if list.Vtx[0].Pos != [2]float32{10, 20} {
		t.Errorf("first vertex at %v, want [10 20]", list.Vtx[0].Pos)
	}

	g, _ := a.Glyph('h')
	if list.Vtx[4].Pos[0] != 10+g.Advance {
		t.Errorf("second glyph starts at %v, want %v", list.Vtx[4].Pos[0], 10+g.Advance)
	}

	// Newline resets the pen x and advances y.
	list = &imdraw.DrawList{}
	a.AppendText(list, 0, 0, col, "a\nb")
	if list.Vtx[4].Pos != [2]float32{0, a.LineHeight()} {
		t.Errorf("glyph after newline at %v, want [0 %v]", list.Vtx[4].Pos, a.LineHeight())
	}

	// Unknown runes are skipped without geometry.
	list = &imdraw.DrawList{}
	if added := a.AppendText(list, 0, 0, col, "\x01"); added != 0 {
		t.Errorf("added = %d for unknown rune, want 0", added)
	}
}
