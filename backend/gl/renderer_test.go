package gl

import "testing"

func TestGrowCapacity(t *testing.T) {
	cases := []struct {
		name     string
		size     int
		capacity int
		elemSize int
		wantCap  int
		wantGrow bool
	}{
		{"fits with room", 100, 120, 20, 120, false},
		{"fits exactly", 120, 120, 20, 120, false},
		{"overflow grows to size plus one element", 140, 120, 20, 160, true},
		{"empty buffer grows", 60, 0, 2, 62, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			newCap, grow := growCapacity(c.size, c.capacity, c.elemSize)
			if newCap != c.wantCap || grow != c.wantGrow {
				t.Errorf("growCapacity(%d, %d, %d) = (%d, %v), want (%d, %v)",
					c.size, c.capacity, c.elemSize, newCap, grow, c.wantCap, c.wantGrow)
			}
		})
	}
}

func TestGrowCapacityReallocatesOnce(t *testing.T) {
	capacity, grow := growCapacity(200, 0, 20)
	if !grow {
		t.Fatal("first upload did not reallocate")
	}

	// Anything at or under the new watermark must reuse the buffer.
	for _, size := range []int{200, 120, capacity} {
		if _, again := growCapacity(size, capacity, 20); again {
			t.Errorf("growCapacity(%d) reallocated with capacity %d", size, capacity)
		}
	}

	if _, again := growCapacity(capacity+1, capacity, 20); !again {
		t.Errorf("growCapacity(%d) did not reallocate past capacity %d", capacity+1, capacity)
	}
}

func TestTextureSize(t *testing.T) {
	tex := Texture{id: 7, width: 64, height: 32}
	w, h := tex.Size()
	if w != 64 || h != 32 {
		t.Errorf("Size() = (%d, %d), want (64, 32)", w, h)
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.setDefaults()
	if cfg.InitialQuads != 8192 {
		t.Errorf("InitialQuads = %d, want 8192", cfg.InitialQuads)
	}

	cfg = Config{InitialQuads: 64}
	cfg.setDefaults()
	if cfg.InitialQuads != 64 {
		t.Errorf("setDefaults overwrote explicit value: %d", cfg.InitialQuads)
	}
}
