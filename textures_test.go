package imdraw

import (
	"errors"
	"testing"
)

func TestTextureRegistryRegisterResolve(t *testing.T) {
	r := NewTextureRegistry[string]()

	id := r.Register("checker")
	if id == FontAtlasID {
		t.Fatal("Register handed out the font atlas sentinel")
	}

	h, err := r.Resolve(id)
	if err != nil {
		t.Fatalf("Resolve(%d) = %v", id, err)
	}
	if h != "checker" {
		t.Errorf("Resolve(%d) = %q, want %q", id, h, "checker")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestTextureRegistryUnknownID(t *testing.T) {
	r := NewTextureRegistry[string]()

	_, err := r.Resolve(42)
	if err == nil {
		t.Fatal("Resolve of unregistered id succeeded")
	}
	if !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("errors.Is(err, ErrUnknownTexture) = false for %v", err)
	}
	var unknown *UnknownTextureError
	if !errors.As(err, &unknown) {
		t.Fatalf("error %T is not *UnknownTextureError", err)
	}
	if unknown.ID != 42 {
		t.Errorf("UnknownTextureError.ID = %d, want 42", unknown.ID)
	}
}

func TestTextureRegistryFontAtlas(t *testing.T) {
	r := NewTextureRegistry[string]()

	// Without an atlas the sentinel does not resolve.
	if _, err := r.Resolve(FontAtlasID); !errors.Is(err, ErrNoFontAtlas) {
		t.Errorf("Resolve(FontAtlasID) without atlas = %v, want ErrNoFontAtlas", err)
	}

	r.SetFontAtlas("atlas")

	// The sentinel resolves to the atlas regardless of map contents.
	h, err := r.Resolve(FontAtlasID)
	if err != nil {
		t.Fatalf("Resolve(FontAtlasID) = %v", err)
	}
	if h != "atlas" {
		t.Errorf("Resolve(FontAtlasID) = %q, want %q", h, "atlas")
	}

	// The atlas is not a user texture.
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}

	// Unregistering the sentinel is a no-op.
	r.Unregister(FontAtlasID)
	if _, err := r.Resolve(FontAtlasID); err != nil {
		t.Errorf("Resolve(FontAtlasID) after Unregister = %v", err)
	}
}

func TestTextureRegistryIDRecycling(t *testing.T) {
	r := NewTextureRegistry[int]()

	a := r.Register(1)
	b := r.Register(2)
	if a == b {
		t.Fatalf("duplicate ids: %d", a)
	}

	r.Unregister(a)
	if _, err := r.Resolve(a); err == nil {
		t.Error("Resolve of unregistered id succeeded")
	}

	c := r.Register(3)
	if c != a {
		t.Errorf("Register after Unregister = %d, want recycled %d", c, a)
	}

	// Unregistering an unknown id is ignored.
	r.Unregister(9999)
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestTextureRegistrySentinelNeverAllocated(t *testing.T) {
	r := NewTextureRegistry[int]()
	r.entries[0] = 100

	// Force the allocation counter to the sentinel; the next Register
	// must wrap to the lowest unused id instead.
	r.next = FontAtlasID
	id := r.Register(7)
	if id == FontAtlasID {
		t.Fatal("Register returned the font atlas sentinel")
	}
	if id != 1 {
		t.Errorf("Register after wrap = %d, want 1", id)
	}
}

func TestTextureRegistryRange(t *testing.T) {
	r := NewTextureRegistry[int]()
	r.SetFontAtlas(-1)
	a := r.Register(10)
	b := r.Register(20)

	seen := map[TextureID]int{}
	r.Range(func(id TextureID, h int) bool {
		seen[id] = h
		return true
	})
	if len(seen) != 2 || seen[a] != 10 || seen[b] != 20 {
		t.Errorf("Range visited %v, want both user textures", seen)
	}

	// Early termination.
	n := 0
	r.Range(func(TextureID, int) bool {
		n++
		return false
	})
	if n != 1 {
		t.Errorf("Range after false = %d visits, want 1", n)
	}
}

func TestSharedReleaseOnce(t *testing.T) {
	released := 0
	s := NewShared("tex", func(string) { released++ })

	if s.Refs() != 1 {
		t.Fatalf("Refs() = %d, want 1", s.Refs())
	}
	if s.Handle() != "tex" {
		t.Errorf("Handle() = %q, want %q", s.Handle(), "tex")
	}

	s.Retain()
	if s.Refs() != 2 {
		t.Errorf("Refs() after Retain = %d, want 2", s.Refs())
	}

	s.Release()
	if released != 0 {
		t.Error("release action ran while references remain")
	}

	s.Release()
	if released != 1 {
		t.Errorf("release action ran %d times, want 1", released)
	}

	// Releasing past zero must not re-run the action.
	s.Release()
	if released != 1 {
		t.Errorf("release action ran %d times after over-release, want 1", released)
	}
}

func TestSharedNilRelease(t *testing.T) {
	s := NewShared(7, nil)
	// Must not panic.
	s.Release()
}

func TestDisposalQueue(t *testing.T) {
	var q DisposalQueue
	var order []int

	q.Add(func() { order = append(order, 1) })
	q.Add(nil)
	q.Add(func() { order = append(order, 2) })

	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}

	q.Flush()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("flush order = %v, want [1 2]", order)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after Flush = %d, want 0", q.Len())
	}

	// Flushing an empty queue is a no-op.
	q.Flush()
	if len(order) != 2 {
		t.Error("second Flush re-ran disposals")
	}
}
