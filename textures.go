package imdraw

import "sync/atomic"

// TextureRegistry maps TextureIDs to backend-native texture handles.
// H is whatever the backend uses to name a texture (an object pointer,
// a GLuint, a struct of views).
//
// The font atlas lives outside the id map: Resolve(FontAtlasID) always
// returns it, regardless of registry contents, and Register never
// allocates the sentinel value.
//
// TextureRegistry is not safe for concurrent use; mutate it only from
// the render thread.
type TextureRegistry[H any] struct {
	entries map[TextureID]H
	next    TextureID
	free    []TextureID

	fontAtlas H
	hasAtlas  bool
}

// NewTextureRegistry creates an empty registry. User ids start at 0.
func NewTextureRegistry[H any]() *TextureRegistry[H] {
	return &TextureRegistry[H]{entries: make(map[TextureID]H)}
}

// SetFontAtlas records the font atlas handle served under [FontAtlasID].
// Exactly one font atlas exists per renderer instance; calling this
// again replaces it (the caller owns disposal of the old handle).
func (r *TextureRegistry[H]) SetFontAtlas(h H) {
	r.fontAtlas = h
	r.hasAtlas = true
}

// FontAtlas returns the font atlas handle, if one was set.
func (r *TextureRegistry[H]) FontAtlas() (H, bool) {
	return r.fontAtlas, r.hasAtlas
}

// Register stores a handle and returns its freshly allocated id.
// Freed ids are reused before new ones are minted; the sentinel
// [FontAtlasID] is never returned.
func (r *TextureRegistry[H]) Register(h H) TextureID {
	var id TextureID
	if n := len(r.free); n > 0 {
		id = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		if r.next == FontAtlasID {
			// The allocation counter reached the sentinel; wrap to the
			// lowest id not in use rather than hand out the atlas id.
			r.next = 0
			for {
				if _, taken := r.entries[r.next]; !taken {
					break
				}
				r.next++
			}
		}
		id = r.next
		r.next++
	}
	r.entries[id] = h
	return id
}

// Unregister removes an id and recycles it for future Register calls.
// Unknown ids are ignored. The caller owns disposal of the handle.
func (r *TextureRegistry[H]) Unregister(id TextureID) {
	if id == FontAtlasID {
		return
	}
	if _, ok := r.entries[id]; !ok {
		return
	}
	delete(r.entries, id)
	r.free = append(r.free, id)
}

// Resolve returns the handle for an id. The sentinel id resolves to the
// font atlas without consulting the id map. Unknown ids (including
// stale ones released by the application between frames) return an
// *UnknownTextureError; the draw driver aborts the frame and surfaces
// it to the caller, which may log and drop the frame.
func (r *TextureRegistry[H]) Resolve(id TextureID) (H, error) {
	if id == FontAtlasID {
		if !r.hasAtlas {
			var zero H
			return zero, ErrNoFontAtlas
		}
		return r.fontAtlas, nil
	}
	h, ok := r.entries[id]
	if !ok {
		var zero H
		return zero, &UnknownTextureError{ID: id}
	}
	return h, nil
}

// Len reports the number of registered user textures. The font atlas is
// not counted.
func (r *TextureRegistry[H]) Len() int {
	return len(r.entries)
}

// Range calls fn for every registered user texture until fn returns
// false. The font atlas is not visited. Do not mutate the registry from
// fn.
func (r *TextureRegistry[H]) Range(fn func(id TextureID, h H) bool) {
	for id, h := range r.entries {
		if !fn(id, h) {
			return
		}
	}
}

// Shared is a reference-counted texture handle for textures reused
// across frames by application code. The release action runs exactly
// once, when the last reference is dropped. Backends that must not
// destroy GPU resources mid-frame pass a release func that enqueues
// into a [DisposalQueue] instead of destroying directly.
type Shared[H any] struct {
	handle  H
	refs    atomic.Int32
	release func(H)
}

// NewShared wraps a handle with an initial reference count of one.
// release may be nil if the handle needs no teardown.
func NewShared[H any](h H, release func(H)) *Shared[H] {
	s := &Shared[H]{handle: h, release: release}
	s.refs.Store(1)
	return s
}

// Handle returns the underlying handle. Valid only while at least one
// reference is held.
func (s *Shared[H]) Handle() H { return s.handle }

// Retain adds a reference and returns s for chaining.
func (s *Shared[H]) Retain() *Shared[H] {
	s.refs.Add(1)
	return s
}

// Release drops a reference. On the last drop the release action runs
// exactly once. Releasing past zero logs and does nothing.
func (s *Shared[H]) Release() {
	n := s.refs.Add(-1)
	switch {
	case n == 0:
		if s.release != nil {
			s.release(s.handle)
		}
	case n < 0:
		Logger().Warn("imdraw: Release called on dead shared texture")
		s.refs.Add(1)
	}
}

// Refs reports the current reference count.
func (s *Shared[H]) Refs() int { return int(s.refs.Load()) }

// DisposalQueue batches GPU resource disposals until a safe sync point.
// Some backends must not destroy resources that the in-flight frame may
// still reference; they enqueue the destroy action and call Flush once
// the frame's commands have been submitted.
//
// DisposalQueue is not safe for concurrent use; drive it from the
// render thread.
type DisposalQueue struct {
	pending []func()
}

// Add enqueues a disposal action. Nil actions are ignored.
func (q *DisposalQueue) Add(fn func()) {
	if fn == nil {
		return
	}
	q.pending = append(q.pending, fn)
}

// Flush runs all pending disposals in enqueue order and clears the
// queue.
func (q *DisposalQueue) Flush() {
	for _, fn := range q.pending {
		fn()
	}
	q.pending = q.pending[:0]
}

// Len reports the number of pending disposals.
func (q *DisposalQueue) Len() int { return len(q.pending) }
