package imdraw

import (
	"errors"
	"fmt"
)

// Errors returned by the draw-list compiler. Per-draw-call failures
// bubble up through [DrawDriver.Render] as its return value; none are
// silently swallowed except the logged unsupported-feature skip path.
var (
	// ErrUnknownTexture is matched (via errors.Is) by the typed
	// UnknownTextureError a renderer returns when a draw command
	// references an id the registry does not know. It aborts the
	// current frame render; the caller may log and skip the frame.
	ErrUnknownTexture = errors.New("imdraw: unknown texture id")

	// ErrUnsupportedDrawFeature marks ResetRenderState or RawCallback
	// commands on backends without an implementation. Non-fatal: the
	// command is logged and skipped.
	ErrUnsupportedDrawFeature = errors.New("imdraw: unsupported draw feature")

	// ErrBackendAllocation is a fatal GPU allocation failure. The
	// renderer cannot continue and never retries.
	ErrBackendAllocation = errors.New("imdraw: backend allocation failed")

	// ErrNoFontAtlas is returned when rendering begins before the font
	// atlas was uploaded and recorded under FontAtlasID.
	ErrNoFontAtlas = errors.New("imdraw: font atlas not initialized")
)

// UnknownTextureError reports a draw command referencing a texture id
// the registry cannot resolve. Stale ids are an expected condition:
// applications may drop shared textures between frames.
type UnknownTextureError struct {
	ID TextureID
}

func (e *UnknownTextureError) Error() string {
	return fmt.Sprintf("imdraw: unknown texture id %d", e.ID)
}

// Is makes errors.Is(err, ErrUnknownTexture) succeed.
func (e *UnknownTextureError) Is(target error) bool {
	return target == ErrUnknownTexture
}
