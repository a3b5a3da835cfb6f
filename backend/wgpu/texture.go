package wgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Texture is an RGBA texture owned by the renderer, together with the
// bind group that samples it.
type Texture struct {
	tex    *wgpu.Texture
	view   *wgpu.TextureView
	bind   *wgpu.BindGroup
	width  uint32
	height uint32
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height int) {
	return int(t.width), int(t.height)
}

func (t *Texture) release() {
	if t.bind != nil {
		t.bind.Release()
		t.bind = nil
	}
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.tex != nil {
		t.tex.Release()
		t.tex = nil
	}
}

// createTexture uploads pix (RGBA, 4 bytes per pixel, row major) and
// builds the sampling bind group against the renderer's texture layout.
func (r *Renderer) createTexture(label string, pix []byte, width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return nil, fmt.Errorf("wgpu: texture %q: invalid %dx%d pixel data (%d bytes)", label, width, height, len(pix))
	}
	t := &Texture{width: uint32(width), height: uint32(height)}

	var err error
	t.tex, err = r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     label,
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              t.width,
			Height:             t.height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8Unorm,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %q: %w", label, err)
	}

	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pix[:width*height*4],
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  t.width * 4,
			RowsPerImage: t.height,
		},
		&wgpu.Extent3D{
			Width:              t.width,
			Height:             t.height,
			DepthOrArrayLayers: 1,
		},
	)

	t.view, err = t.tex.CreateView(nil)
	if err != nil {
		t.release()
		return nil, fmt.Errorf("wgpu: create texture view %q: %w", label, err)
	}

	t.bind, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: r.state.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: t.view},
			{Binding: 1, Sampler: r.sampler},
		},
	})
	if err != nil {
		t.release()
		return nil, fmt.Errorf("wgpu: create bind group %q: %w", label, err)
	}
	return t, nil
}
