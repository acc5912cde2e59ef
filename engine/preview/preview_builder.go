package preview

import (
	"github.com/Carmen-Shannon/oxy-cube/engine/model"
	"github.com/Carmen-Shannon/oxy-cube/engine/snapshot"
)

// PreviewOption is a functional option for configuring a Preview.
type PreviewOption func(*preview)

// WithTitle sets the base window title; the view and zoom are appended to it.
//
// Parameters:
//   - title: the base title
//
// Returns:
//   - PreviewOption: option function to apply
func WithTitle(title string) PreviewOption {
	return func(p *preview) {
		if title != "" {
			p.title = title
		}
	}
}

// WithScale sets the initial window magnification of the rasterized frame. Values < 1 are ignored.
func WithScale(scale int) PreviewOption {
	return func(p *preview) {
		if scale > 0 {
			p.scale = scale
		}
	}
}

// WithTPS sets how many times per second input is polled. Values < 1 are ignored.
func WithTPS(tps int) PreviewOption {
	return func(p *preview) {
		if tps > 0 {
			p.tps = tps
		}
	}
}

// WithVSync toggles presentation synchronized with the display refresh.
func WithVSync(enabled bool) PreviewOption {
	return func(p *preview) {
		p.vsync = enabled
	}
}

// WithLabel stamps the current view and zoom into the top-left corner of every frame.
func WithLabel(enabled bool) PreviewOption {
	return func(p *preview) {
		p.label = enabled
	}
}

// WithSnapshotter replaces the default CPU rasterizer.
// The snapshotter should use an opaque background; the window shows alpha as black.
//
// Parameters:
//   - s: the snapshotter that draws each frame
//
// Returns:
//   - PreviewOption: option function to apply
func WithSnapshotter(s snapshot.Snapshotter) PreviewOption {
	return func(p *preview) {
		p.snap = s
	}
}

// WithMesh replaces the cube with another triangle list.
func WithMesh(mesh model.Mesh) PreviewOption {
	return func(p *preview) {
		p.mesh = mesh
	}
}
