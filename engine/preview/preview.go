package preview

import (
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/camera"
	"github.com/Carmen-Shannon/oxy-cube/engine/model"
	"github.com/Carmen-Shannon/oxy-cube/engine/snapshot"
)

// Preview shows the cube in a desktop window without a GPU adapter. Each frame is rasterized
// on the CPU by a snapshot.Snapshotter, so it works on machines where the WebGPU renderer
// cannot start.
//
// Input handling matches the GPU engine: bound keys drive the camera controller, Space resets
// it, Escape quits and the wheel zooms.
type Preview interface {
	// HandleKey applies a virtual key code to the camera.
	//
	// Parameters:
	//   - keyCode: the virtual key code (see common/key_codes.go)
	//
	// Returns:
	//   - bool: true if the key asks the window to close
	HandleKey(keyCode uint32) bool

	// HandleScroll zooms the camera by a wheel delta.
	//
	// Parameters:
	//   - delta: positive zooms in, negative zooms out
	HandleScroll(delta float32)

	// Frame returns the picture for the camera's current state, rasterizing only when the
	// state changed since the previous call. A state that cannot produce a matrix keeps the
	// last picture.
	//
	// Returns:
	//   - *image.NRGBA: the current frame
	//   - error: an error if no frame has ever been produced
	Frame() (*image.NRGBA, error)

	// Title returns the window title for the current view.
	Title() string

	// Run opens the window and blocks until it closes. The snapshotter is released on return.
	//
	// Returns:
	//   - error: an error if the window could not be created or a frame failed
	Run() error
}

// preview is the implementation of the Preview interface.
type preview struct {
	mu *sync.Mutex

	ctrl camera.CameraController
	snap snapshot.Snapshotter
	mesh model.Mesh

	title string
	scale int
	tps   int
	vsync bool
	label bool

	frame         *image.NRGBA
	renderedState camera.State
	renderedZoom  int
	// lastErr suppresses repeated log lines while the camera stays invalid.
	lastErr error
}

var _ Preview = &preview{}

// backgroundColor matches the GPU renderer's clear color.
var backgroundColor = color.NRGBA{R: 26, G: 26, B: 26, A: 255}

var labelColor = color.RGBA{R: 230, G: 230, B: 230, A: 255}

// NewPreview creates a Preview driving ctrl. Defaults: a 512 px opaque frame with 2×
// supersampling, window magnification 1, 60 ticks per second, vsync on, no label.
//
// Parameters:
//   - ctrl: the camera controller to display and drive
//   - options: functional options, see preview_builder.go
//
// Returns:
//   - Preview: the new preview
func NewPreview(ctrl camera.CameraController, options ...PreviewOption) Preview {
	p := &preview{
		mu:    &sync.Mutex{},
		ctrl:  ctrl,
		mesh:  model.Cube(),
		title: "oxy-cube",
		scale: 1,
		tps:   60,
		vsync: true,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.snap == nil {
		p.snap = snapshot.NewSnapshotter(snapshot.WithBackground(backgroundColor))
	}
	return p
}

func (p *preview) HandleKey(keyCode uint32) bool {
	switch keyCode {
	case common.KeyEsc:
		return true
	case common.KeySpace:
		p.ctrl.Reset()
		return false
	}
	if err := p.ctrl.ApplyKey(keyCode); err != nil {
		log.Printf("[Preview] key %d rejected: %v", keyCode, err)
	}
	return false
}

func (p *preview) HandleScroll(delta float32) {
	if err := p.ctrl.Zoom(delta); err != nil {
		log.Printf("[Preview] zoom %.1f rejected: %v", delta, err)
	}
}

func (p *preview) Title() string {
	return p.title + " | " + camera.Status(p.ctrl)
}

func (p *preview) Frame() (*image.NRGBA, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := p.ctrl.State()
	zoom := p.ctrl.ZoomLevel()
	if p.frame != nil && state == p.renderedState && zoom == p.renderedZoom {
		return p.frame, nil
	}

	img, err := p.render(state)
	if err != nil {
		if p.frame == nil {
			return nil, err
		}
		if p.lastErr == nil {
			log.Printf("[Preview] keeping last frame: %v", err)
		}
		p.lastErr = err
		return p.frame, nil
	}

	p.lastErr = nil
	p.frame = img
	p.renderedState = state
	p.renderedZoom = zoom
	return img, nil
}

// render rasterizes the mesh for state and stamps the status label when enabled.
func (p *preview) render(state camera.State) (*image.NRGBA, error) {
	viewProj, err := camera.BuildViewProjection(state)
	if err != nil {
		return nil, err
	}
	img, err := p.snap.Render(viewProj, p.mesh)
	if err != nil {
		return nil, err
	}
	if p.label {
		snapshot.Annotate(img, camera.Status(p.ctrl), labelColor)
	}
	return img, nil
}
