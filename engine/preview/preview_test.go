package preview

import (
	"errors"
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/camera"
	"github.com/Carmen-Shannon/oxy-cube/engine/model"
	"github.com/Carmen-Shannon/oxy-cube/engine/snapshot"
	"github.com/go-gl/mathgl/mgl64"
)

// countingSnapshotter wraps a real Snapshotter and counts renders.
type countingSnapshotter struct {
	snapshot.Snapshotter
	renders int
}

func (c *countingSnapshotter) Render(viewProj mgl64.Mat4, mesh model.Mesh) (*image.NRGBA, error) {
	c.renders++
	return c.Snapshotter.Render(viewProj, mesh)
}

func newTestPreview(options ...PreviewOption) (*preview, *countingSnapshotter, camera.CameraController) {
	snap := &countingSnapshotter{Snapshotter: snapshot.NewSnapshotter(
		snapshot.WithSize(32),
		snapshot.WithSupersample(1),
		snapshot.WithWorkers(1),
		snapshot.WithBackground(backgroundColor),
	)}
	ctrl := camera.NewCameraController()
	p := NewPreview(ctrl, append([]PreviewOption{WithSnapshotter(snap)}, options...)...).(*preview)
	return p, snap, ctrl
}

func TestNewPreviewDefaults(t *testing.T) {
	p := NewPreview(camera.NewCameraController()).(*preview)

	if p.title != "oxy-cube" || p.scale != 1 || p.tps != 60 || !p.vsync || p.label {
		t.Errorf("defaults = title %q scale %d tps %d vsync %v label %v", p.title, p.scale, p.tps, p.vsync, p.label)
	}
	if p.snap == nil || p.snap.Size() != 512 {
		t.Error("default snapshotter missing or not 512 px")
	}
	if p.mesh.TriangleCount() != 12 {
		t.Errorf("default mesh has %d triangles, want the 12-triangle cube", p.mesh.TriangleCount())
	}
}

func TestPreviewOptions(t *testing.T) {
	p := NewPreview(camera.NewCameraController(),
		WithTitle("cube"),
		WithScale(3),
		WithTPS(30),
		WithVSync(false),
		WithLabel(true),
		WithScale(0),
		WithTPS(-1),
		WithTitle(""),
	).(*preview)

	if p.title != "cube" || p.scale != 3 || p.tps != 30 || p.vsync || !p.label {
		t.Errorf("options = title %q scale %d tps %d vsync %v label %v", p.title, p.scale, p.tps, p.vsync, p.label)
	}
}

func TestHandleKey(t *testing.T) {
	p, _, ctrl := newTestPreview()

	if p.HandleKey(common.KeyT) {
		t.Error("T asked to quit")
	}
	if ctrl.Mode() != camera.ViewModeTop {
		t.Errorf("Mode = %v, want top", ctrl.Mode())
	}

	p.HandleKey(common.KeyW)
	p.HandleKey(common.KeySpace)
	if ctrl.State() != camera.DefaultState() || ctrl.ZoomLevel() != 0 {
		t.Error("Space did not reset the camera")
	}

	if !p.HandleKey(common.KeyEsc) {
		t.Error("Escape did not ask to quit")
	}
}

func TestHandleScroll(t *testing.T) {
	p, _, ctrl := newTestPreview()
	p.HandleScroll(2)
	if ctrl.ZoomLevel() != 2 {
		t.Errorf("ZoomLevel = %d, want 2", ctrl.ZoomLevel())
	}
	p.HandleScroll(-1)
	if ctrl.ZoomLevel() != 1 {
		t.Errorf("ZoomLevel = %d, want 1", ctrl.ZoomLevel())
	}
}

func TestTitle(t *testing.T) {
	p, _, _ := newTestPreview(WithTitle("cube"))
	p.HandleKey(common.KeyI)
	if got := p.Title(); got != "cube | isometric view | zoom 0" {
		t.Errorf("Title = %q", got)
	}
}

func TestFrameCachesUntilStateChanges(t *testing.T) {
	p, snap, _ := newTestPreview()

	first, err := p.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if first.Bounds().Dx() != 32 {
		t.Errorf("frame width = %d, want 32", first.Bounds().Dx())
	}
	again, _ := p.Frame()
	if again != first || snap.renders != 1 {
		t.Errorf("unchanged state re-rendered: %d renders", snap.renders)
	}

	p.HandleKey(common.KeyD)
	if _, err := p.Frame(); err != nil {
		t.Fatalf("Frame after rotate: %v", err)
	}
	if snap.renders != 2 {
		t.Errorf("renders = %d after a rotation, want 2", snap.renders)
	}

	p.HandleKey(common.KeyS)
	p.Frame()
	p.HandleKey(common.KeyW)
	p.Frame()
	if snap.renders != 4 {
		t.Errorf("renders = %d, want 4", snap.renders)
	}
}

func TestFrameOpaque(t *testing.T) {
	p, _, _ := newTestPreview()
	frame, err := p.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	for i := 3; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] != 255 {
			t.Fatalf("pixel %d alpha = %d, want opaque", i/4, frame.Pix[i])
		}
	}
}

func TestFrameWithoutValidState(t *testing.T) {
	ctrl := camera.NewCameraController(camera.WithFrustum(camera.Frustum{Left: 1, Right: 1, Bottom: -1, Top: 1, Near: -1, Far: 1}))
	p := NewPreview(ctrl, WithSnapshotter(snapshot.NewSnapshotter(snapshot.WithSize(8)))).(*preview)

	if _, err := p.Frame(); !errors.Is(err, camera.ErrDegenerateTransform) {
		t.Errorf("err = %v, want ErrDegenerateTransform", err)
	}
}

func TestFires(t *testing.T) {
	tests := []struct {
		duration int
		repeat   bool
		want     bool
	}{
		{0, true, false},
		{1, false, true},
		{2, true, false},
		{repeatDelay, true, false},
		{repeatDelay + repeatInterval, true, true},
		{repeatDelay + repeatInterval, false, false},
		{repeatDelay + repeatInterval + 1, true, false},
	}
	for _, tt := range tests {
		if got := fires(tt.duration, tt.repeat); got != tt.want {
			t.Errorf("fires(%d, %v) = %v, want %v", tt.duration, tt.repeat, got, tt.want)
		}
	}
}
