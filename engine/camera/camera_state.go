package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrDegenerateTransform is returned when a camera state cannot produce a finite
// view-projection matrix: the frustum has collapsed or inverted, the eye sits on the
// target, or the up vector is parallel to the viewing direction.
var ErrDegenerateTransform = errors.New("degenerate camera transform")

const (
	// minFrustumExtent is the smallest width, height or depth a frustum may have.
	minFrustumExtent = 1e-6
	// parallelEpsilon is the tolerance on the sine of the angle between up and forward.
	parallelEpsilon = 1e-9
)

// ViewMode tags which named view the camera is in. Rotation commands consult the
// tag to pick their axis instead of comparing the eye position.
type ViewMode int

const (
	// ViewModeFront looks down -Z from (0, 0, 0.1); rotation is about the Z axis.
	ViewModeFront ViewMode = iota
	// ViewModeTop looks down -Y from (0, 1, 0); rotation is about the Y axis.
	ViewModeTop
	// ViewModeLeft looks down +X from (-1, 0, 0); rotation is about the X axis.
	ViewModeLeft
	// ViewModeIsometric looks from (1, 1, 1) toward the origin; rotation is about the viewing axis.
	ViewModeIsometric
)

func (m ViewMode) String() string {
	switch m {
	case ViewModeFront:
		return "front"
	case ViewModeTop:
		return "top"
	case ViewModeLeft:
		return "left"
	case ViewModeIsometric:
		return "isometric"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(m))
	}
}

// Frustum holds the six bounds of an orthographic viewing volume.
type Frustum struct {
	Left, Right float64
	Bottom, Top float64
	Near, Far   float64
}

// DefaultFrustum returns the startup viewing volume: a 4×4 window centred on the
// origin with a depth range of [-100, 100].
func DefaultFrustum() Frustum {
	return Frustum{
		Left: -2, Right: 2,
		Bottom: -2, Top: 2,
		Near: -100, Far: 100,
	}
}

// Inset shrinks the left/right/bottom/top bounds symmetrically by d.
// A negative d grows the frustum. Near and far are unchanged.
//
// Parameters:
//   - d: the amount to move each side bound toward the centre
//
// Returns:
//   - Frustum: the adjusted frustum
func (f Frustum) Inset(d float64) Frustum {
	f.Left += d
	f.Right -= d
	f.Bottom += d
	f.Top -= d
	return f
}

// Validate returns ErrDegenerateTransform if the frustum is collapsed, inverted or non-finite.
func (f Frustum) Validate() error {
	for _, v := range [6]float64{f.Left, f.Right, f.Bottom, f.Top, f.Near, f.Far} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite frustum bound", ErrDegenerateTransform)
		}
	}
	if f.Right-f.Left <= minFrustumExtent {
		return fmt.Errorf("%w: frustum width %g", ErrDegenerateTransform, f.Right-f.Left)
	}
	if f.Top-f.Bottom <= minFrustumExtent {
		return fmt.Errorf("%w: frustum height %g", ErrDegenerateTransform, f.Top-f.Bottom)
	}
	if math.Abs(f.Far-f.Near) <= minFrustumExtent {
		return fmt.Errorf("%w: frustum depth %g", ErrDegenerateTransform, f.Far-f.Near)
	}
	return nil
}

// State is the complete camera description consumed by the transform builder.
type State struct {
	Eye     mgl64.Vec3
	At      mgl64.Vec3
	Up      mgl64.Vec3
	Frustum Frustum
	Mode    ViewMode
}

// DefaultState returns the camera at program start: the front view with the default frustum.
func DefaultState() State {
	return State{
		Eye:     mgl64.Vec3{0, 0, 0.1},
		At:      mgl64.Vec3{0, 0, 0},
		Up:      mgl64.Vec3{0, 1, 0},
		Frustum: DefaultFrustum(),
		Mode:    ViewModeFront,
	}
}

// Forward returns the unnormalized viewing direction At - Eye.
func (s State) Forward() mgl64.Vec3 {
	return s.At.Sub(s.Eye)
}

// Validate returns ErrDegenerateTransform if the state cannot produce a finite
// view-projection matrix.
func (s State) Validate() error {
	if err := s.Frustum.Validate(); err != nil {
		return err
	}
	if !common.IsFinite3(s.Eye) || !common.IsFinite3(s.At) || !common.IsFinite3(s.Up) {
		return fmt.Errorf("%w: non-finite eye, target or up", ErrDegenerateTransform)
	}
	if common.Parallel(s.Forward(), s.Up, parallelEpsilon) {
		return fmt.Errorf("%w: up %v is parallel to view direction %v", ErrDegenerateTransform, s.Up, s.Forward())
	}
	return nil
}
