package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Orthographic returns the OpenGL-convention orthographic projection for f.
// The result is undefined (contains Inf/NaN) for a degenerate frustum; callers
// validate first.
//
// Parameters:
//   - f: the viewing volume bounds
//
// Returns:
//   - mgl64.Mat4: the projection matrix (column-major)
func Orthographic(f Frustum) mgl64.Mat4 {
	return mgl64.Ortho(f.Left, f.Right, f.Bottom, f.Top, f.Near, f.Far)
}

// LookAt returns the view matrix placing the camera at eye, looking at at, oriented by up.
// forward = normalize(at - eye), right = normalize(forward × up), trueUp = right × forward.
//
// Parameters:
//   - eye: camera position in world space
//   - at: the point the camera looks toward
//   - up: approximate vertical axis of the camera
//
// Returns:
//   - mgl64.Mat4: the world-to-view matrix (column-major)
func LookAt(eye, at, up mgl64.Vec3) mgl64.Mat4 {
	return mgl64.LookAtV(eye, at, up)
}

// BuildViewProjection turns a camera state into the combined projection × view matrix,
// mapping world space to clip space.
//
// Parameters:
//   - s: the camera state
//
// Returns:
//   - mgl64.Mat4: the combined matrix, or the zero matrix on error
//   - error: ErrDegenerateTransform if the state is degenerate or the product is non-finite
func BuildViewProjection(s State) (mgl64.Mat4, error) {
	if err := s.Validate(); err != nil {
		return mgl64.Mat4{}, err
	}
	vp := Orthographic(s.Frustum).Mul4(LookAt(s.Eye, s.At, s.Up))
	if !common.IsFinite4(vp) {
		return mgl64.Mat4{}, fmt.Errorf("%w: non-finite view-projection", ErrDegenerateTransform)
	}
	return vp, nil
}

// RotateUp rotates the up vector by angle radians around the axis belonging to mode and
// renormalizes the result. The named views use the world axis they look along; the
// isometric view uses viewAxis.
//
// Parameters:
//   - up: the current up vector
//   - mode: the active view mode
//   - angle: rotation in radians; RotateClockwise passes a positive step
//   - viewAxis: the viewing direction, used only for ViewModeIsometric
//
// Returns:
//   - mgl64.Vec3: the rotated unit up vector
func RotateUp(up mgl64.Vec3, mode ViewMode, angle float64, viewAxis mgl64.Vec3) mgl64.Vec3 {
	var rotated mgl64.Vec3
	switch mode {
	case ViewModeTop:
		rotated = mgl64.Rotate3DY(angle).Mul3x1(up)
	case ViewModeLeft:
		rotated = mgl64.Rotate3DX(angle).Mul3x1(up)
	case ViewModeFront:
		rotated = mgl64.Rotate3DZ(angle).Mul3x1(up)
	default:
		if viewAxis.Len() == 0 {
			return up
		}
		rotated = common.RotateAboutAxis(up, viewAxis, angle)
	}
	if l := rotated.Len(); l > 0 {
		rotated = rotated.Mul(1 / l)
	}
	return rotated
}
