package camera

import "github.com/go-gl/mathgl/mgl64"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithState replaces the startup camera state. The state's frustum becomes the base
// frustum that zoom commands are measured from.
//
// Parameters:
//   - s: the initial state
//
// Returns:
//   - CameraControllerOption: functional option to set the initial state
func WithState(s State) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state = s
	}
}

// WithEye sets the initial camera position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the eye
func WithEye(x, y, z float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Eye = mgl64.Vec3{x, y, z}
	}
}

// WithTarget sets the initial look-at point.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the target
func WithTarget(x, y, z float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.At = mgl64.Vec3{x, y, z}
	}
}

// WithUp sets the initial up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraControllerOption: functional option to set the up vector
func WithUp(x, y, z float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Up = mgl64.Vec3{x, y, z}
	}
}

// WithFrustum sets the base orthographic bounds.
//
// Parameters:
//   - f: the frustum bounds
//
// Returns:
//   - CameraControllerOption: functional option to set the frustum
func WithFrustum(f Frustum) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Frustum = f
	}
}

// WithViewMode sets the initial view mode tag, which decides the rotation axis.
//
// Parameters:
//   - mode: the view mode
//
// Returns:
//   - CameraControllerOption: functional option to set the view mode
func WithViewMode(mode ViewMode) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Mode = mode
	}
}

// WithRotationStep sets the angle applied per rotate command.
//
// Parameters:
//   - radians: rotation per command
//
// Returns:
//   - CameraControllerOption: functional option to set the rotation step
func WithRotationStep(radians float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotationStep = radians
	}
}

// WithZoomStep sets the per-side frustum change applied per zoom command.
//
// Parameters:
//   - step: world units per zoom command
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom step
func WithZoomStep(step float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomStep = step
	}
}
