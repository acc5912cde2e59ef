package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// cameraControllerImpl is the single implementation of CameraController.
// The effective frustum is derived from the base frustum and an integer zoom counter so
// that equal numbers of zoom-in and zoom-out commands cancel exactly.
type cameraControllerImpl struct {
	mu *sync.Mutex

	initial State
	state   State

	baseFrustum Frustum
	zoomLevel   int

	rotationStep float64
	zoomStep     float64
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller holding DefaultState.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:           &sync.Mutex{},
		state:        DefaultState(),
		rotationStep: 0.1,
		zoomStep:     0.1,
	}

	for _, option := range options {
		option(cc)
	}

	cc.baseFrustum = cc.state.Frustum
	cc.initial = cc.state
	return cc
}

// --- internal helpers ---

// commit installs next if it is a valid state. Caller must hold the mutex.
func (cc *cameraControllerImpl) commit(next State, zoomLevel int) error {
	if err := next.Validate(); err != nil {
		return err
	}
	cc.state = next
	cc.zoomLevel = zoomLevel
	return nil
}

// viewPreset returns the state for one of the named views, keeping the current frustum.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) viewPreset(mode ViewMode) State {
	next := cc.state
	next.At = mgl64.Vec3{0, 0, 0}
	next.Mode = mode
	switch mode {
	case ViewModeTop:
		next.Eye = mgl64.Vec3{0, 1, 0}
		next.Up = mgl64.Vec3{0, 0, -1}
	case ViewModeLeft:
		next.Eye = mgl64.Vec3{-1, 0, 0}
		next.Up = mgl64.Vec3{0, 1, 0}
	case ViewModeFront:
		next.Eye = mgl64.Vec3{0, 0, 0.1}
		next.Up = mgl64.Vec3{0, 1, 0}
	case ViewModeIsometric:
		next.Eye = mgl64.Vec3{1, 1, 1}
		next.Up = mgl64.Vec3{0, 1, 0}
	}
	return next
}

// --- CameraController implementation ---

func (cc *cameraControllerImpl) State() State {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state
}

func (cc *cameraControllerImpl) Eye() mgl64.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state.Eye
}

func (cc *cameraControllerImpl) At() mgl64.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state.At
}

func (cc *cameraControllerImpl) Up() mgl64.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state.Up
}

func (cc *cameraControllerImpl) Frustum() Frustum {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state.Frustum
}

func (cc *cameraControllerImpl) Mode() ViewMode {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state.Mode
}

func (cc *cameraControllerImpl) ZoomLevel() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomLevel
}

func (cc *cameraControllerImpl) RotationStep() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotationStep
}

func (cc *cameraControllerImpl) ZoomStep() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomStep
}

func (cc *cameraControllerImpl) ApplyCommand(cmd Command) error {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	switch cmd {
	case CommandTopView:
		return cc.commit(cc.viewPreset(ViewModeTop), cc.zoomLevel)
	case CommandLeftView:
		return cc.commit(cc.viewPreset(ViewModeLeft), cc.zoomLevel)
	case CommandFrontView:
		return cc.commit(cc.viewPreset(ViewModeFront), cc.zoomLevel)
	case CommandIsometric:
		return cc.commit(cc.viewPreset(ViewModeIsometric), cc.zoomLevel)
	case CommandRotateClockwise, CommandRotateCounterClockwise:
		angle := cc.rotationStep
		if cmd == CommandRotateCounterClockwise {
			angle = -angle
		}
		next := cc.state
		next.Up = RotateUp(next.Up, next.Mode, angle, next.Eye.Sub(next.At))
		return cc.commit(next, cc.zoomLevel)
	case CommandZoomIn, CommandZoomOut:
		level := cc.zoomLevel + 1
		if cmd == CommandZoomOut {
			level = cc.zoomLevel - 1
		}
		next := cc.state
		next.Frustum = cc.baseFrustum.Inset(float64(level) * cc.zoomStep)
		return cc.commit(next, level)
	}
	return nil
}

func (cc *cameraControllerImpl) ApplyKey(keyCode uint32) error {
	cmd, ok := CommandForKey(keyCode)
	if !ok {
		return nil
	}
	return cc.ApplyCommand(cmd)
}

func (cc *cameraControllerImpl) Zoom(delta float32) error {
	steps := int(math.Trunc(float64(delta)))
	cmd := CommandZoomIn
	if steps < 0 {
		cmd = CommandZoomOut
		steps = -steps
	}
	for range steps {
		if err := cc.ApplyCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.state = cc.initial
	cc.zoomLevel = 0
}
