package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

type cameraImpl struct {
	mu *sync.Mutex

	viewMatrix           mgl64.Mat4
	projectionMatrix     mgl64.Mat4
	viewProjectionMatrix mgl64.Mat4

	// valid is false until the first successful Update.
	valid bool

	controller CameraController
}

// Camera defines the interface for the camera system.
// The camera reads state from an attached CameraController and computes the
// orthographic view/projection matrices each frame via Update(). When an update
// fails the matrices from the last successful update are kept.
type Camera interface {
	// ViewMatrix returns the current 4x4 view matrix (column-major).
	//
	// Returns:
	//   - mgl64.Mat4: the view matrix
	ViewMatrix() mgl64.Mat4

	// ProjectionMatrix returns the current 4x4 orthographic projection matrix (column-major).
	//
	// Returns:
	//   - mgl64.Mat4: the projection matrix
	ProjectionMatrix() mgl64.Mat4

	// ViewProjectionMatrix returns the current combined projection × view matrix (column-major).
	//
	// Returns:
	//   - mgl64.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl64.Mat4

	// Valid reports whether the camera has produced at least one finite transform.
	//
	// Returns:
	//   - bool: true once Update has succeeded
	Valid() bool

	// Uniform returns the GPU-ready uniform for the current view-projection matrix.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform value
	Uniform() GPUCameraUniform

	// Controller returns the attached CameraController.
	//
	// Returns:
	//   - CameraController: the attached controller
	Controller() CameraController

	// SetController attaches a CameraController and recomputes the matrices.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// Update reads the controller state and recomputes the matrices.
	// Should be called once per frame.
	//
	// Returns:
	//   - error: ErrDegenerateTransform if the state could not be turned into a matrix;
	//     the previous matrices remain in effect
	Update() error
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera. If no controller is supplied via WithController a
// default controller in the front view is attached.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		viewMatrix:           mgl64.Ident4(),
		projectionMatrix:     mgl64.Ident4(),
		viewProjectionMatrix: mgl64.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewCameraController()
	}
	_ = c.updateMatrices()
	return c
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.valid
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NewGPUCameraUniform(c.viewProjectionMatrix)
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	_ = c.updateMatrices()
}

func (c *cameraImpl) Update() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices from the
// controller state. On failure the current matrices are left untouched.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() error {
	if c.controller == nil {
		return nil
	}

	s := c.controller.State()
	vp, err := BuildViewProjection(s)
	if err != nil {
		return err
	}

	c.viewMatrix = LookAt(s.Eye, s.At, s.Up)
	c.projectionMatrix = Orthographic(s.Frustum)
	c.viewProjectionMatrix = vp
	c.valid = true
	return nil
}
