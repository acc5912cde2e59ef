package camera

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// brokenController reports a fixed state regardless of commands.
type brokenController struct {
	CameraController
	state State
}

func (b *brokenController) State() State { return b.state }

func TestNewCameraDefault(t *testing.T) {
	c := NewCamera()

	if c.Controller() == nil {
		t.Fatal("Controller() = nil, want default controller")
	}
	if !c.Valid() {
		t.Fatal("Valid() = false for the default camera")
	}

	want, _ := BuildViewProjection(DefaultState())
	if !matNear(c.ViewProjectionMatrix(), want, matrixEpsilon) {
		t.Errorf("ViewProjectionMatrix() = %v, want %v", c.ViewProjectionMatrix(), want)
	}
	product := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	if !matNear(product, c.ViewProjectionMatrix(), matrixEpsilon) {
		t.Errorf("Projection × View = %v, want %v", product, c.ViewProjectionMatrix())
	}
}

func TestCameraUpdateFollowsController(t *testing.T) {
	cc := NewCameraController()
	c := NewCamera(WithController(cc))
	before := c.ViewProjectionMatrix()

	if err := cc.ApplyCommand(CommandTopView); err != nil {
		t.Fatalf("ApplyCommand returned error: %v", err)
	}
	if err := c.Update(); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	want, _ := BuildViewProjection(cc.State())
	if !matNear(c.ViewProjectionMatrix(), want, matrixEpsilon) {
		t.Errorf("ViewProjectionMatrix() = %v, want %v", c.ViewProjectionMatrix(), want)
	}
	if matNear(c.ViewProjectionMatrix(), before, matrixEpsilon) {
		t.Error("ViewProjectionMatrix() did not change after TopView")
	}
}

func TestCameraUpdateKeepsLastValidMatrix(t *testing.T) {
	ctrl := &brokenController{state: DefaultState()}
	c := NewCamera(WithController(ctrl))
	good := c.ViewProjectionMatrix()

	ctrl.state.Up = ctrl.state.Forward()
	err := c.Update()
	if !errors.Is(err, ErrDegenerateTransform) {
		t.Fatalf("Update() error = %v, want ErrDegenerateTransform", err)
	}
	if c.ViewProjectionMatrix() != good {
		t.Errorf("ViewProjectionMatrix() = %v after failed update, want last valid %v", c.ViewProjectionMatrix(), good)
	}
	if !c.Valid() {
		t.Error("Valid() = false after a failed update that followed a good one")
	}
}

func TestCameraNeverValid(t *testing.T) {
	s := DefaultState()
	s.Frustum.Right = s.Frustum.Left
	c := NewCamera(WithController(&brokenController{state: s}))

	if c.Valid() {
		t.Error("Valid() = true for a camera that never had a valid state")
	}
	if c.ViewProjectionMatrix() != mgl64.Ident4() {
		t.Errorf("ViewProjectionMatrix() = %v, want identity", c.ViewProjectionMatrix())
	}
}

func TestCameraUniform(t *testing.T) {
	c := NewCamera()
	u := c.Uniform()

	if u.Size() != 64 {
		t.Fatalf("Size() = %d, want 64", u.Size())
	}
	buf := u.Marshal()
	if len(buf) != 64 {
		t.Fatalf("len(Marshal()) = %d, want 64", len(buf))
	}

	// Column 3, row 2 holds the depth translation of the front view.
	got := math.Float32frombits(binary.LittleEndian.Uint32(buf[14*4:]))
	if math.Abs(float64(got)-0.001) > 1e-7 {
		t.Errorf("uniform[14] = %v, want 0.001", got)
	}
	if first := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])); first != 0.5 {
		t.Errorf("uniform[0] = %v, want 0.5", first)
	}
}

func TestCameraUniformSource(t *testing.T) {
	if !strings.Contains(GPUCameraUniformSource, "view_proj: mat4x4<f32>") {
		t.Errorf("GPUCameraUniformSource does not declare view_proj:\n%s", GPUCameraUniformSource)
	}
}

func TestGPUCameraBindGroupLayout(t *testing.T) {
	desc := GPUCameraBindGroupLayout()
	if len(desc.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(desc.Entries))
	}
	entry := desc.Entries[0]
	if entry.Binding != 0 {
		t.Errorf("Binding = %d, want 0", entry.Binding)
	}
	if entry.Buffer.MinBindingSize != 64 {
		t.Errorf("MinBindingSize = %d, want 64", entry.Buffer.MinBindingSize)
	}
}
