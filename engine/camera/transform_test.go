package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/go-gl/mathgl/mgl64"
)

const matrixEpsilon = 1e-12

// vecNear reports whether every component of got is within tol of want.
// mgl64's ApproxEqualThreshold is relative and squares tol when a component is zero.
func vecNear(got, want mgl64.Vec3, tol float64) bool {
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			return false
		}
	}
	return true
}

// matNear is vecNear for matrices.
func matNear(got, want mgl64.Mat4, tol float64) bool {
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			return false
		}
	}
	return true
}

func TestBuildViewProjectionFrontView(t *testing.T) {
	vp, err := BuildViewProjection(DefaultState())
	if err != nil {
		t.Fatalf("BuildViewProjection returned error: %v", err)
	}

	// Rows [0.5 0 0 0] [0 0.5 0 0] [0 0 -0.01 0.001] [0 0 0 1], stored column-major.
	want := mgl64.Mat4{
		0.5, 0, 0, 0,
		0, 0.5, 0, 0,
		0, 0, -0.01, 0,
		0, 0, 0.001, 1,
	}
	if !matNear(vp, want, matrixEpsilon) {
		t.Errorf("BuildViewProjection() = %v, want %v", vp, want)
	}
}

func TestOrthographic(t *testing.T) {
	tests := []struct {
		name string
		f    Frustum
		want mgl64.Mat4
	}{
		{
			name: "default frustum",
			f:    DefaultFrustum(),
			want: mgl64.Mat4{
				0.5, 0, 0, 0,
				0, 0.5, 0, 0,
				0, 0, -0.01, 0,
				0, 0, 0, 1,
			},
		},
		{
			name: "off-centre frustum",
			f:    Frustum{Left: 0, Right: 4, Bottom: 0, Top: 2, Near: 1, Far: 3},
			want: mgl64.Mat4{
				0.5, 0, 0, 0,
				0, 1, 0, 0,
				0, 0, -1, 0,
				-1, -1, -2, 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Orthographic(tt.f)
			if !matNear(got, tt.want, matrixEpsilon) {
				t.Errorf("Orthographic(%+v) = %v, want %v", tt.f, got, tt.want)
			}
		})
	}
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	eye := mgl64.Vec3{1, 1, 1}
	view := LookAt(eye, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})

	got := mgl64.TransformCoordinate(eye, view)
	if !vecNear(got, mgl64.Vec3{}, matrixEpsilon) {
		t.Errorf("eye maps to %v in view space, want origin", got)
	}

	// The target sits straight ahead on -Z.
	target := mgl64.TransformCoordinate(mgl64.Vec3{}, view)
	if math.Abs(target.X()) > matrixEpsilon || math.Abs(target.Y()) > matrixEpsilon || target.Z() >= 0 {
		t.Errorf("target maps to %v in view space, want a point on -Z", target)
	}
}

func TestBuildViewProjectionFiniteForAllViews(t *testing.T) {
	cc := NewCameraController()
	commands := []Command{
		CommandTopView, CommandRotateClockwise, CommandLeftView, CommandRotateCounterClockwise,
		CommandIsometric, CommandRotateClockwise, CommandZoomIn, CommandZoomOut, CommandZoomOut,
		CommandFrontView,
	}
	for _, cmd := range commands {
		if err := cc.ApplyCommand(cmd); err != nil {
			t.Fatalf("ApplyCommand(%v) returned error: %v", cmd, err)
		}
		vp, err := BuildViewProjection(cc.State())
		if err != nil {
			t.Fatalf("BuildViewProjection after %v returned error: %v", cmd, err)
		}
		if !common.IsFinite4(vp) {
			t.Errorf("BuildViewProjection after %v is not finite: %v", cmd, vp)
		}
	}
}

func TestBuildViewProjectionDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*State)
	}{
		{"eye equals target", func(s *State) { s.Eye = s.At }},
		{"up parallel to view direction", func(s *State) { s.Up = mgl64.Vec3{0, 0, 1} }},
		{"zero up", func(s *State) { s.Up = mgl64.Vec3{} }},
		{"collapsed width", func(s *State) { s.Frustum.Right = s.Frustum.Left }},
		{"inverted height", func(s *State) { s.Frustum.Top, s.Frustum.Bottom = -2, 2 }},
		{"zero depth", func(s *State) { s.Frustum.Far = s.Frustum.Near }},
		{"NaN eye", func(s *State) { s.Eye[0] = math.NaN() }},
		{"infinite bound", func(s *State) { s.Frustum.Left = math.Inf(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultState()
			tt.mutate(&s)
			vp, err := BuildViewProjection(s)
			if !errors.Is(err, ErrDegenerateTransform) {
				t.Fatalf("BuildViewProjection() error = %v, want ErrDegenerateTransform", err)
			}
			if vp != (mgl64.Mat4{}) {
				t.Errorf("BuildViewProjection() = %v, want zero matrix on error", vp)
			}
		})
	}
}

func TestRotateUp(t *testing.T) {
	tests := []struct {
		name     string
		up       mgl64.Vec3
		mode     ViewMode
		viewAxis mgl64.Vec3
	}{
		{"front", mgl64.Vec3{0, 1, 0}, ViewModeFront, mgl64.Vec3{0, 0, 0.1}},
		{"top", mgl64.Vec3{0, 0, -1}, ViewModeTop, mgl64.Vec3{0, 1, 0}},
		{"left", mgl64.Vec3{0, 1, 0}, ViewModeLeft, mgl64.Vec3{-1, 0, 0}},
		{"isometric", mgl64.Vec3{0, 1, 0}, ViewModeIsometric, mgl64.Vec3{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rotated := RotateUp(tt.up, tt.mode, 0.1, tt.viewAxis)
			if vecNear(rotated, tt.up, 1e-6) {
				t.Errorf("RotateUp did not change %v", tt.up)
			}
			if math.Abs(rotated.Len()-1) > 1e-12 {
				t.Errorf("RotateUp result length = %v, want 1", rotated.Len())
			}

			back := RotateUp(rotated, tt.mode, -0.1, tt.viewAxis)
			if !vecNear(back, tt.up, 1e-9) {
				t.Errorf("RotateUp(+0.1) then (-0.1) = %v, want %v", back, tt.up)
			}
		})
	}
}

func TestRotateUpFrontIsPlanar(t *testing.T) {
	rotated := RotateUp(mgl64.Vec3{0, 1, 0}, ViewModeFront, math.Pi/2, mgl64.Vec3{0, 0, 1})
	want := mgl64.Vec3{-1, 0, 0}
	if !vecNear(rotated, want, 1e-12) {
		t.Errorf("RotateUp(pi/2) = %v, want %v", rotated, want)
	}
}

func TestRotateUpZeroAxis(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}
	if got := RotateUp(up, ViewModeIsometric, 0.1, mgl64.Vec3{}); got != up {
		t.Errorf("RotateUp with zero axis = %v, want unchanged %v", got, up)
	}
}

func TestVecNearZeroComponent(t *testing.T) {
	got := mgl64.Vec3{1.39e-17, 1, -6.3e-18}
	if !vecNear(got, mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("vecNear(%v, (0,1,0), 1e-9) = false, want true", got)
	}
	if vecNear(mgl64.Vec3{1e-8, 1, 0}, mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Error("vecNear accepted a 1e-8 difference at tolerance 1e-9")
	}
}
