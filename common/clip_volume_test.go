package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// frontViewProj is the projection × view matrix of an orthographic camera at (0, 0, 0.1)
// looking at the origin with bounds [-2, 2] × [-2, 2] × [-100, 100].
func frontViewProj() mgl64.Mat4 {
	return mgl64.Ortho(-2, 2, -2, 2, -100, 100).Mul4(
		mgl64.LookAtV(mgl64.Vec3{0, 0, 0.1}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}))
}

func TestExtractClipVolumePlanes(t *testing.T) {
	cv := ExtractClipVolume(frontViewProj())

	for i, p := range cv.Planes {
		if l := p.Normal.Len(); math.Abs(l-1) > 1e-12 {
			t.Errorf("plane %d normal length = %v, want 1", i, l)
		}
	}

	// The left plane is x = -2 facing +X.
	left := cv.Planes[ClipLeft]
	if !vecNear(left.Normal, mgl64.Vec3{1, 0, 0}, 1e-12) || math.Abs(left.Distance-2) > 1e-12 {
		t.Errorf("left plane = %+v, want normal (1,0,0) distance 2", left)
	}
	top := cv.Planes[ClipTop]
	if !vecNear(top.Normal, mgl64.Vec3{0, -1, 0}, 1e-12) || math.Abs(top.Distance-2) > 1e-12 {
		t.Errorf("top plane = %+v, want normal (0,-1,0) distance 2", top)
	}
}

func TestClipVolumeContainsPoint(t *testing.T) {
	cv := ExtractClipVolume(frontViewProj())

	tests := []struct {
		name string
		pt   mgl64.Vec3
		want bool
	}{
		{"origin", mgl64.Vec3{0, 0, 0}, true},
		{"cube corner", mgl64.Vec3{0.5, -0.5, 0.5}, true},
		{"on right edge", mgl64.Vec3{2, 0, 0}, true},
		{"past right", mgl64.Vec3{2.5, 0, 0}, false},
		{"below", mgl64.Vec3{0, -3, 0}, false},
		{"beyond far", mgl64.Vec3{0, 0, -150}, false},
		{"behind near", mgl64.Vec3{0, 0, 150}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cv.ContainsPoint(tt.pt); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestClipVolumeTriangleOutside(t *testing.T) {
	cv := ExtractClipVolume(frontViewProj())

	inside := [3]mgl64.Vec3{{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0, 0.5, 0}}
	if cv.TriangleOutside(inside[0], inside[1], inside[2]) {
		t.Error("TriangleOutside = true for a triangle at the origin")
	}

	straddling := [3]mgl64.Vec3{{-3, 0, 0}, {3, 0, 0}, {0, 1, 0}}
	if cv.TriangleOutside(straddling[0], straddling[1], straddling[2]) {
		t.Error("TriangleOutside = true for a triangle spanning the volume")
	}

	right := [3]mgl64.Vec3{{3, 0, 0}, {4, 0, 0}, {3, 1, 0}}
	if !cv.TriangleOutside(right[0], right[1], right[2]) {
		t.Error("TriangleOutside = false for a triangle entirely right of the volume")
	}
}

func TestSphereOutside(t *testing.T) {
	cv := ExtractClipVolume(frontViewProj())

	tests := []struct {
		name   string
		center mgl64.Vec3
		radius float64
		want   bool
	}{
		{"cube at origin", mgl64.Vec3{}, math.Sqrt(3), false},
		{"straddling the right plane", mgl64.Vec3{3, 0, 0}, 1.5, false},
		{"past the right plane", mgl64.Vec3{3, 0, 0}, 0.5, true},
		{"far left", mgl64.Vec3{-100, 0, 0}, math.Sqrt(3), true},
		{"beyond far plane", mgl64.Vec3{0, 0, -200}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cv.SphereOutside(tt.center, tt.radius); got != tt.want {
				t.Errorf("SphereOutside(%v, %v) = %v, want %v", tt.center, tt.radius, got, tt.want)
			}
		})
	}
}
