package common

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// SignedDistance returns the distance of p from the plane, positive on the normal's side.
func (p Plane) SignedDistance(pt mgl64.Vec3) float64 {
	return p.Normal.Dot(pt) + p.Distance
}

// ClipVolume holds the six planes bounding the visible region of a view-projection
// matrix. Planes are oriented so that the positive half-space is inside.
type ClipVolume struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// Clip plane indices.
const (
	ClipLeft   = 0
	ClipRight  = 1
	ClipBottom = 2
	ClipTop    = 3
	ClipNear   = 4
	ClipFar    = 5
)

// ExtractClipVolume extracts the clip planes from a combined projection × view matrix
// using the Gribb/Hartmann method.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined view-projection matrix
//
// Returns:
//   - ClipVolume: the extracted volume with normalized planes
func ExtractClipVolume(viewProj mgl64.Mat4) ClipVolume {
	var cv ClipVolume
	w := viewProj.Row(3)
	for axis := range 3 {
		r := viewProj.Row(axis)
		cv.Planes[axis*2] = planeFromVec4(w.Add(r))
		cv.Planes[axis*2+1] = planeFromVec4(w.Sub(r))
	}
	return cv
}

// ContainsPoint reports whether pt lies inside (or on) every plane of the volume.
func (cv ClipVolume) ContainsPoint(pt mgl64.Vec3) bool {
	for _, p := range cv.Planes {
		if p.SignedDistance(pt) < 0 {
			return false
		}
	}
	return true
}

// TriangleOutside reports whether all three vertices lie behind the same plane.
// A false result does not guarantee visibility; it only rules out trivially
// rejected triangles.
//
// Parameters:
//   - a, b, c: triangle vertices in world space
//
// Returns:
//   - bool: true if the triangle is entirely outside the volume
func (cv ClipVolume) TriangleOutside(a, b, c mgl64.Vec3) bool {
	for _, p := range cv.Planes {
		if p.SignedDistance(a) < 0 && p.SignedDistance(b) < 0 && p.SignedDistance(c) < 0 {
			return true
		}
	}
	return false
}

// SphereOutside reports whether a sphere lies entirely behind any one plane of the volume.
//
// Parameters:
//   - center: the sphere center in world space
//   - radius: the sphere radius
//
// Returns:
//   - bool: true if no part of the sphere can be visible
func (cv ClipVolume) SphereOutside(center mgl64.Vec3, radius float64) bool {
	for _, p := range cv.Planes {
		if p.SignedDistance(center) < -radius {
			return true
		}
	}
	return false
}

// planeFromVec4 builds a normalized plane from homogeneous coefficients.
func planeFromVec4(v mgl64.Vec4) Plane {
	p := Plane{Normal: v.Vec3(), Distance: v[3]}
	if l := p.Normal.Len(); l > 0 {
		p.Normal = p.Normal.Mul(1 / l)
		p.Distance /= l
	}
	return p
}
