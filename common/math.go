package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat4ToFloat32 narrows a float64 matrix to the float32 layout expected by GPU uniforms.
// Element order is preserved, so the result stays column-major.
//
// Parameters:
//   - m: the source matrix
//
// Returns:
//   - [16]float32: the narrowed matrix
func Mat4ToFloat32(m mgl64.Mat4) [16]float32 {
	var out [16]float32
	for i := range 16 {
		out[i] = float32(m[i])
	}
	return out
}

// IsFinite4 reports whether every element of m is neither NaN nor infinite.
//
// Parameters:
//   - m: the matrix to check
//
// Returns:
//   - bool: true if all 16 elements are finite
func IsFinite4(m mgl64.Mat4) bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsFinite3 reports whether every component of v is neither NaN nor infinite.
func IsFinite3(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Parallel reports whether a and b point along the same line (in either direction).
// Vectors shorter than eps are treated as parallel to everything, since no
// orientation can be derived from them.
//
// Parameters:
//   - a, b: the vectors to compare
//   - eps: tolerance on the sine of the angle between them
//
// Returns:
//   - bool: true if the cross product is negligible relative to the vector lengths
func Parallel(a, b mgl64.Vec3, eps float64) bool {
	la, lb := a.Len(), b.Len()
	if la < eps || lb < eps {
		return true
	}
	return a.Cross(b).Len() <= eps*la*lb
}

// RotateAboutAxis rotates v by angle radians around an arbitrary axis through the origin.
// The axis does not need to be normalized.
//
// Parameters:
//   - v: the vector to rotate
//   - axis: the rotation axis
//   - angle: rotation angle in radians (right-handed)
//
// Returns:
//   - mgl64.Vec3: the rotated vector
func RotateAboutAxis(v, axis mgl64.Vec3, angle float64) mgl64.Vec3 {
	return mgl64.QuatRotate(angle, axis.Normalize()).Rotate(v)
}
