package snapshot

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// screenVertex is a vertex after projection: pixel coordinates, NDC depth and its color.
type screenVertex struct {
	X, Y, Z float64
	Color   mgl64.Vec3
}

// project maps a model-space position through viewProj into pixel space.
// NDC x and y in [-1, 1] cover the full target; +y points up the image.
// ok is false when the vertex lies on or behind the w = 0 plane.
func project(viewProj mgl64.Mat4, pos mgl64.Vec3, width, height int) (x, y, z float64, ok bool) {
	clip := viewProj.Mul4x1(pos.Vec4(1))
	if clip.W() <= 1e-12 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) * 0.5 * float64(width)
	y = (1 - ndc.Y()) * 0.5 * float64(height)
	return x, y, ndc.Z(), true
}

// rasterizeTriangle fills the pixels of one triangle that fall in rows [rowMin, rowMax),
// interpolating vertex colors barycentrically and testing NDC depth (smaller is nearer).
// Pixels are sampled at their centers; fragments outside the [-1, 1] depth range are clipped.
//
// This is the hot path and does not allocate.
func rasterizeTriangle(fb *FrameBuffer, v [3]screenVertex, rowMin, rowMax int) {
	x0, y0, z0 := v[0].X, v[0].Y, v[0].Z
	x1, y1, z1 := v[1].X, v[1].Y, v[1].Z
	x2, y2, z2 := v[2].X, v[2].Y, v[2].Z

	// Bounding box, clamped to the buffer and the row band
	minX := max(int(math.Floor(math.Min(math.Min(x0, x1), x2))), 0)
	maxX := min(int(math.Ceil(math.Max(math.Max(x0, x1), x2))), fb.Width-1)
	minY := max(int(math.Floor(math.Min(math.Min(y0, y1), y2))), rowMin, 0)
	maxY := min(int(math.Ceil(math.Max(math.Max(y0, y1), y2))), rowMax-1, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-12 && det < 1e-12 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			if z < -1 || z > 1 {
				continue
			}
			idx := rowOff + sx
			if z >= fb.Depth[idx] {
				continue
			}
			fb.Depth[idx] = z

			r := w0*v[0].Color[0] + w1*v[1].Color[0] + w2*v[2].Color[0]
			g := w0*v[0].Color[1] + w1*v[1].Color[1] + w2*v[2].Color[1]
			b := w0*v[0].Color[2] + w1*v[1].Color[2] + w2*v[2].Color[2]

			ci := idx * 4
			fb.Color[ci] = unitToByte(r)
			fb.Color[ci+1] = unitToByte(g)
			fb.Color[ci+2] = unitToByte(b)
			fb.Color[ci+3] = 255
		}
	}
}

// unitToByte converts a [0, 1] channel to 0..255 with rounding and clamping.
func unitToByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
