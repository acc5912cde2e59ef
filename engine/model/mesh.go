package model

import (
	"fmt"
	"math"
)

// Mesh is an indexed triangle list with one RGB color per vertex.
type Mesh struct {
	// Positions are the vertex positions in model space.
	Positions [][3]float32

	// Colors are the per-vertex RGB colors, parallel to Positions.
	Colors [][3]float32

	// Indices are the triangle indices into Positions, three per triangle.
	Indices []uint32
}

// Cube returns the viewer's cube: eight corners at ±1 on every axis, twelve triangles,
// and a color per corner taken from the corners of the RGB cube.
//
// Returns:
//   - Mesh: a new copy of the cube mesh
func Cube() Mesh {
	return Mesh{
		Positions: [][3]float32{
			{-1, -1, 1},
			{-1, 1, 1},
			{1, 1, 1},
			{1, -1, 1},
			{-1, -1, -1},
			{-1, 1, -1},
			{1, 1, -1},
			{1, -1, -1},
		},
		Colors: [][3]float32{
			{0, 0, 0},
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 0, 0},
			{1, 0, 1},
			{1, 1, 0},
			{1, 1, 1},
		},
		Indices: []uint32{
			0, 3, 1,
			1, 3, 2,
			4, 7, 5,
			5, 7, 6,
			3, 7, 2,
			2, 7, 6,
			4, 0, 5,
			5, 0, 1,
			1, 2, 5,
			5, 2, 6,
			0, 3, 4,
			4, 3, 7,
		},
	}
}

// Validate checks that colors match positions and every index is in range.
//
// Returns:
//   - error: a description of the first problem found, or nil
func (m Mesh) Validate() error {
	if len(m.Positions) == 0 {
		return fmt.Errorf("mesh has no vertices")
	}
	if len(m.Colors) != len(m.Positions) {
		return fmt.Errorf("mesh has %d colors for %d vertices", len(m.Colors), len(m.Positions))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return fmt.Errorf("mesh index %d at position %d out of range [0, %d)", idx, i, len(m.Positions))
		}
	}
	return nil
}

// TriangleCount returns the number of triangles described by Indices.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertex indices of triangle i.
func (m Mesh) Triangle(i int) (uint32, uint32, uint32) {
	return m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
}

// Vertices interleaves positions and colors into GPU vertices.
//
// Returns:
//   - []GPUVertex: one vertex per position
func (m Mesh) Vertices() []GPUVertex {
	out := make([]GPUVertex, len(m.Positions))
	for i := range m.Positions {
		out[i] = GPUVertex{Position: m.Positions[i], Color: m.Colors[i]}
	}
	return out
}

// BoundingRadius returns the maximum distance of any vertex from the origin.
//
// Returns:
//   - float32: the bounding sphere radius
func (m Mesh) BoundingRadius() float32 {
	var maxDistSq float32
	for _, p := range m.Positions {
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
