package model

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"
)

func TestCube(t *testing.T) {
	cube := Cube()

	if err := cube.Validate(); err != nil {
		t.Fatalf("Cube().Validate() = %v", err)
	}
	if len(cube.Positions) != 8 {
		t.Errorf("len(Positions) = %d, want 8", len(cube.Positions))
	}
	if len(cube.Indices) != 36 || cube.TriangleCount() != 12 {
		t.Errorf("indices = %d, triangles = %d, want 36 and 12", len(cube.Indices), cube.TriangleCount())
	}

	seen := map[[3]float32]bool{}
	for _, c := range cube.Colors {
		for _, ch := range c {
			if ch != 0 && ch != 1 {
				t.Errorf("color %v has a channel outside {0, 1}", c)
			}
		}
		seen[c] = true
	}
	if len(seen) != 8 {
		t.Errorf("cube has %d distinct colors, want 8", len(seen))
	}

	// Every corner is used by some triangle.
	used := map[uint32]bool{}
	for _, idx := range cube.Indices {
		used[idx] = true
	}
	if len(used) != 8 {
		t.Errorf("triangles reference %d corners, want 8", len(used))
	}
}

func TestCubeReturnsCopy(t *testing.T) {
	a := Cube()
	a.Positions[0][0] = 42
	if b := Cube(); b.Positions[0][0] != -1 {
		t.Errorf("Cube() shares storage between calls")
	}
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Mesh)
		errSub string
	}{
		{"no vertices", func(m *Mesh) { m.Positions = nil; m.Colors = nil }, "no vertices"},
		{"missing colors", func(m *Mesh) { m.Colors = m.Colors[:7] }, "7 colors for 8 vertices"},
		{"partial triangle", func(m *Mesh) { m.Indices = m.Indices[:35] }, "not a multiple of 3"},
		{"index out of range", func(m *Mesh) { m.Indices[5] = 8 }, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Cube()
			tt.mutate(&m)
			err := m.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.errSub)
			}
		})
	}
}

func TestBoundingRadius(t *testing.T) {
	want := float32(math.Sqrt(3))
	if got := Cube().BoundingRadius(); math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("BoundingRadius() = %v, want %v", got, want)
	}
}

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, -2, 3}, Color: [3]float32{0, 0.5, 1}}
	if v.Size() != 24 {
		t.Fatalf("Size() = %d, want 24", v.Size())
	}

	buf := v.Marshal()
	want := []float32{1, -2, 3, 0, 0.5, 1}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != w {
			t.Errorf("float %d = %v, want %v", i, got, w)
		}
	}
}

func TestNewModel(t *testing.T) {
	m, err := NewModel()
	if err != nil {
		t.Fatalf("NewModel() returned error: %v", err)
	}

	if m.Name() != "cube" {
		t.Errorf("Name() = %q, want cube", m.Name())
	}
	if m.VertexCount() != 8 || m.IndexCount() != 36 {
		t.Errorf("counts = (%d, %d), want (8, 36)", m.VertexCount(), m.IndexCount())
	}
	if len(m.VertexData()) != 8*24 {
		t.Errorf("len(VertexData()) = %d, want %d", len(m.VertexData()), 8*24)
	}
	if len(m.IndexData()) != 36*4 {
		t.Errorf("len(IndexData()) = %d, want %d", len(m.IndexData()), 36*4)
	}

	// Second triangle starts at byte 12: indices 1, 3, 2.
	for i, want := range []uint32{1, 3, 2} {
		if got := binary.LittleEndian.Uint32(m.IndexData()[12+i*4:]); got != want {
			t.Errorf("index %d = %d, want %d", 3+i, got, want)
		}
	}

	// Vertex 7 is (1, -1, -1) colored white.
	v7 := m.VertexData()[7*24:]
	for i, want := range []float32{1, -1, -1, 1, 1, 1} {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(v7[i*4:])); got != want {
			t.Errorf("vertex 7 float %d = %v, want %v", i, got, want)
		}
	}
}

func TestNewModelInvalidMesh(t *testing.T) {
	bad := Cube()
	bad.Indices = append(bad.Indices, 0, 1, 99)
	if _, err := NewModel(WithName("broken"), WithMesh(bad)); err == nil {
		t.Error("NewModel with an out-of-range index returned nil error")
	}
}

func TestVertexSource(t *testing.T) {
	if !strings.Contains(GPUVertexSource, "@location(1) color: vec3<f32>") {
		t.Errorf("GPUVertexSource missing color attribute:\n%s", GPUVertexSource)
	}
}

func TestGPUVertexLayout(t *testing.T) {
	layout := GPUVertexLayout()
	if int(layout.ArrayStride) != (&GPUVertex{}).Size() {
		t.Errorf("ArrayStride = %d, want %d", layout.ArrayStride, (&GPUVertex{}).Size())
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("got %d attributes, want 2", len(layout.Attributes))
	}
	if layout.Attributes[1].Offset != 12 || layout.Attributes[1].ShaderLocation != 1 {
		t.Errorf("color attribute = %+v", layout.Attributes[1])
	}
}
