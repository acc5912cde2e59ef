package model

import (
	"fmt"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	mesh                  Mesh
	boundingRadius        float32
	vertexData, indexData []byte
	indexCount            int
}

// Model defines the interface for a GPU-ready mesh.
// A Model holds its source Mesh together with the packed vertex and index bytes the
// renderer uploads.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Mesh retrieves the source mesh.
	//
	// Returns:
	//   - Mesh: the mesh the GPU data was built from
	Mesh() Mesh

	// VertexData returns the packed vertex buffer for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the packed uint32 index buffer for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// VertexCount returns the number of vertices in the model's mesh.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// BoundingRadius returns the bounding sphere radius for this model, measured as
	// the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model from the configured mesh, packing it for GPU upload.
// The cube mesh is used when no mesh option is given.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: the packed model
//   - error: if the mesh fails validation
func NewModel(options ...ModelBuilderOption) (Model, error) {
	m := &model{name: "cube", mesh: Cube()}
	for _, opt := range options {
		opt(m)
	}

	if err := m.mesh.Validate(); err != nil {
		return nil, fmt.Errorf("model %q: %w", m.name, err)
	}

	m.vertexData = MarshalVertices(m.mesh.Vertices())
	m.indexData = MarshalIndices(m.mesh.Indices)
	m.indexCount = len(m.mesh.Indices)
	m.boundingRadius = m.mesh.BoundingRadius()
	return m, nil
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Mesh() Mesh {
	return m.mesh
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) VertexCount() int {
	return len(m.mesh.Positions)
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
