package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	label string

	// GPU handles below are filled in by the Renderer and freed by Release.

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds the uniform buffers keyed by binding index.
	buffers map[int]*wgpu.Buffer

	// mesh handles; unused by uniform-only providers
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

// BindGroupProvider owns the GPU handles of one drawable resource: either a uniform bind group
// (the camera matrix) or a vertex/index buffer pair (the cube mesh).
//
// The provider never creates GPU objects itself. Renderer.InitBindGroup and
// Renderer.InitMeshBuffers fill it in, Renderer.WriteBuffers updates it, and
// Renderer.DrawCall reads it.
type BindGroupProvider interface {
	// Release frees every GPU handle the provider holds and resets the index count.
	// Safe to call on a provider that was never initialized.
	Release()

	// Label returns the debug label used to name the GPU resources.
	Label() string

	// BindGroup returns the bind group, or nil before Renderer.InitBindGroup.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the bind group layout, or nil before Renderer.InitBindGroup.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the uniform buffer behind a binding.
	//
	// Parameters:
	//   - binding: the @binding index in the shader
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil if the binding has none
	Buffer(binding int) *wgpu.Buffer

	// VertexBuffer returns the vertex buffer, or nil before Renderer.InitMeshBuffers.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the index buffer, or nil before Renderer.InitMeshBuffers.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices drawn per DrawCall.
	IndexCount() int

	// HasMesh reports whether both mesh buffers are uploaded and there is something to draw.
	HasMesh() bool

	// Write stages data for one of the provider's uniform buffers.
	// The returned value is handed to Renderer.WriteBuffers.
	//
	// Parameters:
	//   - binding: the @binding index of the target buffer
	//   - data: the bytes to upload at offset 0
	//
	// Returns:
	//   - BufferWrite: the staged write
	Write(binding int, data []byte) BufferWrite

	SetBindGroup(bg *wgpu.BindGroup)
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)
	SetBuffer(binding int, buf *wgpu.Buffer)
	SetVertexBuffer(buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer)
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider. GPU handles are attached later by the Renderer.
//
// Parameters:
//   - label: debug label used to name the GPU resources
//   - options: functional options, see bind_group_provider_builder.go
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) HasMesh() bool {
	return p.vertexBuffer != nil && p.indexBuffer != nil && p.indexCount > 0
}

func (p *bindGroupProvider) Write(binding int, data []byte) BufferWrite {
	return BufferWrite{Provider: p, Binding: binding, Data: data}
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	// Bind group first: it references the buffers.
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	for binding, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, binding)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}

// BufferWrite is one queued upload into a provider's uniform buffer.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
