package bind_group_provider

import "testing"

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("Camera", WithIndexCount(36))

	if p.Label() != "Camera" {
		t.Errorf("Label() = %q, want Camera", p.Label())
	}
	if p.IndexCount() != 36 {
		t.Errorf("IndexCount() = %d, want 36", p.IndexCount())
	}
	if p.BindGroup() != nil || p.BindGroupLayout() != nil || p.Buffer(0) != nil {
		t.Error("new provider holds GPU resources before initialization")
	}
	if p.VertexBuffer() != nil || p.IndexBuffer() != nil {
		t.Error("new provider holds mesh buffers before initialization")
	}
}

func TestReleaseWithoutResources(t *testing.T) {
	p := NewBindGroupProvider("Cube")
	p.SetIndexCount(12)
	p.SetBuffer(0, nil)

	p.Release()

	if p.IndexCount() != 0 {
		t.Errorf("IndexCount() after Release = %d, want 0", p.IndexCount())
	}
	if p.Buffer(0) != nil {
		t.Error("Buffer(0) after Release != nil")
	}
}

func TestHasMeshWithoutBuffers(t *testing.T) {
	p := NewBindGroupProvider("Cube", WithIndexCount(36))
	if p.HasMesh() {
		t.Error("HasMesh() = true without vertex and index buffers")
	}
}

func TestWrite(t *testing.T) {
	p := NewBindGroupProvider("Camera")
	data := []byte{1, 2, 3, 4}

	w := p.Write(0, data)
	if w.Provider != p {
		t.Error("Write() targets a different provider")
	}
	if w.Binding != 0 || w.Offset != 0 {
		t.Errorf("Write() binding %d offset %d, want 0 0", w.Binding, w.Offset)
	}
	if len(w.Data) != len(data) || w.Data[3] != 4 {
		t.Errorf("Write() data = %v, want %v", w.Data, data)
	}
}
