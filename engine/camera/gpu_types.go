package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl64"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (64 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Size: 64 bytes (one mat4x4<f32>).
type GPUCameraUniform struct {
	ViewProj [16]float32 // offset 0: combined projection × view matrix, column-major
}

// NewGPUCameraUniform narrows a view-projection matrix into a GPUCameraUniform.
//
// Parameters:
//   - viewProj: the combined matrix
//
// Returns:
//   - GPUCameraUniform: the uniform value
func NewGPUCameraUniform(viewProj mgl64.Mat4) GPUCameraUniform {
	return GPUCameraUniform{ViewProj: common.Mat4ToFloat32(viewProj)}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	return buf
}

// GPUCameraBindGroupLayout describes the bind group holding the camera uniform at binding 0,
// visible to the vertex stage.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
func GPUCameraBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	entry.Buffer.MinBindingSize = uint64((&GPUCameraUniform{}).Size())
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{entry},
	}
}
