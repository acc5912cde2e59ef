package scene

import (
	_ "embed"
	"strings"

	"github.com/Carmen-Shannon/oxy-cube/engine/camera"
	"github.com/Carmen-Shannon/oxy-cube/engine/model"
)

//go:embed assets/cube.wgsl
var cubeShaderBody string

// CubeShaderSource assembles the full WGSL module for the cube pipeline: the camera uniform struct,
// the vertex input struct, and the cube's vertex and fragment stages.
//
// Returns:
//   - string: the WGSL source
func CubeShaderSource() string {
	return strings.Join([]string{
		camera.GPUCameraUniformSource,
		model.GPUVertexSource,
		cubeShaderBody,
	}, "\n")
}
