package scene

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-cube/engine/camera"
	"github.com/Carmen-Shannon/oxy-cube/engine/model"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeRenderer records the calls a scene makes without touching a GPU.
type fakeRenderer struct {
	renderer.Renderer

	pipelines   []pipeline.Pipeline
	vertexBytes int
	indexCount  int
	bindLayouts []wgpu.BindGroupLayoutDescriptor
	writes      [][]byte
	draws       []string
	drawGroups  int
	registerErr error
}

func (f *fakeRenderer) RegisterPipelines(ps ...pipeline.Pipeline) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.pipelines = append(f.pipelines, ps...)
	return nil
}

func (f *fakeRenderer) InitMeshBuffers(_ bind_group_provider.BindGroupProvider, vertexData, _ []byte, indexCount int) error {
	f.vertexBytes = len(vertexData)
	f.indexCount = indexCount
	return nil
}

func (f *fakeRenderer) InitBindGroup(_ bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, _ map[int]uint64) error {
	f.bindLayouts = append(f.bindLayouts, descriptor)
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		f.writes = append(f.writes, append([]byte(nil), w.Data...))
	}
}

func (f *fakeRenderer) DrawCall(key string, _ bind_group_provider.BindGroupProvider, groups []bind_group_provider.BindGroupProvider) error {
	f.draws = append(f.draws, key)
	f.drawGroups = len(groups)
	return nil
}

func newTestScene(t *testing.T, options ...SceneBuilderOption) (Scene, *fakeRenderer) {
	t.Helper()
	mdl, err := model.NewModel()
	if err != nil {
		t.Fatal(err)
	}
	r := &fakeRenderer{}
	s, err := NewScene("main", camera.NewCamera(), r, mdl, options...)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s, r
}

func TestNewScene(t *testing.T) {
	s, r := newTestScene(t)

	if len(r.pipelines) != 1 {
		t.Fatalf("registered %d pipelines, want 1", len(r.pipelines))
	}
	p := r.pipelines[0]
	if p.PipelineKey() != DefaultPipelineKey || s.PipelineKey() != DefaultPipelineKey {
		t.Errorf("pipeline key = %q / %q, want %q", p.PipelineKey(), s.PipelineKey(), DefaultPipelineKey)
	}
	if len(p.VertexLayouts()) != 1 || len(p.BindGroupLayouts()) != 1 {
		t.Errorf("pipeline layouts: %d vertex, %d bind group", len(p.VertexLayouts()), len(p.BindGroupLayouts()))
	}
	if r.vertexBytes != 8*24 {
		t.Errorf("uploaded %d vertex bytes, want %d", r.vertexBytes, 8*24)
	}
	if r.indexCount != 36 {
		t.Errorf("index count = %d, want 36", r.indexCount)
	}
	if len(r.bindLayouts) != 1 || r.bindLayouts[0].Entries[0].Buffer.MinBindingSize != 64 {
		t.Errorf("camera bind group layouts = %+v", r.bindLayouts)
	}
	if s.Active() {
		t.Error("new scene is active by default")
	}
}

func TestNewSceneOptions(t *testing.T) {
	s, r := newTestScene(t,
		WithActive(true),
		WithPipelineKey("wire"),
		WithPipelineOptions(pipeline.WithCullMode(wgpu.CullModeBack)),
	)

	if !s.Active() {
		t.Error("WithActive(true) not applied")
	}
	if s.PipelineKey() != "wire" || r.pipelines[0].PipelineKey() != "wire" {
		t.Errorf("pipeline key = %q", s.PipelineKey())
	}
	if r.pipelines[0].CullMode() != wgpu.CullModeBack {
		t.Error("pipeline option not forwarded")
	}
}

func TestNewSceneErrors(t *testing.T) {
	mdl, _ := model.NewModel()

	if _, err := NewScene("x", nil, &fakeRenderer{}, mdl); err == nil {
		t.Error("NewScene without a camera succeeded")
	}

	boom := errors.New("no adapter")
	_, err := NewScene("x", camera.NewCamera(), &fakeRenderer{registerErr: boom}, mdl)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestPrepareUploadsCameraMatrix(t *testing.T) {
	s, r := newTestScene(t)

	if err := s.Prepare(); err != nil {
		t.Fatal(err)
	}
	u := s.Camera().Uniform()
	if len(r.writes) != 1 || !bytes.Equal(r.writes[0], u.Marshal()) {
		t.Fatalf("writes = %d, want the 64-byte camera uniform", len(r.writes))
	}

	before := r.writes[0]
	if err := s.Camera().Controller().ApplyCommand(camera.CommandTopView); err != nil {
		t.Fatal(err)
	}
	if err := s.Prepare(); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(r.writes[1], before) {
		t.Error("uniform did not change after switching to the top view")
	}
}

func TestDrawCalls(t *testing.T) {
	s, r := newTestScene(t)

	if err := s.DrawCalls(); err != nil {
		t.Fatal(err)
	}
	if len(r.draws) != 1 || r.draws[0] != DefaultPipelineKey {
		t.Errorf("draws = %v", r.draws)
	}
	if r.drawGroups != 1 {
		t.Errorf("draw bound %d groups, want 1", r.drawGroups)
	}
}

func TestCubeShaderSource(t *testing.T) {
	src := CubeShaderSource()
	for _, want := range []string{
		"struct CameraUniform",
		"struct VertexInput",
		"@group(0) @binding(0) var<uniform> camera: CameraUniform;",
		"fn vs_main",
		"fn fs_main",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("shader source missing %q", want)
		}
	}
	if strings.Index(src, "struct CameraUniform") > strings.Index(src, "var<uniform> camera") {
		t.Error("CameraUniform is declared after its first use")
	}
}

func newSceneWithController(t *testing.T, ctrl camera.CameraController) (Scene, *fakeRenderer) {
	t.Helper()
	mdl, err := model.NewModel()
	if err != nil {
		t.Fatal(err)
	}
	r := &fakeRenderer{}
	s, err := NewScene("main", camera.NewCamera(camera.WithController(ctrl)), r, mdl)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s, r
}

func TestFrameSkipped(t *testing.T) {
	tests := []struct {
		name string
		ctrl camera.CameraController
	}{
		{
			name: "never valid camera",
			ctrl: camera.NewCameraController(camera.WithUp(0, 0, 1)),
		},
		{
			name: "model outside the view",
			ctrl: camera.NewCameraController(camera.WithEye(100, 0, 0.1), camera.WithTarget(100, 0, 0)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, r := newSceneWithController(t, tt.ctrl)

			if err := s.Prepare(); err != nil {
				t.Fatalf("Prepare returned error: %v", err)
			}
			if err := s.DrawCalls(); err != nil {
				t.Fatalf("DrawCalls returned error: %v", err)
			}
			if len(r.writes) != 0 {
				t.Errorf("writes = %d, want 0", len(r.writes))
			}
			if len(r.draws) != 0 {
				t.Errorf("draws = %v, want none", r.draws)
			}
		})
	}
}

func TestFrameResumesWhenCameraBecomesValid(t *testing.T) {
	ctrl := camera.NewCameraController(camera.WithUp(0, 0, 1))
	s, r := newSceneWithController(t, ctrl)

	_ = s.Prepare()
	if err := ctrl.ApplyCommand(camera.CommandFrontView); err != nil {
		t.Fatalf("FrontView returned error: %v", err)
	}
	if err := s.Prepare(); err != nil {
		t.Fatal(err)
	}
	if err := s.DrawCalls(); err != nil {
		t.Fatal(err)
	}
	if len(r.writes) != 1 || len(r.draws) != 1 {
		t.Errorf("writes = %d, draws = %d, want 1 and 1", len(r.writes), len(r.draws))
	}
}
