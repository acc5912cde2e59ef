package renderer

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// recordingBackend stands in for the GPU and records what the renderer asks of it.
type recordingBackend struct {
	registered []string
	configured [][2]int
	draws      int
	released   bool
	failKey    string
}

var _ RendererBackend = &recordingBackend{}

func (b *recordingBackend) ConfigureSurface(width, height int) error {
	b.configured = append(b.configured, [2]int{width, height})
	return nil
}
func (b *recordingBackend) SetPresentMode(PresentMode)   {}
func (b *recordingBackend) SampleCount() MSAASampleCount { return MSAAOff }
func (b *recordingBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if p.PipelineKey() == b.failKey {
		return errors.New("device lost")
	}
	b.registered = append(b.registered, p.PipelineKey())
	return nil
}
func (b *recordingBackend) InitMeshBuffers(bind_group_provider.BindGroupProvider, []byte, []byte, int) error {
	return nil
}
func (b *recordingBackend) InitBindGroup(bind_group_provider.BindGroupProvider, wgpu.BindGroupLayoutDescriptor, map[int]uint64) error {
	return nil
}
func (b *recordingBackend) WriteBuffers([]bind_group_provider.BufferWrite) {}
func (b *recordingBackend) BeginFrame() error                              { return nil }
func (b *recordingBackend) DrawCall(pipeline.Pipeline, bind_group_provider.BindGroupProvider, []bind_group_provider.BindGroupProvider) {
	b.draws++
}
func (b *recordingBackend) EndFrame() error { return nil }
func (b *recordingBackend) Present()        {}
func (b *recordingBackend) Release()        { b.released = true }

func newTestRenderer(backend *recordingBackend) *renderer {
	return &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backend:       backend,
	}
}

type nilSurface struct{}

func (nilSurface) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (nilSurface) Width() int                                 { return 800 }
func (nilSurface) Height() int                                { return 800 }

func TestNewRendererWithoutSurface(t *testing.T) {
	r, err := NewRenderer(BackendTypeWGPU, nilSurface{})
	if !errors.Is(err, ErrNoSurface) {
		t.Fatalf("err = %v, want ErrNoSurface", err)
	}
	if r != nil {
		t.Error("renderer returned alongside an error")
	}
}

func TestParseMSAA(t *testing.T) {
	tests := []struct {
		in      int
		want    MSAASampleCount
		wantErr bool
	}{
		{1, MSAAOff, false},
		{4, MSAA4x, false},
		{8, MSAA8x, false},
		{16, MSAA16x, false},
		{0, 0, true},
		{2, 0, true},
		{32, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMSAA(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMSAA(%d) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMSAA(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPresentModeFor(t *testing.T) {
	if PresentModeFor(true) != PresentModeVSync {
		t.Error("vsync on should select PresentModeVSync")
	}
	if PresentModeFor(false) != PresentModeUncapped {
		t.Error("vsync off should select PresentModeUncapped")
	}
}

func TestRegisterPipelines(t *testing.T) {
	backend := &recordingBackend{}
	r := newTestRenderer(backend)

	cube := pipeline.NewPipeline("cube", pipeline.WithShaderSource("@vertex fn vs_main() {}"))
	again := pipeline.NewPipeline("cube", pipeline.WithShaderSource("@vertex fn vs_main() {}"))

	if err := r.RegisterPipelines(cube, again); err != nil {
		t.Fatalf("RegisterPipelines: %v", err)
	}
	if len(backend.registered) != 1 {
		t.Errorf("backend saw %d registrations, want 1", len(backend.registered))
	}
	if r.Pipeline("cube") != cube {
		t.Error("Pipeline(cube) is not the first registered pipeline")
	}
	if r.Pipeline("missing") != nil {
		t.Error("Pipeline(missing) != nil")
	}
}

func TestRegisterPipelinesErrors(t *testing.T) {
	t.Run("invalid pipeline", func(t *testing.T) {
		backend := &recordingBackend{}
		r := newTestRenderer(backend)
		if err := r.RegisterPipelines(pipeline.NewPipeline("empty")); err == nil {
			t.Fatal("pipeline without shader source was accepted")
		}
		if len(backend.registered) != 0 {
			t.Error("invalid pipeline reached the backend")
		}
	})

	t.Run("backend failure", func(t *testing.T) {
		backend := &recordingBackend{failKey: "cube"}
		r := newTestRenderer(backend)
		err := r.RegisterPipelines(pipeline.NewPipeline("cube", pipeline.WithShaderSource("x")))
		if err == nil || !strings.Contains(err.Error(), `"cube"`) {
			t.Fatalf("err = %v, want wrapped failure naming the pipeline", err)
		}
		if r.Pipeline("cube") != nil {
			t.Error("failed pipeline was cached")
		}
	})
}

func TestDrawCall(t *testing.T) {
	backend := &recordingBackend{}
	r := newTestRenderer(backend)
	mesh := bind_group_provider.NewBindGroupProvider("Cube")

	if err := r.DrawCall("cube", mesh, nil); err == nil {
		t.Error("DrawCall with an unknown pipeline succeeded")
	}

	if err := r.RegisterPipelines(pipeline.NewPipeline("cube", pipeline.WithShaderSource("x"))); err != nil {
		t.Fatal(err)
	}
	if err := r.DrawCall("cube", mesh, nil); err == nil {
		t.Error("DrawCall with a mesh lacking buffers succeeded")
	}
	if backend.draws != 0 {
		t.Errorf("backend recorded %d draws, want 0", backend.draws)
	}
}

func TestResizeIgnoresEmptySurface(t *testing.T) {
	backend := &recordingBackend{}
	r := newTestRenderer(backend)

	for _, size := range [][2]int{{0, 600}, {800, 0}, {-1, -1}} {
		if err := r.Resize(size[0], size[1]); err != nil {
			t.Errorf("Resize(%d, %d) = %v", size[0], size[1], err)
		}
	}
	if len(backend.configured) != 0 {
		t.Fatalf("backend configured %v for empty sizes", backend.configured)
	}

	if err := r.Resize(1024, 768); err != nil {
		t.Fatal(err)
	}
	if len(backend.configured) != 1 || backend.configured[0] != [2]int{1024, 768} {
		t.Errorf("configured = %v, want [[1024 768]]", backend.configured)
	}
}

func TestRelease(t *testing.T) {
	backend := &recordingBackend{}
	r := newTestRenderer(backend)
	if err := r.RegisterPipelines(pipeline.NewPipeline("cube", pipeline.WithShaderSource("x"))); err != nil {
		t.Fatal(err)
	}

	r.Release()

	if !backend.released {
		t.Error("backend was not released")
	}
	if r.Pipeline("cube") != nil {
		t.Error("pipeline cache survived Release")
	}
}

func TestBufferUsageFor(t *testing.T) {
	uniform := wgpu.BindGroupLayoutEntry{Binding: 0}
	uniform.Buffer.Type = wgpu.BufferBindingTypeUniform
	uniform.Buffer.MinBindingSize = 64

	usage, err := bufferUsageFor(uniform)
	if err != nil {
		t.Fatal(err)
	}
	if usage != wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst {
		t.Errorf("uniform usage = %v", usage)
	}

	if _, err := bufferUsageFor(wgpu.BindGroupLayoutEntry{Binding: 3}); err == nil {
		t.Error("non-buffer binding accepted")
	}

	if got := bufferSizeFor(uniform, nil); got != 64 {
		t.Errorf("bufferSizeFor without override = %d, want 64", got)
	}
	if got := bufferSizeFor(uniform, map[int]uint64{0: 256}); got != 256 {
		t.Errorf("bufferSizeFor with override = %d, want 256", got)
	}
}
