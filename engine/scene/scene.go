package scene

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/camera"
	"github.com/Carmen-Shannon/oxy-cube/engine/model"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultPipelineKey is the render pipeline key used when none is configured.
const DefaultPipelineKey = "cube"

// Scene binds one Camera and one Model to a Renderer.
// Prepare uploads the camera's view-projection matrix and DrawCalls draws the model with it.
// Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Model returns the model drawn by the scene.
	Model() model.Model

	// PipelineKey returns the key of the render pipeline the scene draws with.
	PipelineKey() string

	// Prepare recomputes the camera matrices from the controller's current state and stages the
	// combined matrix for upload. If the state cannot produce a valid matrix the last valid one
	// is uploaded again and the failure is logged. When the camera has never held a valid matrix,
	// or the model's bounding sphere is outside the view, nothing is staged and the next
	// DrawCalls is skipped.
	//
	// Returns:
	//   - error: an error if the scene has no renderer attached
	Prepare() error

	// DrawCalls issues the model's draw call, unless the last Prepare skipped the frame.
	// Must be called within a BeginFrame/EndFrame block on the renderer.
	//
	// Returns:
	//   - error: error if a draw call fails
	DrawCalls() error

	// Release frees the scene's GPU buffers and bind groups. The renderer is left untouched.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam camera.Camera
	r   renderer.Renderer
	mdl model.Model

	pipelineKey  string
	pipelineOpts []pipeline.PipelineBuilderOption

	meshBGP   bind_group_provider.BindGroupProvider
	cameraBGP bind_group_provider.BindGroupProvider

	// lastPrepareErr suppresses repeated log lines while the camera stays invalid.
	lastPrepareErr error
	skipDraw       bool

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene that draws mdl through cam on r. It registers the cube render
// pipeline, uploads the model's vertex and index data, and creates the camera uniform bind group.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - mdl: the model to draw (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
//   - error: an error if a collaborator is missing or GPU resources could not be created
func NewScene(name string, cam camera.Camera, r renderer.Renderer, mdl model.Model, options ...SceneBuilderOption) (Scene, error) {
	if cam == nil || r == nil || mdl == nil {
		return nil, fmt.Errorf("scene %q requires a camera, a renderer and a model", name)
	}

	s := &scene{
		mu:                 &sync.RWMutex{},
		name:               name,
		active:             false,
		cam:                cam,
		r:                  r,
		mdl:                mdl,
		pipelineKey:        DefaultPipelineKey,
		writePool:          make([]bind_group_provider.BufferWrite, 0, 1),
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 1),
	}

	for _, option := range options {
		option(s)
	}

	cameraLayout := camera.GPUCameraBindGroupLayout()
	opts := append([]pipeline.PipelineBuilderOption{
		pipeline.WithShaderSource(CubeShaderSource()),
		pipeline.WithVertexLayouts(model.GPUVertexLayout()),
		pipeline.WithBindGroupLayouts(cameraLayout),
	}, s.pipelineOpts...)
	if err := r.RegisterPipelines(pipeline.NewPipeline(s.pipelineKey, opts...)); err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}

	s.meshBGP = bind_group_provider.NewBindGroupProvider(mdl.Name())
	if err := r.InitMeshBuffers(s.meshBGP, mdl.VertexData(), mdl.IndexData(), mdl.IndexCount()); err != nil {
		return nil, fmt.Errorf("scene %q: failed to upload mesh: %w", name, err)
	}

	s.cameraBGP = bind_group_provider.NewBindGroupProvider("Camera")
	if err := r.InitBindGroup(s.cameraBGP, cameraLayout, nil); err != nil {
		s.meshBGP.Release()
		return nil, fmt.Errorf("scene %q: failed to init camera bind group: %w", name, err)
	}

	return s, nil
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Model() model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mdl
}

func (s *scene) PipelineKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pipelineKey
}

func (s *scene) Prepare() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}

	if err := s.cam.Update(); err != nil {
		if s.lastPrepareErr == nil {
			log.Printf("[Scene] %s: keeping last valid transform: %v", s.name, err)
		}
		s.lastPrepareErr = err
	} else {
		s.lastPrepareErr = nil
	}

	s.skipDraw = !s.cam.Valid() || s.outsideView()
	if s.skipDraw {
		return nil
	}

	uniform := s.cam.Uniform()
	s.writePool = append(s.writePool[:0], s.cameraBGP.Write(0, uniform.Marshal()))
	s.r.WriteBuffers(s.writePool)
	return nil
}

func (s *scene) DrawCalls() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}

	if s.skipDraw {
		return nil
	}

	s.drawBindGroupsPool = append(s.drawBindGroupsPool[:0], s.cameraBGP)
	if err := s.r.DrawCall(s.pipelineKey, s.meshBGP, s.drawBindGroupsPool); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}
	return nil
}

// outsideView reports whether the model's bounding sphere is entirely outside the camera's view.
// Caller must hold the mutex.
func (s *scene) outsideView() bool {
	cv := common.ExtractClipVolume(s.cam.ViewProjectionMatrix())
	return cv.SphereOutside(mgl64.Vec3{}, float64(s.mdl.BoundingRadius()))
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meshBGP.Release()
	s.cameraBGP.Release()
}
