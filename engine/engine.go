package engine

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/camera"
	"github.com/Carmen-Shannon/oxy-cube/engine/profiler"
	"github.com/Carmen-Shannon/oxy-cube/engine/scene"
	"github.com/Carmen-Shannon/oxy-cube/engine/window"
)

// ErrSetupFailure is returned when the window or the GPU context cannot be acquired.
var ErrSetupFailure = errors.New("setup failure")

// engine implements the Engine interface.
// Input callbacks and frames both run on the window thread, so a key press is
// always fully applied before the next frame reads the camera.
type engine struct {
	mu *sync.Mutex

	running  bool
	quitOnce sync.Once // Ensures Quit only acts once

	window    window.Window
	baseTitle string

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(deltaTime float32)
	lastFrame     time.Time

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It routes window input to the active cameras and drives one frame per window update.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil for a headless engine
	Window() window.Window

	// SetFrameCallback registers a function called after each rendered frame.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// HandleKey applies the camera command bound to keyCode on every active scene's camera.
	// Space resets the camera to its initial state. Unbound keys are ignored.
	// Rejected commands are logged and leave the camera unchanged.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	HandleKey(keyCode uint32)

	// HandleScroll zooms every active scene's camera by a scroll delta.
	//
	// Parameters:
	//   - delta: scroll amount, positive zooms in
	HandleScroll(delta float32)

	// HandleResize reconfigures the renderers of all scenes for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	HandleResize(width, height int)

	// Frame renders one frame of all active scenes. The first active scene's renderer owns the frame:
	// every active scene is prepared, then drawn in a single render pass.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the previous frame in seconds
	//
	// Returns:
	//   - error: the first error from acquiring, drawing or submitting the frame
	Frame(deltaTime float32) error

	// Run starts the main loop and blocks until the window closes.
	//
	// Returns:
	//   - error: ErrSetupFailure if the engine has no window
	Run() error

	// Quit asks the window to close. Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options and wires the
// window's key, scroll, resize and update callbacks to it.
//
// Parameters:
//   - options: functional options for engine configuration (window, scenes, profiling, frame limit)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.Mutex{},
		scenes:           make(map[int]scene.Scene),
		running:          false,
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.baseTitle = e.window.Title()
		e.window.SetKeyDownCallback(e.HandleKey)
		e.window.SetScrollCallback(e.HandleScroll)
		e.window.SetResizeCallback(e.HandleResize)
		e.window.SetUpdateCallback(e.update)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() error {
	if e.window == nil {
		return fmt.Errorf("%w: engine has no window", ErrSetupFailure)
	}

	e.mu.Lock()
	e.running = true
	e.lastFrame = time.Now()
	e.mu.Unlock()

	e.refreshTitle()
	log.Printf("[Engine] running %d scene(s)", len(e.scenes))
	e.window.ProcessMessages()

	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
	log.Printf("[Engine] window closed")
	return nil
}

// Quit asks the window to close. Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// update is the window's per-iteration callback: one frame, then the optional frame cap.
func (e *engine) update() {
	now := time.Now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	if err := e.Frame(dt); err != nil {
		log.Printf("[Engine] frame skipped: %v", err)
	}

	// Frame rate limiting
	if e.renderFrameLimit > 0 {
		elapsed := time.Since(now)
		if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// activeScenes returns the active scenes in ascending z-index order.
func (e *engine) activeScenes() []scene.Scene {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var active []scene.Scene
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// activeControllers returns each distinct camera controller of the active scenes once.
func (e *engine) activeControllers() []camera.CameraController {
	var controllers []camera.CameraController
	seen := make(map[camera.CameraController]bool)
	for _, s := range e.activeScenes() {
		cam := s.Camera()
		if cam == nil {
			continue
		}
		ctrl := cam.Controller()
		if ctrl == nil || seen[ctrl] {
			continue
		}
		seen[ctrl] = true
		controllers = append(controllers, ctrl)
	}
	return controllers
}

func (e *engine) HandleKey(keyCode uint32) {
	for _, ctrl := range e.activeControllers() {
		if keyCode == common.KeySpace {
			ctrl.Reset()
			continue
		}
		if err := ctrl.ApplyKey(keyCode); err != nil {
			log.Printf("[Engine] key %d rejected: %v", keyCode, err)
		}
	}
	e.refreshTitle()
}

func (e *engine) HandleScroll(delta float32) {
	for _, ctrl := range e.activeControllers() {
		if err := ctrl.Zoom(delta); err != nil {
			log.Printf("[Engine] zoom %.1f rejected: %v", delta, err)
		}
	}
	e.refreshTitle()
}

func (e *engine) HandleResize(width, height int) {
	for _, s := range e.scenes {
		if r := s.Renderer(); r != nil {
			if err := r.Resize(width, height); err != nil {
				log.Printf("[Engine] resize to %dx%d failed: %v", width, height, err)
			}
		}
	}
}

func (e *engine) Frame(deltaTime float32) error {
	active := e.activeScenes()
	if len(active) == 0 {
		return nil
	}

	// The engine owns the frame lifecycle: BeginFrame once, draw each scene, EndFrame + Present once.
	frameRenderer := active[0].Renderer()
	if frameRenderer == nil {
		return fmt.Errorf("scene %q has no renderer attached", active[0].Name())
	}

	for _, s := range active {
		if err := s.Prepare(); err != nil {
			return err
		}
	}

	if err := frameRenderer.BeginFrame(); err != nil {
		return err
	}
	var drawErr error
	for _, s := range active {
		if err := s.DrawCalls(); err != nil && drawErr == nil {
			drawErr = err
		}
	}
	if err := frameRenderer.EndFrame(); err != nil {
		return err
	}
	frameRenderer.Present()

	if e.frameCallback != nil {
		e.frameCallback(deltaTime)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
	return drawErr
}

// StatusTitle formats the window title for the camera's current view.
//
// Parameters:
//   - base: the configured window title
//   - ctrl: the camera controller to describe
//
// Returns:
//   - string: the title, e.g. "oxy-cube | isometric view | zoom 3"
func StatusTitle(base string, ctrl camera.CameraController) string {
	return base + " | " + camera.Status(ctrl)
}

// refreshTitle shows the first active camera's view and zoom in the window title.
func (e *engine) refreshTitle() {
	if e.window == nil {
		return
	}
	controllers := e.activeControllers()
	if len(controllers) == 0 {
		return
	}
	e.window.SetTitle(StatusTitle(e.baseTitle, controllers[0]))
}

// SetFrameCallback registers the function called after each rendered frame.
func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

// QuitAfterFrames returns a frame callback that quits e once n frames have been presented.
//
// Parameters:
//   - e: the engine to stop
//   - n: the number of frames to render, at least 1
//
// Returns:
//   - func(deltaTime float32): a callback for SetFrameCallback
func QuitAfterFrames(e Engine, n int) func(deltaTime float32) {
	frames := 0
	return func(float32) {
		frames++
		if frames >= n {
			e.Quit()
		}
	}
}

// frameDuration converts a frame rate cap into a minimum frame duration; 0 or less means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
