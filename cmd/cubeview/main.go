package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-cube/config"
	"github.com/Carmen-Shannon/oxy-cube/engine"
	"github.com/Carmen-Shannon/oxy-cube/engine/camera"
	"github.com/Carmen-Shannon/oxy-cube/engine/model"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer"
	"github.com/Carmen-Shannon/oxy-cube/engine/scene"
	"github.com/Carmen-Shannon/oxy-cube/engine/snapshot"
	"github.com/Carmen-Shannon/oxy-cube/engine/window"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	title := flag.String("title", "", "Window title (default: oxy-cube)")
	width := flag.Int("width", 0, "Window width in pixels (default: 800)")
	height := flag.Int("height", 0, "Window height in pixels (default: 800)")
	vsync := flag.Bool("vsync", true, "Synchronize presentation with the display refresh")
	msaa := flag.Int("msaa", 0, "MSAA sample count 1, 4, 8 or 16 (default: 4)")
	software := flag.Bool("software", false, "Force the software (fallback) GPU adapter")
	profile := flag.Bool("profile", false, "Log FPS and memory once per second")
	label := flag.Bool("label", false, "Stamp the view and zoom into the snapshot")
	frameLimit := flag.Float64("fps", 0, "Frame rate cap, 0 for none")
	frames := flag.Int("frames", 0, "Quit after this many frames, 0 to run until closed")
	keys := flag.String("keys", "", "Key sequence replayed before the first frame, e.g. \"iww\"")
	snapshotPath := flag.String("snapshot", "", "Render headless to this file (.webp, .png or .tga) and exit")
	size := flag.Int("size", 0, "Snapshot edge length in pixels (default: 512)")
	supersample := flag.Int("supersample", 0, "Snapshot supersampling factor (default: 2)")
	workers := flag.Int("workers", 0, "Snapshot rasterizer workers (default: NumCPU)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file; bools only when given explicitly
	flags := config.Flags{
		Title:       *title,
		Width:       *width,
		Height:      *height,
		MSAA:        *msaa,
		FrameLimit:  *frameLimit,
		Frames:      *frames,
		Keys:        *keys,
		Snapshot:    *snapshotPath,
		RenderSize:  *size,
		Supersample: *supersample,
		Workers:     *workers,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "vsync":
			flags.VSync = vsync
		case "software":
			flags.Software = software
		case "profile":
			flags.Profile = profile
		case "label":
			flags.Label = label
		}
	})
	cfg.Resolve(flags)

	ctrl := camera.NewCameraController(
		camera.WithRotationStep(cfg.RotationStep),
		camera.WithZoomStep(cfg.ZoomStep),
	)
	for _, err := range camera.Replay(ctrl, cfg.Keys) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	var err error
	if cfg.Snapshot != "" {
		err = renderSnapshot(cfg, ctrl)
	} else {
		err = runInteractive(cfg, ctrl)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, engine.ErrSetupFailure) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// renderSnapshot draws the cube on the CPU through the controller's current transform and writes it to cfg.Snapshot.
func renderSnapshot(cfg config.Config, ctrl camera.CameraController) error {
	viewProj, err := camera.BuildViewProjection(ctrl.State())
	if err != nil {
		return err
	}

	start := time.Now()
	s := snapshot.NewSnapshotter(
		snapshot.WithSize(cfg.RenderSize),
		snapshot.WithSupersample(cfg.Supersample),
		snapshot.WithWorkers(cfg.Workers),
	)
	defer s.Release()
	img, err := s.Render(viewProj, model.Cube())
	if err != nil {
		return fmt.Errorf("render snapshot: %w", err)
	}
	if cfg.Label {
		snapshot.Annotate(img, camera.Status(ctrl), color.RGBA{R: 230, G: 230, B: 230, A: 255})
	}
	if err := snapshot.WriteFile(cfg.Snapshot, img); err != nil {
		return err
	}

	fmt.Printf("%s view, zoom %d: %s (%dx%d, %.1fms)\n",
		ctrl.Mode(), ctrl.ZoomLevel(), cfg.Snapshot,
		img.Bounds().Dx(), img.Bounds().Dy(), float64(time.Since(start).Microseconds())/1000)
	return nil
}

// runInteractive opens the window and runs the frame loop until the window closes.
func runInteractive(cfg config.Config, ctrl camera.CameraController) error {
	sampleCount, err := renderer.ParseMSAA(cfg.MSAA)
	if err != nil {
		return err
	}

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Title),
		window.WithWidth(cfg.Width),
		window.WithHeight(cfg.Height),
		window.WithResizable(true),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", engine.ErrSetupFailure, err)
	}
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithMSAA(sampleCount),
		renderer.WithPresentMode(renderer.PresentModeFor(cfg.VSyncEnabled())),
		renderer.WithForceSoftwareRenderer(cfg.Software),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", engine.ErrSetupFailure, err)
	}
	defer r.Release()

	// ── Scene ───────────────────────────────────────────────────────────
	cube, err := model.NewModel()
	if err != nil {
		return err
	}
	cam := camera.NewCamera(camera.WithController(ctrl))
	sc, err := scene.NewScene("cube", cam, r, cube, scene.WithActive(true))
	if err != nil {
		return fmt.Errorf("%w: %w", engine.ErrSetupFailure, err)
	}
	defer sc.Release()

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(0, sc),
		engine.WithProfiling(cfg.Profile),
		engine.WithRenderFrameLimit(cfg.FrameLimit),
	)
	if cfg.Frames > 0 {
		eng.SetFrameCallback(engine.QuitAfterFrames(eng, cfg.Frames))
	}

	log.Printf("[Main] T/L/F/I views, A/D rotate, W/S or scroll zoom, Space reset, Esc quit")
	return eng.Run()
}
