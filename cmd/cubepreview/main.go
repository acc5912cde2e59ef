package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-cube/config"
	"github.com/Carmen-Shannon/oxy-cube/engine/camera"
	"github.com/Carmen-Shannon/oxy-cube/engine/preview"
	"github.com/Carmen-Shannon/oxy-cube/engine/snapshot"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	title := flag.String("title", "", "Window title (default: oxy-cube)")
	vsync := flag.Bool("vsync", true, "Synchronize presentation with the display refresh")
	label := flag.Bool("label", false, "Stamp the view and zoom into every frame")
	keys := flag.String("keys", "", "Key sequence replayed before the first frame, e.g. \"iww\"")
	size := flag.Int("size", 0, "Frame edge length in pixels (default: 512)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 2)")
	workers := flag.Int("workers", 0, "Rasterizer workers (default: NumCPU)")
	scale := flag.Int("scale", 0, "Window magnification (default: 1)")

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

	// CLI flags override config file
	flags := config.Flags{
		Title:       *title,
		Keys:        *keys,
		RenderSize:  *size,
		Supersample: *supersample,
		Workers:     *workers,
		Scale:       *scale,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "vsync":
			flags.VSync = vsync
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

	p := preview.NewPreview(ctrl,
		preview.WithTitle(cfg.Title),
		preview.WithScale(cfg.Scale),
		preview.WithVSync(cfg.VSyncEnabled()),
		preview.WithLabel(cfg.Label),
		preview.WithSnapshotter(snapshot.NewSnapshotter(
			snapshot.WithSize(cfg.RenderSize),
			snapshot.WithSupersample(cfg.Supersample),
			snapshot.WithWorkers(cfg.Workers),
			snapshot.WithBackground(color.NRGBA{R: 26, G: 26, B: 26, A: 255}),
		)),
	)

	log.Printf("[Main] T/L/F/I views, A/D rotate, W/S or scroll zoom, Space reset, Esc quit")
	if err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
