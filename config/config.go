package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-cube/common"
)

// Config holds the window, renderer, camera and snapshot settings of the viewer.
type Config struct {
	// Window
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// Renderer
	VSync      *bool   `json:"vsync"`
	MSAA       int     `json:"msaa"`
	Software   bool    `json:"software"`
	Profile    bool    `json:"profile"`
	FrameLimit float64 `json:"frame_limit"`
	// Frames quits the interactive viewer after this many frames; 0 runs until closed.
	Frames int `json:"frames"`

	// Camera
	RotationStep float64 `json:"rotation_step"`
	ZoomStep     float64 `json:"zoom_step"`
	Keys         string  `json:"keys"`

	// Snapshot
	Snapshot    string `json:"snapshot"`
	RenderSize  int    `json:"render_size"`
	Supersample int    `json:"supersample"`
	Workers     int    `json:"workers"`
	// Label stamps the view and zoom into snapshots and preview frames.
	Label bool `json:"label"`
	// Scale magnifies the preview window.
	Scale int `json:"scale"`
}

// Flags holds CLI flag values that override config file settings.
// Zero values and nil pointers mean the flag was not given.
type Flags struct {
	Title       string
	Width       int
	Height      int
	VSync       *bool
	MSAA        int
	Software    *bool
	Profile     *bool
	Label       *bool
	FrameLimit  float64
	Frames      int
	Keys        string
	Snapshot    string
	RenderSize  int
	Supersample int
	Workers     int
	Scale       int
}

const (
	DefaultTitle        = "oxy-cube"
	DefaultWidth        = 800
	DefaultHeight       = 800
	DefaultMSAA         = 4
	DefaultRotationStep = 0.1
	DefaultZoomStep     = 0.1
	DefaultRenderSize   = 512
	DefaultSupersample  = 2
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI flags over the file values, then fills every empty field with its default.
func (c *Config) Resolve(flags Flags) {
	c.Title = common.Coalesce(flags.Title, c.Title, DefaultTitle)
	c.Keys = common.Coalesce(flags.Keys, c.Keys)
	c.Snapshot = common.Coalesce(flags.Snapshot, c.Snapshot)
	c.FrameLimit = common.Coalesce(flags.FrameLimit, c.FrameLimit)

	if flags.VSync != nil {
		v := *flags.VSync
		c.VSync = &v
	}
	if flags.Software != nil {
		c.Software = *flags.Software
	}
	if flags.Profile != nil {
		c.Profile = *flags.Profile
	}
	if flags.Label != nil {
		c.Label = *flags.Label
	}

	c.Width = positiveOr(flags.Width, c.Width, DefaultWidth)
	c.Height = positiveOr(flags.Height, c.Height, DefaultHeight)
	c.MSAA = positiveOr(flags.MSAA, c.MSAA, DefaultMSAA)
	c.RenderSize = positiveOr(flags.RenderSize, c.RenderSize, DefaultRenderSize)
	c.Supersample = positiveOr(flags.Supersample, c.Supersample, DefaultSupersample)
	c.Workers = positiveOr(flags.Workers, c.Workers, runtime.NumCPU())
	c.Scale = positiveOr(flags.Scale, c.Scale, 1)
	c.Frames = positiveOr(flags.Frames, c.Frames)

	if c.VSync == nil {
		v := true
		c.VSync = &v
	}
	if c.RotationStep <= 0 {
		c.RotationStep = DefaultRotationStep
	}
	if c.ZoomStep <= 0 {
		c.ZoomStep = DefaultZoomStep
	}
	if c.FrameLimit < 0 {
		c.FrameLimit = 0
	}
}

// VSyncEnabled reports the resolved vsync setting; an unresolved config counts as enabled.
func (c Config) VSyncEnabled() bool {
	return c.VSync == nil || *c.VSync
}

func positiveOr(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
