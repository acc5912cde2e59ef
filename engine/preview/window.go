package preview

import (
	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// repeatDelay is how many ticks a key must be held before it starts repeating.
	repeatDelay = 24
	// repeatInterval is the number of ticks between repeats.
	repeatInterval = 4
)

// keyBinding pairs an ebiten key with the virtual key code the camera understands.
type keyBinding struct {
	key    ebiten.Key
	code   uint32
	repeat bool
}

// keyBindings lists the keys the preview forwards. Rotation and zoom repeat while held.
var keyBindings = []keyBinding{
	{ebiten.KeyT, common.KeyT, false},
	{ebiten.KeyL, common.KeyL, false},
	{ebiten.KeyF, common.KeyF, false},
	{ebiten.KeyI, common.KeyI, false},
	{ebiten.KeyA, common.KeyA, true},
	{ebiten.KeyD, common.KeyD, true},
	{ebiten.KeyW, common.KeyW, true},
	{ebiten.KeyS, common.KeyS, true},
	{ebiten.KeySpace, common.KeySpace, false},
	{ebiten.KeyEscape, common.KeyEsc, false},
}

// fires reports whether a key held for duration ticks triggers on this tick.
func fires(duration int, repeat bool) bool {
	if duration == 1 {
		return true
	}
	return repeat && duration > repeatDelay && (duration-repeatDelay)%repeatInterval == 0
}

// game adapts a preview to ebiten's Game loop. ebiten calls Update and Draw on one goroutine.
type game struct {
	p *preview

	screen *ebiten.Image
	title  string
}

var _ ebiten.Game = &game{}

func (g *game) Update() error {
	for _, b := range keyBindings {
		if !fires(inpututil.KeyPressDuration(b.key), b.repeat) {
			continue
		}
		if g.p.HandleKey(b.code) {
			return ebiten.Termination
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.p.HandleScroll(float32(dy))
	}

	if title := g.p.Title(); title != g.title {
		ebiten.SetWindowTitle(title)
		g.title = title
	}

	_, err := g.p.Frame()
	return err
}

func (g *game) Draw(screen *ebiten.Image) {
	frame, err := g.p.Frame()
	if err != nil || frame == nil {
		return
	}
	b := frame.Bounds()
	if g.screen == nil || g.screen.Bounds().Dx() != b.Dx() || g.screen.Bounds().Dy() != b.Dy() {
		if g.screen != nil {
			g.screen.Deallocate()
		}
		g.screen = ebiten.NewImage(b.Dx(), b.Dy())
	}

	// Frames are opaque, so straight and premultiplied alpha agree.
	g.screen.WritePixels(frame.Pix)
	screen.DrawImage(g.screen, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.p.snap.Size()
	return size, size
}

func (p *preview) Run() error {
	g := &game{p: p, title: p.Title()}
	defer p.snap.Release()

	size := p.snap.Size() * p.scale
	ebiten.SetWindowTitle(g.title)
	ebiten.SetWindowSize(size, size)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(p.vsync)
	ebiten.SetTPS(p.tps)

	// RunGame returns nil when Update returns ebiten.Termination.
	return ebiten.RunGame(g)
}
