package weave

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// App is the application side of the frame loop: Update submits editor
// content between BeginEditor and End, Draw renders it.
type App interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// RunConfig configures the window Run opens.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ClearColor fills the screen before the app draws. The zero value
	// is opaque black.
	ClearColor Color
	// ShowFPS overlays an FPS/TPS readout in the top-left corner.
	ShowFPS bool
}

// game adapts an App to ebiten.Game.
type game struct {
	app App
	cfg RunConfig
}

func (g *game) Update() error {
	return g.app.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor.RGBA())
	g.app.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen,
			fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives the app's frame loop until it returns an
// error or the window closes.
func Run(app App, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "weave"
	}
	if cfg.ClearColor.A == 0 {
		cfg.ClearColor = Color{R: 0.1, G: 0.1, B: 0.11, A: 1}
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{app: app, cfg: cfg})
}
