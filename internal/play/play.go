// Package play drives a choreo scene in an ebiten window, drawing each node
// as a tinted rectangle.
package play

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/choreo"
)

// defaultNodeSize is used for nodes that have no width or height.
const defaultNodeSize = 32

// Config describes the window and playback rate.
type Config struct {
	Title   string
	Width   int
	Height  int
	Speed   float64
	ShowFPS bool
	// Duration restarts the scene after this many seconds; 0 never restarts.
	Duration float64
	// Background is the clear color.
	Background choreo.Color
}

// errQuit ends RunGame without being reported as a failure.
var errQuit = errors.New("quit")

// Game implements ebiten.Game over a rebuildable scene. Space pauses, R
// restarts, Escape quits.
type Game struct {
	build func() (*choreo.Scene, error)
	cfg   Config

	scene  *choreo.Scene
	paused bool

	fpsElapsed float64
	fpsText    string
}

// NewGame builds the first scene and returns a game ready for ebiten.RunGame.
func NewGame(build func() (*choreo.Scene, error), cfg Config) (*Game, error) {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Speed <= 0 {
		cfg.Speed = 1
	}
	scene, err := build()
	if err != nil {
		return nil, err
	}
	return &Game{build: build, cfg: cfg, scene: scene}, nil
}

// Scene returns the scene being driven.
func (g *Game) Scene() *choreo.Scene { return g.scene }

// Step advances the scene by dt seconds of wall time, scaled by the
// configured speed, and restarts it once it has run its duration.
func (g *Game) Step(dt float64) error {
	if g.paused {
		return nil
	}
	g.scene.Update(dt * g.cfg.Speed)
	if g.cfg.Duration > 0 && g.scene.Time() >= g.cfg.Duration {
		return g.restart()
	}
	return nil
}

func (g *Game) restart() error {
	scene, err := g.build()
	if err != nil {
		return err
	}
	g.scene = scene
	return nil
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return errQuit
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.restart(); err != nil {
			return err
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.updateFPS(dt)
	return g.Step(dt)
}

// updateFPS refreshes the overlay text about twice a second.
func (g *Game) updateFPS(dt float64) {
	if !g.cfg.ShowFPS {
		return
	}
	g.fpsElapsed += dt
	if g.fpsElapsed < 0.5 && g.fpsText != "" {
		return
	}
	g.fpsElapsed = 0
	g.fpsText = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (g *Game) Draw(screen *ebiten.Image) {
	bg := g.cfg.Background
	screen.Fill(color.RGBA{
		R: uint8(bg.R * 255),
		G: uint8(bg.G * 255),
		B: uint8(bg.B * 255),
		A: 255,
	})

	for _, n := range g.scene.Nodes() {
		if n.IsDisposed() {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		nodeGeoM(&op.GeoM, n)
		r, gr, b, a := nodeColor(n)
		op.ColorScale.Scale(r*a, gr*a, b*a, a)
		screen.DrawImage(whiteImage(), op)
	}

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, g.fpsText)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// nodeGeoM maps the unit pixel onto the node's rectangle: sized, scaled and
// rotated about its centre, then placed with its centre at (X, Y).
func nodeGeoM(m *ebiten.GeoM, n *choreo.Node) {
	w, h := n.Width, n.Height
	if w <= 0 {
		w = defaultNodeSize
	}
	if h <= 0 {
		h = defaultNodeSize
	}
	m.Reset()
	m.Translate(-0.5, -0.5)
	m.Scale(w*n.Scale, h*n.Scale)
	m.Rotate(n.Rotation)
	m.Translate(n.X, n.Y)
}

// nodeColor returns the node's straight-alpha color with opacity folded into
// alpha, clamped to [0, 1].
func nodeColor(n *choreo.Node) (r, g, b, a float32) {
	c := n.Color
	return unit(c.R), unit(c.G), unit(c.B), unit(c.A * n.Opacity)
}

func unit(v float64) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return float32(v)
}

// white pixel singleton (no sync.Once; ebiten calls Draw from one goroutine)
var white *ebiten.Image

func whiteImage() *ebiten.Image {
	if white == nil {
		white = ebiten.NewImage(1, 1)
		white.Fill(color.White)
	}
	return white
}

// Run opens the window and plays until it is closed or Escape is pressed.
func Run(build func() (*choreo.Scene, error), cfg Config) error {
	g, err := NewGame(build, cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}
