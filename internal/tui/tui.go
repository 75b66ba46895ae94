// Package tui drives a choreo scene from a bubbletea program and renders
// node properties as terminal bars.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/choreo"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorDim   = lipgloss.Color("240")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	nodeStyle  = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	trackStyle = lipgloss.NewStyle().Foreground(colorDim)
	dimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	errStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

const barWidth = 32

// Options configures a Model.
type Options struct {
	FPS   int
	Speed float64
	// Width and Height are the scene's logical bounds, used to scale the x
	// and y bars.
	Width, Height float64
	// Duration restarts the scene after this many seconds; 0 never restarts.
	Duration float64
}

type tickMsg time.Time

// Model is the bubbletea model. Space pauses, r restarts, q quits.
type Model struct {
	build func() (*choreo.Scene, error)
	opts  Options

	scene  *choreo.Scene
	paused bool
	err    error
}

// New creates a model that builds its scene with build, again on every
// restart.
func New(build func() (*choreo.Scene, error), opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	m := Model{build: build, opts: opts}
	m.scene, m.err = build()
	return m
}

// Scene returns the scene being driven.
func (m Model) Scene() *choreo.Scene { return m.scene }

// Paused reports whether playback is paused.
func (m Model) Paused() bool { return m.paused }

func (m Model) frameTime() time.Duration {
	return time.Second / time.Duration(m.opts.FPS)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frameTime(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "space":
			m.paused = !m.paused
		case "r":
			m.scene, m.err = m.build()
		}
	case tickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

// step advances the scene by one fixed frame.
func (m *Model) step() {
	if m.paused || m.scene == nil {
		return
	}
	m.scene.Update(m.frameTime().Seconds() * m.opts.Speed)
	if m.opts.Duration > 0 && m.scene.Time() >= m.opts.Duration {
		m.scene, m.err = m.build()
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("choreo watch"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("space pause  r restart  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if m.scene == nil {
		return b.String()
	}

	state := "playing"
	if m.paused {
		state = "paused"
	}
	fmt.Fprintf(&b, "%s  t=%.2fs  frame %d\n\n",
		dimStyle.Render(state), m.scene.Time(), m.scene.Frame())

	for _, n := range m.scene.Nodes() {
		b.WriteString(nodeStyle.Render(n.Name))
		b.WriteString("\n")
		for _, r := range m.rows(n) {
			fmt.Fprintf(&b, "  %-9s %s %8.2f\n", r.label, Bar(r.value, r.lo, r.hi, barWidth), r.value)
		}
	}
	return b.String()
}

type row struct {
	label  string
	value  float64
	lo, hi float64
}

func (m Model) rows(n *choreo.Node) []row {
	w, h := m.opts.Width, m.opts.Height
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 480
	}
	return []row{
		{"x", n.X, 0, w},
		{"y", n.Y, 0, h},
		{"opacity", n.Opacity, 0, 1},
		{"scale", n.Scale, 0, 2},
		{"rotation", n.Rotation, -math.Pi, math.Pi},
	}
}

// Bar renders v within [lo, hi] as a filled bar of the given width.
// Out-of-range values are clamped.
func Bar(v, lo, hi float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac := 0.0
	if hi > lo {
		frac = (v - lo) / (hi - lo)
	}
	frac = math.Max(0, math.Min(1, frac))
	filled := int(math.Round(frac * float64(width)))
	return barStyle.Render(strings.Repeat("█", filled)) +
		trackStyle.Render(strings.Repeat("░", width-filled))
}
