package choreo

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig describes a damped spring.
type SpringConfig struct {
	Stiffness float64 // spring constant k (100-500 typical)
	Damping   float64 // damping coefficient c (10-30 typical)
	Mass      float64 // 1 typical; values <= 0 are treated as 1
	Velocity  float64 // initial velocity
}

// SpringDefault is a smooth, lightly damped spring.
func SpringDefault() SpringConfig { return SpringConfig{Stiffness: 170, Damping: 26, Mass: 1} }

// SpringBouncy overshoots noticeably before settling.
func SpringBouncy() SpringConfig { return SpringConfig{Stiffness: 180, Damping: 12, Mass: 1} }

// SpringStiff is quick with minimal bounce.
func SpringStiff() SpringConfig { return SpringConfig{Stiffness: 400, Damping: 40, Mass: 1} }

// SpringGentle is slow and smooth.
func SpringGentle() SpringConfig { return SpringConfig{Stiffness: 120, Damping: 14, Mass: 1} }

// ParseSpring returns the named preset: default, bouncy, stiff or gentle.
func ParseSpring(name string) (SpringConfig, bool) {
	switch name {
	case "default", "":
		return SpringDefault(), true
	case "bouncy":
		return SpringBouncy(), true
	case "stiff":
		return SpringStiff(), true
	case "gentle":
		return SpringGentle(), true
	}
	return SpringDefault(), false
}

func (c SpringConfig) mass() float64 {
	if c.Mass <= 0 {
		return 1
	}
	return c.Mass
}

// springRestThreshold is the displacement and speed under which a spring
// snaps to its target.
const springRestThreshold = 0.001

// Spring integrates a damped harmonic oscillator with semi-implicit Euler
// steps. A new spring starts settled at its initial value; SetTarget wakes it.
type Spring struct {
	Current  float64
	Target   float64
	Velocity float64
	Config   SpringConfig

	settled bool
}

// NewSpring creates a settled spring resting at initial.
func NewSpring(initial float64, cfg SpringConfig) *Spring {
	return &Spring{
		Current:  initial,
		Target:   initial,
		Velocity: cfg.Velocity,
		Config:   cfg,
		settled:  true,
	}
}

// SetTarget moves the rest point and resumes integration.
func (s *Spring) SetTarget(target float64) {
	if s == nil {
		return
	}
	s.Target = target
	s.settled = false
}

// Update advances the spring by dt seconds and returns the new position.
// Once both displacement and velocity drop below the rest threshold the
// spring snaps to its target and stops integrating.
func (s *Spring) Update(dt float64) float64 {
	if s == nil {
		return 0
	}
	if s.settled {
		return s.Current
	}

	displacement := s.Current - s.Target
	springForce := -s.Config.Stiffness * displacement
	dampingForce := -s.Config.Damping * s.Velocity
	accel := (springForce + dampingForce) / s.Config.mass()

	s.Velocity += accel * dt
	s.Current += s.Velocity * dt

	if math.Abs(displacement) < springRestThreshold && math.Abs(s.Velocity) < springRestThreshold {
		s.settle()
	}
	return s.Current
}

func (s *Spring) settle() {
	s.Current = s.Target
	s.Velocity = 0
	s.settled = true
}

// Settled reports whether the spring is at rest. A nil spring is settled.
func (s *Spring) Settled() bool {
	return s == nil || s.settled
}

// HarmonicSpring has the same contract as Spring but advances with
// harmonica's closed-form damped oscillator, which stays stable at large
// time steps where explicit integration would blow up. Stiffness, damping
// and mass are mapped to angular frequency sqrt(k/m) and damping ratio
// c / (2*sqrt(k*m)).
type HarmonicSpring struct {
	Current  float64
	Target   float64
	Velocity float64
	Config   SpringConfig

	settled bool
	stepDT  float64
	spring  harmonica.Spring
}

// NewHarmonicSpring creates a settled analytic spring resting at initial.
func NewHarmonicSpring(initial float64, cfg SpringConfig) *HarmonicSpring {
	return &HarmonicSpring{
		Current:  initial,
		Target:   initial,
		Velocity: cfg.Velocity,
		Config:   cfg,
		settled:  true,
	}
}

// SetTarget moves the rest point and resumes integration.
func (s *HarmonicSpring) SetTarget(target float64) {
	if s == nil {
		return
	}
	s.Target = target
	s.settled = false
}

// Update advances the spring by dt seconds and returns the new position.
func (s *HarmonicSpring) Update(dt float64) float64 {
	if s == nil {
		return 0
	}
	if s.settled || dt <= 0 {
		return s.Current
	}
	// harmonica precomputes coefficients per step size; rebuild only when the
	// frame time changes.
	if dt != s.stepDT {
		m := s.Config.mass()
		k := math.Max(s.Config.Stiffness, 0)
		omega := math.Sqrt(k / m)
		zeta := 0.0
		if k > 0 {
			zeta = s.Config.Damping / (2 * math.Sqrt(k*m))
		}
		s.spring = harmonica.NewSpring(dt, omega, zeta)
		s.stepDT = dt
	}
	s.Current, s.Velocity = s.spring.Update(s.Current, s.Velocity, s.Target)

	if math.Abs(s.Current-s.Target) < springRestThreshold && math.Abs(s.Velocity) < springRestThreshold {
		s.Current = s.Target
		s.Velocity = 0
		s.settled = true
	}
	return s.Current
}

// Settled reports whether the spring is at rest. A nil spring is settled.
func (s *HarmonicSpring) Settled() bool {
	return s == nil || s.settled
}
