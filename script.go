package choreo

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// NodeSpec describes a node's initial properties. Unset fields keep the
// NewNode defaults.
type NodeSpec struct {
	Name         string    `yaml:"name"`
	X            float64   `yaml:"x"`
	Y            float64   `yaml:"y"`
	Width        float64   `yaml:"width"`
	Height       float64   `yaml:"height"`
	Opacity      *float64  `yaml:"opacity"`
	Scale        *float64  `yaml:"scale"`
	Rotation     float64   `yaml:"rotation"`
	CornerRadius float64   `yaml:"cornerRadius"`
	Color        []float64 `yaml:"color"`
}

// KeySpec is one keyframe.
type KeySpec struct {
	Time   float64 `yaml:"time"`
	Value  float64 `yaml:"value"`
	Easing string  `yaml:"easing"`
}

// AnimSpec describes one animation bound to a node property. A preset, a
// spring or keyframes replace the from/to tween.
type AnimSpec struct {
	Node        string    `yaml:"node"`
	Property    string    `yaml:"property"`
	From        *float64  `yaml:"from"`
	To          float64   `yaml:"to"`
	Duration    float64   `yaml:"duration"`
	Delay       float64   `yaml:"delay"`
	Easing      string    `yaml:"easing"`
	Bezier      []float64 `yaml:"bezier"`
	Repeat      int       `yaml:"repeat"`
	AutoReverse bool      `yaml:"autoReverse"`
	Spring      string    `yaml:"spring"`
	Preset      string    `yaml:"preset"`
	Keyframes   []KeySpec `yaml:"keyframes"`
	Seconds     bool      `yaml:"seconds"`
}

// EntrySpec places an animation on a timeline track.
type EntrySpec struct {
	AnimSpec `yaml:",inline"`
	Start    float64 `yaml:"start"`
	Length   float64 `yaml:"length"`
	Label    string  `yaml:"label"`
}

// TrackSpec describes one timeline track.
type TrackSpec struct {
	Name    string      `yaml:"name"`
	Weight  *float64    `yaml:"weight"`
	Muted   bool        `yaml:"muted"`
	Solo    bool        `yaml:"solo"`
	Entries []EntrySpec `yaml:"entries"`
}

// TimelineSpec describes a timeline.
type TimelineSpec struct {
	Name     string             `yaml:"name"`
	Duration float64            `yaml:"duration"`
	Loop     bool               `yaml:"loop"`
	PingPong bool               `yaml:"pingPong"`
	Reversed bool               `yaml:"reversed"`
	Speed    *float64           `yaml:"speed"`
	Markers  map[string]float64 `yaml:"markers"`
	Tracks   []TrackSpec        `yaml:"tracks"`
}

// StepSpec is one sequence step; exactly one field is set.
type StepSpec struct {
	Animate  *AnimSpec  `yaml:"animate"`
	Wait     float64    `yaml:"wait"`
	Parallel []AnimSpec `yaml:"parallel"`
}

// SequenceSpec describes a sequence.
type SequenceSpec struct {
	Name  string     `yaml:"name"`
	Steps []StepSpec `yaml:"steps"`
}

// GroupSpec describes a parallel group.
type GroupSpec struct {
	Name       string     `yaml:"name"`
	WaitForAll *bool      `yaml:"waitForAll"`
	Animations []AnimSpec `yaml:"animations"`
}

// StateSpec is one state machine state.
type StateSpec struct {
	Name      string   `yaml:"name"`
	Loop      bool     `yaml:"loop"`
	Animation AnimSpec `yaml:"animation"`
}

// TransitionSpec is one state machine transition.
type TransitionSpec struct {
	Name   string  `yaml:"name"`
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Blend  float64 `yaml:"blend"`
	Easing string  `yaml:"easing"`
}

// MachineSpec describes a state machine writing one node property.
type MachineSpec struct {
	Name        string           `yaml:"name"`
	Node        string           `yaml:"node"`
	Property    string           `yaml:"property"`
	Initial     string           `yaml:"initial"`
	States      []StateSpec      `yaml:"states"`
	Transitions []TransitionSpec `yaml:"transitions"`
}

// Script is a declarative scene: nodes plus the animations that drive them.
type Script struct {
	// Duration is how long tools should run the scene; 0 lets them pick.
	Duration   float64        `yaml:"duration"`
	Nodes      []NodeSpec     `yaml:"nodes"`
	Animations []AnimSpec     `yaml:"animations"`
	Timelines  []TimelineSpec `yaml:"timelines"`
	Sequences  []SequenceSpec `yaml:"sequences"`
	Groups     []GroupSpec    `yaml:"groups"`
	Machines   []MachineSpec  `yaml:"machines"`
}

var errNoNodes = errors.New("no nodes")

// LoadScript parses a YAML scene script.
func LoadScript(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scene script: %w", err)
	}
	if len(sc.Nodes) == 0 {
		return nil, fmt.Errorf("parse scene script: %w", errNoNodes)
	}
	return &sc, nil
}

// LoadScriptFile reads and parses a YAML scene script from disk.
func LoadScriptFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene script: %w", err)
	}
	return LoadScript(data)
}

// Build creates a fresh Scene from the script. Timelines, sequences and
// groups are added to the choreographer and started; loose animations go to
// the scheduler. Calling Build again yields an independent scene.
func (sc *Script) Build() (*Scene, error) {
	s := NewScene()
	for i, ns := range sc.Nodes {
		if ns.Name == "" {
			return nil, fmt.Errorf("build scene: node %d: missing name", i)
		}
		if _, dup := s.Node(ns.Name); dup {
			return nil, fmt.Errorf("build scene: node %q: duplicate name", ns.Name)
		}
		n, err := ns.build()
		if err != nil {
			return nil, fmt.Errorf("build scene: node %q: %w", ns.Name, err)
		}
		s.AddNode(n)
	}

	for i, as := range sc.Animations {
		a, err := as.build(s)
		if err != nil {
			return nil, fmt.Errorf("build scene: animation %d: %w", i, err)
		}
		s.Animate(a)
	}
	for _, ts := range sc.Timelines {
		tl, err := ts.build(s)
		if err != nil {
			return nil, fmt.Errorf("build scene: timeline %q: %w", ts.Name, err)
		}
		s.Choreographer().AddTimeline(tl)
	}
	for _, ss := range sc.Sequences {
		seq, err := ss.build(s)
		if err != nil {
			return nil, fmt.Errorf("build scene: sequence %q: %w", ss.Name, err)
		}
		s.Choreographer().AddSequence(seq)
	}
	for _, gs := range sc.Groups {
		g, err := gs.build(s)
		if err != nil {
			return nil, fmt.Errorf("build scene: group %q: %w", gs.Name, err)
		}
		s.Choreographer().AddGroup(g)
	}
	for _, ms := range sc.Machines {
		m, err := ms.build(s)
		if err != nil {
			return nil, fmt.Errorf("build scene: machine %q: %w", ms.Name, err)
		}
		s.AddStateMachine(m)
	}
	s.Play()
	return s, nil
}

func (ns NodeSpec) build() (*Node, error) {
	n := NewNode(ns.Name)
	n.X, n.Y = ns.X, ns.Y
	n.Width, n.Height = ns.Width, ns.Height
	n.Rotation = ns.Rotation
	n.CornerRadius = ns.CornerRadius
	if ns.Opacity != nil {
		n.Opacity = *ns.Opacity
	}
	if ns.Scale != nil {
		n.Scale = *ns.Scale
	}
	switch len(ns.Color) {
	case 0:
	case 3, 4:
		n.Color = Color{R: ns.Color[0], G: ns.Color[1], B: ns.Color[2], A: 1}
		if len(ns.Color) == 4 {
			n.Color.A = ns.Color[3]
		}
	default:
		return nil, fmt.Errorf("color wants 3 or 4 components, got %d", len(ns.Color))
	}
	return n, nil
}

func parseEasing(name string) (Easing, error) {
	if name == "" {
		return EaseOut, nil
	}
	e, ok := ParseEasing(name)
	if !ok {
		return 0, fmt.Errorf("unknown easing %q", name)
	}
	return e, nil
}

func (as AnimSpec) build(s *Scene) (*Animation, error) {
	n, ok := s.Node(as.Node)
	if !ok {
		return nil, fmt.Errorf("unknown node %q", as.Node)
	}

	if as.Preset != "" {
		return as.preset(n)
	}

	p, ok := ParseProperty(as.Property)
	if !ok {
		return nil, fmt.Errorf("unknown property %q", as.Property)
	}
	from := n.Read(p)
	if as.From != nil {
		from = *as.From
	}

	var a *Animation
	switch {
	case len(as.Keyframes) > 0:
		k := NewKeyframes(as.Duration)
		if as.Seconds {
			k.UseSeconds()
		}
		for _, ks := range as.Keyframes {
			e := EaseLinear
			if ks.Easing != "" {
				var err error
				if e, err = parseEasing(ks.Easing); err != nil {
					return nil, fmt.Errorf("keyframe at %g: %w", ks.Time, err)
				}
			}
			k.Add(ks.Time, ks.Value, e)
		}
		a = &k.Animation
	case as.Spring != "":
		cfg, ok := ParseSpring(as.Spring)
		if !ok {
			return nil, fmt.Errorf("unknown spring preset %q", as.Spring)
		}
		a = NewSpringAnimation(from, as.To, cfg)
	default:
		e, err := parseEasing(as.Easing)
		if err != nil {
			return nil, err
		}
		a = NewAnimation(from, as.To, as.Duration).WithEasing(e)
	}

	switch len(as.Bezier) {
	case 0:
	case 4:
		a.WithEase(Bezier(as.Bezier[0], as.Bezier[1], as.Bezier[2], as.Bezier[3]))
	default:
		return nil, fmt.Errorf("bezier wants 4 control values, got %d", len(as.Bezier))
	}
	a.WithDelay(as.Delay).WithRepeat(as.Repeat).WithAutoReverse(as.AutoReverse)
	return a.Bind(n, p), nil
}

func (as AnimSpec) preset(n *Node) (*Animation, error) {
	var a *Animation
	switch as.Preset {
	case "fadeIn":
		a = FadeIn(n, as.Duration)
	case "fadeOut":
		a = FadeOut(n, as.Duration)
	case "scaleIn":
		a = ScaleIn(n, as.Duration)
	case "scaleOut":
		a = ScaleOut(n, as.Duration)
	case "bounce":
		a = Bounce(n, as.Duration)
	case "shake":
		a = Shake(n, as.Duration)
	case "pulse":
		a = Pulse(n, as.Duration)
	default:
		return nil, fmt.Errorf("unknown preset %q", as.Preset)
	}
	return a.WithDelay(as.Delay), nil
}

func (ts TimelineSpec) build(s *Scene) (*Timeline, error) {
	tl := NewTimeline(ts.Duration)
	tl.Name = ts.Name
	tl.Loop = ts.Loop
	tl.PingPong = ts.PingPong
	tl.Reversed = ts.Reversed
	if ts.Speed != nil {
		tl.SetSpeed(*ts.Speed)
	}
	for _, name := range slices.Sorted(maps.Keys(ts.Markers)) {
		tl.AddMarker(name, ts.Markers[name])
	}
	for _, trs := range ts.Tracks {
		tr := tl.AddTrack(trs.Name)
		if trs.Weight != nil {
			tr.Weight = *trs.Weight
		}
		tr.Muted = trs.Muted
		tr.Solo = trs.Solo
		for i, es := range trs.Entries {
			a, err := es.AnimSpec.build(s)
			if err != nil {
				return nil, fmt.Errorf("track %q entry %d: %w", trs.Name, i, err)
			}
			tr.Add(a, es.Start).WithDuration(es.Length).WithLabel(es.Label)
		}
	}
	return tl, nil
}

func (ss SequenceSpec) build(s *Scene) (*Sequence, error) {
	seq := NewSequence()
	seq.Name = ss.Name
	for i, st := range ss.Steps {
		switch {
		case st.Animate != nil:
			a, err := st.Animate.build(s)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			seq.Add(a)
		case len(st.Parallel) > 0:
			anims := make([]*Animation, 0, len(st.Parallel))
			for j, as := range st.Parallel {
				a, err := as.build(s)
				if err != nil {
					return nil, fmt.Errorf("step %d parallel %d: %w", i, j, err)
				}
				anims = append(anims, a)
			}
			seq.AddParallel(anims...)
		case st.Wait > 0:
			seq.Wait(st.Wait)
		default:
			return nil, fmt.Errorf("step %d: empty step", i)
		}
	}
	return seq, nil
}

func (gs GroupSpec) build(s *Scene) (*ParallelGroup, error) {
	g := NewParallelGroup()
	g.Name = gs.Name
	if gs.WaitForAll != nil {
		g.WaitForAll = *gs.WaitForAll
	}
	for i, as := range gs.Animations {
		a, err := as.build(s)
		if err != nil {
			return nil, fmt.Errorf("animation %d: %w", i, err)
		}
		g.Add(a)
	}
	return g, nil
}

func (ms MachineSpec) build(s *Scene) (*AnimStateMachine, error) {
	n, ok := s.Node(ms.Node)
	if !ok {
		return nil, fmt.Errorf("unknown node %q", ms.Node)
	}
	p, ok := ParseProperty(ms.Property)
	if !ok {
		return nil, fmt.Errorf("unknown property %q", ms.Property)
	}
	m := NewStateMachine()
	m.Name = ms.Name
	for _, st := range ms.States {
		spec := st.Animation
		if spec.Node == "" {
			spec.Node = ms.Node
		}
		if spec.Property == "" {
			spec.Property = ms.Property
		}
		a, err := spec.build(s)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", st.Name, err)
		}
		// the machine writes the node; its states only produce values
		a.Bind(nil, 0)
		m.AddState(st.Name, a, st.Loop)
	}
	for _, trs := range ms.Transitions {
		if _, ok := m.State(trs.From); !ok && trs.From != "*" {
			return nil, fmt.Errorf("transition from unknown state %q", trs.From)
		}
		if _, ok := m.State(trs.To); !ok {
			return nil, fmt.Errorf("transition to unknown state %q", trs.To)
		}
		e, err := parseEasing(trs.Easing)
		if err != nil {
			return nil, fmt.Errorf("transition %s->%s: %w", trs.From, trs.To, err)
		}
		m.AddTransition(trs.From, trs.To, trs.Blend, e).WithName(trs.Name)
	}
	if ms.Initial != "" && !m.SetState(ms.Initial) {
		return nil, fmt.Errorf("unknown initial state %q", ms.Initial)
	}
	m.Bind(n, p)
	return m, nil
}
