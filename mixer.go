package choreo

// LayerChannel pairs one property with the animation driving it.
type LayerChannel struct {
	Prop Property
	Anim *Animation
}

// Layer is one weighted contribution to a Mixer.
type Layer struct {
	Name string
	// Weight in [0, 1].
	Weight float64
	// Additive layers add Weight*value on top of the override result instead
	// of blending toward their value.
	Additive bool
	// Mask limits which channels apply; zero applies all of them.
	Mask PropertyMask

	channels []LayerChannel
}

// Animate makes a drive property p on this layer and starts it. A second
// call for the same property replaces (and disposes) the earlier animation.
func (l *Layer) Animate(p Property, a *Animation) *Layer {
	if l == nil || a == nil || p >= propertyCount {
		return l
	}
	a.Start()
	for i := range l.channels {
		if l.channels[i].Prop == p {
			if l.channels[i].Anim != a {
				l.channels[i].Anim.Dispose()
			}
			l.channels[i].Anim = a
			return l
		}
	}
	l.channels = append(l.channels, LayerChannel{Prop: p, Anim: a})
	return l
}

// WithMask sets the property mask.
func (l *Layer) WithMask(props ...Property) *Layer {
	if l != nil {
		l.Mask = MaskOf(props...)
	}
	return l
}

// WithAdditive toggles additive blending.
func (l *Layer) WithAdditive(on bool) *Layer {
	if l != nil {
		l.Additive = on
	}
	return l
}

// Animation returns the animation driving p on this layer.
func (l *Layer) Animation(p Property) *Animation {
	for _, c := range l.channels {
		if c.Prop == p {
			return c.Anim
		}
	}
	return nil
}

// Channels returns the layer's channels. The slice MUST NOT be mutated.
func (l *Layer) Channels() []LayerChannel { return l.channels }

// Mixer blends ordered layers onto one target. For each property the layers
// touch, the result starts from the target's base value (read the first time
// the property is mixed); override layers then move it toward their value in
// insertion order by their weight, and additive layers add weight*value on
// top. The mixer is the only primitive meant to share a property between
// several animations.
type Mixer struct {
	target Target
	layers []*Layer

	base     [propertyCount]float64
	haveBase [propertyCount]bool
}

// NewMixer creates a mixer writing to t.
func NewMixer(t Target) *Mixer {
	return &Mixer{target: t}
}

// Target returns the mixed target.
func (m *Mixer) Target() Target { return m.target }

// AddLayer appends a layer with weight clamped to [0, 1]. Layer names are not
// required to be unique; lookups return the first match.
func (m *Mixer) AddLayer(name string, weight float64) *Layer {
	if m == nil {
		return nil
	}
	l := &Layer{Name: name, Weight: clamp01(weight)}
	m.layers = append(m.layers, l)
	return l
}

// Layer looks a layer up by name.
func (m *Mixer) Layer(name string) *Layer {
	if m == nil {
		return nil
	}
	for _, l := range m.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Layers returns the layers in blend order. The slice MUST NOT be mutated.
func (m *Mixer) Layers() []*Layer { return m.layers }

// SetWeight changes a layer's weight, clamped to [0, 1].
func (m *Mixer) SetWeight(name string, w float64) bool {
	l := m.Layer(name)
	if l == nil {
		return false
	}
	l.Weight = clamp01(w)
	return true
}

// RemoveLayer drops the named layer and disposes its animations.
func (m *Mixer) RemoveLayer(name string) bool {
	if m == nil {
		return false
	}
	for i, l := range m.layers {
		if l.Name != name {
			continue
		}
		for _, c := range l.channels {
			c.Anim.Dispose()
		}
		m.layers = append(m.layers[:i], m.layers[i+1:]...)
		return true
	}
	return false
}

// ResetBase forgets captured base values so the next Update re-reads them
// from the target.
func (m *Mixer) ResetBase() {
	if m != nil {
		m.haveBase = [propertyCount]bool{}
	}
}

// Update advances every layer's animations by dt and writes the mixed values.
func (m *Mixer) Update(dt float64) {
	if m == nil {
		return
	}
	var touched PropertyMask
	for _, l := range m.layers {
		for _, c := range l.channels {
			c.Anim.Update(dt)
			if l.Mask.Has(c.Prop) {
				touched |= 1 << c.Prop
			}
		}
	}
	if touched == 0 || targetGone(m.target) {
		return
	}
	for p := Property(0); p < propertyCount; p++ {
		if touched&(1<<p) == 0 {
			continue
		}
		m.target.Apply(p, m.mix(p))
	}
}

// Value returns the mixed value of p without advancing anything.
func (m *Mixer) Value(p Property) float64 {
	if m == nil || p >= propertyCount || targetGone(m.target) {
		return 0
	}
	return m.mix(p)
}

func (m *Mixer) mix(p Property) float64 {
	if !m.haveBase[p] {
		m.base[p] = m.target.Read(p)
		m.haveBase[p] = true
	}
	result := m.base[p]
	add := 0.0
	for _, l := range m.layers {
		if !l.Mask.Has(p) {
			continue
		}
		a := l.Animation(p)
		if a == nil || a.disposed {
			continue
		}
		if l.Additive {
			add += l.Weight * a.Current
			continue
		}
		result = lerp(result, a.Current, l.Weight)
	}
	return result + add
}
