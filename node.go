package choreo

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default node color.
var ColorWhite = Color{1, 1, 1, 1}

// Lerp interpolates each channel toward o by t.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: lerp(c.R, o.R, t),
		G: lerp(c.G, o.G, t),
		B: lerp(c.B, o.B, t),
		A: lerp(c.A, o.A, t),
	}
}

// nodeIDCounter is a plain counter (no atomic; choreo is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a flat, concrete Target: the minimal stand-in for a view that the
// engine animates. Renderers (the play and watch frontends) read its fields
// directly after each Scene.Update.
type Node struct {
	ID   uint32
	Name string

	X, Y          float64
	Width, Height float64
	Opacity       float64
	Scale         float64
	Rotation      float64
	CornerRadius  float64
	Color         Color

	// UserData is free for the application.
	UserData any

	dirty    bool
	disposed bool
}

// NewNode creates a node with opacity, scale and color at their identity
// values.
func NewNode(name string) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		Opacity: 1,
		Scale:   1,
		Color:   ColorWhite,
		dirty:   true,
	}
}

// Apply writes v to property p and marks the node dirty. Writes to a
// disposed node are dropped.
func (n *Node) Apply(p Property, v float64) {
	if n == nil || n.disposed {
		return
	}
	if f := n.field(p); f != nil {
		*f = v
		n.dirty = true
	}
}

// Read returns the current value of property p, or 0 for unknown properties.
func (n *Node) Read(p Property) float64 {
	if n == nil {
		return 0
	}
	if f := n.field(p); f != nil {
		return *f
	}
	return 0
}

func (n *Node) field(p Property) *float64 {
	switch p {
	case PropX:
		return &n.X
	case PropY:
		return &n.Y
	case PropWidth:
		return &n.Width
	case PropHeight:
		return &n.Height
	case PropOpacity:
		return &n.Opacity
	case PropScale:
		return &n.Scale
	case PropRotation:
		return &n.Rotation
	case PropCornerRadius:
		return &n.CornerRadius
	case PropColorR:
		return &n.Color.R
	case PropColorG:
		return &n.Color.G
	case PropColorB:
		return &n.Color.B
	case PropColorA:
		return &n.Color.A
	}
	return nil
}

// MarkDirty flags the node for redraw.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// Dirty reports whether the node changed since the last ClearDirty.
func (n *Node) Dirty() bool {
	return n.dirty
}

// ClearDirty resets the dirty flag; renderers call it after drawing.
func (n *Node) ClearDirty() {
	n.dirty = false
}

// Dispose marks the node as gone. Animations bound to it stop writing and
// TweenGroups targeting it finish immediately.
func (n *Node) Dispose() {
	n.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (n *Node) IsDisposed() bool {
	return n.disposed
}
