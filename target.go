package choreo

import "strings"

// Property identifies one animatable scalar on a Target.
type Property uint8

const (
	PropX            Property = iota // horizontal position
	PropY                            // vertical position
	PropWidth                        // frame width
	PropHeight                       // frame height
	PropOpacity                      // alpha in [0, 1]
	PropScale                        // uniform scale factor
	PropRotation                     // rotation in radians
	PropCornerRadius                 // rounded-corner radius
	PropColorR                       // red channel in [0, 1]
	PropColorG                       // green channel in [0, 1]
	PropColorB                       // blue channel in [0, 1]
	PropColorA                       // color alpha channel in [0, 1]

	propertyCount
)

var propertyNames = [propertyCount]string{
	"x", "y", "width", "height", "opacity", "scale", "rotation",
	"cornerRadius", "r", "g", "b", "a",
}

// String returns the property name used by scene scripts.
func (p Property) String() string {
	if p >= propertyCount {
		return "unknown"
	}
	return propertyNames[p]
}

// Properties returns every animatable property in declaration order.
func Properties() []Property {
	out := make([]Property, propertyCount)
	for i := range out {
		out[i] = Property(i)
	}
	return out
}

// ParseProperty looks up a property by name (case-insensitive).
func ParseProperty(name string) (Property, bool) {
	for i, n := range propertyNames {
		if strings.EqualFold(n, name) {
			return Property(i), true
		}
	}
	return 0, false
}

// PropertyMask is a bitset of Properties. The zero mask means "every
// property" wherever a mask is optional.
type PropertyMask uint32

// MaskAll selects every property.
const MaskAll PropertyMask = 1<<propertyCount - 1

// MaskOf builds a mask from the given properties.
func MaskOf(props ...Property) PropertyMask {
	var m PropertyMask
	for _, p := range props {
		m |= 1 << p
	}
	return m
}

// Has reports whether p is selected. The zero mask selects everything.
func (m PropertyMask) Has(p Property) bool {
	if m == 0 {
		return p < propertyCount
	}
	return m&(1<<p) != 0
}

// Target receives interpolated values. The view system implements it; the
// engine only writes through Apply and reads base values through Read.
type Target interface {
	Apply(p Property, v float64)
	Read(p Property) float64
}

// disposable is implemented by targets that can go away underneath a running
// animation. Writers check it before applying.
type disposable interface {
	IsDisposed() bool
}

func targetGone(t Target) bool {
	if t == nil {
		return true
	}
	if d, ok := t.(disposable); ok {
		return d.IsDisposed()
	}
	return false
}
