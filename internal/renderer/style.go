package renderer

// Attribute represents text emphasis flags (bold, dim).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim            // Faint/dim text
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// String returns a short name for the attribute set.
func (a Attribute) String() string {
	switch {
	case a.Has(AttrBold) && a.Has(AttrDim):
		return "bold|dim"
	case a.Has(AttrBold):
		return "bold"
	case a.Has(AttrDim):
		return "dim"
	default:
		return "none"
	}
}

// StyleToken is an opaque handle to a style registered with a display
// surface. Token 0 is the surface's default style.
type StyleToken int

// StyleDefault is the token of the surface's default style.
const StyleDefault StyleToken = 0

// IsDefault returns true for the default style token.
func (t StyleToken) IsDefault() bool {
	return t == StyleDefault
}
