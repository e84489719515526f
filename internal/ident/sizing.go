package ident

import "fmt"

// Sizing bounds the element count of a variable-size collection type.
type Sizing struct {
	Min uint16
	Max uint16
}

// Common sizings.
var (
	SizingU8         = Sizing{Min: 0, Max: 255}
	SizingU16        = Sizing{Min: 0, Max: 65535}
	SizingU8NonEmpty = Sizing{Min: 1, Max: 255}
)

// NewSizing returns a Sizing with the given bounds.
func NewSizing(min, max uint16) Sizing { return Sizing{Min: min, Max: max} }

func (s Sizing) String() string {
	switch {
	case s.Min == 0 && s.Max == 65535:
		return ""
	case s.Max == 65535:
		return fmt.Sprintf(" ^ %d..", s.Min)
	default:
		return fmt.Sprintf(" ^ %d..%#04x", s.Min, s.Max)
	}
}

// Size measures a type's encoded size in bytes.
type Size struct {
	fixed    uint16
	variable bool
}

// FixedSize reports a size known at definition time.
func FixedSize(n uint16) Size { return Size{fixed: n} }

// VariableSize reports a size that depends on the value.
func VariableSize() Size { return Size{variable: true} }

// IsVariable reports whether the size depends on the value.
func (s Size) IsVariable() bool { return s.variable }

// Fixed returns the fixed byte size; it is meaningful only when
// IsVariable reports false.
func (s Size) Fixed() uint16 { return s.fixed }

// Add combines two sizes: any variable operand makes the sum variable.
func (s Size) Add(other Size) Size {
	if s.variable || other.variable {
		return VariableSize()
	}
	return FixedSize(s.fixed + other.fixed)
}

func (s Size) String() string {
	if s.variable {
		return "variable"
	}
	return fmt.Sprintf("%d", s.fixed)
}
