package domain

// ElementKind discriminates the closed set of element variants.
type ElementKind string

// Element kinds. The set is closed: the evaluator and the format policies
// switch exhaustively over it, so adding a kind is a compile-time-checked,
// localized change.
const (
	// KindColor is a raw stored color with no dependencies.
	KindColor ElementKind = "color"
	// KindRampStep is one step of an interpolated ramp. It depends on the
	// two endpoint addresses and evaluates to the blend at its fraction.
	KindRampStep ElementKind = "ramp-step"
)

// Element is a tagged variant stored at one address of the palette.
// Exactly one of the variant payloads is meaningful, selected by Kind.
type Element struct {
	Kind ElementKind `json:"kind" yaml:"kind"`

	// Color payload (KindColor).
	Color Color `json:"color,omitempty" yaml:"color,omitempty"`

	// Ramp step payload (KindRampStep).
	From     Address    `json:"from,omitempty" yaml:"from,omitempty"`
	To       Address    `json:"to,omitempty" yaml:"to,omitempty"`
	Fraction float64    `json:"fraction,omitempty" yaml:"fraction,omitempty"`
	Space    BlendSpace `json:"space,omitempty" yaml:"space,omitempty"`
}

// ColorElement creates a raw color element.
func ColorElement(c Color) Element {
	return Element{Kind: KindColor, Color: c}
}

// RampStepElement creates one interpolation step between two addresses.
func RampStepElement(from, to Address, fraction float64, space BlendSpace) Element {
	return Element{Kind: KindRampStep, From: from, To: to, Fraction: fraction, Space: space}
}

// Dependencies returns the addresses the element reads from, in declaration
// order (ramp start before end). Raw colors have none.
func (e Element) Dependencies() []Address {
	switch e.Kind {
	case KindRampStep:
		return []Address{e.From, e.To}
	default:
		return nil
	}
}

// Order is the number of direct dependencies the element declares.
func (e Element) Order() int {
	return len(e.Dependencies())
}
