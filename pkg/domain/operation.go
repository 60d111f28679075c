package domain

import "fmt"

// OperationKind discriminates mutation requests.
type OperationKind string

// Operation kinds accepted by the engine.
const (
	OpInsertColor OperationKind = "insert-color"
	OpInsertRamp  OperationKind = "insert-ramp"
	OpRemove      OperationKind = "remove"
)

// Operation is a value describing one atomic mutation request. It carries
// named optional fields instead of a fluent builder chain; zero values mean
// "not set".
type Operation struct {
	Kind OperationKind `json:"kind" yaml:"kind"`

	// At is the target address: the slot for an inserted color, the first
	// slot of a ramp, or the element to remove.
	At Address `json:"at" yaml:"at"`

	// Overwrite permits replacing occupied addresses on insert.
	Overwrite bool `json:"overwrite,omitempty" yaml:"overwrite,omitempty"`

	// Color payload (OpInsertColor).
	Color Color `json:"color,omitempty" yaml:"color,omitempty"`

	// Ramp payload (OpInsertRamp).
	From  Address    `json:"from,omitempty" yaml:"from,omitempty"`
	To    Address    `json:"to,omitempty" yaml:"to,omitempty"`
	Count int        `json:"count,omitempty" yaml:"count,omitempty"`
	Space BlendSpace `json:"space,omitempty" yaml:"space,omitempty"`

	// Force cascades removal to dependents (OpRemove).
	Force bool `json:"force,omitempty" yaml:"force,omitempty"`
}

// InsertColor builds an insert-color operation.
func InsertColor(c Color, at Address, overwrite bool) Operation {
	return Operation{Kind: OpInsertColor, Color: c, At: at, Overwrite: overwrite}
}

// InsertRamp builds an insert-ramp operation producing count steps starting
// at the given address. Space may be empty for the default RGB blend.
func InsertRamp(from, to Address, count int, at Address, overwrite bool) Operation {
	return Operation{Kind: OpInsertRamp, From: from, To: to, Count: count, At: at, Overwrite: overwrite}
}

// Remove builds a remove operation.
func Remove(at Address, force bool) Operation {
	return Operation{Kind: OpRemove, At: at, Force: force}
}

// Validate checks the operation's arguments independent of palette state.
func (op Operation) Validate() error {
	switch op.Kind {
	case OpInsertColor, OpRemove:
		return nil
	case OpInsertRamp:
		if op.Count < 1 {
			return fmt.Errorf("%w: ramp count %d", ErrInvalidOperation, op.Count)
		}
		if op.Space != "" && !KnownBlendSpace(op.Space) {
			return fmt.Errorf("%w: unknown blend space %q", ErrInvalidOperation, op.Space)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidOperation, op.Kind)
	}
}

// ElementKind returns the element kind the operation would create, or ""
// for operations that create nothing.
func (op Operation) ElementKind() ElementKind {
	switch op.Kind {
	case OpInsertColor:
		return KindColor
	case OpInsertRamp:
		return KindRampStep
	default:
		return ""
	}
}

// Summary reports the outcome of a successfully applied operation.
type Summary struct {
	Kind OperationKind `json:"kind" yaml:"kind"`

	// Affected lists every address whose element was created, replaced or
	// removed, in application order.
	Affected []Address `json:"affected" yaml:"affected"`
}

// Describe is the palette metadata surface returned to front ends.
type Describe struct {
	Name         string `json:"name" yaml:"name"`
	Policy       string `json:"policy" yaml:"policy"`
	Version      string `json:"version" yaml:"version"`
	Wrap         Wrap   `json:"wrap" yaml:"wrap"`
	Pages        int    `json:"pages" yaml:"pages"`
	Elements     int    `json:"elements" yaml:"elements"`
	HistoryDepth int    `json:"history_depth" yaml:"history_depth"`
	RedoDepth    int    `json:"redo_depth" yaml:"redo_depth"`
}

// Entry is one row of a query result: an address, its evaluated color, and
// the order of the element stored there.
type Entry struct {
	Address Address `json:"address" yaml:"address"`
	Color   Color   `json:"color" yaml:"color"`
	Order   int     `json:"order" yaml:"order"`
}
