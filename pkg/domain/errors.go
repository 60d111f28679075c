package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the palette engine. Address-carrying wrappers below
// wrap these, so callers can branch with errors.Is regardless of detail.
var (
	// ErrAddressOccupied is returned when inserting into an occupied address
	// without overwrite permission.
	ErrAddressOccupied = errors.New("address occupied")

	// ErrAddressOutOfRange is returned when an address component is negative
	// or exceeds the policy maxima.
	ErrAddressOutOfRange = errors.New("address out of range")

	// ErrCyclicDependency is returned when an insert would close a
	// dependency cycle.
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrUnresolvedDependency is returned when a generator references an
	// address holding no element.
	ErrUnresolvedDependency = errors.New("unresolved dependency")

	// ErrAddressEmpty is returned when an operation requires an element at
	// an address that holds none.
	ErrAddressEmpty = errors.New("address empty")

	// ErrDependentsExist is returned when removing an element that other
	// elements depend on, without force.
	ErrDependentsExist = errors.New("dependents exist")

	// ErrInvalidOperation is returned when an operation's arguments are
	// malformed (e.g. a ramp count below one).
	ErrInvalidOperation = errors.New("invalid operation arguments")

	// ErrKindNotPermitted is returned when the format policy forbids the
	// element kind an operation would create.
	ErrKindNotPermitted = errors.New("element kind not permitted by policy")

	// ErrNothingToUndo is returned by Undo on an exhausted history.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by Redo at the history tail.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrPaletteNotFound is returned when a palette name cannot be found in
	// a store.
	ErrPaletteNotFound = errors.New("palette not found")

	// ErrInternalInconsistency marks a contract breach inside the engine
	// itself (e.g. a cache entry for a removed address). Never expected in
	// normal operation and never swallowed.
	ErrInternalInconsistency = errors.New("internal palette inconsistency")
)

// AddressError attaches the offending address to one of the sentinel errors.
type AddressError struct {
	Addr Address
	Err  error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Addr)
}

func (e *AddressError) Unwrap() error {
	return e.Err
}

// AddrErr wraps sentinel err with the offending address.
func AddrErr(err error, addr Address) error {
	return &AddressError{Addr: addr, Err: err}
}
