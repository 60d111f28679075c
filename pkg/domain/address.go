package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Address identifies a single element slot as a page:line:column triple.
// All components are non-negative. The zero value is 0:0:0.
type Address struct {
	Page   int `json:"page" yaml:"page"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// NewAddress creates an address from its components.
func NewAddress(page, line, column int) Address {
	return Address{Page: page, Line: line, Column: column}
}

// Wrap bounds the auto-advance arithmetic of the address space.
// Incrementing past Columns-1 rolls the column to 0 and advances the line;
// past Lines-1 rolls the line to 0 and advances the page.
type Wrap struct {
	Columns int `json:"columns" yaml:"columns"`
	Lines   int `json:"lines" yaml:"lines"`
}

// Valid reports whether the wrap configuration is usable.
func (w Wrap) Valid() bool {
	return w.Columns > 0 && w.Lines > 0
}

// String renders the wrap as "lines:columns", matching the metadata line of
// the text rendering contract.
func (w Wrap) String() string {
	return fmt.Sprintf("%d:%d", w.Lines, w.Columns)
}

// Next returns the address one column after a, applying the wrap rule.
func (a Address) Next(w Wrap) Address {
	next := Address{Page: a.Page, Line: a.Line, Column: a.Column + 1}
	if next.Column >= w.Columns {
		next.Column = 0
		next.Line++
		if next.Line >= w.Lines {
			next.Line = 0
			next.Page++
		}
	}
	return next
}

// Step advances a by n columns under the wrap rule.
func (a Address) Step(n int, w Wrap) Address {
	next := a
	for i := 0; i < n; i++ {
		next = next.Next(w)
	}
	return next
}

// Compare orders addresses by page, then line, then column.
func (a Address) Compare(b Address) int {
	switch {
	case a.Page != b.Page:
		return cmpInt(a.Page, b.Page)
	case a.Line != b.Line:
		return cmpInt(a.Line, b.Line)
	default:
		return cmpInt(a.Column, b.Column)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String renders the address as "page:line:column".
func (a Address) String() string {
	return fmt.Sprintf("%d:%d:%d", a.Page, a.Line, a.Column)
}

// HexString renders the address as zero-padded uppercase hex ("PP:LL:CC"),
// the form used by the text renderer.
func (a Address) HexString() string {
	return fmt.Sprintf("%02X:%02X:%02X", a.Page, a.Line, a.Column)
}

// ParseAddress parses a "page:line:column" triple of decimal components.
func ParseAddress(s string) (Address, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Address{}, fmt.Errorf("%w: address %q (want page:line:column)", ErrInvalidOperation, s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return Address{}, fmt.Errorf("%w: address component %q", ErrInvalidOperation, p)
		}
		vals[i] = v
	}
	return Address{Page: vals[0], Line: vals[1], Column: vals[2]}, nil
}

// Wildcard marks a pattern component that matches any value.
const Wildcard = -1

// Pattern is a query selector over the address space. Components set to
// Wildcard match anything. Patterns select query ranges only; they are never
// valid mutation targets.
type Pattern struct {
	Page   int `json:"page" yaml:"page"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// PatternAll matches every address.
func PatternAll() Pattern {
	return Pattern{Page: Wildcard, Line: Wildcard, Column: Wildcard}
}

// PatternPage matches every address on the given page.
func PatternPage(page int) Pattern {
	return Pattern{Page: page, Line: Wildcard, Column: Wildcard}
}

// PatternLine matches every address on the given page and line.
func PatternLine(page, line int) Pattern {
	return Pattern{Page: page, Line: line, Column: Wildcard}
}

// PatternAt matches exactly one address.
func PatternAt(a Address) Pattern {
	return Pattern{Page: a.Page, Line: a.Line, Column: a.Column}
}

// Contains reports whether the pattern matches the given address.
func (p Pattern) Contains(a Address) bool {
	return (p.Page == Wildcard || p.Page == a.Page) &&
		(p.Line == Wildcard || p.Line == a.Line) &&
		(p.Column == Wildcard || p.Column == a.Column)
}

// ParsePattern parses a "page:line:column" triple where any component may be
// "*" to match all values.
func ParsePattern(s string) (Pattern, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Pattern{}, fmt.Errorf("%w: pattern %q (want page:line:column)", ErrInvalidOperation, s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "*" {
			vals[i] = Wildcard
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return Pattern{}, fmt.Errorf("%w: pattern component %q", ErrInvalidOperation, p)
		}
		vals[i] = v
	}
	return Pattern{Page: vals[0], Line: vals[1], Column: vals[2]}, nil
}

// String renders the pattern with "*" for wildcard components.
func (p Pattern) String() string {
	part := func(v int) string {
		if v == Wildcard {
			return "*"
		}
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%s:%s:%s", part(p.Page), part(p.Line), part(p.Column))
}
