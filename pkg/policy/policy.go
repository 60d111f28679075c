// Package policy defines per-palette-type format policies: wrap defaults,
// address maxima, permitted element kinds, naming hooks and export limits.
//
// A policy parameterizes the engine's validation and the export path; it
// never mutates the graph itself.
package policy

import (
	"fmt"

	"github.com/aretw0/ramp/pkg/domain"
)

// Policy is the configuration object selected at palette-creation time.
type Policy struct {
	// Name identifies the policy in registries, documents and metadata.
	Name string

	// Version is the policy's format version string.
	Version string

	// Wrap is the default wrap configuration for address auto-advance.
	Wrap domain.Wrap

	// MaxPages, MaxLines and MaxColumns bound valid addresses. Lines and
	// columns are per-page/per-line maxima.
	MaxPages   int
	MaxLines   int
	MaxColumns int

	// Kinds lists the permitted element kinds. Empty means all kinds.
	Kinds []domain.ElementKind

	// MaxExportElements caps how many elements the export path serializes.
	// Zero means unlimited.
	MaxExportElements int

	// PageName names a page for display and export. May be nil.
	PageName func(page int) string

	// LineName names a line group within a page. May be nil.
	LineName func(page, line int) string
}

// Label renders the policy kind and version, used as the palette header.
func (p Policy) Label() string {
	return fmt.Sprintf("%s %s", p.Name, p.Version)
}

// Allows reports whether the policy permits elements of the given kind.
func (p Policy) Allows(kind domain.ElementKind) bool {
	if len(p.Kinds) == 0 {
		return true
	}
	for _, k := range p.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// CheckAddress validates an address against the policy maxima.
func (p Policy) CheckAddress(a domain.Address) error {
	if a.Page < 0 || a.Line < 0 || a.Column < 0 {
		return domain.AddrErr(domain.ErrAddressOutOfRange, a)
	}
	if a.Page >= p.MaxPages || a.Line >= p.MaxLines || a.Column >= p.MaxColumns {
		return domain.AddrErr(domain.ErrAddressOutOfRange, a)
	}
	return nil
}

// NameOfPage returns the display name for a page, or "" when unnamed.
func (p Policy) NameOfPage(page int) string {
	if p.PageName == nil {
		return ""
	}
	return p.PageName(page)
}

// NameOfLine returns the display name for a line group, or "" when unnamed.
func (p Policy) NameOfLine(page, line int) string {
	if p.LineName == nil {
		return ""
	}
	return p.LineName(page, line)
}
