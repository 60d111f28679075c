// Package tui renders palettes as text for terminals and debug output.
package tui

import (
	"fmt"
	"io"
	"sort"

	"github.com/muesli/termenv"

	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/policy"
)

// Renderer writes the textual palette listing: a header with the policy
// label and history depth, a metadata line, then per-page blocks of
// "Address  Color  Order" rows with zero-padded addresses and hex colors.
type Renderer struct {
	out      io.Writer
	colorize bool
	profile  termenv.Profile
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithColor enables ANSI color swatches next to each hex value.
func WithColor(enabled bool) RendererOption {
	return func(r *Renderer) {
		r.colorize = enabled
	}
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, opts ...RendererOption) *Renderer {
	r := &Renderer{
		out:     out,
		profile: termenv.ColorProfile(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the full palette listing.
func (r *Renderer) Render(pol policy.Policy, meta domain.Describe, entries []domain.Entry) error {
	if _, err := fmt.Fprintf(r.out, "%s [History: %d items]\n", pol.Label(), meta.HistoryDepth); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.out, "[%d pages] [%d elements] [wrap %s]\n",
		meta.Pages, meta.Elements, meta.Wrap); err != nil {
		return err
	}

	for _, page := range pagesOf(entries) {
		if err := r.renderPage(pol, page, entries); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderPage(pol policy.Policy, page int, entries []domain.Entry) error {
	header := fmt.Sprintf("Page %d", page)
	if name := pol.NameOfPage(page); name != "" {
		header = fmt.Sprintf("%s %q", header, name)
	}
	if _, err := fmt.Fprintf(r.out, "\n%s:\n", header); err != nil {
		return err
	}

	lastLine := -1
	for _, e := range entries {
		if e.Address.Page != page {
			continue
		}
		if e.Address.Line != lastLine {
			lastLine = e.Address.Line
			if name := pol.NameOfLine(page, lastLine); name != "" {
				if _, err := fmt.Fprintf(r.out, "  %s:\n", name); err != nil {
					return err
				}
			}
		}
		if err := r.renderRow(e); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderRow(e domain.Entry) error {
	hex := e.Color.Hex()
	if r.colorize {
		swatch := termenv.String("██").Foreground(r.profile.Color(hex))
		_, err := fmt.Fprintf(r.out, "  %s  %s %s  %d\n", e.Address.HexString(), swatch, hex, e.Order)
		return err
	}
	_, err := fmt.Fprintf(r.out, "  %s  %s  %d\n", e.Address.HexString(), hex, e.Order)
	return err
}

func pagesOf(entries []domain.Entry) []int {
	seen := make(map[int]struct{})
	var pages []int
	for _, e := range entries {
		if _, ok := seen[e.Address.Page]; !ok {
			seen[e.Address.Page] = struct{}{}
			pages = append(pages, e.Address.Page)
		}
	}
	sort.Ints(pages)
	return pages
}
