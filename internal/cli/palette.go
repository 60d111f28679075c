// Package cli holds the shared wiring used by the ramp command: palette
// construction, rendering helpers and logger setup.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/ramp"
	"github.com/aretw0/ramp/internal/logging"
	"github.com/aretw0/ramp/internal/presentation/tui"
	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/engine"
	"github.com/aretw0/ramp/pkg/policy"
	"github.com/aretw0/ramp/pkg/schema"
)

// Options carries the common CLI flags.
type Options struct {
	// File is an optional palette document to load. Empty creates a fresh
	// palette.
	File string

	// Name names a freshly created palette.
	Name string

	// Policy selects the format policy by registry name.
	Policy string

	// Debug enables verbose logging.
	Debug bool

	// Hooks are optional observability callbacks (e.g. Prometheus metrics).
	Hooks engine.Hooks
}

// NewLogger builds the CLI logger honoring the debug flag.
func NewLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// CreatePalette initializes a palette with standard CLI conventions: load
// from a document file when given, otherwise create an empty palette under
// the selected policy.
func CreatePalette(opts Options, logger *slog.Logger) (*ramp.Palette, error) {
	rampOpts := []ramp.Option{ramp.WithLogger(logger), ramp.WithHooks(opts.Hooks)}

	if opts.File != "" {
		f, err := os.Open(opts.File)
		if err != nil {
			return nil, fmt.Errorf("open palette file: %w", err)
		}
		defer f.Close()

		doc, err := schema.DecodeYAML(f)
		if err != nil {
			return nil, err
		}
		return ramp.Open(doc, rampOpts...)
	}

	pol, err := policy.Lookup(opts.Policy)
	if err != nil {
		return nil, err
	}
	return ramp.New(opts.Name, append(rampOpts, ramp.WithPolicy(pol))...), nil
}

// RenderPalette writes the palette listing to out, with color swatches when
// out is the terminal.
func RenderPalette(out io.Writer, pal *ramp.Palette) error {
	entries, err := pal.Entries(domain.PatternAll())
	if err != nil {
		return err
	}

	colorize := false
	if f, ok := out.(*os.File); ok {
		colorize = term.IsTerminal(int(f.Fd()))
	}

	r := tui.NewRenderer(out, tui.WithColor(colorize))
	return r.Render(pal.Policy(), pal.Describe(), entries)
}

// SeedDemo fills a palette with two endpoint colors and a six step ramp
// between them.
func SeedDemo(ctx context.Context, pal *ramp.Palette) error {
	a := domain.NewAddress(0, 0, 0)
	b := domain.NewAddress(0, 0, 1)

	ops := []domain.Operation{
		domain.InsertColor(domain.Color{R: 50, G: 50, B: 78}, a, false),
		domain.InsertColor(domain.Color{R: 0, G: 0, B: 255}, b, false),
		domain.InsertRamp(a, b, 6, domain.NewAddress(0, 1, 0), false),
	}
	for _, op := range ops {
		if _, err := pal.Apply(ctx, op); err != nil {
			return err
		}
	}
	return nil
}
