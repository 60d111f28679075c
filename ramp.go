package ramp

import (
	"context"
	"log/slog"

	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/engine"
	"github.com/aretw0/ramp/pkg/policy"
	"github.com/aretw0/ramp/pkg/schema"
)

// Palette is the high-level entry point for the library. It wraps the engine
// and its dispatcher and provides a simplified API for consumers: front ends
// submit operations through the dispatcher's ordered queue and read through
// the engine's concurrent query surface.
type Palette struct {
	engine     *engine.Engine
	dispatcher *engine.Dispatcher

	pol       policy.Policy
	polSet    bool
	logger    *slog.Logger
	hooks     engine.Hooks
	queueSize int
}

// Option defines a functional option for configuring a Palette.
type Option func(*Palette)

// WithPolicy selects the format policy. Default is the Default policy.
func WithPolicy(pol policy.Policy) Option {
	return func(p *Palette) {
		p.pol = pol
		p.polSet = true
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Palette) {
		p.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks engine.Hooks) Option {
	return func(p *Palette) {
		p.hooks = hooks
	}
}

// WithQueueSize bounds the dispatcher's command queue (default 16).
func WithQueueSize(n int) Option {
	return func(p *Palette) {
		p.queueSize = n
	}
}

// New creates an empty palette with the given name.
func New(name string, opts ...Option) *Palette {
	p := &Palette{queueSize: 16}
	for _, opt := range opts {
		opt(p)
	}
	if !p.polSet {
		p.pol = policy.Default()
	}

	engOpts := []engine.Option{engine.WithHooks(p.hooks)}
	dispOpts := []engine.DispatcherOption{}
	if p.logger != nil {
		engOpts = append(engOpts, engine.WithLogger(p.logger))
		dispOpts = append(dispOpts, engine.WithDispatcherLogger(p.logger))
	}

	p.engine = engine.New(name, p.pol, engOpts...)
	p.dispatcher = engine.NewDispatcher(p.engine, p.queueSize, dispOpts...)
	return p
}

// Open rebuilds a palette from a serialized document.
func Open(doc *schema.Document, opts ...Option) (*Palette, error) {
	pol, err := policy.Lookup(doc.Policy)
	if err != nil {
		return nil, err
	}

	p := New(doc.Name, append([]Option{WithPolicy(pol)}, opts...)...)
	items := make([]engine.ElementAt, 0, len(doc.Elements))
	for _, de := range doc.Elements {
		items = append(items, engine.ElementAt{Addr: de.At, Element: de.Element})
	}
	if err := p.engine.Restore(items); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// Apply submits an operation through the dispatcher and blocks until it has
// been applied or rejected.
func (p *Palette) Apply(ctx context.Context, op domain.Operation) (domain.Summary, error) {
	return p.dispatcher.Apply(ctx, op)
}

// Undo reverts the most recently applied operation.
func (p *Palette) Undo(ctx context.Context) error {
	return p.dispatcher.Undo(ctx)
}

// Redo reapplies the most recently undone operation.
func (p *Palette) Redo(ctx context.Context) error {
	return p.dispatcher.Redo(ctx)
}

// ValueOf evaluates the color at addr.
func (p *Palette) ValueOf(addr domain.Address) (domain.Color, error) {
	return p.engine.ValueOf(addr)
}

// OrderOf returns the dependency order of the element at addr.
func (p *Palette) OrderOf(addr domain.Address) (int, error) {
	return p.engine.OrderOf(addr)
}

// Describe returns the palette metadata.
func (p *Palette) Describe() domain.Describe {
	return p.engine.Describe()
}

// Query returns a lazy cursor over occupied addresses matching the pattern.
func (p *Palette) Query(pat domain.Pattern) *engine.Cursor {
	return p.engine.Query(pat)
}

// Entries collects every entry matching the pattern.
func (p *Palette) Entries(pat domain.Pattern) ([]domain.Entry, error) {
	cur := p.engine.Query(pat)
	var out []domain.Entry
	for cur.Next() {
		out = append(out, cur.Entry())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Document exports the palette as a serializable document.
func (p *Palette) Document() (*schema.Document, error) {
	return schema.Export(p.engine)
}

// Policy returns the palette's format policy.
func (p *Palette) Policy() policy.Policy {
	return p.engine.Policy()
}

// Name returns the palette name.
func (p *Palette) Name() string {
	return p.engine.Name()
}

// Engine exposes the underlying engine for advanced integrations. Mutations
// should still go through Apply so ordering guarantees hold.
func (p *Palette) Engine() *engine.Engine {
	return p.engine
}

// Close stops the dispatcher, draining queued commands first.
func (p *Palette) Close() {
	p.dispatcher.Close()
}
