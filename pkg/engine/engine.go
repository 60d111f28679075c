// Package engine applies atomic, reversible operations to a palette graph,
// drives evaluator invalidation, and maintains the undo/redo history.
//
// The engine owns its graph exclusively: front ends hold only addresses and
// submit Operations, either directly (Apply) or through a Dispatcher. All
// mutation happens under a single writer lock, so no reader ever observes a
// graph mid-mutation.
package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/ramp/internal/logging"
	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/eval"
	"github.com/aretw0/ramp/pkg/graph"
	"github.com/aretw0/ramp/pkg/policy"
)

// Hooks are optional observability callbacks, invoked synchronously after
// the corresponding engine transition. Nil hooks are skipped.
type Hooks struct {
	OnApply   func(domain.Summary)
	OnFailure func(op domain.Operation, err error)
	OnUndo    func(domain.Summary)
	OnRedo    func(domain.Summary)
}

// Engine is the single writer over one palette.
type Engine struct {
	name   string
	pol    policy.Policy
	logger *slog.Logger
	hooks  Hooks

	mu   sync.RWMutex
	g    *graph.Graph
	ev   *eval.Evaluator
	hist *History
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a structured logger. Default is a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// New creates an empty palette engine under the given format policy.
func New(name string, pol policy.Policy, opts ...Option) *Engine {
	g := graph.New()
	e := &Engine{
		name:   name,
		pol:    pol,
		logger: logging.NewNop(),
		g:      g,
		ev:     eval.New(g),
		hist:   NewHistory(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the palette name.
func (e *Engine) Name() string {
	return e.name
}

// Policy returns the palette's format policy.
func (e *Engine) Policy() policy.Policy {
	return e.pol
}

// Apply validates op against the policy and the graph, applies it
// atomically, invalidates stale evaluator entries, and records the inverse
// in history (discarding any redo tail). On failure nothing is mutated.
func (e *Engine) Apply(op domain.Operation) (domain.Summary, error) {
	if err := op.Validate(); err != nil {
		e.failed(op, err)
		return domain.Summary{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.applyOp(op)
	if err != nil {
		e.failed(op, err)
		return domain.Summary{}, err
	}

	e.ev.Invalidate(entry.summary.Affected...)
	e.hist.push(entry)

	e.logger.Debug("operation applied",
		"kind", op.Kind, "affected", len(entry.summary.Affected),
		"history_depth", e.hist.Depth())
	if e.hooks.OnApply != nil {
		e.hooks.OnApply(entry.summary)
	}
	return entry.summary, nil
}

// Undo reverts the most recently applied operation. The resulting palette
// state (graph, evaluated colors, orders) is identical to the state before
// the operation was applied.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.hist.stepBack()
	if err != nil {
		return err
	}
	if err := e.revert(entry); err != nil {
		return err
	}

	e.ev.Invalidate(entry.summary.Affected...)
	e.logger.Debug("operation undone", "kind", entry.op.Kind)
	if e.hooks.OnUndo != nil {
		e.hooks.OnUndo(entry.summary)
	}
	return nil
}

// Redo reapplies the operation most recently undone.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.hist.stepForward()
	if err != nil {
		return err
	}

	fresh, err := e.applyOp(entry.op)
	if err != nil {
		// The graph is back at the pre-apply state, so reapplying can only
		// fail if the engine corrupted it.
		_, _ = e.hist.stepBack()
		return fmt.Errorf("%w: redo failed: %v", domain.ErrInternalInconsistency, err)
	}
	e.hist.replaceCurrent(fresh)

	e.ev.Invalidate(fresh.summary.Affected...)
	e.logger.Debug("operation redone", "kind", entry.op.Kind)
	if e.hooks.OnRedo != nil {
		e.hooks.OnRedo(fresh.summary)
	}
	return nil
}

// ValueOf evaluates the color at addr. Reads may run concurrently with each
// other but are excluded from any in-flight mutation.
func (e *Engine) ValueOf(addr domain.Address) (domain.Color, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ev.ValueOf(addr)
}

// OrderOf returns the direct dependency count of the element at addr.
func (e *Engine) OrderOf(addr domain.Address) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	el, ok := e.g.Get(addr)
	if !ok {
		return 0, domain.AddrErr(domain.ErrAddressEmpty, addr)
	}
	return el.Order(), nil
}

// DependentsOf returns the addresses directly reading addr.
func (e *Engine) DependentsOf(addr domain.Address) []domain.Address {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.g.DependentsOf(addr)
}

// DependenciesOf returns the addresses the element at addr reads, in order.
func (e *Engine) DependenciesOf(addr domain.Address) []domain.Address {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.g.DependenciesOf(addr)
}

// Describe returns the palette metadata.
func (e *Engine) Describe() domain.Describe {
	e.mu.RLock()
	defer e.mu.RUnlock()

	pages := make(map[int]struct{})
	for _, addr := range e.g.Addresses() {
		pages[addr.Page] = struct{}{}
	}
	return domain.Describe{
		Name:         e.name,
		Policy:       e.pol.Name,
		Version:      e.pol.Version,
		Wrap:         e.pol.Wrap,
		Pages:        len(pages),
		Elements:     e.g.Len(),
		HistoryDepth: e.hist.Depth(),
		RedoDepth:    e.hist.RedoDepth(),
	}
}

// EvalStats exposes the evaluator cache counters for metrics collectors.
// Locked because Restore swaps the evaluator out.
func (e *Engine) EvalStats() (hits, misses uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ev.Stats()
}

// failed logs and reports a rejected operation.
func (e *Engine) failed(op domain.Operation, err error) {
	e.logger.Debug("operation rejected", "kind", op.Kind, "err", err)
	if e.hooks.OnFailure != nil {
		e.hooks.OnFailure(op, err)
	}
}

// applyOp validates and applies op, returning the history entry describing
// it. All validation happens before the first mutation, so a returned error
// means the graph is untouched.
func (e *Engine) applyOp(op domain.Operation) (historyEntry, error) {
	switch op.Kind {
	case domain.OpInsertColor:
		return e.applyInsertColor(op)
	case domain.OpInsertRamp:
		return e.applyInsertRamp(op)
	case domain.OpRemove:
		return e.applyRemove(op)
	default:
		return historyEntry{}, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidOperation, op.Kind)
	}
}

func (e *Engine) applyInsertColor(op domain.Operation) (historyEntry, error) {
	if !e.pol.Allows(domain.KindColor) {
		return historyEntry{}, domain.ErrKindNotPermitted
	}
	if err := e.pol.CheckAddress(op.At); err != nil {
		return historyEntry{}, err
	}

	prior, err := e.g.Insert(op.At, domain.ColorElement(op.Color), op.Overwrite)
	if err != nil {
		return historyEntry{}, err
	}
	return historyEntry{
		op:      op,
		summary: domain.Summary{Kind: op.Kind, Affected: []domain.Address{op.At}},
		steps:   []undoStep{{Addr: op.At, Prior: prior}},
	}, nil
}

func (e *Engine) applyInsertRamp(op domain.Operation) (historyEntry, error) {
	if !e.pol.Allows(domain.KindRampStep) {
		return historyEntry{}, domain.ErrKindNotPermitted
	}
	for _, a := range []domain.Address{op.At, op.From, op.To} {
		if err := e.pol.CheckAddress(a); err != nil {
			return historyEntry{}, err
		}
	}
	for _, a := range []domain.Address{op.From, op.To} {
		if _, ok := e.g.Get(a); !ok {
			return historyEntry{}, domain.AddrErr(domain.ErrUnresolvedDependency, a)
		}
	}

	space := op.Space
	if space == "" {
		space = domain.BlendRGB
	}
	deps := []domain.Address{op.From, op.To}

	// Choose and pre-validate every target before mutating, so the whole
	// ramp applies or nothing does. Targets advance by wrap arithmetic from
	// the ramp's base address, stepping over the two endpoints.
	targets := make([]domain.Address, 0, op.Count)
	cur := op.At
	for len(targets) < op.Count {
		if cur == op.From || cur == op.To {
			cur = cur.Next(e.pol.Wrap)
			continue
		}
		if err := e.pol.CheckAddress(cur); err != nil {
			return historyEntry{}, err
		}
		if _, occupied := e.g.Get(cur); occupied && !op.Overwrite {
			return historyEntry{}, domain.AddrErr(domain.ErrAddressOccupied, cur)
		}
		if e.g.WouldCycle(cur, deps) {
			return historyEntry{}, domain.AddrErr(domain.ErrCyclicDependency, cur)
		}
		targets = append(targets, cur)
		cur = cur.Next(e.pol.Wrap)
	}

	steps := make([]undoStep, 0, len(targets))
	for i, t := range targets {
		fraction := float64(i+1) / float64(op.Count+1)
		el := domain.RampStepElement(op.From, op.To, fraction, space)
		prior, err := e.g.Insert(t, el, op.Overwrite)
		if err != nil {
			return historyEntry{}, fmt.Errorf("%w: ramp step at %s rejected after validation: %v",
				domain.ErrInternalInconsistency, t, err)
		}
		steps = append(steps, undoStep{Addr: t, Prior: prior})
	}

	return historyEntry{
		op:      op,
		summary: domain.Summary{Kind: op.Kind, Affected: targets},
		steps:   steps,
	}, nil
}

func (e *Engine) applyRemove(op domain.Operation) (historyEntry, error) {
	removed, err := e.g.Remove(op.At, op.Force)
	if err != nil {
		return historyEntry{}, err
	}

	steps := make([]undoStep, 0, len(removed))
	affected := make([]domain.Address, 0, len(removed))
	for _, r := range removed {
		el := r.Element
		steps = append(steps, undoStep{Addr: r.Addr, Prior: &el})
		affected = append(affected, r.Addr)
	}
	return historyEntry{
		op:      op,
		summary: domain.Summary{Kind: op.Kind, Affected: affected},
		steps:   steps,
	}, nil
}

// revert walks an entry's steps backwards, restoring each address to its
// prior occupant. Failures here are engine defects: the steps were derived
// from a successful apply against this very graph.
func (e *Engine) revert(entry historyEntry) error {
	for i := len(entry.steps) - 1; i >= 0; i-- {
		step := entry.steps[i]
		if step.Prior == nil {
			if _, err := e.g.Remove(step.Addr, false); err != nil {
				return fmt.Errorf("%w: undo remove at %s: %v",
					domain.ErrInternalInconsistency, step.Addr, err)
			}
			continue
		}
		if _, err := e.g.Insert(step.Addr, *step.Prior, true); err != nil {
			return fmt.Errorf("%w: undo restore at %s: %v",
				domain.ErrInternalInconsistency, step.Addr, err)
		}
	}
	return nil
}
