package engine

import (
	"fmt"

	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/eval"
	"github.com/aretw0/ramp/pkg/graph"
)

// ElementAt pairs an address with the element stored there.
type ElementAt struct {
	Addr    domain.Address
	Element domain.Element
}

// Snapshot returns a consistent copy of the graph contents in address
// order. Export paths consume this; they never see a graph mid-mutation.
func (e *Engine) Snapshot() []ElementAt {
	e.mu.RLock()
	defer e.mu.RUnlock()

	addrs := e.g.Addresses()
	out := make([]ElementAt, 0, len(addrs))
	for _, addr := range addrs {
		el, _ := e.g.Get(addr)
		out = append(out, ElementAt{Addr: addr, Element: el})
	}
	return out
}

// Restore replaces the palette contents with the given elements, resetting
// the evaluator cache and starting a fresh, empty history. Used by import.
//
// Elements may arrive in any order; insertion retries until dependencies
// resolve. The old graph is kept when restore fails, so a bad document
// never destroys the palette.
func (e *Engine) Restore(items []ElementAt) error {
	for _, it := range items {
		if !e.pol.Allows(it.Element.Kind) {
			return fmt.Errorf("%s at %s: %w", it.Element.Kind, it.Addr, domain.ErrKindNotPermitted)
		}
		if err := e.pol.CheckAddress(it.Addr); err != nil {
			return err
		}
	}

	g := graph.New()
	pending := append([]ElementAt(nil), items...)
	for len(pending) > 0 {
		var deferred []ElementAt
		progressed := false
		for _, it := range pending {
			if _, err := g.Insert(it.Addr, it.Element, false); err != nil {
				deferred = append(deferred, it)
				continue
			}
			progressed = true
		}
		if !progressed {
			// Nothing resolvable: the document has a dangling or cyclic
			// reference (or a duplicate address).
			_, err := g.Insert(deferred[0].Addr, deferred[0].Element, false)
			return fmt.Errorf("restore %s: %w", deferred[0].Addr, err)
		}
		pending = deferred
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.g = g
	e.ev = eval.New(g)
	e.hist.reset()
	e.logger.Debug("palette restored", "elements", len(items))
	return nil
}
