// Package eval computes concrete colors for palette elements, memoizing
// results and invalidating them along dependency edges when the graph
// changes. Recomputation is deferred to the next read.
package eval

import (
	"fmt"
	"sync"

	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/graph"
)

// Evaluator resolves addresses to concrete colors against a graph.
// Safe for concurrent readers; the owning engine excludes readers during
// mutation.
type Evaluator struct {
	graph *graph.Graph

	mu     sync.Mutex
	cache  map[domain.Address]domain.Color
	hits   uint64
	misses uint64
}

// New creates an evaluator over the given graph.
func New(g *graph.Graph) *Evaluator {
	return &Evaluator{
		graph: g,
		cache: make(map[domain.Address]domain.Color),
	}
}

// ValueOf returns the concrete color of the element at addr, computing and
// caching it if needed.
func (e *Evaluator) ValueOf(addr domain.Address) (domain.Color, error) {
	el, ok := e.graph.Get(addr)

	e.mu.Lock()
	cached, inCache := e.cache[addr]
	if inCache {
		e.hits++
	} else {
		e.misses++
	}
	e.mu.Unlock()

	if inCache {
		if !ok {
			// A cached value for an empty address means invalidation was
			// skipped somewhere. That is an engine defect, not user error.
			return domain.Color{}, fmt.Errorf("%w: cache entry for empty address %s",
				domain.ErrInternalInconsistency, addr)
		}
		return cached, nil
	}

	if !ok {
		return domain.Color{}, domain.AddrErr(domain.ErrAddressEmpty, addr)
	}

	c, err := e.compute(el)
	if err != nil {
		return domain.Color{}, err
	}

	e.mu.Lock()
	e.cache[addr] = c
	e.mu.Unlock()
	return c, nil
}

func (e *Evaluator) compute(el domain.Element) (domain.Color, error) {
	switch el.Kind {
	case domain.KindColor:
		return el.Color, nil
	case domain.KindRampStep:
		from, err := e.ValueOf(el.From)
		if err != nil {
			return domain.Color{}, fmt.Errorf("ramp start %s: %w", el.From, err)
		}
		to, err := e.ValueOf(el.To)
		if err != nil {
			return domain.Color{}, fmt.Errorf("ramp end %s: %w", el.To, err)
		}
		return domain.Lerp(from, to, el.Fraction, el.Space), nil
	default:
		return domain.Color{}, fmt.Errorf("%w: unknown element kind %q",
			domain.ErrInternalInconsistency, el.Kind)
	}
}

// Invalidate drops the cache entries for the given addresses and all of
// their transitive dependents. Called by the engine at mutation time.
func (e *Evaluator) Invalidate(addrs ...domain.Address) {
	if len(addrs) == 0 {
		return
	}
	stale := append([]domain.Address(nil), addrs...)
	stale = append(stale, e.graph.TransitiveDependents(addrs...)...)

	e.mu.Lock()
	for _, a := range stale {
		delete(e.cache, a)
	}
	e.mu.Unlock()
}

// Reset drops the whole cache. Used after bulk operations such as import.
func (e *Evaluator) Reset() {
	e.mu.Lock()
	e.cache = make(map[domain.Address]domain.Color)
	e.mu.Unlock()
}

// Stats returns the cache hit/miss counters since creation.
func (e *Evaluator) Stats() (hits, misses uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hits, e.misses
}
