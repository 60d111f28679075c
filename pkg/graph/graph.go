package graph

import (
	"sort"

	"github.com/aretw0/ramp/pkg/domain"
)

// Graph holds the palette's elements and the dependency edges between them.
// Edges point from an element to the addresses it reads from. The graph is
// acyclic at all times: any insert that would close a cycle is rejected
// before mutation.
type Graph struct {
	elements map[domain.Address]domain.Element

	// dependents is the reverse edge index: for each address, the set of
	// addresses whose elements read it. Kept incrementally so cycle checks
	// and invalidation walk only the affected subgraph.
	dependents map[domain.Address]map[domain.Address]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		elements:   make(map[domain.Address]domain.Element),
		dependents: make(map[domain.Address]map[domain.Address]struct{}),
	}
}

// Len returns the number of stored elements.
func (g *Graph) Len() int {
	return len(g.elements)
}

// Get returns the element at addr, if any.
func (g *Graph) Get(addr domain.Address) (domain.Element, bool) {
	el, ok := g.elements[addr]
	return el, ok
}

// Addresses returns every occupied address ordered by page, line, column.
func (g *Graph) Addresses() []domain.Address {
	out := make([]domain.Address, 0, len(g.elements))
	for addr := range g.elements {
		out = append(out, addr)
	}
	sortAddresses(out)
	return out
}

// DependenciesOf returns the addresses the element at addr reads from, in
// declaration order (ramp start before end). Nil if addr is empty or raw.
func (g *Graph) DependenciesOf(addr domain.Address) []domain.Address {
	el, ok := g.elements[addr]
	if !ok {
		return nil
	}
	return el.Dependencies()
}

// DependentsOf returns the addresses whose elements directly read addr,
// in address order.
func (g *Graph) DependentsOf(addr domain.Address) []domain.Address {
	set, ok := g.dependents[addr]
	if !ok {
		return nil
	}
	out := make([]domain.Address, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sortAddresses(out)
	return out
}

// TransitiveDependents returns every address reachable from the seeds via
// reverse dependency edges, excluding the seeds themselves, in address order.
func (g *Graph) TransitiveDependents(seeds ...domain.Address) []domain.Address {
	seen := make(map[domain.Address]struct{}, len(seeds))
	for _, s := range seeds {
		seen[s] = struct{}{}
	}
	var out []domain.Address
	queue := append([]domain.Address(nil), seeds...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dep := range g.dependents[cur] {
			if _, ok := seen[dep]; ok {
				continue
			}
			seen[dep] = struct{}{}
			out = append(out, dep)
			queue = append(queue, dep)
		}
	}
	sortAddresses(out)
	return out
}

// Insert stores el at addr. When addr is occupied the prior element is
// returned so the caller can derive an inverse; without overwrite the insert
// fails and the graph is unchanged.
//
// Validation order: dependency resolution, occupancy, then the cycle check.
// The cycle check searches from the candidate dependencies toward addr, so
// its cost is bounded by the affected subgraph rather than the palette size.
func (g *Graph) Insert(addr domain.Address, el domain.Element, overwrite bool) (*domain.Element, error) {
	deps := el.Dependencies()
	for _, dep := range deps {
		if dep == addr {
			return nil, domain.AddrErr(domain.ErrCyclicDependency, addr)
		}
		if _, ok := g.elements[dep]; !ok {
			return nil, domain.AddrErr(domain.ErrUnresolvedDependency, dep)
		}
	}

	prior, occupied := g.elements[addr]
	if occupied && !overwrite {
		return nil, domain.AddrErr(domain.ErrAddressOccupied, addr)
	}

	if g.reaches(deps, addr) {
		return nil, domain.AddrErr(domain.ErrCyclicDependency, addr)
	}

	if occupied {
		g.unlink(addr, prior)
	}
	g.elements[addr] = el
	g.link(addr, el)

	if occupied {
		p := prior
		return &p, nil
	}
	return nil, nil
}

// Removed is one element taken out of the graph by Remove, recorded so the
// operation engine can rebuild the subtree on undo.
type Removed struct {
	Addr    domain.Address
	Element domain.Element
}

// Remove deletes the element at addr. If other elements depend on it the
// call fails with ErrDependentsExist unless force is set, in which case the
// removal cascades to every transitive dependent.
//
// The removed elements are returned dependents-first, so re-inserting them
// in reverse order always finds their dependencies present.
func (g *Graph) Remove(addr domain.Address, force bool) ([]Removed, error) {
	if _, ok := g.elements[addr]; !ok {
		return nil, domain.AddrErr(domain.ErrAddressEmpty, addr)
	}

	dependents := g.TransitiveDependents(addr)
	if len(dependents) > 0 && !force {
		return nil, domain.AddrErr(domain.ErrDependentsExist, addr)
	}

	// Dependents first: within the doomed set, anything that reads another
	// doomed element goes before it.
	order := topoDependentsFirst(g, append(dependents, addr))

	removed := make([]Removed, 0, len(order))
	for _, a := range order {
		el := g.elements[a]
		g.unlink(a, el)
		delete(g.elements, a)
		removed = append(removed, Removed{Addr: a, Element: el})
	}
	return removed, nil
}

// WouldCycle reports whether inserting an element with the given
// dependencies at addr would close a dependency cycle. Used by the engine
// to pre-validate multi-element operations before mutating anything.
func (g *Graph) WouldCycle(addr domain.Address, deps []domain.Address) bool {
	for _, dep := range deps {
		if dep == addr {
			return true
		}
	}
	return g.reaches(deps, addr)
}

// reaches reports whether addr is reachable from any of the seeds by
// following dependency edges (element -> addresses it reads).
func (g *Graph) reaches(seeds []domain.Address, addr domain.Address) bool {
	if len(seeds) == 0 {
		return false
	}
	seen := make(map[domain.Address]struct{})
	stack := append([]domain.Address(nil), seeds...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == addr {
			return true
		}
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}
		if el, ok := g.elements[cur]; ok {
			stack = append(stack, el.Dependencies()...)
		}
	}
	return false
}

func (g *Graph) link(addr domain.Address, el domain.Element) {
	for _, dep := range el.Dependencies() {
		set, ok := g.dependents[dep]
		if !ok {
			set = make(map[domain.Address]struct{})
			g.dependents[dep] = set
		}
		set[addr] = struct{}{}
	}
}

func (g *Graph) unlink(addr domain.Address, el domain.Element) {
	for _, dep := range el.Dependencies() {
		if set, ok := g.dependents[dep]; ok {
			delete(set, addr)
			if len(set) == 0 {
				delete(g.dependents, dep)
			}
		}
	}
}

// topoDependentsFirst orders the doomed set so every element precedes the
// elements it reads from, considering only edges inside the set.
func topoDependentsFirst(g *Graph, doomed []domain.Address) []domain.Address {
	inSet := make(map[domain.Address]struct{}, len(doomed))
	for _, a := range doomed {
		inSet[a] = struct{}{}
	}

	visited := make(map[domain.Address]struct{}, len(doomed))
	var order []domain.Address

	var visit func(a domain.Address)
	visit = func(a domain.Address) {
		if _, ok := visited[a]; ok {
			return
		}
		visited[a] = struct{}{}
		for dep := range g.dependents[a] {
			if _, ok := inSet[dep]; ok {
				visit(dep)
			}
		}
		order = append(order, a)
	}

	sorted := append([]domain.Address(nil), doomed...)
	sortAddresses(sorted)
	for _, a := range sorted {
		visit(a)
	}
	return order
}

func sortAddresses(addrs []domain.Address) {
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Compare(addrs[j]) < 0
	})
}
