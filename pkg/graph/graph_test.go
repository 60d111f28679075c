package graph

import (
	"errors"
	"testing"

	"github.com/aretw0/ramp/pkg/domain"
)

func addr(p, l, c int) domain.Address {
	return domain.NewAddress(p, l, c)
}

func rawEl() domain.Element {
	return domain.ColorElement(domain.NewColor(10, 20, 30))
}

func stepEl(from, to domain.Address) domain.Element {
	return domain.RampStepElement(from, to, 0.5, domain.BlendRGB)
}

func TestInsertOccupancy(t *testing.T) {
	g := New()

	prior, err := g.Insert(addr(0, 0, 0), rawEl(), false)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if prior != nil {
		t.Fatalf("first insert returned prior %v", prior)
	}

	if _, err := g.Insert(addr(0, 0, 0), rawEl(), false); !errors.Is(err, domain.ErrAddressOccupied) {
		t.Fatalf("expected ErrAddressOccupied, got %v", err)
	}

	replacement := domain.ColorElement(domain.NewColor(1, 1, 1))
	prior, err = g.Insert(addr(0, 0, 0), replacement, true)
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if prior == nil || prior.Color != domain.NewColor(10, 20, 30) {
		t.Fatalf("overwrite prior = %v", prior)
	}
	if g.Len() != 1 {
		t.Fatalf("Len = %d", g.Len())
	}
}

func TestInsertUnresolvedDependency(t *testing.T) {
	g := New()

	_, err := g.Insert(addr(0, 1, 0), stepEl(addr(0, 0, 0), addr(0, 0, 1)), false)
	if !errors.Is(err, domain.ErrUnresolvedDependency) {
		t.Fatalf("expected ErrUnresolvedDependency, got %v", err)
	}
}

func TestInsertSelfReference(t *testing.T) {
	g := New()
	if _, err := g.Insert(addr(0, 0, 0), rawEl(), false); err != nil {
		t.Fatal(err)
	}

	_, err := g.Insert(addr(0, 0, 1), stepEl(addr(0, 0, 1), addr(0, 0, 0)), false)
	if !errors.Is(err, domain.ErrCyclicDependency) {
		t.Fatalf("expected ErrCyclicDependency, got %v", err)
	}
}

func TestInsertCyclePrevention(t *testing.T) {
	g := New()
	a, b, c := addr(0, 0, 0), addr(0, 0, 1), addr(0, 0, 2)

	mustInsert(t, g, a, rawEl())
	mustInsert(t, g, b, rawEl())
	// c reads a and b.
	mustInsert(t, g, c, stepEl(a, b))

	// Overwriting a with an element reading c would close a -> c -> a.
	_, err := g.Insert(a, stepEl(c, b), true)
	if !errors.Is(err, domain.ErrCyclicDependency) {
		t.Fatalf("expected ErrCyclicDependency, got %v", err)
	}

	// The rejected insert must leave the prior element in place.
	el, ok := g.Get(a)
	if !ok || el.Kind != domain.KindColor {
		t.Fatalf("element at %v changed after rejected insert: %v", a, el)
	}

	if !g.WouldCycle(a, []domain.Address{c}) {
		t.Error("WouldCycle(a, [c]) = false")
	}
	if g.WouldCycle(c, []domain.Address{a}) {
		t.Error("WouldCycle(c, [a]) = true for existing acyclic edge")
	}
}

func TestDependentIndex(t *testing.T) {
	g := New()
	a, b, c := addr(0, 0, 0), addr(0, 0, 1), addr(0, 1, 0)

	mustInsert(t, g, a, rawEl())
	mustInsert(t, g, b, rawEl())
	mustInsert(t, g, c, stepEl(a, b))

	deps := g.DependenciesOf(c)
	if len(deps) != 2 || deps[0] != a || deps[1] != b {
		t.Errorf("DependenciesOf(c) = %v", deps)
	}

	if got := g.DependentsOf(a); len(got) != 1 || got[0] != c {
		t.Errorf("DependentsOf(a) = %v", got)
	}

	// Overwriting c with a raw color must unlink the old edges.
	if _, err := g.Insert(c, rawEl(), true); err != nil {
		t.Fatal(err)
	}
	if got := g.DependentsOf(a); got != nil {
		t.Errorf("DependentsOf(a) after unlink = %v", got)
	}
}

func TestTransitiveDependents(t *testing.T) {
	g := New()
	a, b := addr(0, 0, 0), addr(0, 0, 1)
	s1, s2 := addr(0, 1, 0), addr(0, 1, 1)
	deep := addr(0, 2, 0)

	mustInsert(t, g, a, rawEl())
	mustInsert(t, g, b, rawEl())
	mustInsert(t, g, s1, stepEl(a, b))
	mustInsert(t, g, s2, stepEl(a, b))
	mustInsert(t, g, deep, stepEl(s1, s2))

	got := g.TransitiveDependents(a)
	want := []domain.Address{s1, s2, deep}
	if len(got) != len(want) {
		t.Fatalf("TransitiveDependents = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TransitiveDependents = %v, want %v", got, want)
		}
	}

	if got := g.TransitiveDependents(deep); len(got) != 0 {
		t.Errorf("TransitiveDependents(leaf) = %v", got)
	}
}

func TestRemoveEmptyAndGuarded(t *testing.T) {
	g := New()

	if _, err := g.Remove(addr(0, 0, 0), false); !errors.Is(err, domain.ErrAddressEmpty) {
		t.Fatalf("expected ErrAddressEmpty, got %v", err)
	}

	a, b, s := addr(0, 0, 0), addr(0, 0, 1), addr(0, 1, 0)
	mustInsert(t, g, a, rawEl())
	mustInsert(t, g, b, rawEl())
	mustInsert(t, g, s, stepEl(a, b))

	if _, err := g.Remove(a, false); !errors.Is(err, domain.ErrDependentsExist) {
		t.Fatalf("expected ErrDependentsExist, got %v", err)
	}
	if g.Len() != 3 {
		t.Fatalf("Len after rejected remove = %d", g.Len())
	}
}

func TestRemoveCascadeOrder(t *testing.T) {
	g := New()
	a, b := addr(0, 0, 0), addr(0, 0, 1)
	s1, s2 := addr(0, 1, 0), addr(0, 1, 1)
	deep := addr(0, 2, 0)

	mustInsert(t, g, a, rawEl())
	mustInsert(t, g, b, rawEl())
	mustInsert(t, g, s1, stepEl(a, b))
	mustInsert(t, g, s2, stepEl(a, b))
	mustInsert(t, g, deep, stepEl(s1, s2))

	removed, err := g.Remove(a, true)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(removed) != 4 {
		t.Fatalf("removed %d elements, want 4", len(removed))
	}
	if g.Len() != 1 {
		t.Fatalf("Len after cascade = %d", g.Len())
	}

	// Dependents-first: within the removed sequence, every element appears
	// before the elements it reads from.
	pos := make(map[domain.Address]int, len(removed))
	for i, r := range removed {
		pos[r.Addr] = i
	}
	for _, r := range removed {
		for _, dep := range r.Element.Dependencies() {
			if dp, ok := pos[dep]; ok && dp < pos[r.Addr] {
				t.Errorf("dependency %v removed before its dependent %v", dep, r.Addr)
			}
		}
	}

	// Reverse order re-insert must succeed, proving the order invariant.
	for i := len(removed) - 1; i >= 0; i-- {
		if _, err := g.Insert(removed[i].Addr, removed[i].Element, false); err != nil {
			t.Fatalf("re-insert %v: %v", removed[i].Addr, err)
		}
	}
	if g.Len() != 5 {
		t.Fatalf("Len after re-insert = %d", g.Len())
	}
}

func TestAddressesSorted(t *testing.T) {
	g := New()
	mustInsert(t, g, addr(1, 0, 0), rawEl())
	mustInsert(t, g, addr(0, 2, 5), rawEl())
	mustInsert(t, g, addr(0, 2, 1), rawEl())

	got := g.Addresses()
	want := []domain.Address{addr(0, 2, 1), addr(0, 2, 5), addr(1, 0, 0)}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Addresses = %v, want %v", got, want)
		}
	}
}

func mustInsert(t *testing.T, g *Graph, a domain.Address, el domain.Element) {
	t.Helper()
	if _, err := g.Insert(a, el, false); err != nil {
		t.Fatalf("insert %v: %v", a, err)
	}
}
