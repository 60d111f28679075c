package eval

import (
	"errors"
	"testing"

	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/graph"
)

func seed(t *testing.T, g *graph.Graph) (a, b, step domain.Address) {
	t.Helper()
	a = domain.NewAddress(0, 0, 0)
	b = domain.NewAddress(0, 0, 1)
	step = domain.NewAddress(0, 1, 0)

	inserts := []struct {
		addr domain.Address
		el   domain.Element
	}{
		{a, domain.ColorElement(domain.NewColor(0, 0, 0))},
		{b, domain.ColorElement(domain.NewColor(255, 255, 255))},
		{step, domain.RampStepElement(a, b, 0.5, domain.BlendRGB)},
	}
	for _, in := range inserts {
		if _, err := g.Insert(in.addr, in.el, false); err != nil {
			t.Fatalf("insert %v: %v", in.addr, err)
		}
	}
	return a, b, step
}

func TestValueOfRawAndStep(t *testing.T) {
	g := graph.New()
	a, _, step := seed(t, g)
	ev := New(g)

	got, err := ev.ValueOf(a)
	if err != nil {
		t.Fatalf("ValueOf(raw): %v", err)
	}
	if got != domain.NewColor(0, 0, 0) {
		t.Errorf("raw = %v", got)
	}

	got, err = ev.ValueOf(step)
	if err != nil {
		t.Fatalf("ValueOf(step): %v", err)
	}
	if got != domain.NewColor(128, 128, 128) {
		t.Errorf("step = %v", got)
	}
}

func TestValueOfEmptyAddress(t *testing.T) {
	ev := New(graph.New())

	_, err := ev.ValueOf(domain.NewAddress(0, 0, 0))
	if !errors.Is(err, domain.ErrAddressEmpty) {
		t.Fatalf("expected ErrAddressEmpty, got %v", err)
	}
}

func TestMemoization(t *testing.T) {
	g := graph.New()
	_, _, step := seed(t, g)
	ev := New(g)

	if _, err := ev.ValueOf(step); err != nil {
		t.Fatal(err)
	}
	_, misses1 := ev.Stats()

	// Second read must be served from cache.
	if _, err := ev.ValueOf(step); err != nil {
		t.Fatal(err)
	}
	hits, misses2 := ev.Stats()

	if misses2 != misses1 {
		t.Errorf("misses grew on cached read: %d -> %d", misses1, misses2)
	}
	if hits == 0 {
		t.Error("expected at least one cache hit")
	}
}

func TestInvalidatePropagation(t *testing.T) {
	g := graph.New()
	a, b, step := seed(t, g)
	ev := New(g)

	if _, err := ev.ValueOf(step); err != nil {
		t.Fatal(err)
	}

	// Overwrite endpoint a and invalidate it; the step must recompute.
	if _, err := g.Insert(a, domain.ColorElement(domain.NewColor(100, 100, 100)), true); err != nil {
		t.Fatal(err)
	}
	ev.Invalidate(a)

	got, err := ev.ValueOf(step)
	if err != nil {
		t.Fatal(err)
	}
	want := domain.Lerp(domain.NewColor(100, 100, 100), domain.NewColor(255, 255, 255), 0.5, domain.BlendRGB)
	if got != want {
		t.Errorf("step after invalidate = %v, want %v", got, want)
	}

	// Unrelated entry stays cached.
	if _, err := ev.ValueOf(b); err != nil {
		t.Fatal(err)
	}
	_, missesBefore := ev.Stats()
	if _, err := ev.ValueOf(b); err != nil {
		t.Fatal(err)
	}
	if _, missesAfter := ev.Stats(); missesAfter != missesBefore {
		t.Error("unrelated entry was invalidated")
	}
}

func TestReset(t *testing.T) {
	g := graph.New()
	_, _, step := seed(t, g)
	ev := New(g)

	if _, err := ev.ValueOf(step); err != nil {
		t.Fatal(err)
	}
	ev.Reset()

	_, missesBefore := ev.Stats()
	if _, err := ev.ValueOf(step); err != nil {
		t.Fatal(err)
	}
	if _, missesAfter := ev.Stats(); missesAfter == missesBefore {
		t.Error("expected a miss after Reset")
	}
}
