/*
Package ramp is a structured color palette engine built around a dependency
graph of color elements, a lazy evaluator, and a reversible operation log.

Palettes are addressed as page:line:column triples. An element is either a
raw color or a generated ramp step that blends between two other addresses.
The engine keeps the dependency graph acyclic, evaluates colors lazily with
memoization, and derives an inverse for every applied operation so any
mutation can be undone and redone exactly.

# Concept

A palette behaves like a tiny spreadsheet for colors: raw cells hold values,
generated cells reference other cells, and edits ripple to dependents
automatically. Format policies parameterize the address space (wrap bounds,
maxima, permitted element kinds, page naming), so the same engine serves
palettes of very different shapes.

# Key Features

  - Atomic Operations: an operation either fully applies or leaves the
    palette untouched.
  - Reversible History: every applied operation records its inverse;
    undo/redo walk a cursor over the log.
  - Lazy Evaluation: colors are computed on read and memoized until a
    mutation invalidates them.
  - Hexagonal Architecture: core logic is decoupled from adapters (storage,
    HTTP, MCP, terminal rendering).

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/ramp"
		"github.com/aretw0/ramp/pkg/domain"
	)

	func main() {
		pal := ramp.New("sunset")
		defer pal.Close()

		ctx := context.Background()

		// Two raw endpoints, then a ramp between them.
		a := domain.NewAddress(0, 0, 0)
		b := domain.NewAddress(0, 0, 1)
		if _, err := pal.Apply(ctx, domain.InsertColor(domain.Color{R: 255, G: 94, B: 19}, a, false)); err != nil {
			log.Fatal(err)
		}
		if _, err := pal.Apply(ctx, domain.InsertColor(domain.Color{R: 18, G: 10, B: 64}, b, false)); err != nil {
			log.Fatal(err)
		}
		if _, err := pal.Apply(ctx, domain.InsertRamp(a, b, 6, domain.NewAddress(0, 1, 0), false)); err != nil {
			log.Fatal(err)
		}

		entries, _ := pal.Entries(domain.PatternAll())
		for _, e := range entries {
			fmt.Println(e.Address, e.Color.Hex())
		}

		// Editing an endpoint recolors the whole ramp on the next read.
		if _, err := pal.Apply(ctx, domain.InsertColor(domain.Color{R: 0, G: 100, B: 100}, a, true)); err != nil {
			log.Fatal(err)
		}
		if err := pal.Undo(ctx); err != nil {
			log.Fatal(err)
		}
	}
*/
package ramp
