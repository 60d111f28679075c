// Package graph stores palette elements keyed by address together with the
// dependency edges between them, and enforces acyclicity on every insert.
//
// The graph is deliberately unsynchronized; pkg/engine owns it and applies
// the single-writer discipline.
package graph
