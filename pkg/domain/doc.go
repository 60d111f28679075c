// Package domain contains the core value types of the palette engine:
// addresses, colors, elements and operations.
//
// The types here are pure data. Mutation rules live in pkg/graph and
// pkg/engine; interpolation lives in pkg/eval. Keeping the domain free of
// behavior makes adapters (HTTP, MCP, CLI) trivially serializable.
package domain
