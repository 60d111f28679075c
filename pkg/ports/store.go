package ports

import (
	"context"

	"github.com/aretw0/ramp/pkg/schema"
)

// PaletteStore defines the interface for persisting palette documents.
// Documents are keyed by palette name.
type PaletteStore interface {
	// Save persists the document under its name, replacing any previous
	// version.
	Save(ctx context.Context, doc *schema.Document) error

	// Load retrieves the document for a given palette name.
	// Returns domain.ErrPaletteNotFound if no such palette exists.
	Load(ctx context.Context, name string) (*schema.Document, error)

	// Delete removes the document for a given palette name.
	Delete(ctx context.Context, name string) error

	// List returns the stored palette names.
	List(ctx context.Context) ([]string, error)
}
