package memory

import (
	"context"
	"sync"

	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/schema"
)

// Store implements ports.PaletteStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*schema.Document
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*schema.Document),
	}
}

// Save persists the document in memory.
func (s *Store) Save(ctx context.Context, doc *schema.Document) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := *doc
	copied.Elements = append([]schema.DocumentElement(nil), doc.Elements...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[doc.Name] = &copied
	return nil
}

// Load retrieves the document from memory.
func (s *Store) Load(ctx context.Context, name string) (*schema.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[name]
	if !ok {
		return nil, domain.ErrPaletteNotFound
	}

	// Copy on read so the caller can't mutate stored state through the pointer
	ret := *doc
	ret.Elements = append([]schema.DocumentElement(nil), doc.Elements...)
	return &ret, nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored palette names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	return names, nil
}
