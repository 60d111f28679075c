// Package redis persists palette documents in Redis, with an optional TTL
// and a sorted-set index so List stays cheap even with many palettes.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/schema"
)

const defaultPrefix = "ramp:palette:"

// Store implements ports.PaletteStore backed by Redis.
// Documents are stored as JSON under <prefix><name>; an index sorted set at
// <prefix>index tracks names scored by expiration time (or 0 when no TTL).
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL sets an expiration on stored documents. Zero means no expiration.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// NewFromClient creates a store over an existing Redis client.
func NewFromClient(client *backend.Client, opts ...StoreOption) *Store {
	s := &Store{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the document as JSON and registers it in the index.
func (s *Store) Save(ctx context.Context, doc *schema.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal palette %q: %w", doc.Name, err)
	}

	if err := s.client.Set(ctx, s.key(doc.Name), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis save palette %q: %w", doc.Name, err)
	}

	// Index score is the expiration instant so List can drop stale entries
	// without touching every key. Score 0 means never expires.
	var score float64
	if s.ttl > 0 {
		score = float64(time.Now().Add(s.ttl).Unix())
	}
	if err := s.client.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: doc.Name}).Err(); err != nil {
		return fmt.Errorf("redis index palette %q: %w", doc.Name, err)
	}
	return nil
}

// Load retrieves and decodes the document.
func (s *Store) Load(ctx context.Context, name string) (*schema.Document, error) {
	payload, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrPaletteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis load palette %q: %w", name, err)
	}

	var doc schema.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal palette %q: %w", name, err)
	}
	return &doc, nil
}

// Delete removes the document and its index entry.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("redis delete palette %q: %w", name, err)
	}
	if err := s.client.ZRem(ctx, s.indexKey(), name).Err(); err != nil {
		return fmt.Errorf("redis deindex palette %q: %w", name, err)
	}
	return nil
}

// List returns the indexed palette names, lazily pruning expired entries.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := time.Now().Unix()
	// Drop entries whose expiration score has passed. Score 0 (no TTL) is
	// excluded from the range.
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "(0", fmt.Sprintf("%d", now)).Err(); err != nil {
		return nil, fmt.Errorf("redis prune index: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list palettes: %w", err)
	}
	return names, nil
}
