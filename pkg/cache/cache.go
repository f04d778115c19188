// Package cache provides caching for expensive layout engine operations.
//
// Layouts are deterministic in the item set, mode, level, seed, and tuning,
// so a computed layout can be reused whenever the same inputs come back.
// Embedding fetches and summarization calls go to external collaborators
// and benefit from caching even more.
//
// # Backends
//
//   - FileCache: directory-backed cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching entirely
//
// # Keys
//
// The Keyer interface centralizes key construction so that every consumer
// hashes inputs the same way. Keys are content-addressed: the layout key
// includes a hash of the item set, so editing a note invalidates its
// layouts automatically.
package cache

import (
	"context"
	"time"
)

// TTLLayout is how long computed layouts are kept. The key is
// content-addressed, so a long TTL only costs storage.
const TTLLayout = 24 * time.Hour

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. Zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures everything a layout depends on besides the items.
type LayoutKeyOpts struct {
	Mode       string `json:"mode"`
	Level      int    `json:"level,omitempty"`
	Seed       uint64 `json:"seed"`
	TuningHash string `json:"tuning_hash,omitempty"`
}

// SummaryKeyOpts captures the inputs of a summarization call.
type SummaryKeyOpts struct {
	Kind    string   `json:"kind"`
	Prompt  string   `json:"prompt"`
	Sources []string `json:"sources"`
}

// Keyer generates cache keys for different operation types.
type Keyer interface {
	// EmbeddingKey generates a key for a cached embedding vector.
	EmbeddingKey(itemID string) string

	// LayoutKey generates a key for a computed layout.
	// itemsHash is a content hash of the serialized item set.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string

	// SummaryKey generates a key for a summarization result.
	SummaryKey(opts SummaryKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// EmbeddingKey generates a key for a cached embedding vector.
func (k *DefaultKeyer) EmbeddingKey(itemID string) string {
	return hashKey("embedding", itemID)
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}

// SummaryKey generates a key for a summarization result.
func (k *DefaultKeyer) SummaryKey(opts SummaryKeyOpts) string {
	return hashKey("summary", opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
