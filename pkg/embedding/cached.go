package embedding

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jpmoo/thoughtlands-sub000/pkg/cache"
	"github.com/jpmoo/thoughtlands-sub000/pkg/observability"
)

// DefaultTTL is how long cached embeddings are kept.
// Embeddings only change when the note text changes, so a long TTL is safe.
const DefaultTTL = 7 * 24 * time.Hour

// CachedSource wraps a Source with a cache layer.
// Misses fall through to the inner source; absence is cached as well so
// that items without embeddings do not hit the inner source repeatedly.
type CachedSource struct {
	inner Source
	store cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// cachedVector is the cache payload. Found distinguishes "no embedding"
// from "never looked up".
type cachedVector struct {
	Vector []float64 `json:"vector,omitempty"`
	Found  bool      `json:"found"`
}

// NewCachedSource wraps inner with the given cache backend.
// A nil keyer falls back to the default keyer; zero ttl uses DefaultTTL.
func NewCachedSource(inner Source, store cache.Cache, keyer cache.Keyer, ttl time.Duration) *CachedSource {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &CachedSource{inner: inner, store: store, keyer: keyer, ttl: ttl}
}

// Fetch returns the embedding for an item, consulting the cache first.
// Cache errors are swallowed: a broken cache degrades to the inner source.
func (s *CachedSource) Fetch(ctx context.Context, itemID string) ([]float64, bool, error) {
	key := s.keyer.EmbeddingKey(itemID)

	if data, hit, err := s.store.Get(ctx, key); err == nil && hit {
		var entry cachedVector
		if err := json.Unmarshal(data, &entry); err == nil {
			observability.Cache().OnCacheHit(ctx, "embedding")
			return entry.Vector, entry.Found, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "embedding")

	vector, found, err := s.inner.Fetch(ctx, itemID)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(cachedVector{Vector: vector, Found: found}); err == nil {
		if err := s.store.Set(ctx, key, data, s.ttl); err == nil {
			observability.Cache().OnCacheSet(ctx, "embedding", len(data))
		}
	}
	return vector, found, nil
}

// Ensure CachedSource implements Source.
var _ Source = (*CachedSource)(nil)
