// Package embedding abstracts where item embedding vectors come from.
//
// The layout engine never computes embeddings itself. It asks a [Source]
// for the vector of each item and simply skips items the source cannot
// supply. Sources can be in-memory (vectors shipped with the item set),
// HTTP-backed (an external embedding service), or wrapped with a cache.
package embedding

import (
	"context"
	"time"

	"github.com/jpmoo/thoughtlands-sub000/pkg/observability"
)

// Source supplies embedding vectors for items.
type Source interface {
	// Fetch returns the embedding for an item. The bool reports whether
	// the item has an embedding at all; absence is not an error.
	Fetch(ctx context.Context, itemID string) ([]float64, bool, error)
}

// MapSource serves embeddings from an in-memory map.
// This is the common case: the item set already carries its vectors.
type MapSource struct {
	vectors map[string][]float64
}

// NewMapSource creates a source backed by the given map.
// The map is used directly, not copied.
func NewMapSource(vectors map[string][]float64) *MapSource {
	if vectors == nil {
		vectors = map[string][]float64{}
	}
	return &MapSource{vectors: vectors}
}

// Fetch returns the embedding for an item, if present.
func (s *MapSource) Fetch(ctx context.Context, itemID string) ([]float64, bool, error) {
	start := time.Now()
	v, ok := s.vectors[itemID]
	observability.Collaborator().OnEmbeddingFetch(ctx, itemID, ok, time.Since(start), nil)
	if !ok || len(v) == 0 {
		return nil, false, nil
	}
	return v, true, nil
}

// Ensure MapSource implements Source.
var _ Source = (*MapSource)(nil)
