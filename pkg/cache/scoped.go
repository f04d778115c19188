package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// In the server, different users need separate cache namespaces so one
// user's private notes never surface through another user's keys.
//
// Example usage:
//
//	// User-specific keys for private canvases
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared canvases
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// EmbeddingKey generates a prefixed key for a cached embedding vector.
func (k *ScopedKeyer) EmbeddingKey(itemID string) string {
	return k.prefix + k.inner.EmbeddingKey(itemID)
}

// LayoutKey generates a prefixed key for a computed layout.
func (k *ScopedKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(itemsHash, opts)
}

// SummaryKey generates a prefixed key for a summarization result.
func (k *ScopedKeyer) SummaryKey(opts SummaryKeyOpts) string {
	return k.prefix + k.inner.SummaryKey(opts)
}
