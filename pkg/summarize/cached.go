package summarize

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jpmoo/thoughtlands-sub000/pkg/cache"
	"github.com/jpmoo/thoughtlands-sub000/pkg/observability"
)

// DefaultTTL is how long cached summaries are kept.
const DefaultTTL = 24 * time.Hour

// Cached wraps a Summarizer with a cache layer keyed on the prompt and
// source texts. Identical requests return the cached summary.
type Cached struct {
	inner Summarizer
	store cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

type cachedSummary struct {
	Text string `json:"text"`
	OK   bool   `json:"ok"`
}

// NewCached wraps inner with the given cache backend.
// A nil keyer falls back to the default keyer; zero ttl uses DefaultTTL.
func NewCached(inner Summarizer, store cache.Cache, keyer cache.Keyer, ttl time.Duration) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Cached{inner: inner, store: store, keyer: keyer, ttl: ttl}
}

// Summarize consults the cache before calling the inner summarizer.
// Cache errors degrade to the inner summarizer; inner failures are
// never cached so a transient outage does not poison the cache.
func (c *Cached) Summarize(ctx context.Context, prompt string, sources []string) (string, bool, error) {
	key := c.keyer.SummaryKey(cache.SummaryKeyOpts{Kind: "summary", Prompt: prompt, Sources: sources})

	if data, hit, err := c.store.Get(ctx, key); err == nil && hit {
		var entry cachedSummary
		if err := json.Unmarshal(data, &entry); err == nil {
			observability.Cache().OnCacheHit(ctx, "summary")
			return entry.Text, entry.OK, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "summary")

	text, ok, err := c.inner.Summarize(ctx, prompt, sources)
	if err != nil {
		return "", false, err
	}

	if data, err := json.Marshal(cachedSummary{Text: text, OK: ok}); err == nil {
		if err := c.store.Set(ctx, key, data, c.ttl); err == nil {
			observability.Cache().OnCacheSet(ctx, "summary", len(data))
		}
	}
	return text, ok, nil
}

// Ensure Cached implements Summarizer.
var _ Summarizer = (*Cached)(nil)
