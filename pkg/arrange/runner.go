package arrange

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jpmoo/thoughtlands-sub000/pkg/arrange/crowd"
	pathmode "github.com/jpmoo/thoughtlands-sub000/pkg/arrange/path"
	"github.com/jpmoo/thoughtlands-sub000/pkg/arrange/walkabout"
	"github.com/jpmoo/thoughtlands-sub000/pkg/cache"
	"github.com/jpmoo/thoughtlands-sub000/pkg/canvas"
	"github.com/jpmoo/thoughtlands-sub000/pkg/embedding"
	"github.com/jpmoo/thoughtlands-sub000/pkg/errors"
	"github.com/jpmoo/thoughtlands-sub000/pkg/observability"
	"github.com/jpmoo/thoughtlands-sub000/pkg/summarize"
	"github.com/jpmoo/thoughtlands-sub000/pkg/vecmath"
)

// Result contains the outputs of an arrangement.
type Result struct {
	// Layout holds the computed positions, cards, and gaggle fallbacks.
	Layout canvas.Layout

	// ItemsHash is the content hash of the resolved item set.
	ItemsHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the layout came from cache.
	CacheInfo CacheInfo
}

// Stats contains arrangement statistics.
type Stats struct {
	ItemCount   int
	PlacedCount int
	SkippedIDs  []string
	ArrangeTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}

// Runner encapsulates arrangement execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't
// store arrangement results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache      cache.Cache
	Keyer      cache.Keyer
	Source     embedding.Source
	Summarizer summarize.Summarizer
	Logger     *log.Logger
}

// NewRunner creates a runner with the given collaborators.
// A nil cache disables caching, a nil keyer uses the default keyer, and
// a nil source serves only items that already carry embeddings.
func NewRunner(c cache.Cache, keyer cache.Keyer, source embedding.Source, s summarize.Summarizer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:      c,
		Keyer:      keyer,
		Source:     source,
		Summarizer: s,
		Logger:     logger,
	}
}

// Arrange computes a layout for the item set with caching.
func (r *Runner) Arrange(ctx context.Context, set canvas.ItemSet, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Arrange().OnArrangeStart(ctx, opts.Mode, len(set.Items))

	result := &Result{
		Stats: Stats{ItemCount: len(set.Items)},
	}

	// Stage 1: Resolve embeddings and similarities.
	items, skipped, err := r.resolve(ctx, set, opts)
	if err != nil {
		observability.Arrange().OnArrangeComplete(ctx, opts.Mode, time.Since(start), err)
		return nil, err
	}
	result.Stats.SkippedIDs = skipped
	result.Stats.PlacedCount = len(items)

	// Cache key from the resolved items plus every layout input.
	resolved := canvas.ItemSet{Concept: set.Concept, Items: items}
	data, err := canvas.MarshalItemSet(resolved)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize items for cache key")
	}
	result.ItemsHash = cache.Hash(data)
	cacheKey := r.Keyer.LayoutKey(result.ItemsHash, cache.LayoutKeyOpts{
		Mode:       opts.Mode,
		Level:      opts.Level,
		Seed:       opts.Seed,
		TuningHash: opts.Tuning.Hash(),
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if layout, err := canvas.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				result.Layout = layout
				result.CacheInfo.LayoutHit = true
				result.Stats.ArrangeTime = time.Since(start)
				observability.Arrange().OnArrangeComplete(ctx, opts.Mode, result.Stats.ArrangeTime, nil)
				return result, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Stage 2 + 3: Layout and cards.
	layout, err := r.compute(ctx, resolved, opts)
	if err != nil {
		observability.Arrange().OnArrangeComplete(ctx, opts.Mode, time.Since(start), err)
		return nil, err
	}
	result.Layout = layout

	if data, err := canvas.MarshalLayout(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	result.Stats.ArrangeTime = time.Since(start)
	opts.Logger.Info("arranged items",
		"mode", opts.Mode,
		"placed", result.Stats.PlacedCount,
		"skipped", len(skipped),
		"duration", result.Stats.ArrangeTime)
	observability.Arrange().OnArrangeComplete(ctx, opts.Mode, result.Stats.ArrangeTime, nil)

	return result, nil
}

// resolve fills missing embeddings from the source and missing concept
// similarities from the concept vector. For similarity modes, items the
// source cannot supply are dropped; only an empty remainder is fatal.
func (r *Runner) resolve(ctx context.Context, set canvas.ItemSet, opts Options) ([]canvas.Item, []string, error) {
	items := make([]canvas.Item, 0, len(set.Items))
	var skipped []string

	for _, it := range set.Items {
		if len(it.Embedding) == 0 && r.Source != nil {
			v, found, err := r.Source.Fetch(ctx, it.ID)
			if err != nil {
				// Collaborator failures degrade to "absent".
				opts.Logger.Warn("embedding fetch failed", "item", it.ID, "err", err)
			} else if found {
				it.Embedding = v
			}
		}

		if len(it.Embedding) == 0 && opts.NeedsSimilarity() {
			opts.Logger.Debug("skipping item without embedding", "item", it.ID)
			observability.Arrange().OnItemSkipped(ctx, it.ID, "missing embedding")
			skipped = append(skipped, it.ID)
			continue
		}

		if it.ConceptSimilarity == 0 && len(set.Concept) > 0 && len(it.Embedding) > 0 {
			it.ConceptSimilarity = vecmath.Cosine(set.Concept, it.Embedding)
		}
		items = append(items, it)
	}

	if len(items) == 0 {
		return nil, skipped, errors.New(errors.ErrCodeNoPlaceableItems, "no placeable items: %d of %d lacked embeddings", len(skipped), len(set.Items))
	}
	return items, skipped, nil
}

// compute dispatches to the mode implementation.
func (r *Runner) compute(ctx context.Context, set canvas.ItemSet, opts Options) (canvas.Layout, error) {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))

	layout := canvas.Layout{
		Mode: opts.Mode,
		Seed: opts.Seed,
	}

	switch opts.Mode {
	case ModeWalkabout:
		positions, cards, err := walkabout.Compose(ctx, set.Items, rng, r.Summarizer, opts.Tuning.WalkaboutOptions(opts.Level, opts.Concept))
		if err != nil {
			return canvas.Layout{}, err
		}
		layout.Positions, layout.Cards = positions, cards

	case ModeHopscotch, ModeRollingPath:
		variant := pathmode.VariantHopscotch
		if opts.Mode == ModeRollingPath {
			variant = pathmode.VariantRolling
		}
		positions, cards, err := pathmode.Build(ctx, set.Concept, set.Items, r.Summarizer, opts.Tuning.PathOptions(variant, opts.Concept))
		if err != nil {
			return canvas.Layout{}, err
		}
		layout.Positions, layout.Cards = positions, cards

	case ModeRegiment:
		layout.Positions = crowd.Regiment(itemIDs(set.Items), opts.Tuning.RegimentOptions())

	case ModeGaggle:
		positions, fallbacks := crowd.Gaggle(itemIDs(set.Items), rng, opts.Tuning.GaggleOptions())
		for _, id := range fallbacks {
			observability.Arrange().OnFallback(ctx, opts.Mode, id)
		}
		layout.Positions, layout.Fallbacks = positions, fallbacks

	default:
		return canvas.Layout{}, errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q", opts.Mode)
	}

	return layout, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
// Must run before validation, which substitutes a discard logger for nil.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func itemIDs(items []canvas.Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
