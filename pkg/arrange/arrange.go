// Package arrange provides the core layout engine for Thoughtlands.
//
// This package implements the complete resolve → layout → cards flow that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// An arrangement consists of three stages:
//
//  1. Resolve: fetch missing embeddings and concept similarities; items
//     the embedding source cannot supply are skipped, never fatal
//  2. Layout: compute positions under the selected mode
//  3. Cards: attach concept and summary cards via the summarizer
//
// # Usage
//
// Create a Runner and arrange an item set:
//
//	runner := arrange.NewRunner(cache, nil, source, summarizer, logger)
//	opts := arrange.Options{
//	    Mode:  arrange.ModeWalkabout,
//	    Level: 4,
//	    Seed:  42,
//	}
//	result, err := runner.Arrange(ctx, set, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	layout := result.Layout
package arrange

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/jpmoo/thoughtlands-sub000/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultLevel is the default walkabout clustering level.
	DefaultLevel = 1

	// MinLevel and MaxLevel bound the walkabout clustering level.
	MinLevel = 1
	MaxLevel = 4
)

// Mode constants for the layout modes.
const (
	ModeWalkabout   = "walkabout"
	ModeHopscotch   = "hopscotch"
	ModeRollingPath = "rollingpath"
	ModeRegiment    = "regiment"
	ModeGaggle      = "gaggle"
)

// DefaultMode is the default layout mode.
const DefaultMode = ModeWalkabout

// ValidModes is the set of supported layout modes.
var ValidModes = map[string]bool{
	ModeWalkabout:   true,
	ModeHopscotch:   true,
	ModeRollingPath: true,
	ModeRegiment:    true,
	ModeGaggle:      true,
}

// SimilarityModes are the modes that need item embeddings. Regiment and
// gaggle place by id only and accept items without embeddings.
var SimilarityModes = map[string]bool{
	ModeWalkabout:   true,
	ModeHopscotch:   true,
	ModeRollingPath: true,
}

// =============================================================================
// Options - Arrangement Configuration
// =============================================================================

// Options contains all configuration for one arrangement.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Mode selects the layout algorithm.
	Mode string `json:"mode,omitempty"`

	// Level is the walkabout clustering level (1..4). Ignored by other modes.
	Level int `json:"level,omitempty"`

	// Concept is the focal concept text, used for card labels and
	// summarization prompts.
	Concept string `json:"concept,omitempty"`

	// Seed drives every stochastic step; identical inputs and seed
	// reproduce the layout exactly.
	Seed uint64 `json:"seed,omitempty"`

	// Refresh bypasses the layout cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Tuning *Tuning     `json:"-"`
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if !ValidModes[o.Mode] {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be one of: walkabout, hopscotch, rollingpath, regiment, gaggle)", o.Mode)
	}

	if o.Level == 0 {
		o.Level = DefaultLevel
	}
	if o.Mode == ModeWalkabout && (o.Level < MinLevel || o.Level > MaxLevel) {
		return errors.New(errors.ErrCodeInvalidLevel, "invalid level: %d (must be in [%d,%d])", o.Level, MinLevel, MaxLevel)
	}

	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Tuning == nil {
		t := DefaultTuning()
		o.Tuning = &t
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// IsPath returns true for the sequential path modes.
func (o *Options) IsPath() bool {
	return o.Mode == ModeHopscotch || o.Mode == ModeRollingPath
}

// NeedsSimilarity returns true when the mode requires item embeddings.
func (o *Options) NeedsSimilarity() bool {
	return SimilarityModes[o.Mode]
}
