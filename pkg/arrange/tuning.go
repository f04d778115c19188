package arrange

import (
	"encoding/json"

	"github.com/BurntSushi/toml"

	"github.com/jpmoo/thoughtlands-sub000/pkg/arrange/crowd"
	"github.com/jpmoo/thoughtlands-sub000/pkg/arrange/path"
	"github.com/jpmoo/thoughtlands-sub000/pkg/arrange/walkabout"
	"github.com/jpmoo/thoughtlands-sub000/pkg/cache"
	"github.com/jpmoo/thoughtlands-sub000/pkg/planar"
)

// Tuning collects every numeric constant of the layout algorithms in one
// immutable struct, so multiple layouts with different tuning can run
// concurrently. Values are loadable from a TOML file; zero fields fall
// back to the defaults.
//
// The swirl gap factor and rotation step are heuristics preserved from
// observed behavior; they are exposed here as named knobs rather than
// re-derived.
type Tuning struct {
	Spring  SpringTuning  `toml:"spring"`
	Balance BalanceTuning `toml:"balance"`
	Cluster ClusterTuning `toml:"cluster"`
	Radius  RadiusTuning  `toml:"radius"`
	Fan     FanTuning     `toml:"fan"`
	Path    PathTuning    `toml:"path"`
	Crowd   CrowdTuning   `toml:"crowd"`
}

// SpringTuning controls the force-directed embedding.
type SpringTuning struct {
	Iterations    int     `toml:"iterations"`
	Length        float64 `toml:"length"`
	Damping       float64 `toml:"damping"`
	MinSeparation float64 `toml:"min_separation"`
	InitRadius    float64 `toml:"init_radius"`
	InitJitter    float64 `toml:"init_jitter"`
}

// BalanceTuning controls angular rebalancing.
type BalanceTuning struct {
	SwirlGapFactor  float64 `toml:"swirl_gap_factor"`
	RotationStepDeg float64 `toml:"rotation_step_deg"`
}

// ClusterTuning controls k-means.
type ClusterTuning struct {
	MaxIterations int     `toml:"max_iterations"`
	Epsilon       float64 `toml:"epsilon"`
}

// RadiusTuning controls the similarity-to-radius mapping.
type RadiusTuning struct {
	RMin           float64 `toml:"r_min"`
	RMax           float64 `toml:"r_max"`
	ExpansionPower float64 `toml:"expansion_power"`
}

// FanTuning controls cluster fanning in walkabout.
type FanTuning struct {
	SpreadRad   float64 `toml:"spread_rad"`
	RadialFloor float64 `toml:"radial_floor"`
	CardMargin  float64 `toml:"card_margin"`
}

// PathTuning controls the path modes.
type PathTuning struct {
	Threshold float64 `toml:"threshold"`
	MaxLength int     `toml:"max_length"`
	StepX     float64 `toml:"step_x"`
	StepY     float64 `toml:"step_y"`
}

// CrowdTuning controls regiment and gaggle.
type CrowdTuning struct {
	Pitch           float64 `toml:"pitch"`
	Footprint       float64 `toml:"footprint"`
	MinSpacing      float64 `toml:"min_spacing"`
	SigmaFactor     float64 `toml:"sigma_factor"`
	UniformJitter   float64 `toml:"uniform_jitter"`
	BoundFactor     float64 `toml:"bound_factor"`
	StrictAttempts  int     `toml:"strict_attempts"`
	RelaxedAttempts int     `toml:"relaxed_attempts"`
	RelaxFactor     float64 `toml:"relax_factor"`
}

// DefaultTuning returns the standard constants.
func DefaultTuning() Tuning {
	embed := planar.DefaultEmbedOptions()
	balance := planar.DefaultBalanceOptions()
	kmeans := planar.DefaultKMeansOptions()
	radius := walkabout.DefaultRadiusOptions()
	wk := walkabout.DefaultOptions()
	pathOpts := path.DefaultOptions(path.VariantHopscotch)
	regiment := crowd.DefaultRegimentOptions()
	gaggle := crowd.DefaultGaggleOptions()

	return Tuning{
		Spring: SpringTuning{
			Iterations:    embed.Iterations,
			Length:        embed.SpringLength,
			Damping:       embed.Damping,
			MinSeparation: embed.MinSeparation,
			InitRadius:    embed.InitRadius,
			InitJitter:    embed.InitJitter,
		},
		Balance: BalanceTuning{
			SwirlGapFactor:  balance.SwirlGapFactor,
			RotationStepDeg: balance.RotationStepDeg,
		},
		Cluster: ClusterTuning{
			MaxIterations: kmeans.MaxIterations,
			Epsilon:       kmeans.Epsilon,
		},
		Radius: RadiusTuning{
			RMin:           radius.RMin,
			RMax:           radius.RMax,
			ExpansionPower: radius.ExpansionPower,
		},
		Fan: FanTuning{
			SpreadRad:   wk.FanSpread,
			RadialFloor: wk.RadialFloor,
			CardMargin:  wk.CardMargin,
		},
		Path: PathTuning{
			Threshold: pathOpts.Threshold,
			MaxLength: pathOpts.MaxLength,
			StepX:     pathOpts.StepX,
			StepY:     pathOpts.StepY,
		},
		Crowd: CrowdTuning{
			Pitch:           regiment.Pitch,
			Footprint:       gaggle.Footprint,
			MinSpacing:      gaggle.MinSpacing,
			SigmaFactor:     gaggle.SigmaFactor,
			UniformJitter:   gaggle.UniformJitter,
			BoundFactor:     gaggle.BoundFactor,
			StrictAttempts:  gaggle.StrictAttempts,
			RelaxedAttempts: gaggle.RelaxedAttempts,
			RelaxFactor:     gaggle.RelaxFactor,
		},
	}
}

// LoadTuning reads a TOML tuning file. Fields absent from the file keep
// their default values.
func LoadTuning(filename string) (Tuning, error) {
	t := DefaultTuning()
	if _, err := toml.DecodeFile(filename, &t); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Hash returns a content hash of the tuning, used in layout cache keys
// so a tuning change invalidates cached layouts.
func (t Tuning) Hash() string {
	data, _ := json.Marshal(t)
	return cache.Hash(data)
}

// =============================================================================
// Conversions to component options
// =============================================================================

// WalkaboutOptions builds the walkabout configuration for the given
// clustering level and concept text.
func (t Tuning) WalkaboutOptions(level int, concept string) walkabout.Options {
	return walkabout.Options{
		Level:       level,
		ConceptText: concept,
		Radius: walkabout.RadiusOptions{
			RMin:           t.Radius.RMin,
			RMax:           t.Radius.RMax,
			ExpansionPower: t.Radius.ExpansionPower,
		},
		Embed: planar.EmbedOptions{
			Iterations:    t.Spring.Iterations,
			SpringLength:  t.Spring.Length,
			Damping:       t.Spring.Damping,
			MinSeparation: t.Spring.MinSeparation,
			InitRadius:    t.Spring.InitRadius,
			InitJitter:    t.Spring.InitJitter,
		},
		Balance: planar.BalanceOptions{
			SwirlGapFactor:  t.Balance.SwirlGapFactor,
			RotationStepDeg: t.Balance.RotationStepDeg,
		},
		KMeans: planar.KMeansOptions{
			MaxIterations: t.Cluster.MaxIterations,
			Epsilon:       t.Cluster.Epsilon,
		},
		FanSpread:   t.Fan.SpreadRad,
		RadialFloor: t.Fan.RadialFloor,
		CardMargin:  t.Fan.CardMargin,
	}
}

// PathOptions builds the path configuration for the given variant.
func (t Tuning) PathOptions(variant path.Variant, concept string) path.Options {
	return path.Options{
		Variant:     variant,
		Threshold:   t.Path.Threshold,
		MaxLength:   t.Path.MaxLength,
		StepX:       t.Path.StepX,
		StepY:       t.Path.StepY,
		ConceptText: concept,
	}
}

// RegimentOptions builds the grid configuration.
func (t Tuning) RegimentOptions() crowd.RegimentOptions {
	return crowd.RegimentOptions{Pitch: t.Crowd.Pitch}
}

// GaggleOptions builds the scatter configuration.
func (t Tuning) GaggleOptions() crowd.GaggleOptions {
	return crowd.GaggleOptions{
		Footprint:       t.Crowd.Footprint,
		MinSpacing:      t.Crowd.MinSpacing,
		SigmaFactor:     t.Crowd.SigmaFactor,
		UniformJitter:   t.Crowd.UniformJitter,
		BoundFactor:     t.Crowd.BoundFactor,
		StrictAttempts:  t.Crowd.StrictAttempts,
		RelaxedAttempts: t.Crowd.RelaxedAttempts,
		RelaxFactor:     t.Crowd.RelaxFactor,
	}
}
