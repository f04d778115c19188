// Package walkabout implements the radial layout mode.
//
// Distance from the canvas center encodes similarity to the focal concept,
// angular position encodes note-to-note similarity. Two layouts are
// computed per call: "free" positions from the force-directed embedding
// and "clustered" positions from k-means cluster angles. The clustering
// level interpolates between them with eased blending, so sliding the
// level control moves items smoothly instead of jumping.
package walkabout

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"

	"github.com/jpmoo/thoughtlands-sub000/pkg/canvas"
	"github.com/jpmoo/thoughtlands-sub000/pkg/errors"
	"github.com/jpmoo/thoughtlands-sub000/pkg/planar"
	"github.com/jpmoo/thoughtlands-sub000/pkg/summarize"
	"github.com/jpmoo/thoughtlands-sub000/pkg/vecmath"
)

// Clustering level bounds.
const (
	MinLevel = 1
	MaxLevel = 4
)

// Options configures a walkabout composition.
type Options struct {
	// Level is the clustering level, 1 (free) through 4 (fully clustered).
	Level int

	// ConceptText labels the concept card at the origin. May be empty.
	ConceptText string

	Radius  RadiusOptions
	Embed   planar.EmbedOptions
	Balance planar.BalanceOptions
	KMeans  planar.KMeansOptions

	// FanSpread is the angular arc, in radians, that the members of one
	// cluster fan across at full clustering.
	FanSpread float64

	// RadialFloor prevents the cluster pull from collapsing items toward
	// the center at mid levels.
	RadialFloor float64

	// CardMargin is how far outside a cluster's radius its summary card
	// is anchored.
	CardMargin float64
}

// DefaultOptions returns the standard walkabout configuration.
func DefaultOptions() Options {
	return Options{
		Level:       MinLevel,
		Radius:      DefaultRadiusOptions(),
		Embed:       planar.DefaultEmbedOptions(),
		Balance:     planar.DefaultBalanceOptions(),
		KMeans:      planar.DefaultKMeansOptions(),
		FanSpread:   math.Pi / 3,
		RadialFloor: 80,
		CardMargin:  60,
	}
}

// Compose computes walkabout positions for the given items.
//
// Items must already carry embeddings and concept similarities; the
// caller filters out items without them. At level 4, clusters with more
// than one member get a summary card whose text comes from the
// summarizer; a missing or failing summarizer omits the card only.
func Compose(ctx context.Context, items []canvas.Item, rng *rand.Rand, s summarize.Summarizer, opts Options) (map[string]planar.Position, []canvas.Card, error) {
	n := len(items)
	if n == 0 {
		return nil, nil, errors.New(errors.ErrCodeNoPlaceableItems, "no items to arrange")
	}
	if opts.Level < MinLevel || opts.Level > MaxLevel {
		return nil, nil, errors.New(errors.ErrCodeInvalidLevel, "clustering level %d outside [%d,%d]", opts.Level, MinLevel, MaxLevel)
	}

	// Free positions: similarity radii plus balanced embedding angles.
	vectors := make([][]float64, n)
	similarities := make([]float64, n)
	for i, it := range items {
		vectors[i] = it.Embedding
		similarities[i] = it.ConceptSimilarity
	}

	sims := vecmath.SimilarityMatrix(vectors)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			dist[i][j] = 1 - sims[i][j]
		}
	}

	pts := planar.Normalize(planar.Embed(dist, rng, opts.Embed))
	angles := planar.BalanceAngles(planar.Angles(pts), opts.Balance)
	radii := Radii(similarities, opts.Radius)

	free := make([]planar.Position, n)
	for i := range free {
		free[i] = planar.Polar(radii[i], angles[i])
	}

	// Clustered positions: members fan out around their cluster's
	// circular-mean angle at a shared, floored radius.
	clusters := planar.KMeans(pts, planar.ClusterCount(n), rng, opts.KMeans)
	clustered := make([]planar.Position, n)
	copy(clustered, free)

	type clusterInfo struct {
		angle   float64
		radius  float64
		members []int
	}
	var infos []clusterInfo

	for _, members := range clusters {
		if len(members) == 0 {
			continue
		}
		memberAngles := make([]float64, len(members))
		meanR := 0.0
		for j, idx := range members {
			memberAngles[j] = angles[idx]
			meanR += radii[idx]
		}
		meanR /= float64(len(members))

		info := clusterInfo{
			angle:   planar.CircularMeanAngle(memberAngles),
			radius:  math.Max(opts.RadialFloor, meanR),
			members: append([]int(nil), members...),
		}
		infos = append(infos, info)

		// Fan members across the arc in free-angle order so cluster
		// formation preserves relative ordering.
		sort.SliceStable(info.members, func(a, b int) bool {
			return angles[info.members[a]] < angles[info.members[b]]
		})
		m := len(info.members)
		for j, idx := range info.members {
			offset := 0.0
			if m > 1 {
				offset = -opts.FanSpread/2 + opts.FanSpread*float64(j)/float64(m-1)
			}
			clustered[idx] = planar.Polar(info.radius, info.angle+offset)
		}
	}

	// Interpolate free -> clustered with eased alpha.
	alpha := easeInOut(float64(opts.Level-1) / 3)
	positions := make(map[string]planar.Position, n)
	for i, it := range items {
		positions[it.ID] = planar.Position{
			X: free[i].X + alpha*(clustered[i].X-free[i].X),
			Y: free[i].Y + alpha*(clustered[i].Y-free[i].Y),
		}
	}

	cards := []canvas.Card{{
		ID:     uuid.NewString(),
		Kind:   canvas.CardKindConcept,
		Text:   opts.ConceptText,
		Anchor: planar.Position{},
	}}

	if opts.Level == MaxLevel && s != nil {
		for _, info := range infos {
			if len(info.members) <= 1 {
				continue
			}
			sources := make([]string, len(info.members))
			for j, idx := range info.members {
				sources[j] = items[idx].ID
			}
			text, ok, err := s.Summarize(ctx, summarize.ClusterPrompt(len(sources)), sources)
			if err != nil || !ok {
				continue
			}
			cards = append(cards, canvas.Card{
				ID:     uuid.NewString(),
				Kind:   canvas.CardKindClusterSummary,
				Text:   text,
				Anchor: planar.Polar(info.radius+opts.CardMargin, info.angle),
			})
		}
	}

	return positions, cards, nil
}

// easeInOut is quadratic ease-in-out. Exact at both endpoints, so level 1
// reproduces free positions and level 4 reproduces clustered positions.
func easeInOut(a float64) float64 {
	if a < 0.5 {
		return 2 * a * a
	}
	return 1 - 2*(1-a)*(1-a)
}
