// Package path implements the sequential layout modes.
//
// Both variants build an ordered chain of items by greedy nearest-neighbor
// selection, starting from the item most similar to the focal concept.
// Hopscotch chases the last selected item; Rolling Path chases the running
// centroid of the concept plus everything selected so far, which biases the
// chain toward emerging themes rather than the single last pick. Running
// out of candidates is not an error: the partial path is the result.
package path

import (
	"context"

	"github.com/google/uuid"

	"github.com/jpmoo/thoughtlands-sub000/pkg/canvas"
	"github.com/jpmoo/thoughtlands-sub000/pkg/errors"
	"github.com/jpmoo/thoughtlands-sub000/pkg/planar"
	"github.com/jpmoo/thoughtlands-sub000/pkg/summarize"
	"github.com/jpmoo/thoughtlands-sub000/pkg/vecmath"
)

// Variant selects the chaining rule.
type Variant string

const (
	// VariantHopscotch chains on similarity to the last selected item.
	VariantHopscotch Variant = "hopscotch"

	// VariantRolling chains on similarity to the running centroid of the
	// concept and all selected items.
	VariantRolling Variant = "rolling"
)

// DefaultMaxLength caps the path length.
const DefaultMaxLength = 50

// Options configures a path build.
type Options struct {
	Variant Variant

	// Threshold is the minimum similarity for extending the path.
	// The start item is always included regardless.
	Threshold float64

	// MaxLength caps the number of items on the path.
	MaxLength int

	// Start anchors the first item; subsequent items step diagonally.
	Start planar.Position

	// StepX, StepY are the per-item diagonal offsets.
	StepX, StepY float64

	// ConceptText labels the concept card and feeds the closing prompt.
	ConceptText string
}

// DefaultOptions returns the standard path configuration.
func DefaultOptions(v Variant) Options {
	return Options{
		Variant:   v,
		Threshold: 0.5,
		MaxLength: DefaultMaxLength,
		StepX:     180,
		StepY:     120,
	}
}

// Build selects and places a path through the items.
//
// The concept vector drives start selection and, for Rolling Path, the
// drifting reference. Items are placed at fixed diagonal offsets in
// selection order, with a concept card before the first item and a
// summary card after the last when the summarizer produces one.
func Build(ctx context.Context, concept []float64, items []canvas.Item, s summarize.Summarizer, opts Options) (map[string]planar.Position, []canvas.Card, error) {
	if len(items) == 0 {
		return nil, nil, errors.New(errors.ErrCodeNoPlaceableItems, "no items to arrange")
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultMaxLength
	}

	order := selectOrder(concept, items, opts)

	positions := make(map[string]planar.Position, len(order))
	for i, idx := range order {
		positions[items[idx].ID] = planar.Position{
			X: opts.Start.X + float64(i)*opts.StepX,
			Y: opts.Start.Y + float64(i)*opts.StepY,
		}
	}

	cards := []canvas.Card{{
		ID:   uuid.NewString(),
		Kind: canvas.CardKindConcept,
		Text: opts.ConceptText,
		Anchor: planar.Position{
			X: opts.Start.X - opts.StepX,
			Y: opts.Start.Y - opts.StepY,
		},
	}}

	if s != nil {
		sources := make([]string, len(order))
		for i, idx := range order {
			sources[i] = items[idx].ID
		}
		text, ok, err := s.Summarize(ctx, summarize.PathPrompt(opts.ConceptText), sources)
		if err == nil && ok {
			cards = append(cards, canvas.Card{
				ID:   uuid.NewString(),
				Kind: canvas.CardKindPathSummary,
				Text: text,
				Anchor: planar.Position{
					X: opts.Start.X + float64(len(order))*opts.StepX,
					Y: opts.Start.Y + float64(len(order))*opts.StepY,
				},
			})
		}
	}

	return positions, cards, nil
}

// selectOrder returns item indices in path order.
func selectOrder(concept []float64, items []canvas.Item, opts Options) []int {
	used := make([]bool, len(items))

	// Start at the item most similar to the concept. When no concept
	// vector is supplied, fall back to the precomputed similarity score.
	start, best := 0, conceptScore(concept, items[0])
	for i := 1; i < len(items); i++ {
		if s := conceptScore(concept, items[i]); s > best {
			start, best = i, s
		}
	}
	order := []int{start}
	used[start] = true

	for len(order) < opts.MaxLength {
		var reference []float64
		switch opts.Variant {
		case VariantRolling:
			members := make([][]float64, 0, len(order)+1)
			if len(concept) > 0 {
				members = append(members, concept)
			}
			for _, idx := range order {
				members = append(members, items[idx].Embedding)
			}
			reference = vecmath.Centroid(members)
		default:
			reference = items[order[len(order)-1]].Embedding
		}
		if len(reference) == 0 {
			break
		}

		next, nextSim := -1, 0.0
		for i := range items {
			if used[i] {
				continue
			}
			if sim := vecmath.Cosine(reference, items[i].Embedding); next == -1 || sim > nextSim {
				next, nextSim = i, sim
			}
		}
		if next == -1 || nextSim < opts.Threshold {
			break
		}
		order = append(order, next)
		used[next] = true
	}
	return order
}

func conceptScore(concept []float64, it canvas.Item) float64 {
	if len(concept) > 0 {
		return vecmath.Cosine(concept, it.Embedding)
	}
	return it.ConceptSimilarity
}
