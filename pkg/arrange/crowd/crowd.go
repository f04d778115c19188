// Package crowd implements the non-semantic layout modes.
//
// Regiment arranges items on a deterministic row-major grid. Gaggle
// scatters them organically: each item is rejection-sampled inside a
// disk sized to the item count, with Gaussian plus uniform jitter, and
// rejected when it lands too close to an already placed item. Both modes
// ignore embeddings entirely, which makes them the fallback when no
// similarity data is available.
package crowd

import (
	"math"
	"math/rand/v2"

	"github.com/jpmoo/thoughtlands-sub000/pkg/planar"
)

// =============================================================================
// Regiment
// =============================================================================

// RegimentOptions configures the grid placement.
type RegimentOptions struct {
	// Pitch is the cell spacing on both axes.
	Pitch float64

	// Origin is the position of the first cell.
	Origin planar.Position
}

// DefaultRegimentOptions returns the standard grid configuration.
func DefaultRegimentOptions() RegimentOptions {
	return RegimentOptions{Pitch: 160}
}

// Regiment places items on a row-major grid with
// columns = max(1, floor(sqrt(N))).
func Regiment(ids []string, opts RegimentOptions) map[string]planar.Position {
	n := len(ids)
	if n == 0 {
		return map[string]planar.Position{}
	}
	cols := max(1, int(math.Floor(math.Sqrt(float64(n)))))

	positions := make(map[string]planar.Position, n)
	for i, id := range ids {
		row, col := i/cols, i%cols
		positions[id] = planar.Position{
			X: opts.Origin.X + float64(col)*opts.Pitch,
			Y: opts.Origin.Y + float64(row)*opts.Pitch,
		}
	}
	return positions
}

// Columns returns the grid width Regiment uses for n items.
func Columns(n int) int {
	return max(1, int(math.Floor(math.Sqrt(float64(n)))))
}

// =============================================================================
// Gaggle
// =============================================================================

// GaggleOptions configures the organic scatter.
type GaggleOptions struct {
	// Footprint is the nominal item diameter; the sampling disk radius
	// scales with sqrt(N) * Footprint.
	Footprint float64

	// MinSpacing is the minimum allowed distance between placed items.
	MinSpacing float64

	// SigmaFactor scales the Gaussian jitter: sigma = SigmaFactor * MinSpacing.
	SigmaFactor float64

	// UniformJitter is the half-width of the extra uniform jitter.
	UniformJitter float64

	// BoundFactor enlarges the bounding circle relative to the disk radius.
	BoundFactor float64

	// StrictAttempts is the sampling budget under full constraints.
	StrictAttempts int

	// RelaxedAttempts is the follow-up budget with expanded radius and
	// jitter before the best candidate is accepted regardless.
	RelaxedAttempts int

	// RelaxFactor expands radius, jitter, and bound in the relaxed phase.
	RelaxFactor float64

	// Origin is the scatter center.
	Origin planar.Position
}

// DefaultGaggleOptions returns the standard scatter configuration.
func DefaultGaggleOptions() GaggleOptions {
	return GaggleOptions{
		Footprint:       120,
		MinSpacing:      140,
		SigmaFactor:     0.8,
		UniformJitter:   20,
		BoundFactor:     1.5,
		StrictAttempts:  2000,
		RelaxedAttempts: 500,
		RelaxFactor:     1.6,
	}
}

// Gaggle scatters items with collision avoidance.
//
// Per item, up to StrictAttempts candidates are sampled; on exhaustion a
// relaxed phase with RelaxedAttempts tries an expanded disk, and finally
// the best candidate seen is accepted even if it violates spacing. The
// ids of such best-effort placements are returned as fallbacks.
func Gaggle(ids []string, rng *rand.Rand, opts GaggleOptions) (map[string]planar.Position, []string) {
	n := len(ids)
	positions := make(map[string]planar.Position, n)
	if n == 0 {
		return positions, nil
	}

	diskR := math.Sqrt(float64(n)) * opts.Footprint
	sigma := opts.SigmaFactor * opts.MinSpacing
	bound := diskR * opts.BoundFactor

	placed := make([]planar.Position, 0, n)
	var fallbacks []string

	for _, id := range ids {
		pos, ok := sample(rng, placed, opts, diskR, sigma, bound, opts.StrictAttempts)
		if !ok {
			// Relaxed phase: expanded disk and jitter.
			pos, ok = sample(rng, placed, opts,
				diskR*opts.RelaxFactor, sigma*opts.RelaxFactor, bound*opts.RelaxFactor,
				opts.RelaxedAttempts)
		}
		if !ok {
			// Accept the best candidate found despite the violation.
			pos = bestEffort(rng, placed, opts, diskR*opts.RelaxFactor, sigma*opts.RelaxFactor)
			fallbacks = append(fallbacks, id)
		}
		placed = append(placed, pos)
		positions[id] = planar.Position{X: pos.X + opts.Origin.X, Y: pos.Y + opts.Origin.Y}
	}
	return positions, fallbacks
}

// sample draws candidates until one satisfies the bound and spacing
// constraints or the budget runs out.
func sample(rng *rand.Rand, placed []planar.Position, opts GaggleOptions, diskR, sigma, bound float64, attempts int) (planar.Position, bool) {
	for range attempts {
		c := candidate(rng, opts, diskR, sigma)
		if math.Hypot(c.X, c.Y) > bound {
			continue
		}
		if tooClose(c, placed, opts.MinSpacing) {
			continue
		}
		return c, true
	}
	return planar.Position{}, false
}

// bestEffort picks, from a fresh batch of candidates, the one farthest
// from its nearest placed neighbor.
func bestEffort(rng *rand.Rand, placed []planar.Position, opts GaggleOptions, diskR, sigma float64) planar.Position {
	const batch = 32
	best := candidate(rng, opts, diskR, sigma)
	bestClearance := clearance(best, placed)
	for range batch - 1 {
		c := candidate(rng, opts, diskR, sigma)
		if cl := clearance(c, placed); cl > bestClearance {
			best, bestClearance = c, cl
		}
	}
	return best
}

// candidate samples one jittered point: uniform in the disk, Gaussian
// jitter via Box-Muller, then a small uniform jitter.
func candidate(rng *rand.Rand, opts GaggleOptions, diskR, sigma float64) planar.Position {
	r := diskR * math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()

	gx, gy := boxMuller(rng)
	return planar.Position{
		X: r*math.Cos(theta) + gx*sigma + (rng.Float64()*2-1)*opts.UniformJitter,
		Y: r*math.Sin(theta) + gy*sigma + (rng.Float64()*2-1)*opts.UniformJitter,
	}
}

// boxMuller returns a pair of independent standard normal samples.
func boxMuller(rng *rand.Rand) (float64, float64) {
	u1 := rng.Float64()
	for u1 == 0 {
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	mag := math.Sqrt(-2 * math.Log(u1))
	return mag * math.Cos(2*math.Pi*u2), mag * math.Sin(2*math.Pi*u2)
}

func tooClose(c planar.Position, placed []planar.Position, minSpacing float64) bool {
	for _, p := range placed {
		if c.Distance(p) < minSpacing {
			return true
		}
	}
	return false
}

// clearance is the distance to the nearest placed point.
func clearance(c planar.Position, placed []planar.Position) float64 {
	if len(placed) == 0 {
		return math.Inf(1)
	}
	nearest := math.Inf(1)
	for _, p := range placed {
		nearest = math.Min(nearest, c.Distance(p))
	}
	return nearest
}
