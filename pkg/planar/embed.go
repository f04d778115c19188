package planar

import (
	"math"
	"math/rand/v2"
)

// EmbedOptions configures the force-directed embedder.
type EmbedOptions struct {
	// Iterations is the fixed number of relaxation rounds. There is no
	// convergence check; the iteration count is the only stop condition.
	Iterations int

	// SpringLength scales matrix distances to ideal canvas distances.
	SpringLength float64

	// Damping is applied to accumulated forces each round (< 1).
	Damping float64

	// MinSeparation floors the current distance between a pair to avoid
	// division blow-up when points coincide.
	MinSeparation float64

	// InitRadius is the radius of the deterministic starting circle.
	InitRadius float64

	// InitJitter perturbs the starting positions when an RNG is supplied.
	InitJitter float64
}

// DefaultEmbedOptions returns the standard embedder tuning.
func DefaultEmbedOptions() EmbedOptions {
	return EmbedOptions{
		Iterations:    100,
		SpringLength:  300,
		Damping:       0.85,
		MinSeparation: 0.1,
		InitRadius:    10,
		InitJitter:    1,
	}
}

// Embed derives 2D positions for N items from an N×N distance matrix via
// spring relaxation.
//
// Points start evenly spaced on a small circle, which avoids the immediate
// degeneracy of a random or collapsed start. When rng is non-nil the start
// is perturbed by InitJitter so repeated layouts differ slightly; pass nil
// for a fully deterministic embedding.
//
// Rows shorter than N are treated as distance 0 for the missing entries.
func Embed(dist [][]float64, rng *rand.Rand, opts EmbedOptions) []Position {
	n := len(dist)
	if n == 0 {
		return nil
	}

	pts := make([]Position, n)
	for i := range pts {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Polar(opts.InitRadius, angle)
		if rng != nil && opts.InitJitter > 0 {
			pts[i].X += (rng.Float64() - 0.5) * opts.InitJitter
			pts[i].Y += (rng.Float64() - 0.5) * opts.InitJitter
		}
	}
	if n == 1 {
		return pts
	}

	fx := make([]float64, n)
	fy := make([]float64, n)

	for range opts.Iterations {
		for i := range fx {
			fx[i] = 0
			fy[i] = 0
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := pts[j].X - pts[i].X
				dy := pts[j].Y - pts[i].Y
				d := math.Hypot(dx, dy)
				if d < opts.MinSeparation {
					d = opts.MinSeparation
				}

				ideal := matrixAt(dist, i, j) * opts.SpringLength
				// Positive force pulls the pair together, negative pushes
				// apart, proportional to the relative length error.
				f := (d - ideal) / d

				fx[i] += f * dx / 2
				fy[i] += f * dy / 2
				fx[j] -= f * dx / 2
				fy[j] -= f * dy / 2
			}
		}

		for i := range pts {
			pts[i].X += fx[i] * opts.Damping
			pts[i].Y += fy[i] * opts.Damping
		}
	}

	return pts
}

func matrixAt(m [][]float64, i, j int) float64 {
	if i >= len(m) || j >= len(m[i]) {
		return 0
	}
	return m[i][j]
}
