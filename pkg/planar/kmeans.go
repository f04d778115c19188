package planar

import (
	"math"
	"math/rand/v2"
)

// KMeansOptions configures clustering.
type KMeansOptions struct {
	// MaxIterations caps the reassignment/update loop.
	MaxIterations int

	// Epsilon stops the loop early once no centroid moves further than
	// this distance in one round.
	Epsilon float64
}

// DefaultKMeansOptions returns the standard clustering tuning.
func DefaultKMeansOptions() KMeansOptions {
	return KMeansOptions{
		MaxIterations: 50,
		Epsilon:       1e-3,
	}
}

// ClusterCount returns the cluster count for n points:
// ceil(n/5) clamped to [3, 8], and never more than n.
func ClusterCount(n int) int {
	k := (n + 4) / 5
	if k < 3 {
		k = 3
	}
	if k > 8 {
		k = 8
	}
	if k > n {
		k = n
	}
	return k
}

// KMeans partitions pts into at most k clusters.
//
// Centroids are seeded from a random sample of the points (injected RNG;
// nil falls back to the first k points). Assignment ties break to the
// first minimum so the partition is deterministic for a fixed seed.
//
// Every point lands in exactly one cluster. Clusters can end up empty;
// they are returned empty rather than reseeded, and callers skip them.
func KMeans(pts []Position, k int, rng *rand.Rand, opts KMeansOptions) [][]int {
	n := len(pts)
	if n == 0 || k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}

	centers := seedCenters(pts, k, rng)
	assign := make([]int, n)

	for range opts.MaxIterations {
		for i, p := range pts {
			best := 0
			bestDist := math.Inf(1)
			for c, center := range centers {
				if d := p.Distance(center); d < bestDist {
					bestDist = d
					best = c
				}
			}
			assign[i] = best
		}

		moved := 0.0
		sums := make([]Position, k)
		counts := make([]int, k)
		for i, p := range pts {
			c := assign[i]
			sums[c].X += p.X
			sums[c].Y += p.Y
			counts[c]++
		}
		for c := range centers {
			if counts[c] == 0 {
				continue
			}
			next := Position{X: sums[c].X / float64(counts[c]), Y: sums[c].Y / float64(counts[c])}
			if d := centers[c].Distance(next); d > moved {
				moved = d
			}
			centers[c] = next
		}

		if moved <= opts.Epsilon {
			break
		}
	}

	clusters := make([][]int, k)
	for i, c := range assign {
		clusters[c] = append(clusters[c], i)
	}
	return clusters
}

// seedCenters picks k distinct points as the starting centroids.
func seedCenters(pts []Position, k int, rng *rand.Rand) []Position {
	n := len(pts)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	if rng != nil {
		rng.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	}

	centers := make([]Position, k)
	for i := 0; i < k; i++ {
		centers[i] = pts[perm[i]]
	}
	return centers
}
