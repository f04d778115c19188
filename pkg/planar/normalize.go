package planar

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// BalanceOptions configures angular rebalancing.
//
// SwirlGapFactor and RotationStepDeg are heuristic constants inherited
// from the original tuning; they are exposed here so callers can override
// them, but the defaults are the values that are known to look right.
type BalanceOptions struct {
	// SwirlGapFactor flags a layout as "swirled" when the largest angular
	// gap between adjacent points exceeds this multiple of the mean of
	// the remaining gaps.
	SwirlGapFactor float64

	// RotationStepDeg is the step size of the global rotation search.
	RotationStepDeg float64
}

// DefaultBalanceOptions returns the standard rebalancing tuning.
func DefaultBalanceOptions() BalanceOptions {
	return BalanceOptions{
		SwirlGapFactor:  3.0,
		RotationStepDeg: 10,
	}
}

// Normalize centers pts on their centroid and rescales each axis so both
// have the same spread: the average of the two per-axis standard
// deviations. A zero standard deviation is substituted with 1 so collinear
// input cannot blow up.
//
// The input slice is not mutated. Fewer than two points are returned
// centered but unscaled.
func Normalize(pts []Position) []Position {
	n := len(pts)
	if n == 0 {
		return nil
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}

	meanX := stat.Mean(xs, nil)
	meanY := stat.Mean(ys, nil)

	out := make([]Position, n)
	if n < 2 {
		for i, p := range pts {
			out[i] = Position{X: p.X - meanX, Y: p.Y - meanY}
		}
		return out
	}

	sdX := stat.StdDev(xs, nil)
	sdY := stat.StdDev(ys, nil)
	if sdX == 0 {
		sdX = 1
	}
	if sdY == 0 {
		sdY = 1
	}
	target := (sdX + sdY) / 2

	for i, p := range pts {
		out[i] = Position{
			X: (p.X - meanX) / sdX * target,
			Y: (p.Y - meanY) / sdY * target,
		}
	}
	return out
}

// Angles returns the polar angle of every point, normalized to [0, 2π).
func Angles(pts []Position) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = normalizeAngle(p.Angle())
	}
	return out
}

// BalanceAngles removes directional bias from a set of polar angles.
//
// If the largest wrapping gap between angularly adjacent points exceeds
// SwirlGapFactor times the mean of the remaining gaps, the layout is
// considered swirled: the angles are discarded and replaced with evenly
// spaced ones in the original angular order, which keeps the relative
// ordering while eliminating the clump.
//
// Otherwise a global rotation is searched in RotationStepDeg increments
// and the rotation that minimizes the largest angular gap of the rotated,
// re-normalized angles is applied. Relative order is unchanged either way.
func BalanceAngles(angles []float64, opts BalanceOptions) []float64 {
	n := len(angles)
	if n < 2 {
		out := make([]float64, n)
		copy(out, angles)
		return out
	}

	order := angularOrder(angles)

	sorted := make([]float64, n)
	for rank, idx := range order {
		sorted[rank] = normalizeAngle(angles[idx])
	}
	maxGap := largestWrappingGap(sorted)
	// Mean of the remaining gaps. The naive 2π/n mean includes the outlier
	// itself and caps at 2π/3 of the circle, which a clumped layout with
	// few points never reaches.
	meanGap := (2*math.Pi - maxGap) / float64(n-1)

	if maxGap > opts.SwirlGapFactor*meanGap {
		// Swirled: even spacing in the original angular order.
		out := make([]float64, n)
		for rank, idx := range order {
			out[idx] = 2 * math.Pi * float64(rank) / float64(n)
		}
		return out
	}

	step := opts.RotationStepDeg * math.Pi / 180
	if step <= 0 {
		step = math.Pi / 18
	}

	bestOffset := 0.0
	bestGap := math.Inf(1)
	for offset := 0.0; offset < 2*math.Pi; offset += step {
		rotated := make([]float64, n)
		for i, a := range angles {
			rotated[i] = normalizeAngle(a + offset)
		}
		sort.Float64s(rotated)
		if gap := largestInternalGap(rotated); gap < bestGap {
			bestGap = gap
			bestOffset = offset
		}
	}

	out := make([]float64, n)
	for i, a := range angles {
		out[i] = normalizeAngle(a + bestOffset)
	}
	return out
}

// CircularMeanAngle returns the circular mean of the given angles. Unlike
// an arithmetic mean it has no wraparound bias: the mean of 350° and 10°
// is 0°, not 180°.
func CircularMeanAngle(angles []float64) float64 {
	if len(angles) == 0 {
		return 0
	}
	return normalizeAngle(stat.CircularMean(angles, nil))
}

// angularOrder returns point indices sorted by normalized angle.
func angularOrder(angles []float64) []int {
	order := make([]int, len(angles))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return normalizeAngle(angles[order[a]]) < normalizeAngle(angles[order[b]])
	})
	return order
}

// largestWrappingGap expects sorted angles in [0, 2π) and includes the
// gap across the 0/2π seam.
func largestWrappingGap(sorted []float64) float64 {
	n := len(sorted)
	maxGap := sorted[0] + 2*math.Pi - sorted[n-1]
	for i := 1; i < n; i++ {
		if gap := sorted[i] - sorted[i-1]; gap > maxGap {
			maxGap = gap
		}
	}
	return maxGap
}

// largestInternalGap expects sorted angles and ignores the seam, so the
// result depends on where the rotation places the seam.
func largestInternalGap(sorted []float64) float64 {
	maxGap := 0.0
	for i := 1; i < len(sorted); i++ {
		if gap := sorted[i] - sorted[i-1]; gap > maxGap {
			maxGap = gap
		}
	}
	return maxGap
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
