package walkabout

import "math"

// RadiusOptions controls how concept similarity maps to radial distance.
type RadiusOptions struct {
	// RMin is the radius for the most concept-similar item.
	RMin float64

	// RMax is the radius for the least concept-similar item.
	RMax float64

	// ExpansionPower bends the mapping outward. Values > 1 push
	// mid-similarity items toward the rim, giving dense similarity
	// bands breathing room.
	ExpansionPower float64
}

// DefaultRadiusOptions returns the standard radius mapping.
func DefaultRadiusOptions() RadiusOptions {
	return RadiusOptions{
		RMin:           100,
		RMax:           500,
		ExpansionPower: 1.25,
	}
}

// Radii maps per-item concept similarities to radial distances.
// Higher similarity means a smaller radius (closer to center). Every
// radius lands in [RMin, RMax]; a zero-variance similarity range puts
// all items at RMax.
func Radii(similarities []float64, opts RadiusOptions) []float64 {
	n := len(similarities)
	if n == 0 {
		return nil
	}

	lo, hi := similarities[0], similarities[0]
	for _, s := range similarities[1:] {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}

	const eps = 1e-9
	span := hi - lo + eps
	rSpan := opts.RMax - opts.RMin

	out := make([]float64, n)
	for i, s := range similarities {
		norm := (s - lo) / span
		r := opts.RMin + (1-norm)*rSpan

		// Nonlinear expansion within [RMin, RMax].
		if rSpan > 0 {
			t := (r - opts.RMin) / rSpan
			r = opts.RMin + math.Pow(t, opts.ExpansionPower)*rSpan
		}
		out[i] = r
	}
	return out
}
