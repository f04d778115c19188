// Package planar computes 2D point sets from pairwise distance data.
//
// # Overview
//
// The package provides the geometric core of the layout engine:
//
//   - [Embed]: force-directed spring relaxation turning an N×N distance
//     matrix into N canvas points
//   - [Normalize]: centering and isotropic rescaling of a point set
//   - [BalanceAngles]: angular de-clumping ("swirl" removal and rotation
//     search)
//   - [KMeans]: partitioning a point set into k clusters
//   - [CircularMeanAngle]: wraparound-safe mean of a set of angles
//
// All stochastic steps take an injected *rand.Rand so callers can fix a
// seed for reproducible layouts. Every function is pure: inputs are never
// mutated and repeated calls with the same RNG state yield identical
// output.
//
// # Pipeline position
//
// The walkabout composer runs these stages in order:
//
//	distance matrix → Embed → Normalize → BalanceAngles → KMeans
//
// The embedder is a bounded-iteration heuristic, not a guaranteed
// minimum-energy layout. Different seeds may produce rotated or reflected
// but qualitatively similar results.
package planar
