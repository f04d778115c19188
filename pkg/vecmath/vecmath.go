// Package vecmath provides the small numeric kernel used by the layout
// engine: cosine similarity, vector magnitude, and centroids.
//
// All functions tolerate degenerate input (zero vectors, mismatched or
// empty slices) by returning neutral values instead of panicking, since
// embeddings fetched from external models are occasionally empty or
// malformed.
package vecmath

import "math"

// Magnitude returns the Euclidean length of v.
func Magnitude(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity between a and b.
//
// It returns 0 when the vectors differ in length or either has zero
// magnitude. Callers can treat 0 as "no meaningful similarity"; the
// function never returns an error and never panics.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Centroid returns the elementwise mean of the given vectors.
//
// Vectors shorter than the longest vector contribute only to the
// dimensions they have. Returns nil for empty input or when every vector
// is empty; callers must treat nil as "no valid center".
func Centroid(vectors [][]float64) []float64 {
	dim := 0
	for _, v := range vectors {
		if len(v) > dim {
			dim = len(v)
		}
	}
	if dim == 0 {
		return nil
	}

	out := make([]float64, dim)
	counts := make([]int, dim)
	for _, v := range vectors {
		for i, x := range v {
			out[i] += x
			counts[i]++
		}
	}
	for i := range out {
		if counts[i] > 0 {
			out[i] /= float64(counts[i])
		}
	}
	return out
}

// SimilarityMatrix returns the symmetric N×N matrix of pairwise cosine
// similarities over the given vectors. The diagonal is 1 for non-degenerate
// vectors and 0 for zero-magnitude ones.
func SimilarityMatrix(vectors [][]float64) [][]float64 {
	n := len(vectors)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := Cosine(vectors[i], vectors[j])
			m[i][j] = s
			m[j][i] = s
		}
	}
	return m
}
