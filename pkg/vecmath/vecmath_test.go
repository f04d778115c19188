package vecmath

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"Opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"Orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"Scaled", []float64{1, 2}, []float64{2, 4}, 1},
		{"ZeroVector", []float64{0, 0, 0}, []float64{1, 2, 3}, 0},
		{"BothZero", []float64{0, 0}, []float64{0, 0}, 0},
		{"LengthMismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"Empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if !approxEqual(got, tt.want) {
				t.Errorf("Cosine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCosineSymmetric(t *testing.T) {
	a := []float64{0.3, -0.7, 0.1, 0.9}
	b := []float64{-0.2, 0.5, 0.8, 0.4}
	if got, want := Cosine(a, b), Cosine(b, a); !approxEqual(got, want) {
		t.Errorf("Cosine not symmetric: %v vs %v", got, want)
	}
}

func TestCentroid(t *testing.T) {
	tests := []struct {
		name    string
		vectors [][]float64
		want    []float64
	}{
		{"Empty", nil, nil},
		{"AllEmpty", [][]float64{{}, {}}, nil},
		{"Single", [][]float64{{1, 2, 3}}, []float64{1, 2, 3}},
		{"Pair", [][]float64{{0, 0}, {2, 4}}, []float64{1, 2}},
		{"RaggedRows", [][]float64{{2}, {4, 6}}, []float64{3, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Centroid(tt.vectors)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("Centroid = %v, want nil", got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Centroid length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !approxEqual(got[i], tt.want[i]) {
					t.Errorf("Centroid[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMagnitude(t *testing.T) {
	if got := Magnitude([]float64{3, 4}); !approxEqual(got, 5) {
		t.Errorf("Magnitude = %v, want 5", got)
	}
	if got := Magnitude(nil); got != 0 {
		t.Errorf("Magnitude(nil) = %v, want 0", got)
	}
}

func TestSimilarityMatrix(t *testing.T) {
	vectors := [][]float64{
		{1, 0},
		{0, 1},
		{1, 1},
	}
	m := SimilarityMatrix(vectors)

	if len(m) != 3 {
		t.Fatalf("matrix size = %d, want 3", len(m))
	}
	for i := range m {
		if !approxEqual(m[i][i], 1) {
			t.Errorf("diagonal [%d][%d] = %v, want 1", i, i, m[i][i])
		}
		for j := range m {
			if !approxEqual(m[i][j], m[j][i]) {
				t.Errorf("matrix not symmetric at [%d][%d]", i, j)
			}
		}
	}
	if !approxEqual(m[0][1], 0) {
		t.Errorf("m[0][1] = %v, want 0", m[0][1])
	}
	if !approxEqual(m[0][2], 1/math.Sqrt2) {
		t.Errorf("m[0][2] = %v, want %v", m[0][2], 1/math.Sqrt2)
	}
}

func TestSimilarityMatrixZeroVector(t *testing.T) {
	m := SimilarityMatrix([][]float64{{0, 0}, {1, 0}})
	if m[0][0] != 0 {
		t.Errorf("zero-vector diagonal = %v, want 0", m[0][0])
	}
	if m[0][1] != 0 {
		t.Errorf("zero-vector similarity = %v, want 0", m[0][1])
	}
}
