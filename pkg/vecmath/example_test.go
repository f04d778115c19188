package vecmath_test

import (
	"fmt"

	"github.com/jpmoo/thoughtlands-sub000/pkg/vecmath"
)

func ExampleCosine() {
	fmt.Printf("%.2f\n", vecmath.Cosine([]float64{1, 0}, []float64{1, 0}))
	fmt.Printf("%.2f\n", vecmath.Cosine([]float64{1, 0}, []float64{0, 1}))
	// Output:
	// 1.00
	// 0.00
}

func ExampleCosine_zeroMagnitude() {
	// A zero vector has no direction, so similarity is 0, not NaN.
	fmt.Printf("%.2f\n", vecmath.Cosine([]float64{0, 0}, []float64{1, 0}))
	// Output:
	// 0.00
}

func ExampleCentroid() {
	center := vecmath.Centroid([][]float64{
		{0, 0},
		{2, 4},
	})
	fmt.Println(center)
	// Output:
	// [1 2]
}

func ExampleMagnitude() {
	fmt.Println(vecmath.Magnitude([]float64{3, 4}))
	// Output:
	// 5
}
