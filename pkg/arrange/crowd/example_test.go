package crowd_test

import (
	"fmt"

	"github.com/jpmoo/thoughtlands-sub000/pkg/arrange/crowd"
)

func ExampleColumns() {
	for _, n := range []int{1, 4, 10, 17} {
		fmt.Printf("%d notes -> %d columns\n", n, crowd.Columns(n))
	}
	// Output:
	// 1 notes -> 1 columns
	// 4 notes -> 2 columns
	// 10 notes -> 3 columns
	// 17 notes -> 4 columns
}

func ExampleRegiment() {
	positions := crowd.Regiment([]string{"a", "b", "c", "d"}, crowd.RegimentOptions{Pitch: 100})
	for _, id := range []string{"a", "b", "c", "d"} {
		p := positions[id]
		fmt.Printf("%s: (%.0f, %.0f)\n", id, p.X, p.Y)
	}
	// Output:
	// a: (0, 0)
	// b: (100, 0)
	// c: (0, 100)
	// d: (100, 100)
}
