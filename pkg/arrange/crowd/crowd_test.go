package crowd

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jpmoo/thoughtlands-sub000/pkg/planar"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(11, 11^0xdeadbeef))
}

func itemIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("note-%d", i)
	}
	return ids
}

func TestRegimentGridShape(t *testing.T) {
	tests := []struct {
		n        int
		wantCols int
		wantRows int
	}{
		{1, 1, 1},
		{2, 1, 2},
		{4, 2, 2},
		{10, 3, 4},
		{16, 4, 4},
		{17, 4, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("N%d", tt.n), func(t *testing.T) {
			if got := Columns(tt.n); got != tt.wantCols {
				t.Fatalf("Columns(%d) = %d, want %d", tt.n, got, tt.wantCols)
			}

			opts := DefaultRegimentOptions()
			positions := Regiment(itemIDs(tt.n), opts)
			if len(positions) != tt.n {
				t.Fatalf("placed %d, want %d", len(positions), tt.n)
			}

			rows := map[float64]bool{}
			for _, p := range positions {
				rows[p.Y] = true
			}
			if len(rows) != tt.wantRows {
				t.Errorf("rows = %d, want %d", len(rows), tt.wantRows)
			}
		})
	}
}

func TestRegimentPitch(t *testing.T) {
	opts := DefaultRegimentOptions()
	ids := itemIDs(9) // 3x3
	positions := Regiment(ids, opts)

	// Adjacent cells in a row differ by exactly the pitch.
	for i := 0; i < 9; i++ {
		row, col := i/3, i%3
		want := planar.Position{X: float64(col) * opts.Pitch, Y: float64(row) * opts.Pitch}
		if got := positions[ids[i]]; got != want {
			t.Errorf("cell %d = %v, want %v", i, got, want)
		}
	}
}

func TestGaggleSpacing(t *testing.T) {
	opts := DefaultGaggleOptions()
	ids := itemIDs(25)

	positions, fallbacks := Gaggle(ids, newRNG(), opts)
	if len(positions) != len(ids) {
		t.Fatalf("placed %d, want %d", len(positions), len(ids))
	}

	// With the default generous radius budget no fallbacks are expected,
	// and every accepted pair respects the minimum spacing.
	if len(fallbacks) != 0 {
		t.Fatalf("unexpected fallbacks: %v", fallbacks)
	}
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			if d := positions[a].Distance(positions[b]); d < opts.MinSpacing {
				t.Errorf("items %s and %s are %.1f apart, want >= %.1f", a, b, d, opts.MinSpacing)
			}
		}
	}
}

func TestGaggleDeterministic(t *testing.T) {
	ids := itemIDs(12)
	opts := DefaultGaggleOptions()

	p1, _ := Gaggle(ids, newRNG(), opts)
	p2, _ := Gaggle(ids, newRNG(), opts)
	for _, id := range ids {
		if p1[id] != p2[id] {
			t.Errorf("position %s differs between identical runs", id)
		}
	}
}

func TestGaggleOverconstrainedFallsBack(t *testing.T) {
	// A spacing far larger than the disk can hold forces the best-effort
	// path; every item still gets a position.
	opts := DefaultGaggleOptions()
	opts.Footprint = 10
	opts.MinSpacing = 5000
	ids := itemIDs(6)

	positions, fallbacks := Gaggle(ids, newRNG(), opts)
	if len(positions) != len(ids) {
		t.Fatalf("placed %d, want %d", len(positions), len(ids))
	}
	if len(fallbacks) == 0 {
		t.Error("expected best-effort fallbacks under impossible spacing")
	}

	// The first item always places cleanly.
	for _, id := range fallbacks {
		if id == ids[0] {
			t.Error("first item should never be a fallback")
		}
	}
}

func TestGaggleWithinBounds(t *testing.T) {
	opts := DefaultGaggleOptions()
	ids := itemIDs(20)

	positions, fallbacks := Gaggle(ids, newRNG(), opts)
	if len(fallbacks) != 0 {
		t.Skipf("fallbacks invoked: %v", fallbacks)
	}

	diskR := math.Sqrt(float64(len(ids))) * opts.Footprint
	limit := diskR * opts.BoundFactor * opts.RelaxFactor
	for id, p := range positions {
		if math.Hypot(p.X, p.Y) > limit {
			t.Errorf("%s at %v outside bounding circle", id, p)
		}
	}
}

func TestGaggleEmpty(t *testing.T) {
	positions, fallbacks := Gaggle(nil, newRNG(), DefaultGaggleOptions())
	if len(positions) != 0 || fallbacks != nil {
		t.Errorf("empty input: positions=%v fallbacks=%v", positions, fallbacks)
	}
}
