package walkabout

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/jpmoo/thoughtlands-sub000/pkg/canvas"
	"github.com/jpmoo/thoughtlands-sub000/pkg/errors"
	"github.com/jpmoo/thoughtlands-sub000/pkg/planar"
	"github.com/jpmoo/thoughtlands-sub000/pkg/summarize"
	"github.com/jpmoo/thoughtlands-sub000/pkg/vecmath"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 7^0xdeadbeef))
}

// twoClusterItems returns six items: A,B,C near v1 and D,E,F near v2.
func twoClusterItems() []canvas.Item {
	near := func(base []float64, d float64) []float64 {
		return []float64{base[0] + d, base[1] - d, base[2]}
	}
	v1 := []float64{1, 0, 0}
	v2 := []float64{0, 1, 0}
	return []canvas.Item{
		{ID: "A", Embedding: v1, ConceptSimilarity: 0.6},
		{ID: "B", Embedding: near(v1, 0.05), ConceptSimilarity: 0.5},
		{ID: "C", Embedding: near(v1, 0.1), ConceptSimilarity: 0.55},
		{ID: "D", Embedding: v2, ConceptSimilarity: 0.45},
		{ID: "E", Embedding: []float64{0.05, 1, 0.05}, ConceptSimilarity: 0.65},
		{ID: "F", Embedding: []float64{0.1, 0.95, 0}, ConceptSimilarity: 0.4},
	}
}

func TestRadiiBoundsAndMonotonicity(t *testing.T) {
	opts := DefaultRadiusOptions()
	sims := []float64{0.9, 0.2, 0.5, 0.7, 0.2, 0.35}
	radii := Radii(sims, opts)

	argMax, argMin := 0, 0
	for i := range sims {
		if radii[i] < opts.RMin || radii[i] > opts.RMax {
			t.Errorf("radius[%d] = %v outside [%v,%v]", i, radii[i], opts.RMin, opts.RMax)
		}
		if sims[i] > sims[argMax] {
			argMax = i
		}
		if sims[i] < sims[argMin] {
			argMin = i
		}
	}

	for i := range radii {
		if radii[argMax] > radii[i] {
			t.Errorf("most similar item should have the smallest radius: r[%d]=%v > r[%d]=%v", argMax, radii[argMax], i, radii[i])
		}
		if radii[argMin] < radii[i] {
			t.Errorf("least similar item should have the largest radius")
		}
	}
}

func TestRadiiDegenerate(t *testing.T) {
	opts := DefaultRadiusOptions()

	if got := Radii(nil, opts); got != nil {
		t.Errorf("Radii(nil) = %v, want nil", got)
	}

	// Zero-variance similarities all land at RMax, not NaN.
	radii := Radii([]float64{0.5, 0.5, 0.5}, opts)
	for i, r := range radii {
		if math.IsNaN(r) || r != opts.RMax {
			t.Errorf("radius[%d] = %v, want %v", i, r, opts.RMax)
		}
	}
}

func TestComposeLevelOneMatchesFreePositions(t *testing.T) {
	items := twoClusterItems()
	opts := DefaultOptions()
	opts.Level = 1

	positions, _, err := Compose(context.Background(), items, newRNG(), nil, opts)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// Recompute the free layout with an identical RNG: the embedding
	// consumes the same random values, so the angles match exactly.
	n := len(items)
	vectors := make([][]float64, n)
	sims := make([]float64, n)
	for i, it := range items {
		vectors[i] = it.Embedding
		sims[i] = it.ConceptSimilarity
	}
	simMatrix := vecmath.SimilarityMatrix(vectors)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			dist[i][j] = 1 - simMatrix[i][j]
		}
	}
	pts := planar.Normalize(planar.Embed(dist, newRNG(), opts.Embed))
	angles := planar.BalanceAngles(planar.Angles(pts), opts.Balance)
	radii := Radii(sims, opts.Radius)

	for i, it := range items {
		want := planar.Polar(radii[i], angles[i])
		got := positions[it.ID]
		if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
			t.Errorf("level 1 position %s = %v, want free position %v", it.ID, got, want)
		}
	}
}

func TestComposeLevelOneSpreadsAngles(t *testing.T) {
	// Six items in two tight embedding groups: at level 1 the angular
	// rebalancing must still distribute them around the circle instead of
	// leaving two opposed clumps. No wrapping gap may exceed a quarter turn.
	items := twoClusterItems()
	opts := DefaultOptions()
	opts.Level = 1

	positions, _, err := Compose(context.Background(), items, newRNG(), nil, opts)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	angles := make([]float64, 0, len(items))
	for _, it := range items {
		a := positions[it.ID].Angle()
		if a < 0 {
			a += 2 * math.Pi
		}
		angles = append(angles, a)
	}
	sort.Float64s(angles)

	maxGap := angles[0] + 2*math.Pi - angles[len(angles)-1]
	for i := 1; i < len(angles); i++ {
		if gap := angles[i] - angles[i-1]; gap > maxGap {
			maxGap = gap
		}
	}
	if maxGap > math.Pi/2 {
		t.Errorf("largest angular gap = %v rad, want <= %v", maxGap, math.Pi/2)
	}
}

func TestComposeLevelFourMatchesClusteredPositions(t *testing.T) {
	items := twoClusterItems()
	opts := DefaultOptions()
	opts.Level = MaxLevel

	positions, _, err := Compose(context.Background(), items, newRNG(), nil, opts)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// Recompute the clustered layout with an identical RNG, threading it
	// through the embedding and then k-means in the same order Compose
	// does, so the cluster assignment matches exactly.
	n := len(items)
	vectors := make([][]float64, n)
	sims := make([]float64, n)
	for i, it := range items {
		vectors[i] = it.Embedding
		sims[i] = it.ConceptSimilarity
	}
	simMatrix := vecmath.SimilarityMatrix(vectors)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			dist[i][j] = 1 - simMatrix[i][j]
		}
	}
	rng := newRNG()
	pts := planar.Normalize(planar.Embed(dist, rng, opts.Embed))
	angles := planar.BalanceAngles(planar.Angles(pts), opts.Balance)
	radii := Radii(sims, opts.Radius)
	clusters := planar.KMeans(pts, planar.ClusterCount(n), rng, opts.KMeans)

	want := make([]planar.Position, n)
	for i := range want {
		want[i] = planar.Polar(radii[i], angles[i])
	}
	for _, members := range clusters {
		if len(members) == 0 {
			continue
		}
		memberAngles := make([]float64, len(members))
		meanR := 0.0
		for j, idx := range members {
			memberAngles[j] = angles[idx]
			meanR += radii[idx]
		}
		meanR /= float64(len(members))
		clusterAngle := planar.CircularMeanAngle(memberAngles)
		clusterRadius := math.Max(opts.RadialFloor, meanR)

		ordered := append([]int(nil), members...)
		sort.SliceStable(ordered, func(a, b int) bool {
			return angles[ordered[a]] < angles[ordered[b]]
		})
		m := len(ordered)
		for j, idx := range ordered {
			offset := 0.0
			if m > 1 {
				offset = -opts.FanSpread/2 + opts.FanSpread*float64(j)/float64(m-1)
			}
			want[idx] = planar.Polar(clusterRadius, clusterAngle+offset)
		}
	}

	for i, it := range items {
		got := positions[it.ID]
		if math.Abs(got.X-want[i].X) > 1e-9 || math.Abs(got.Y-want[i].Y) > 1e-9 {
			t.Errorf("level 4 position %s = %v, want clustered position %v", it.ID, got, want[i])
		}
	}
}

func TestComposeDeterministic(t *testing.T) {
	items := twoClusterItems()
	opts := DefaultOptions()
	opts.Level = 3

	p1, _, err := Compose(context.Background(), items, newRNG(), nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	p2, _, err := Compose(context.Background(), items, newRNG(), nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	for id, pos := range p1 {
		if pos != p2[id] {
			t.Errorf("position %s differs between identical runs: %v vs %v", id, pos, p2[id])
		}
	}
}

func TestComposeConceptCardAlwaysAtOrigin(t *testing.T) {
	items := twoClusterItems()
	for level := MinLevel; level <= MaxLevel; level++ {
		opts := DefaultOptions()
		opts.Level = level
		opts.ConceptText = "gardening"

		_, cards, err := Compose(context.Background(), items, newRNG(), nil, opts)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if len(cards) == 0 || cards[0].Kind != canvas.CardKindConcept {
			t.Fatalf("level %d: first card should be the concept card, got %+v", level, cards)
		}
		if cards[0].Anchor != (planar.Position{}) {
			t.Errorf("level %d: concept card anchor = %v, want origin", level, cards[0].Anchor)
		}
		if cards[0].Text != "gardening" {
			t.Errorf("concept card text = %q", cards[0].Text)
		}
	}
}

func TestComposeLevelFourClustersAndCards(t *testing.T) {
	items := twoClusterItems()
	opts := DefaultOptions()
	opts.Level = MaxLevel

	positions, cards, err := Compose(context.Background(), items, newRNG(), summarize.Static{}, opts)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// The two embedding groups should occupy distinct arcs: every item
	// stays near its own group's mean direction, and the group directions
	// are well separated.
	groupMean := func(ids []string) float64 {
		sin, cos := 0.0, 0.0
		for _, id := range ids {
			a := positions[id].Angle()
			sin += math.Sin(a)
			cos += math.Cos(a)
		}
		return math.Atan2(sin, cos)
	}
	angularDist := func(a, b float64) float64 {
		d := math.Abs(a - b)
		if d > math.Pi {
			d = 2*math.Pi - d
		}
		return d
	}

	mean1 := groupMean([]string{"A", "B", "C"})
	mean2 := groupMean([]string{"D", "E", "F"})
	if angularDist(mean1, mean2) < 1.0 {
		t.Errorf("group arcs too close: %v vs %v", mean1, mean2)
	}
	for _, id := range []string{"A", "B", "C"} {
		if angularDist(positions[id].Angle(), mean1) > math.Pi/2 {
			t.Errorf("%s strayed from its group's arc", id)
		}
	}
	for _, id := range []string{"D", "E", "F"} {
		if angularDist(positions[id].Angle(), mean2) > math.Pi/2 {
			t.Errorf("%s strayed from its group's arc", id)
		}
	}

	// Multi-member clusters get summary cards.
	var summaries int
	for _, c := range cards {
		if c.Kind == canvas.CardKindClusterSummary {
			summaries++
			if c.Text == "" {
				t.Error("summary card has empty text")
			}
		}
	}
	if summaries < 1 {
		t.Error("expected at least one cluster summary card")
	}
}

func TestComposeNoSummarizerOmitsCards(t *testing.T) {
	items := twoClusterItems()
	opts := DefaultOptions()
	opts.Level = MaxLevel

	_, cards, err := Compose(context.Background(), items, newRNG(), nil, opts)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	for _, c := range cards {
		if c.Kind == canvas.CardKindClusterSummary {
			t.Error("no summarizer should mean no cluster summary cards")
		}
	}
}

func TestComposeValidation(t *testing.T) {
	opts := DefaultOptions()
	if _, _, err := Compose(context.Background(), nil, newRNG(), nil, opts); !errors.Is(err, errors.ErrCodeNoPlaceableItems) {
		t.Errorf("empty items: err = %v, want NO_PLACEABLE_ITEMS", err)
	}

	opts.Level = 9
	items := twoClusterItems()
	if _, _, err := Compose(context.Background(), items, newRNG(), nil, opts); !errors.Is(err, errors.ErrCodeInvalidLevel) {
		t.Errorf("bad level: err = %v, want INVALID_LEVEL", err)
	}
}
