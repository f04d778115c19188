package planar

import "math"

// Position is a point on the 2D canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Position) Distance(q Position) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Angle returns the polar angle of p via atan2, in (-π, π].
func (p Position) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Polar returns the point at the given radius and angle.
func Polar(radius, angle float64) Position {
	return Position{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}
