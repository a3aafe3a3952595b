package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Projection is the orthogonal projection of a point onto the infinite line
// through Bottom and Top.
type Projection struct {
	// Point is the projected point Q.
	Point mgl64.Vec3
	// T is the signed distance from Bottom to Q along the unit axis direction.
	T float64
	// Direction is the unit axis direction, Bottom towards Top.
	Direction mgl64.Vec3
}

// ProjectOntoLine projects p onto the line through bottom and top:
// q = p - bottom, r = top - bottom, t = (q·r)/‖r‖, Q = bottom + t·r̂.
func ProjectOntoLine(p, bottom, top mgl64.Vec3) (Projection, error) {
	r := VectorBetween(bottom, top)
	rHat, err := UnitVector(r)
	if err != nil {
		return Projection{}, fmt.Errorf("axis %v -> %v: %w", bottom, top, ErrDegenerateAxis)
	}

	q := VectorBetween(bottom, p)
	t := q.Dot(rHat)

	return Projection{
		Point:     bottom.Add(rHat.Mul(t)),
		T:         t,
		Direction: rHat,
	}, nil
}

// Within reports whether Q falls between the two endpoints of a segment of
// the given length.
func (p Projection) Within(length float64) bool {
	return p.T >= 0 && p.T <= length
}
