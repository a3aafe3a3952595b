// Package geometry implements the closest-approach and edge-selection logic
// between a sphere and a cylinder's longitudinal axis.
//
// All inputs are ground-frame Point3/Vector3 values (mgl64.Vec3). Resolving
// body-local coordinates is the caller's job; see the root package's
// PoseProvider.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrZeroLength is returned when a direction is requested for a zero vector.
	ErrZeroLength = errors.New("geometry: zero-length vector has no direction")
	// ErrDegenerateAxis is returned when the two points defining a line coincide.
	ErrDegenerateAxis = errors.New("geometry: line endpoints coincide")
	// ErrCenterOnAxis is returned when the sphere centre lies on the cylinder
	// axis, leaving the contact normal undefined.
	ErrCenterOnAxis = errors.New("geometry: sphere centre lies on the cylinder axis")
	// ErrDimension is returned when a vector does not have exactly 3 components.
	ErrDimension = errors.New("geometry: vector must have 3 components")
	// ErrInvalidRadius is returned for zero or negative radii.
	ErrInvalidRadius = errors.New("geometry: radius must be positive")
	// ErrNonFinite is returned when an input carries NaN or Inf.
	ErrNonFinite = errors.New("geometry: non-finite component")
)

// Vec3FromSlice converts dynamically sized input into a Point3/Vector3,
// rejecting anything that is not exactly 3 finite components.
func Vec3FromSlice(values []float64) (mgl64.Vec3, error) {
	if len(values) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("got %d components: %w", len(values), ErrDimension)
	}
	v := mgl64.Vec3{values[0], values[1], values[2]}
	if !isFinite(v) {
		return mgl64.Vec3{}, fmt.Errorf("%v: %w", v, ErrNonFinite)
	}
	return v, nil
}

// VectorBetween returns the vector pointing from p0 to p1.
func VectorBetween(p0, p1 mgl64.Vec3) mgl64.Vec3 {
	return p1.Sub(p0)
}

// UnitVector returns v scaled to length 1.
func UnitVector(v mgl64.Vec3) (mgl64.Vec3, error) {
	n := v.Len()
	if n == 0 {
		return mgl64.Vec3{}, ErrZeroLength
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return mgl64.Vec3{}, fmt.Errorf("%v: %w", v, ErrNonFinite)
	}
	return v.Mul(1 / n), nil
}

func isFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
