// Package force implements the Hunt-Crossley viscoelastic normal contact law
// and its tanh-smoothed variant.
package force

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultSharpness (bc) controls how fast the tanh ramps switch the force
	// on around zero penetration and around the damping threshold.
	// Larger values approach a hard step.
	DefaultSharpness = 50.0

	// DefaultFloor (cf) keeps the conditioned penetration sqrt(x²+cf) away
	// from zero so its 1.5 power stays differentiable at x = 0.
	DefaultFloor = 1e-8
)

var (
	ErrInvalidStiffness    = errors.New("force: stiffness must be positive")
	ErrInvalidDamping      = errors.New("force: damping must not be negative")
	ErrZeroDamping         = errors.New("force: smoothed law needs non-zero damping")
	ErrInvalidRadius       = errors.New("force: radius must be positive")
	ErrInvalidSharpness    = errors.New("force: smoothing sharpness must be positive")
	ErrInvalidFloor        = errors.New("force: numerical floor must be positive")
	ErrNegativePenetration = errors.New("force: raw law is undefined for negative penetration")
	ErrNonFinite           = errors.New("force: non-finite value")
)

// Params holds the contact model parameters.
type Params struct {
	// Stiffness k (> 0)
	Stiffness float64
	// Damping c (> 0 for the smoothed law, >= 0 for the raw law)
	Damping float64
	// Sharpness bc of the tanh ramps (> 0)
	Sharpness float64
	// Floor cf of the conditioned penetration (> 0)
	Floor float64
}

// DefaultParams returns parameters with the default smoothing constants.
func DefaultParams(stiffness, damping float64) Params {
	return Params{
		Stiffness: stiffness,
		Damping:   damping,
		Sharpness: DefaultSharpness,
		Floor:     DefaultFloor,
	}
}

// Validate checks the parameters for use with SmoothHuntCrossley.
func (p Params) Validate() error {
	if !(p.Stiffness > 0) || math.IsInf(p.Stiffness, 0) {
		return fmt.Errorf("stiffness %v: %w", p.Stiffness, ErrInvalidStiffness)
	}
	if p.Damping == 0 {
		return ErrZeroDamping
	}
	if !(p.Damping > 0) || math.IsInf(p.Damping, 0) {
		return fmt.Errorf("damping %v: %w", p.Damping, ErrInvalidDamping)
	}
	if !(p.Sharpness > 0) || math.IsInf(p.Sharpness, 0) {
		return fmt.Errorf("sharpness %v: %w", p.Sharpness, ErrInvalidSharpness)
	}
	if !(p.Floor > 0) || math.IsInf(p.Floor, 0) {
		return fmt.Errorf("floor %v: %w", p.Floor, ErrInvalidFloor)
	}
	return nil
}

// EffectiveRadius combines two contacting radii as r1·r2 / (r1+r2).
func EffectiveRadius(r1, r2 float64) (float64, error) {
	if !(r1 > 0) || !(r2 > 0) {
		return 0, fmt.Errorf("radii %v, %v: %w", r1, r2, ErrInvalidRadius)
	}
	return r1 * r2 / (r1 + r2), nil
}
