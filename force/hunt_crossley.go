package force

import (
	"fmt"
	"math"
)

// elasticTerm is f_p = x^1.5. Only defined for x >= 0.
func elasticTerm(x float64) float64 {
	return math.Pow(x, 1.5)
}

// dampingTerm is f_v = 1 + 1.5·c·ẋ.
func dampingTerm(xDot, damping float64) float64 {
	return 1 + 1.5*damping*xDot
}

// law combines the two terms: f_n = (4/3)·k^1.5·√R·f_p·f_v.
func law(fp, fv, radius, stiffness float64) float64 {
	return (4.0 / 3.0) * math.Pow(stiffness, 1.5) * math.Sqrt(radius) * fp * fv
}

// ramp is the logistic-like switch 0.5 + 0.5·tanh(z).
func ramp(z float64) float64 {
	return 0.5 + 0.5*math.Tanh(z)
}

// calibrate rescales stiffness and radius for the smoothed law:
// k' = 0.5·k^(2/3), R' = R·k', and the law is fed k'^(2/3).
func calibrate(radius, stiffness float64) (float64, float64) {
	kNew := 0.5 * math.Pow(stiffness, 2.0/3.0)
	return radius * kNew, math.Pow(kNew, 2.0/3.0)
}

// HuntCrossley evaluates the classical law for a non-negative penetration x
// and its rate xDot. The result is the force magnitude to apply along the
// contact normal.
func HuntCrossley(x, xDot, radius, stiffness, damping float64) (float64, error) {
	if !(stiffness > 0) || math.IsInf(stiffness, 0) {
		return 0, fmt.Errorf("stiffness %v: %w", stiffness, ErrInvalidStiffness)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return 0, fmt.Errorf("radius %v: %w", radius, ErrInvalidRadius)
	}
	if !(damping >= 0) || math.IsInf(damping, 0) {
		return 0, fmt.Errorf("damping %v: %w", damping, ErrInvalidDamping)
	}
	if err := checkInputs(x, xDot); err != nil {
		return 0, err
	}
	if x < 0 {
		return 0, fmt.Errorf("penetration %v: %w", x, ErrNegativePenetration)
	}

	f := law(elasticTerm(x), dampingTerm(xDot, damping), radius, stiffness)
	return checkResult(f)
}

// SmoothHuntCrossley is the production entry point. The penetration term is
// conditioned by the floor and switched on by a tanh ramp around x = 0; the
// damping term is switched off below ẋ = -2/(3c), where it would turn
// negative. The force is continuous and smooth in x and xDot.
func SmoothHuntCrossley(x, xDot, radius float64, p Params) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return 0, fmt.Errorf("radius %v: %w", radius, ErrInvalidRadius)
	}
	if err := checkInputs(x, xDot); err != nil {
		return 0, err
	}

	fp := elasticTerm(math.Sqrt(x*x+p.Floor)) * ramp(p.Sharpness*x)
	fv := dampingTerm(xDot, p.Damping) * ramp(p.Sharpness*(xDot+2/(3*p.Damping)))

	r, k := calibrate(radius, p.Stiffness)
	return checkResult(law(fp, fv, r, k))
}

// DampingThreshold returns the rate -2/(3c) below which the raw damping
// term would pull the force negative.
func DampingThreshold(damping float64) (float64, error) {
	if damping == 0 {
		return 0, ErrZeroDamping
	}
	return -2 / (3 * damping), nil
}

func checkInputs(x, xDot float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(xDot) || math.IsInf(xDot, 0) {
		return fmt.Errorf("penetration %v, rate %v: %w", x, xDot, ErrNonFinite)
	}
	return nil
}

func checkResult(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("force %v: %w", f, ErrNonFinite)
	}
	return f, nil
}
