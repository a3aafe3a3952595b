// Package trajectory fits low-order polynomials through a handful of knots
// and samples them, to synthesise smooth penetration histories for driving
// the contact model without motion-capture data.
package trajectory

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// identityTolerance bounds |inv(X)·X - I| when accepting a fit.
const identityTolerance = 1e-6

var (
	ErrPointCount      = errors.New("trajectory: wrong number of points for the fit")
	ErrIllConditioned  = errors.New("trajectory: system cannot be inverted reliably")
	ErrInvalidSampling = errors.New("trajectory: invalid sampling request")
)

// Polynomial holds coefficients from the highest degree down to the constant
// term: {a, b, c, d} is a·x³ + b·x² + c·x + d.
type Polynomial []float64

// Degree returns the polynomial degree.
func (p Polynomial) Degree() int {
	return len(p) - 1
}

// Eval evaluates the polynomial at x (Horner).
func (p Polynomial) Eval(x float64) float64 {
	y := 0.0
	for _, c := range p {
		y = y*x + c
	}
	return y
}

// Derivative returns the first derivative.
func (p Polynomial) Derivative() Polynomial {
	if len(p) <= 1 {
		return Polynomial{0}
	}
	n := p.Degree()
	d := make(Polynomial, n)
	for i := 0; i < n; i++ {
		d[i] = p[i] * float64(n-i)
	}
	return d
}

// Sample evaluates the polynomial at every t.
func (p Polynomial) Sample(ts []float64) []float64 {
	ys := make([]float64, len(ts))
	for i, t := range ts {
		ys[i] = p.Eval(t)
	}
	return ys
}

// FitQuadratic fits a·x² + b·x + c through exactly 3 points.
func FitQuadratic(xs, ys []float64) (Polynomial, error) {
	return fit(xs, ys, 2)
}

// FitCubic fits a·x³ + b·x² + c·x + d through exactly 4 points.
func FitCubic(xs, ys []float64) (Polynomial, error) {
	return fit(xs, ys, 3)
}

// fit solves the Vandermonde system X·coefficients = y by inversion and
// checks the inverse reproduces the identity before trusting it.
func fit(xs, ys []float64, degree int) (Polynomial, error) {
	n := degree + 1
	if len(xs) != n {
		return nil, fmt.Errorf("x has %d points, degree %d needs %d: %w", len(xs), degree, n, ErrPointCount)
	}
	if len(ys) != n {
		return nil, fmt.Errorf("y has %d points, degree %d needs %d: %w", len(ys), degree, n, ErrPointCount)
	}

	vandermonde := mat.NewDense(n, n, nil)
	for i, x := range xs {
		for j := 0; j < n; j++ {
			vandermonde.Set(i, j, math.Pow(x, float64(degree-j)))
		}
	}

	var inverse mat.Dense
	if err := inverse.Inverse(vandermonde); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrIllConditioned)
	}

	var product mat.Dense
	product.Mul(&inverse, vandermonde)

	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	if !mat.EqualApprox(&product, mat.NewDiagDense(n, ones), identityTolerance) {
		return nil, fmt.Errorf("inverse check failed: %w", ErrIllConditioned)
	}

	var coefficients mat.VecDense
	coefficients.MulVec(&inverse, mat.NewVecDense(n, append([]float64(nil), ys...)))

	p := make(Polynomial, n)
	for i := range p {
		p[i] = coefficients.AtVec(i)
	}
	return p, nil
}

// Linspace returns n evenly spaced samples over [start, stop], both ends
// included.
func Linspace(start, stop float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%d samples: %w", n, ErrInvalidSampling)
	}
	ts := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range ts {
		ts[i] = start + float64(i)*step
	}
	ts[n-1] = stop
	return ts, nil
}
