// Package surface measures the exact gap between a sphere and a finite,
// capped cylinder using a signed distance field.
//
// The geometry package models the cylinder as an infinite line plus a
// radius; this package accounts for the end caps and their rims, so it can
// flag contacts the line model reports beyond the ends of the bag.
package surface

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrInvalidRadius  = errors.New("surface: radius must be positive")
	ErrDegenerateAxis = errors.New("surface: cylinder endpoints coincide")
)

// Cylinder is a capped cylinder placed in ground by its end centres.
type Cylinder struct {
	field  sdf.SDF3
	bottom mgl64.Vec3
	axis   mgl64.Vec3
	height float64
}

// NewCylinder builds the distance field for the cylinder between bottom and
// top. The field is evaluated in the cylinder's own frame (axis along Z,
// centred on the origin), so no rotation of the field itself is needed.
func NewCylinder(bottom, top mgl64.Vec3, radius float64) (*Cylinder, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("cylinder radius %v: %w", radius, ErrInvalidRadius)
	}
	axis := top.Sub(bottom)
	height := axis.Len()
	if height == 0 {
		return nil, fmt.Errorf("axis %v -> %v: %w", bottom, top, ErrDegenerateAxis)
	}

	field, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdf cylinder: %w", err)
	}

	return &Cylinder{
		field:  field,
		bottom: bottom,
		axis:   axis.Mul(1 / height),
		height: height,
	}, nil
}

// Distance returns the signed distance from a ground point to the cylinder
// surface: positive outside, negative inside.
func (c *Cylinder) Distance(p mgl64.Vec3) float64 {
	rel := p.Sub(c.bottom)
	along := rel.Dot(c.axis)
	radial := rel.Sub(c.axis.Mul(along)).Len()

	// Cylinder3D is rotationally symmetric about Z, so the radial distance
	// can be placed on X.
	return c.field.Evaluate(v3.Vec{X: radial, Y: 0, Z: along - c.height/2})
}

// Clearance returns the gap between a sphere and the cylinder surface:
// positive when separated, negative when overlapping.
func (c *Cylinder) Clearance(center mgl64.Vec3, radius float64) (float64, error) {
	if !(radius > 0) {
		return 0, fmt.Errorf("sphere radius %v: %w", radius, ErrInvalidRadius)
	}
	return c.Distance(center) - radius, nil
}

// Clearance builds the cylinder and measures a single sphere against it.
func Clearance(center mgl64.Vec3, sphereRadius float64, bottom, top mgl64.Vec3, cylinderRadius float64) (float64, error) {
	c, err := NewCylinder(bottom, top, cylinderRadius)
	if err != nil {
		return 0, err
	}
	return c.Clearance(center, sphereRadius)
}

// Overlap is the negated clearance: positive when the sphere and cylinder
// interpenetrate, matching the scalar penetration convention.
func Overlap(center mgl64.Vec3, sphereRadius float64, bottom, top mgl64.Vec3, cylinderRadius float64) (float64, error) {
	gap, err := Clearance(center, sphereRadius, bottom, top, cylinderRadius)
	if err != nil {
		return 0, err
	}
	return -gap, nil
}
