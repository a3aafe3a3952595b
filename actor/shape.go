package actor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNonPositiveRadius is returned by Validate when a radius is zero or negative.
	ErrNonPositiveRadius = errors.New("actor: radius must be positive")
	// ErrCoincidentEndpoints is returned when a cylinder's top and bottom centres
	// coincide, leaving no longitudinal axis.
	ErrCoincidentEndpoints = errors.New("actor: cylinder endpoints coincide")
)

// ShapeType represents the type of contact primitive
type ShapeType int

const (
	ShapeTypeSphere ShapeType = iota
	ShapeTypeCylinder
)

func (s ShapeType) String() string {
	switch s {
	case ShapeTypeSphere:
		return "sphere"
	case ShapeTypeCylinder:
		return "cylinder"
	default:
		return fmt.Sprintf("ShapeType(%d)", int(s))
	}
}

// Sphere approximates a landmark fixed on an articulated body.
// Center is expressed in the owning body's frame.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

func (s Sphere) Type() ShapeType {
	return ShapeTypeSphere
}

// Validate checks the sphere's geometric constants.
func (s Sphere) Validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("sphere radius %v: %w", s.Radius, ErrNonPositiveRadius)
	}
	return nil
}

// Cylinder approximates an obstacle (a punching bag). Bottom and Top are the
// centres of the two end surfaces, in the owning body's frame; the segment
// between them is the longitudinal axis.
type Cylinder struct {
	Bottom mgl64.Vec3
	Top    mgl64.Vec3
	Radius float64
}

// NewCylinderFromHalfHeight builds a cylinder from its local centre and the
// half-height vector pointing from the centre to the top surface.
func NewCylinderFromHalfHeight(radius float64, center, halfHeight mgl64.Vec3) Cylinder {
	return Cylinder{
		Bottom: center.Sub(halfHeight),
		Top:    center.Add(halfHeight),
		Radius: radius,
	}
}

// CylinderFromPose places a cylinder centred on the origin of the body frame
// described by pose and returns it with its endpoints expressed in ground.
func CylinderFromPose(pose Transform, halfHeight mgl64.Vec3, radius float64) Cylinder {
	return Cylinder{
		Bottom: pose.Apply(halfHeight.Mul(-1)),
		Top:    pose.Apply(halfHeight),
		Radius: radius,
	}
}

func (c Cylinder) Type() ShapeType {
	return ShapeTypeCylinder
}

// Axis returns the vector from the bottom centre to the top centre.
func (c Cylinder) Axis() mgl64.Vec3 {
	return c.Top.Sub(c.Bottom)
}

func (c Cylinder) Height() float64 {
	return c.Axis().Len()
}

// Midpoint returns the centre of the axis segment.
func (c Cylinder) Midpoint() mgl64.Vec3 {
	return c.Bottom.Add(c.Top).Mul(0.5)
}

// EndpointsInGround resolves both end centres through the body pose.
func (c Cylinder) EndpointsInGround(pose Transform) (bottom, top mgl64.Vec3) {
	return pose.Apply(c.Bottom), pose.Apply(c.Top)
}

// Validate checks the cylinder's geometric constants.
func (c Cylinder) Validate() error {
	if c.Radius <= 0 {
		return fmt.Errorf("cylinder radius %v: %w", c.Radius, ErrNonPositiveRadius)
	}
	if c.Axis().Len() == 0 {
		return fmt.Errorf("cylinder %v -> %v: %w", c.Bottom, c.Top, ErrCoincidentEndpoints)
	}
	return nil
}
