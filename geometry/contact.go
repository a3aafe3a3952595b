package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// onAxisTolerance bounds the radial offset, relative to the distance from
// the bottom centre, below which the sphere centre counts as on the axis.
const onAxisTolerance = 1e-9

// Input is one sphere/cylinder snapshot, every point and vector in ground.
type Input struct {
	SphereCenter mgl64.Vec3
	SphereRadius float64

	// Centres of the cylinder's bottom and top surfaces
	Bottom         mgl64.Vec3
	Top            mgl64.Vec3
	CylinderRadius float64

	// Cylinder velocity; only its direction is used
	CylinderVelocity mgl64.Vec3
}

// Contact is the geometric part of a contact state.
//
// PenetrationVector goes from the sphere edge to the cylinder edge
// (cylinder edge minus sphere edge). Resolved on Normal it gives the scalar
// penetration: positive when the surfaces overlap, negative when separated.
type Contact struct {
	PenetrationVector mgl64.Vec3
	CylinderEdge      mgl64.Vec3
	SphereEdge        mgl64.Vec3
	// Normal points from the cylinder axis outward through the sphere centre
	Normal mgl64.Vec3

	Projection      Projection
	MotionDirection mgl64.Vec3
	Branch          Branch
}

// Penetration returns the signed scalar penetration along the normal.
func (c Contact) Penetration() float64 {
	return c.PenetrationVector.Dot(c.Normal)
}

// Rate projects the relative edge velocity (cylinder edge minus sphere
// edge) onto the normal, giving the penetration rate.
func (c Contact) Rate(relativeVelocity mgl64.Vec3) float64 {
	return relativeVelocity.Dot(c.Normal)
}

// ComputeContact finds the axis point closest to the sphere centre, picks
// the contacting edge of each geometry from the cylinder's motion direction
// and returns the penetration vector between the two edges.
//
// It never gates on the penetration sign; callers decide what a separated
// pair means for them.
func ComputeContact(in Input) (Contact, error) {
	if in.SphereRadius <= 0 {
		return Contact{}, fmt.Errorf("sphere radius %v: %w", in.SphereRadius, ErrInvalidRadius)
	}
	if in.CylinderRadius <= 0 {
		return Contact{}, fmt.Errorf("cylinder radius %v: %w", in.CylinderRadius, ErrInvalidRadius)
	}
	for _, v := range [...]mgl64.Vec3{in.SphereCenter, in.Bottom, in.Top, in.CylinderVelocity} {
		if !isFinite(v) {
			return Contact{}, fmt.Errorf("input %v: %w", v, ErrNonFinite)
		}
	}

	projection, err := ProjectOntoLine(in.SphereCenter, in.Bottom, in.Top)
	if err != nil {
		return Contact{}, err
	}

	normal, err := radialDirection(in.SphereCenter, in.Bottom, projection)
	if err != nil {
		return Contact{}, err
	}

	motion, err := UnitVector(in.CylinderVelocity)
	if err != nil {
		return Contact{}, fmt.Errorf("cylinder motion direction: %w", err)
	}

	branch, signs := SelectEdges(motion.X(), normal.X())

	cylinderEdge := projection.Point.Add(normal.Mul(signs.Cylinder * in.CylinderRadius))
	sphereEdge := in.SphereCenter.Add(normal.Mul(signs.Sphere * in.SphereRadius))

	return Contact{
		PenetrationVector: cylinderEdge.Sub(sphereEdge),
		CylinderEdge:      cylinderEdge,
		SphereEdge:        sphereEdge,
		Normal:            normal,
		Projection:        projection,
		MotionDirection:   motion,
		Branch:            branch,
	}, nil
}

// radialDirection returns the unit component of center - bottom orthogonal
// to the axis. Offsets within onAxisTolerance are rounding residue.
func radialDirection(center, bottom mgl64.Vec3, projection Projection) (mgl64.Vec3, error) {
	q := VectorBetween(bottom, center)
	radial := q.Sub(projection.Direction.Mul(q.Dot(projection.Direction)))

	length := radial.Len()
	if length <= onAxisTolerance*math.Max(q.Len(), 1) {
		return mgl64.Vec3{}, fmt.Errorf("sphere centre %v, radial offset %v: %w", center, length, ErrCenterOnAxis)
	}
	return radial.Mul(1 / length), nil
}
