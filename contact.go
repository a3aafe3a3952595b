package tackling

import (
	"fmt"

	"github.com/AndreaBraschi/tackling-msk/force"
	"github.com/AndreaBraschi/tackling-msk/geometry"
	"github.com/AndreaBraschi/tackling-msk/surface"
	"github.com/go-gl/mathgl/mgl64"
)

// ContactState is the result of one pair evaluation. It is recomputed every
// step and never carried over.
type ContactState struct {
	Pair    string
	Contact geometry.Contact

	// Signed penetration along the normal, positive when overlapping (m)
	Penetration float64
	// Penetration rate (m/s)
	PenetrationRate float64
	// Scalar normal force magnitude (N)
	Force float64

	// The cylinder pushes the sphere along +Normal; the reaction is opposite.
	ForceOnSphere   mgl64.Vec3
	ForceOnCylinder mgl64.Vec3

	// Gap to the finite, capped cylinder (negative when overlapping). Unlike
	// Penetration it accounts for the end caps.
	CapClearance float64

	InContact bool
	Err       error
}

// Evaluate resolves a pair through the pose provider and computes its
// geometry, penetration rate and contact force. Failures are reported on
// the returned state's Err.
func Evaluate(p PoseProvider, pair ContactPair, cfg ContactGeometryConfig) ContactState {
	state, err := evaluate(p, pair, cfg)
	state.Pair = pair.Name
	if err != nil {
		state.Err = fmt.Errorf("pair %q: %w", pair.Name, err)
	}
	return state
}

func evaluate(p PoseProvider, pair ContactPair, cfg ContactGeometryConfig) (ContactState, error) {
	if err := pair.Validate(); err != nil {
		return ContactState{}, err
	}

	sphereCenter, err := p.PositionInGround(pair.SphereBody, pair.Sphere.Center)
	if err != nil {
		return ContactState{}, err
	}
	bottom, err := p.PositionInGround(pair.CylinderBody, pair.Cylinder.Bottom)
	if err != nil {
		return ContactState{}, err
	}
	top, err := p.PositionInGround(pair.CylinderBody, pair.Cylinder.Top)
	if err != nil {
		return ContactState{}, err
	}
	cylinderVelocity, err := p.VelocityInGround(pair.CylinderBody, pair.Cylinder.Midpoint())
	if err != nil {
		return ContactState{}, err
	}

	contact, err := geometry.ComputeContact(geometry.Input{
		SphereCenter:     sphereCenter,
		SphereRadius:     pair.Sphere.Radius,
		Bottom:           bottom,
		Top:              top,
		CylinderRadius:   pair.Cylinder.Radius,
		CylinderVelocity: cylinderVelocity,
	})
	if err != nil {
		return ContactState{}, err
	}

	rate, err := penetrationRate(p, pair, contact)
	if err != nil {
		return ContactState{}, err
	}

	radius := pair.Sphere.Radius
	if cfg.UseEffectiveRadius {
		radius, err = force.EffectiveRadius(pair.Sphere.Radius, pair.Cylinder.Radius)
		if err != nil {
			return ContactState{}, err
		}
	}

	x := contact.Penetration()
	f := 0.0
	if x > 0 || !cfg.GateSeparated {
		f, err = force.SmoothHuntCrossley(x, rate, radius, cfg.Force)
		if err != nil {
			return ContactState{}, err
		}
	}

	clearance, err := surface.Clearance(sphereCenter, pair.Sphere.Radius, bottom, top, pair.Cylinder.Radius)
	if err != nil {
		return ContactState{}, err
	}

	return ContactState{
		Contact:         contact,
		Penetration:     x,
		PenetrationRate: rate,
		Force:           f,
		ForceOnSphere:   contact.Normal.Mul(f),
		ForceOnCylinder: contact.Normal.Mul(-f),
		CapClearance:    clearance,
		InContact:       x > 0,
	}, nil
}

// penetrationRate takes both edge points back into their owning body
// frames, reads the ground velocity of those material points and projects
// their difference onto the normal.
func penetrationRate(p PoseProvider, pair ContactPair, contact geometry.Contact) (float64, error) {
	cylinderEdge, err := GroundToLocal(p, pair.CylinderBody, contact.CylinderEdge)
	if err != nil {
		return 0, err
	}
	sphereEdge, err := GroundToLocal(p, pair.SphereBody, contact.SphereEdge)
	if err != nil {
		return 0, err
	}

	cylinderEdgeVelocity, err := p.VelocityInGround(pair.CylinderBody, cylinderEdge)
	if err != nil {
		return 0, err
	}
	sphereEdgeVelocity, err := p.VelocityInGround(pair.SphereBody, sphereEdge)
	if err != nil {
		return 0, err
	}

	return contact.Rate(cylinderEdgeVelocity.Sub(sphereEdgeVelocity)), nil
}
