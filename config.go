package tackling

import (
	"errors"
	"fmt"

	"github.com/AndreaBraschi/tackling-msk/actor"
	"github.com/AndreaBraschi/tackling-msk/force"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrNoPairs        = errors.New("tackling: no contact pairs configured")
	ErrUnnamedPair    = errors.New("tackling: contact pair has no name")
	ErrDuplicatePair  = errors.New("tackling: contact pair name already in use")
	ErrNegativeWorker = errors.New("tackling: worker count must not be negative")
)

// ContactPair binds a sphere fixed on one body to a cylinder fixed on
// another. Shape coordinates are expressed in their owning body's frame.
type ContactPair struct {
	Name string

	SphereBody BodyID
	Sphere     actor.Sphere

	CylinderBody BodyID
	Cylinder     actor.Cylinder
}

func (p ContactPair) Validate() error {
	if p.Name == "" {
		return ErrUnnamedPair
	}
	shapes := []interface {
		Type() actor.ShapeType
		Validate() error
	}{p.Sphere, p.Cylinder}
	for _, shape := range shapes {
		if err := shape.Validate(); err != nil {
			return fmt.Errorf("pair %q, %v: %w", p.Name, shape.Type(), err)
		}
	}
	return nil
}

// ContactGeometryConfig is the calibration of a contact rig.
type ContactGeometryConfig struct {
	Pairs []ContactPair
	Force force.Params

	// UseEffectiveRadius feeds r1·r2/(r1+r2) to the force law instead of the
	// sphere radius.
	UseEffectiveRadius bool
	// GateSeparated reports zero force whenever the penetration is not
	// positive, instead of the smoothed law's residual.
	GateSeparated bool

	// Goroutines used by Rig.Step; 0 means DEFAULT_WORKERS.
	Workers int
}

func (c ContactGeometryConfig) Validate() error {
	if len(c.Pairs) == 0 {
		return ErrNoPairs
	}
	if c.Workers < 0 {
		return fmt.Errorf("%d workers: %w", c.Workers, ErrNegativeWorker)
	}
	if err := c.Force.Validate(); err != nil {
		return fmt.Errorf("force parameters: %w", err)
	}

	names := make(map[string]bool, len(c.Pairs))
	for _, pair := range c.Pairs {
		if err := pair.Validate(); err != nil {
			return err
		}
		if names[pair.Name] {
			return fmt.Errorf("%q: %w", pair.Name, ErrDuplicatePair)
		}
		names[pair.Name] = true
	}
	return nil
}

// Punching bag rig: a sphere on the right clavicle against a hanging bag.
const (
	ClavicleBody    BodyID = "rclavicle"
	PunchingBagBody BodyID = "punching_bag"

	ClavicleSphereRadius = 0.025
	BagRadius            = 0.1702085
	BagHalfHeight        = 0.5386
	BagStiffness         = 2300832.0
	BagDamping           = 2.5
)

// ClavicleSphereCenter is the sphere centre in the clavicle frame.
var ClavicleSphereCenter = mgl64.Vec3{-0.05, 0.015, 0.1}

// PunchingBagConfig returns the calibrated clavicle/bag rig. The bag axis is
// the Y axis of its body frame, centred on the body origin.
func PunchingBagConfig() ContactGeometryConfig {
	return ContactGeometryConfig{
		Pairs: []ContactPair{
			{
				Name:       "rclavicle_punching_bag",
				SphereBody: ClavicleBody,
				Sphere: actor.Sphere{
					Center: ClavicleSphereCenter,
					Radius: ClavicleSphereRadius,
				},
				CylinderBody: PunchingBagBody,
				Cylinder:     actor.NewCylinderFromHalfHeight(BagRadius, mgl64.Vec3{}, mgl64.Vec3{0, BagHalfHeight, 0}),
			},
		},
		Force:              force.DefaultParams(BagStiffness, BagDamping),
		UseEffectiveRadius: true,
		Workers:            DEFAULT_WORKERS,
	}
}
