package tackling

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyID names a body of the host simulation.
type BodyID string

var ErrUnknownBody = errors.New("tackling: unknown body")

// PoseProvider is the read-only view of the articulated body simulation the
// contact model needs. Every call is made with the host already realised to
// the velocity stage for the current instant.
type PoseProvider interface {
	// PositionInGround expresses a point fixed in body in ground.
	PositionInGround(body BodyID, local mgl64.Vec3) (mgl64.Vec3, error)
	// VelocityInGround returns the ground velocity of a point fixed in body.
	VelocityInGround(body BodyID, local mgl64.Vec3) (mgl64.Vec3, error)
	// RotationInGround returns the body orientation (body to ground).
	RotationInGround(body BodyID) (mgl64.Mat3, error)
}

// GroundToLocal expresses a ground point in the frame of body, using the
// body origin and orientation reported by p.
func GroundToLocal(p PoseProvider, body BodyID, point mgl64.Vec3) (mgl64.Vec3, error) {
	origin, err := p.PositionInGround(body, mgl64.Vec3{})
	if err != nil {
		return mgl64.Vec3{}, fmt.Errorf("origin of %q: %w", body, err)
	}
	rotation, err := p.RotationInGround(body)
	if err != nil {
		return mgl64.Vec3{}, fmt.Errorf("rotation of %q: %w", body, err)
	}

	return rotation.Transpose().Mul3x1(point.Sub(origin)), nil
}
