package actor

import "github.com/go-gl/mathgl/mgl64"

// Body is a kinematic rigid body: its pose and velocities are prescribed
// (read from motion data or scripted), never integrated from forces.
type Body struct {
	Name string

	PreviousTransform Transform
	Transform         Transform

	// Linear velocity of the body origin, in ground (m/s)
	Velocity mgl64.Vec3
	// Angular velocity, in ground (rad/s)
	AngularVelocity mgl64.Vec3
}

// NewBody creates a body at rest with the given pose
func NewBody(name string, transform Transform) *Body {
	return &Body{
		Name:              name,
		PreviousTransform: transform,
		Transform:         transform,
	}
}

// StationPositionInGround expresses a point fixed in the body frame in ground.
func (b *Body) StationPositionInGround(local mgl64.Vec3) mgl64.Vec3 {
	return b.Transform.Apply(local)
}

// StationVelocityInGround returns the ground velocity of a point fixed in the
// body frame: v + ω × (R·p).
func (b *Body) StationVelocityInGround(local mgl64.Vec3) mgl64.Vec3 {
	arm := b.Transform.rotation().Rotate(local)
	return b.Velocity.Add(b.AngularVelocity.Cross(arm))
}

// StationLocation expresses a ground point in the body frame.
func (b *Body) StationLocation(ground mgl64.Vec3) mgl64.Vec3 {
	return b.Transform.ToLocal(ground)
}

// Advance moves the body along its current velocities for dt seconds.
func (b *Body) Advance(dt float64) {
	b.PreviousTransform = b.Transform

	b.Transform.Position = b.Transform.Position.Add(b.Velocity.Mul(dt))

	rotation := b.Transform.rotation()
	omegaQuat := mgl64.Quat{V: b.AngularVelocity, W: 0}
	qDot := omegaQuat.Mul(rotation).Scale(0.5)
	b.Transform.Rotation = rotation.Add(qDot.Scale(dt)).Normalize()
}
