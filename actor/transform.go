package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents the pose of a body frame expressed in ground:
// the position of its origin and its orientation.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// NewTransformFromMat3 creates a transform from a position and a 3x3 rotation
// matrix, the form articulated-body engines usually report orientation in.
func NewTransformFromMat3(position mgl64.Vec3, rotation mgl64.Mat3) Transform {
	return Transform{
		Position: position,
		Rotation: mgl64.Mat4ToQuat(rotation.Mat4()).Normalize(),
	}
}

// rotation returns the orientation, treating a zero quaternion (a Transform
// built as a literal with only a Position) as the identity.
func (t Transform) rotation() mgl64.Quat {
	if t.Rotation.W == 0 && t.Rotation.V == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

// Apply expresses a point given in the body frame in ground.
func (t Transform) Apply(local mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Rotate(local).Add(t.Position)
}

// ToLocal expresses a ground point in the body frame.
func (t Transform) ToLocal(ground mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Conjugate().Rotate(ground.Sub(t.Position))
}

// Mat3 returns the orientation as a rotation matrix (body to ground).
func (t Transform) Mat3() mgl64.Mat3 {
	return t.rotation().Mat4().Mat3()
}
