package tackling

import (
	"errors"
	"math"
	"testing"

	"github.com/AndreaBraschi/tackling-msk/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return a.Sub(b).Len() < tolerance
}

func TestScene_AddBody(t *testing.T) {
	scene := NewScene()

	if err := scene.AddBody(actor.NewBody("rclavicle", actor.NewTransform())); err != nil {
		t.Fatalf("AddBody() error: %v", err)
	}
	if err := scene.AddBody(actor.NewBody("rclavicle", actor.NewTransform())); !errors.Is(err, ErrDuplicateBody) {
		t.Errorf("duplicate AddBody() error = %v, want ErrDuplicateBody", err)
	}
	if err := scene.AddBody(actor.NewBody("", actor.NewTransform())); !errors.Is(err, ErrUnnamedBody) {
		t.Errorf("unnamed AddBody() error = %v, want ErrUnnamedBody", err)
	}
	if len(scene.Bodies) != 1 {
		t.Errorf("len(Bodies) = %d, want 1", len(scene.Bodies))
	}
}

func TestScene_ZeroValueAddBody(t *testing.T) {
	var scene Scene
	if err := scene.AddBody(actor.NewBody("bag", actor.NewTransform())); err != nil {
		t.Fatalf("AddBody() error: %v", err)
	}
	if _, err := scene.Body("bag"); err != nil {
		t.Errorf("Body() error: %v", err)
	}
}

func TestScene_RemoveBody(t *testing.T) {
	scene := NewScene()
	a := actor.NewBody("a", actor.NewTransform())
	b := actor.NewBody("b", actor.NewTransform())
	scene.AddBody(a)
	scene.AddBody(b)

	scene.RemoveBody(a)

	if len(scene.Bodies) != 1 || scene.Bodies[0] != b {
		t.Fatalf("Bodies after removal = %v", scene.Bodies)
	}
	if _, err := scene.Body("a"); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("Body(removed) error = %v, want ErrUnknownBody", err)
	}

	// Removing an absent body is a no-op
	scene.RemoveBody(a)
	if len(scene.Bodies) != 1 {
		t.Errorf("len(Bodies) = %d, want 1", len(scene.Bodies))
	}
}

func TestScene_UnknownBody(t *testing.T) {
	scene := NewScene()

	if _, err := scene.PositionInGround("ghost", mgl64.Vec3{}); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("PositionInGround() error = %v, want ErrUnknownBody", err)
	}
	if _, err := scene.VelocityInGround("ghost", mgl64.Vec3{}); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("VelocityInGround() error = %v, want ErrUnknownBody", err)
	}
	if _, err := scene.RotationInGround("ghost"); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("RotationInGround() error = %v, want ErrUnknownBody", err)
	}
	if _, err := GroundToLocal(scene, "ghost", mgl64.Vec3{}); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("GroundToLocal() error = %v, want ErrUnknownBody", err)
	}
}

func TestScene_Advance(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		scene := NewScene()
		scene.Workers = workers
		scene.Substeps = 4

		bodies := make([]*actor.Body, 7)
		for i := range bodies {
			bodies[i] = actor.NewBody(string(rune('a'+i)), actor.NewTransform())
			bodies[i].Velocity = mgl64.Vec3{float64(i), 0, -1}
			scene.AddBody(bodies[i])
		}

		scene.Advance(0.5)

		for i, body := range bodies {
			want := mgl64.Vec3{0.5 * float64(i), 0, -0.5}
			if !vec3Equal(body.Transform.Position, want, 1e-12) {
				t.Errorf("workers %d, body %d: position %v, want %v", workers, i, body.Transform.Position, want)
			}
		}
	}
}

func TestGroundToLocal_RoundTrip(t *testing.T) {
	scene := NewScene()
	body := actor.NewBody("bag", actor.Transform{
		Position: mgl64.Vec3{0.4, 1.2, -0.3},
		Rotation: mgl64.QuatRotate(0.8, mgl64.Vec3{1, 1, 0}.Normalize()),
	})
	scene.AddBody(body)

	for _, local := range []mgl64.Vec3{{0, 0, 0}, {0.1, -0.2, 0.3}, {0, BagHalfHeight, 0}} {
		ground, err := scene.PositionInGround("bag", local)
		if err != nil {
			t.Fatalf("PositionInGround() error: %v", err)
		}
		back, err := GroundToLocal(scene, "bag", ground)
		if err != nil {
			t.Fatalf("GroundToLocal() error: %v", err)
		}
		if !vec3Equal(back, local, 1e-12) {
			t.Errorf("round trip %v -> %v -> %v", local, ground, back)
		}
	}
}
