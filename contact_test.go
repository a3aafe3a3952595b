package tackling

import (
	"errors"
	"testing"

	"github.com/AndreaBraschi/tackling-msk/actor"
	"github.com/AndreaBraschi/tackling-msk/force"
	"github.com/AndreaBraschi/tackling-msk/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// newBagScene places the clavicle at the origin and the bag at bagPosition,
// swinging along bagVelocity.
func newBagScene(bagPosition, bagVelocity mgl64.Vec3) (*Scene, *actor.Body, *actor.Body) {
	scene := NewScene()

	clavicle := actor.NewBody(string(ClavicleBody), actor.NewTransform())
	bag := actor.NewBody(string(PunchingBagBody), actor.Transform{
		Position: bagPosition,
		Rotation: mgl64.QuatIdent(),
	})
	bag.Velocity = bagVelocity

	scene.AddBody(clavicle)
	scene.AddBody(bag)

	return scene, clavicle, bag
}

// The sphere centre sits at (-0.05, 0.015, 0.1); a bag centred at x = 0.12
// puts the axis 0.17 away along X.
func TestEvaluate_Overlap(t *testing.T) {
	cfg := PunchingBagConfig()
	scene, _, _ := newBagScene(mgl64.Vec3{0.12, 0, 0.1}, mgl64.Vec3{-2, 0, 0})

	state := Evaluate(scene, cfg.Pairs[0], cfg)
	if state.Err != nil {
		t.Fatalf("Evaluate() error: %v", state.Err)
	}

	wantX := BagRadius + ClavicleSphereRadius - 0.17
	if !floatEqual(state.Penetration, wantX, 1e-12) {
		t.Errorf("Penetration = %v, want %v", state.Penetration, wantX)
	}
	if !state.InContact {
		t.Error("InContact = false, want true")
	}
	if !vec3Equal(state.Contact.Normal, mgl64.Vec3{-1, 0, 0}, 1e-12) {
		t.Errorf("Normal = %v, want (-1, 0, 0)", state.Contact.Normal)
	}
	if want := (geometry.Branch{Alignment: geometry.AlignmentSame, Motion: geometry.MotionNegative}); state.Contact.Branch != want {
		t.Errorf("Branch = %v, want %v", state.Contact.Branch, want)
	}

	// Bag closing in at 2 m/s on a sphere at rest
	if !floatEqual(state.PenetrationRate, 2, 1e-12) {
		t.Errorf("PenetrationRate = %v, want 2", state.PenetrationRate)
	}

	radius, _ := force.EffectiveRadius(ClavicleSphereRadius, BagRadius)
	wantF, err := force.SmoothHuntCrossley(state.Penetration, state.PenetrationRate, radius, cfg.Force)
	if err != nil {
		t.Fatalf("SmoothHuntCrossley() error: %v", err)
	}
	if state.Force != wantF || state.Force <= 0 {
		t.Errorf("Force = %v, want %v (> 0)", state.Force, wantF)
	}

	if !vec3Equal(state.ForceOnSphere, mgl64.Vec3{-wantF, 0, 0}, 1e-9) {
		t.Errorf("ForceOnSphere = %v", state.ForceOnSphere)
	}
	if !vec3Equal(state.ForceOnSphere.Add(state.ForceOnCylinder), mgl64.Vec3{}, 1e-9) {
		t.Errorf("forces do not balance: %v + %v", state.ForceOnSphere, state.ForceOnCylinder)
	}

	// On the lateral surface the capped clearance mirrors the line model
	if !floatEqual(state.CapClearance, -state.Penetration, 1e-9) {
		t.Errorf("CapClearance = %v, want %v", state.CapClearance, -state.Penetration)
	}
}

func TestEvaluate_SphereRadiusWithoutEffectiveRadius(t *testing.T) {
	cfg := PunchingBagConfig()
	cfg.UseEffectiveRadius = false
	scene, _, _ := newBagScene(mgl64.Vec3{0.12, 0, 0.1}, mgl64.Vec3{-2, 0, 0})

	state := Evaluate(scene, cfg.Pairs[0], cfg)
	if state.Err != nil {
		t.Fatalf("Evaluate() error: %v", state.Err)
	}

	want, _ := force.SmoothHuntCrossley(state.Penetration, state.PenetrationRate, ClavicleSphereRadius, cfg.Force)
	if state.Force != want {
		t.Errorf("Force = %v, want %v", state.Force, want)
	}
}

func TestEvaluate_Separated(t *testing.T) {
	cfg := PunchingBagConfig()
	scene, _, _ := newBagScene(mgl64.Vec3{0.3, 0, 0.1}, mgl64.Vec3{-2, 0, 0})

	state := Evaluate(scene, cfg.Pairs[0], cfg)
	if state.Err != nil {
		t.Fatalf("Evaluate() error: %v", state.Err)
	}
	if state.Penetration >= 0 || state.InContact {
		t.Fatalf("Penetration = %v, InContact = %v, want separated", state.Penetration, state.InContact)
	}
	if state.Force < 0 || state.Force > 1 {
		t.Errorf("ungated Force = %v, want a small non-negative residual", state.Force)
	}

	cfg.GateSeparated = true
	gated := Evaluate(scene, cfg.Pairs[0], cfg)
	if gated.Err != nil {
		t.Fatalf("Evaluate() error: %v", gated.Err)
	}
	if gated.Force != 0 || gated.ForceOnSphere != (mgl64.Vec3{}) {
		t.Errorf("gated Force = %v, ForceOnSphere = %v, want 0", gated.Force, gated.ForceOnSphere)
	}
	if gated.Penetration != state.Penetration {
		t.Errorf("gating changed Penetration: %v vs %v", gated.Penetration, state.Penetration)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	cfg := PunchingBagConfig()

	t.Run("unknown body", func(t *testing.T) {
		scene, _, _ := newBagScene(mgl64.Vec3{0.12, 0, 0.1}, mgl64.Vec3{-2, 0, 0})
		pair := cfg.Pairs[0]
		pair.SphereBody = "ghost"

		state := Evaluate(scene, pair, cfg)
		if !errors.Is(state.Err, ErrUnknownBody) {
			t.Errorf("Err = %v, want ErrUnknownBody", state.Err)
		}
		if state.Pair != pair.Name {
			t.Errorf("Pair = %q, want %q", state.Pair, pair.Name)
		}
	})

	t.Run("stationary bag", func(t *testing.T) {
		scene, _, _ := newBagScene(mgl64.Vec3{0.12, 0, 0.1}, mgl64.Vec3{})

		state := Evaluate(scene, cfg.Pairs[0], cfg)
		if !errors.Is(state.Err, geometry.ErrZeroLength) {
			t.Errorf("Err = %v, want ErrZeroLength", state.Err)
		}
	})

	t.Run("sphere centre on axis", func(t *testing.T) {
		scene, _, _ := newBagScene(mgl64.Vec3{}, mgl64.Vec3{-2, 0, 0})
		pair := cfg.Pairs[0]
		pair.Sphere.Center = mgl64.Vec3{}
		pair.Cylinder = actor.NewCylinderFromHalfHeight(BagRadius, mgl64.Vec3{}, mgl64.Vec3{0, 0.5, 0})

		state := Evaluate(scene, pair, cfg)
		if !errors.Is(state.Err, geometry.ErrCenterOnAxis) {
			t.Errorf("Err = %v, want ErrCenterOnAxis", state.Err)
		}
	})

	t.Run("invalid sphere", func(t *testing.T) {
		scene, _, _ := newBagScene(mgl64.Vec3{0.12, 0, 0.1}, mgl64.Vec3{-2, 0, 0})
		pair := cfg.Pairs[0]
		pair.Sphere.Radius = 0

		state := Evaluate(scene, pair, cfg)
		if !errors.Is(state.Err, actor.ErrNonPositiveRadius) {
			t.Errorf("Err = %v, want ErrNonPositiveRadius", state.Err)
		}
	})

	t.Run("zero damping", func(t *testing.T) {
		scene, _, _ := newBagScene(mgl64.Vec3{0.12, 0, 0.1}, mgl64.Vec3{-2, 0, 0})
		bad := cfg
		bad.Force.Damping = 0

		state := Evaluate(scene, bad.Pairs[0], bad)
		if !errors.Is(state.Err, force.ErrZeroDamping) {
			t.Errorf("Err = %v, want ErrZeroDamping", state.Err)
		}
	})
}

// newSwingScene has both bodies translating and rotating. The bag axis is
// tilted so that every term of the edge velocities is exercised.
func newSwingScene(dt float64) *Scene {
	scene := NewScene()

	clavicle := actor.NewBody(string(ClavicleBody), actor.Transform{
		Rotation: mgl64.QuatRotate(0.3, mgl64.Vec3{0, 0, 1}),
	})
	clavicle.Velocity = mgl64.Vec3{0.5, 0, 0.2}
	clavicle.AngularVelocity = mgl64.Vec3{0, 1, 0}

	bag := actor.NewBody(string(PunchingBagBody), actor.Transform{
		Position: mgl64.Vec3{0.12, 0, 0.1},
		Rotation: mgl64.QuatRotate(0.1, mgl64.Vec3{1, 0, 0}),
	})
	bag.Velocity = mgl64.Vec3{-2, 0.1, 0}
	bag.AngularVelocity = mgl64.Vec3{0.2, 0.4, 0}

	scene.AddBody(clavicle)
	scene.AddBody(bag)
	if dt != 0 {
		scene.Advance(dt)
	}

	return scene
}

func TestEvaluate_RateMatchesFiniteDifference(t *testing.T) {
	cfg := PunchingBagConfig()
	pair := cfg.Pairs[0]
	const h = 1e-5

	now := Evaluate(newSwingScene(0), pair, cfg)
	ahead := Evaluate(newSwingScene(h), pair, cfg)
	behind := Evaluate(newSwingScene(-h), pair, cfg)
	for _, s := range []ContactState{now, ahead, behind} {
		if s.Err != nil {
			t.Fatalf("Evaluate() error: %v", s.Err)
		}
	}
	if ahead.Contact.Branch != now.Contact.Branch || behind.Contact.Branch != now.Contact.Branch {
		t.Fatalf("branch changed within the finite difference window")
	}

	fd := (ahead.Penetration - behind.Penetration) / (2 * h)
	if !floatEqual(now.PenetrationRate, fd, 1e-6) {
		t.Errorf("PenetrationRate = %v, finite difference = %v", now.PenetrationRate, fd)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	cfg := PunchingBagConfig()
	scene := newSwingScene(0)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Evaluate(scene, cfg.Pairs[0], cfg)
	}
}
