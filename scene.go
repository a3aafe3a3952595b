package tackling

import (
	"errors"
	"fmt"

	"github.com/AndreaBraschi/tackling-msk/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DEFAULT_WORKERS  = 1
	DEFAULT_SUBSTEPS = 1
)

var (
	ErrUnnamedBody   = errors.New("tackling: body has no name")
	ErrDuplicateBody = errors.New("tackling: body name already in use")
)

// Scene is a set of kinematic bodies. It stands in for the host simulation
// when there is none (tests, scripted strikes) and implements PoseProvider.
type Scene struct {
	// List of all bodies in the scene
	Bodies   []*actor.Body
	Substeps int
	Workers  int

	index map[BodyID]*actor.Body
}

func NewScene() *Scene {
	return &Scene{
		Substeps: DEFAULT_SUBSTEPS,
		Workers:  DEFAULT_WORKERS,
		index:    make(map[BodyID]*actor.Body),
	}
}

// AddBody adds a body to the scene, addressable by its name
func (s *Scene) AddBody(body *actor.Body) error {
	if body.Name == "" {
		return ErrUnnamedBody
	}
	if s.index == nil {
		s.index = make(map[BodyID]*actor.Body)
	}
	id := BodyID(body.Name)
	if _, ok := s.index[id]; ok {
		return fmt.Errorf("%q: %w", body.Name, ErrDuplicateBody)
	}

	s.Bodies = append(s.Bodies, body)
	s.index[id] = body

	return nil
}

// RemoveBody removes a body from the scene
func (s *Scene) RemoveBody(body *actor.Body) {
	k := -1
	for i, b := range s.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		s.Bodies = append(s.Bodies[:k], s.Bodies[k+1:]...)
		delete(s.index, BodyID(body.Name))
	}
}

// Body looks a body up by name.
func (s *Scene) Body(id BodyID) (*actor.Body, error) {
	body, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownBody)
	}
	return body, nil
}

// Advance moves every body along its prescribed velocities.
func (s *Scene) Advance(dt float64) {
	workers := max(DEFAULT_WORKERS, s.Workers)
	substeps := max(DEFAULT_SUBSTEPS, s.Substeps)
	h := dt / float64(substeps)

	for range substeps {
		task(workers, len(s.Bodies), func(i int) {
			s.Bodies[i].Advance(h)
		})
	}
}

func (s *Scene) PositionInGround(id BodyID, local mgl64.Vec3) (mgl64.Vec3, error) {
	body, err := s.Body(id)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return body.StationPositionInGround(local), nil
}

func (s *Scene) VelocityInGround(id BodyID, local mgl64.Vec3) (mgl64.Vec3, error) {
	body, err := s.Body(id)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return body.StationVelocityInGround(local), nil
}

func (s *Scene) RotationInGround(id BodyID) (mgl64.Mat3, error) {
	body, err := s.Body(id)
	if err != nil {
		return mgl64.Mat3{}, err
	}
	return body.Transform.Mat3(), nil
}
