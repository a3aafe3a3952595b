package tackling

import (
	"fmt"
	"slices"
)

// Rig evaluates every configured contact pair once per step and reports
// contact transitions through Events.
type Rig struct {
	Config ContactGeometryConfig
	Events Events
}

// NewRig validates the configuration and returns a rig ready to step. The
// rig keeps its own copy of the pair list.
func NewRig(cfg ContactGeometryConfig) (*Rig, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rig config: %w", err)
	}
	cfg.Pairs = slices.Clone(cfg.Pairs)

	return &Rig{
		Config: cfg,
		Events: NewEvents(),
	}, nil
}

// RemovePair stops evaluating the named pair. It reports whether the pair
// was configured.
func (r *Rig) RemovePair(name string) bool {
	k := -1
	for i, pair := range r.Config.Pairs {
		if pair.Name == name {
			k = i
			break
		}
	}
	if k == -1 {
		return false
	}

	r.Config.Pairs = slices.Delete(r.Config.Pairs, k, k+1)
	r.Events.forget(name)

	return true
}

// Step evaluates every pair against the provider's current state. States
// are returned in pair order; a failing pair carries its error and does not
// stop the others. Listeners run on the calling goroutine after all pairs
// are evaluated.
func (r *Rig) Step(p PoseProvider) []ContactState {
	workers := max(DEFAULT_WORKERS, r.Config.Workers)
	pairs := r.Config.Pairs
	states := make([]ContactState, len(pairs))

	task(workers, len(pairs), func(i int) {
		states[i] = Evaluate(p, pairs[i], r.Config)
	})

	r.Events.recordContacts(states)
	r.Events.flush()

	return states
}
