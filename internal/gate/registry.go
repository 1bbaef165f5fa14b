package gate

import "github.com/rfontaine/stagegate/internal/domain"

// Registry resolves the validator for a phase. It is built once at startup
// and never mutated afterwards, so concurrent reads need no locking.
type Registry struct {
	byPhase map[domain.Phase]Validator
}

// NewRegistry returns a registry pre-loaded with all six gates.
func NewRegistry(opts Options) *Registry {
	r := &Registry{byPhase: make(map[domain.Phase]Validator)}
	for _, v := range []Validator{
		NewDiscoveryGate(opts),
		NewPlanGate(opts),
		NewImplementationGate(opts),
		NewReviewGate(opts),
		NewOperationsGate(opts),
		NewEvolutionGate(opts),
	} {
		r.byPhase[v.Phase()] = v
	}
	return r
}

// ForPhase returns the validator guarding the given phase.
func (r *Registry) ForPhase(p domain.Phase) (Validator, bool) {
	v, ok := r.byPhase[p]
	return v, ok
}
