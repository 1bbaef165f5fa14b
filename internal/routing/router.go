// Package routing maps lifecycle phases to the processing units that work
// items in those phases are dispatched to.
package routing

import (
	"context"
	"fmt"

	"github.com/rfontaine/stagegate/internal/domain"
	"github.com/rfontaine/stagegate/internal/repository"
)

// ProcessingUnit names a downstream handler of phase work.
type ProcessingUnit string

const (
	DefinitionUnit     ProcessingUnit = "definition"
	PlanningUnit       ProcessingUnit = "planning"
	ImplementationUnit ProcessingUnit = "implementation"
	ReviewUnit         ProcessingUnit = "review"
	ReleaseUnit        ProcessingUnit = "release"
	EvolutionUnit      ProcessingUnit = "evolution"
)

// phaseUnit is the static routing table. Items at PhaseNone have not entered
// the lifecycle and are not routable.
var phaseUnit = map[domain.Phase]ProcessingUnit{
	domain.PhaseDiscovery:      DefinitionUnit,
	domain.PhasePlan:           PlanningUnit,
	domain.PhaseImplementation: ImplementationUnit,
	domain.PhaseReview:         ReviewUnit,
	domain.PhaseOperations:     ReleaseUnit,
	domain.PhaseEvolution:      EvolutionUnit,
}

// Router resolves processing units for phases and assembles per-unit queues.
type Router struct {
	workItems repository.WorkItemRepo
}

func NewRouter(workItems repository.WorkItemRepo) *Router {
	return &Router{workItems: workItems}
}

// UnitFor returns the processing unit responsible for the given phase.
func UnitFor(p domain.Phase) (ProcessingUnit, error) {
	unit, ok := phaseUnit[p]
	if !ok {
		return "", fmt.Errorf("phase %q has no processing unit", p)
	}
	return unit, nil
}

// Route returns the processing unit for a work item's current phase.
// Blocked items keep their routing; cancelled and archived items are
// excluded at the queue level instead.
func (r *Router) Route(w *domain.WorkItem) (ProcessingUnit, error) {
	return UnitFor(w.Phase)
}

// Queue returns the active work items currently assigned to the given unit,
// in creation order.
func (r *Router) Queue(ctx context.Context, unit ProcessingUnit) ([]*domain.WorkItem, error) {
	var phase domain.Phase
	found := false
	for p, u := range phaseUnit {
		if u == unit {
			phase = p
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("unknown processing unit %q", unit)
	}
	return r.workItems.ListByPhase(ctx, phase)
}

// Queues returns every unit's queue of active work items.
func (r *Router) Queues(ctx context.Context) (map[ProcessingUnit][]*domain.WorkItem, error) {
	out := make(map[ProcessingUnit][]*domain.WorkItem, len(phaseUnit))
	for phase, unit := range phaseUnit {
		items, err := r.workItems.ListByPhase(ctx, phase)
		if err != nil {
			return nil, fmt.Errorf("listing %s queue: %w", unit, err)
		}
		out[unit] = items
	}
	return out, nil
}
