package gate

import (
	"fmt"

	"github.com/rfontaine/stagegate/internal/domain"
)

// requiredTaskTypes maps a work item type to the task types its plan must
// contain before the plan gate passes.
var requiredTaskTypes = map[domain.WorkItemType][]domain.TaskType{
	domain.TypeFeature:        {domain.TaskDesign, domain.TaskImplementation, domain.TaskTesting, domain.TaskDocumentation},
	domain.TypeEnhancement:    {domain.TaskImplementation, domain.TaskTesting},
	domain.TypeBugfix:         {domain.TaskImplementation, domain.TaskTesting},
	domain.TypeRefactoring:    {domain.TaskImplementation, domain.TaskTesting},
	domain.TypeInfrastructure: {domain.TaskInfra, domain.TaskDocumentation},
	domain.TypeResearch:       {domain.TaskResearch, domain.TaskDocumentation},
	domain.TypePlanning:       {domain.TaskDesign, domain.TaskDocumentation},
}

// RequiredTaskTypes returns the task types a plan for the given work item
// type must contain.
func RequiredTaskTypes(t domain.WorkItemType) []domain.TaskType {
	return requiredTaskTypes[t]
}

// PlanGate checks that the work is broken down: at least one task, every
// required task type present for the item's type, every task estimated,
// and implementation tasks time-boxed under the configured ceiling.
type PlanGate struct {
	opts Options
}

func NewPlanGate(opts Options) *PlanGate {
	return &PlanGate{opts: opts}
}

func (g *PlanGate) Phase() domain.Phase { return domain.PhasePlan }

func (g *PlanGate) Validate(w *domain.WorkItem) domain.GateResult {
	if w.MetadataInvalid {
		return malformedResult(g.opts)
	}
	m := w.Metadata
	var missing []string

	if len(m.Tasks) == 0 {
		missing = append(missing, "need at least one task, found 0")
	}

	required := requiredTaskTypes[w.Type]
	for _, tt := range required {
		if !m.HasTaskType(tt) {
			missing = append(missing, fmt.Sprintf(
				"missing required task type %q for %s work", tt, w.Type))
		}
	}

	for _, task := range m.Tasks {
		if task.EstimateMin <= 0 {
			missing = append(missing, fmt.Sprintf("task %q has no effort estimate", task.Title))
			continue
		}
		if task.Type == domain.TaskImplementation && task.EstimateMin > g.opts.MaxImplementationTaskMin {
			missing = append(missing, fmt.Sprintf(
				"implementation task %q estimated at %dmin exceeds the %dmin ceiling",
				task.Title, task.EstimateMin, g.opts.MaxImplementationTaskMin))
		}
	}

	return finish(g.opts, missing, scorePlan(m, required, g.opts))
}
