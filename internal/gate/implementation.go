package gate

import (
	"fmt"

	"github.com/rfontaine/stagegate/internal/domain"
)

// ImplementationGate checks that all implementation, testing, and
// documentation tasks are complete and, when a coverage signal is
// available, that coverage meets the configured threshold. The coverage
// sub-check is skipped when the signal is absent.
type ImplementationGate struct {
	opts Options
}

func NewImplementationGate(opts Options) *ImplementationGate {
	return &ImplementationGate{opts: opts}
}

func (g *ImplementationGate) Phase() domain.Phase { return domain.PhaseImplementation }

var implementationTaskTypes = []domain.TaskType{
	domain.TaskImplementation,
	domain.TaskTesting,
	domain.TaskDocumentation,
}

func (g *ImplementationGate) Validate(w *domain.WorkItem) domain.GateResult {
	if w.MetadataInvalid {
		return malformedResult(g.opts)
	}
	m := w.Metadata
	var missing []string

	for _, tt := range implementationTaskTypes {
		for _, task := range m.TasksOfType(tt) {
			if task.Status != domain.TaskDone {
				missing = append(missing, fmt.Sprintf(
					"%s task %q is not complete (status %s)", tt, task.Title, task.Status))
			}
		}
	}

	if cov := m.Signals.Coverage; cov != nil && *cov < g.opts.CoverageThreshold {
		missing = append(missing, fmt.Sprintf(
			"test coverage %.2f below required %.2f", *cov, g.opts.CoverageThreshold))
	}

	return finish(g.opts, missing, scoreImplementation(m, g.opts))
}
