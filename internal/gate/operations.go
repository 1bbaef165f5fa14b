package gate

import "github.com/rfontaine/stagegate/internal/domain"

// OperationsGate checks the release evidence: a version bump, a successful
// deployment, a passing health check, and rollback/monitoring records.
type OperationsGate struct {
	opts Options
}

func NewOperationsGate(opts Options) *OperationsGate {
	return &OperationsGate{opts: opts}
}

func (g *OperationsGate) Phase() domain.Phase { return domain.PhaseOperations }

func (g *OperationsGate) Validate(w *domain.WorkItem) domain.GateResult {
	if w.MetadataInvalid {
		return malformedResult(g.opts)
	}
	rel := w.Metadata.Release
	var missing []string

	if rel.Version == "" {
		missing = append(missing, "no version bump recorded")
	}
	if !rel.Deployed {
		missing = append(missing, "no successful deployment recorded")
	}
	if !rel.HealthCheckPassed {
		missing = append(missing, "no passing health check recorded")
	}
	if rel.RollbackPlan == "" {
		missing = append(missing, "no rollback plan recorded")
	}
	if !rel.MonitoringConfigured {
		missing = append(missing, "monitoring configuration not recorded")
	}

	return finish(g.opts, missing, scoreOperations(w.Metadata))
}
