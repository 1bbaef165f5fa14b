package gate

import "github.com/rfontaine/stagegate/internal/domain"

// EvolutionGate checks the post-release learning loop: a telemetry
// analysis, collected user feedback, and at least one derived improvement
// proposal.
type EvolutionGate struct {
	opts Options
}

func NewEvolutionGate(opts Options) *EvolutionGate {
	return &EvolutionGate{opts: opts}
}

func (g *EvolutionGate) Phase() domain.Phase { return domain.PhaseEvolution }

func (g *EvolutionGate) Validate(w *domain.WorkItem) domain.GateResult {
	if w.MetadataInvalid {
		return malformedResult(g.opts)
	}
	evo := w.Metadata.Evolution
	var missing []string

	if evo.TelemetryAnalysis == "" {
		missing = append(missing, "no telemetry analysis recorded")
	}
	if len(evo.UserFeedback) == 0 {
		missing = append(missing, "no user feedback collected")
	}
	if len(evo.Improvements) == 0 {
		missing = append(missing, "need at least one derived improvement proposal, found 0")
	}

	return finish(g.opts, missing, scoreEvolution(w.Metadata))
}
