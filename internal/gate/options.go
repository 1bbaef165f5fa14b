package gate

import "github.com/rfontaine/stagegate/internal/domain"

// ResearchTerminal selects where the research/planning track ends.
type ResearchTerminal string

const (
	ResearchEndsAtPlan   ResearchTerminal = "plan"
	ResearchEndsAtReview ResearchTerminal = "review"
)

// Options carries every tunable threshold the gates and the sequencer use.
// All values have working defaults; deployments override them via the
// config file.
type Options struct {
	Thresholds domain.BandThresholds

	// Discovery gate.
	MinContextLen          int
	MinAcceptanceCriteria  int
	ContextConfidenceFloor float64

	// Plan gate: hard ceiling on a single implementation task's estimate.
	MaxImplementationTaskMin int

	// Implementation gate: required coverage when a coverage signal is
	// available. The sub-check is skipped when the signal is absent.
	CoverageThreshold float64

	// Research/planning track terminal phase.
	ResearchTerminal ResearchTerminal
}

// DefaultOptions returns the canonical thresholds.
func DefaultOptions() Options {
	return Options{
		Thresholds:               domain.DefaultBandThresholds,
		MinContextLen:            50,
		MinAcceptanceCriteria:    3,
		ContextConfidenceFloor:   0.70,
		MaxImplementationTaskMin: 480,
		CoverageThreshold:        0.80,
		ResearchTerminal:         ResearchEndsAtReview,
	}
}
