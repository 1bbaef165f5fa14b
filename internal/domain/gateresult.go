package domain

// BandThresholds holds the confidence cut points separating the three
// bands. Yellow is the lower bound of the yellow band, Green of the green
// band.
type BandThresholds struct {
	Yellow float64
	Green  float64
}

// DefaultBandThresholds is the canonical 0.50/0.70 split.
var DefaultBandThresholds = BandThresholds{Yellow: 0.50, Green: 0.70}

// BandFor classifies a confidence score.
func (t BandThresholds) BandFor(confidence float64) ConfidenceBand {
	switch {
	case confidence >= t.Green:
		return BandGreen
	case confidence >= t.Yellow:
		return BandYellow
	default:
		return BandRed
	}
}

// GateResult is the outcome of one gate validation attempt. A failed gate
// is normal data, never an error: Passed is false and MissingRequirements
// enumerates every unmet condition.
type GateResult struct {
	Passed              bool           `json:"passed"`
	MissingRequirements []string       `json:"missing_requirements,omitempty"`
	Confidence          float64        `json:"confidence"`
	Band                ConfidenceBand `json:"band"`
}

// PhaseTransitionResult wraps a GateResult with the outcome of a
// progression attempt.
type PhaseTransitionResult struct {
	Gate            GateResult
	Advanced        bool
	AlreadyComplete bool

	// Degraded is set when the phase/status commit succeeded but the audit
	// event could not be persisted.
	Degraded bool

	OldPhase  Phase
	NewPhase  Phase
	OldStatus WorkItemStatus
	NewStatus WorkItemStatus
}
