package gate

import (
	"fmt"
	"unicode/utf8"

	"github.com/rfontaine/stagegate/internal/domain"
)

// DiscoveryGate checks that a work item's problem framing is complete
// enough to plan against: a business context narrative, a minimum number
// of acceptance criteria, at least one mitigated risk, and — when the
// signal is wired in — an aggregate context-confidence score above the
// configured floor.
type DiscoveryGate struct {
	opts Options
}

func NewDiscoveryGate(opts Options) *DiscoveryGate {
	return &DiscoveryGate{opts: opts}
}

func (g *DiscoveryGate) Phase() domain.Phase { return domain.PhaseDiscovery }

func (g *DiscoveryGate) Validate(w *domain.WorkItem) domain.GateResult {
	if w.MetadataInvalid {
		return malformedResult(g.opts)
	}
	m := w.Metadata
	var missing []string

	// The minimum is in characters, not bytes.
	if n := utf8.RuneCountInString(m.BusinessContext); n < g.opts.MinContextLen {
		missing = append(missing, fmt.Sprintf(
			"business context too short: need ≥%d characters, found %d",
			g.opts.MinContextLen, n))
	}
	if len(m.AcceptanceCriteria) < g.opts.MinAcceptanceCriteria {
		missing = append(missing, fmt.Sprintf(
			"need ≥%d acceptance criteria, found %d",
			g.opts.MinAcceptanceCriteria, len(m.AcceptanceCriteria)))
	}

	mitigated := false
	for _, r := range m.Risks {
		if r.Mitigation != "" {
			mitigated = true
			break
		}
	}
	if !mitigated {
		missing = append(missing, fmt.Sprintf(
			"need at least one identified risk with a mitigation note, found %d risks", len(m.Risks)))
	}

	// Optional external signal: skipped entirely when unavailable.
	if cc := m.Signals.ContextConfidence; cc != nil && *cc < g.opts.ContextConfidenceFloor {
		missing = append(missing, fmt.Sprintf(
			"context confidence %.2f below required %.2f", *cc, g.opts.ContextConfidenceFloor))
	}

	return finish(g.opts, missing, scoreDiscovery(m, g.opts))
}
