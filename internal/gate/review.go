package gate

import (
	"fmt"

	"github.com/rfontaine/stagegate/internal/domain"
)

// ReviewGate checks that every acceptance criterion from discovery has
// been individually verified, that a 100% test pass rate is recorded, and
// that code review and security scan approvals are in place.
type ReviewGate struct {
	opts Options
}

func NewReviewGate(opts Options) *ReviewGate {
	return &ReviewGate{opts: opts}
}

func (g *ReviewGate) Phase() domain.Phase { return domain.PhaseReview }

func (g *ReviewGate) Validate(w *domain.WorkItem) domain.GateResult {
	if w.MetadataInvalid {
		return malformedResult(g.opts)
	}
	m := w.Metadata
	var missing []string

	if len(m.AcceptanceCriteria) == 0 {
		missing = append(missing, "no acceptance criteria recorded to verify")
	}
	for i, c := range m.AcceptanceCriteria {
		if !c.Verified {
			missing = append(missing, fmt.Sprintf(
				"acceptance criterion %d not verified: %q", i+1, c.Text))
		}
	}

	switch rate := m.Signals.TestPassRate; {
	case rate == nil:
		missing = append(missing, "no recorded test pass rate")
	case *rate < 1.0:
		missing = append(missing, fmt.Sprintf(
			"test pass rate %.0f%% below required 100%%", *rate*100))
	}

	if !m.Approvals.CodeReview {
		missing = append(missing, "code review approval not recorded")
	}
	if !m.Approvals.SecurityScan {
		missing = append(missing, "security scan approval not recorded")
	}

	return finish(g.opts, missing, scoreReview(m))
}
