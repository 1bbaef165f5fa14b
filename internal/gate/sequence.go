package gate

import (
	"errors"
	"fmt"

	"github.com/rfontaine/stagegate/internal/domain"
)

// ErrSequenceComplete is returned by NextPhase when the current phase is
// already the last in the type's sequence.
var ErrSequenceComplete = errors.New("phase sequence complete")

// fullSequence is the canonical lifecycle. Shortened sequences are encoded
// as explicit per-type substitutions, not conditionals inside validators.
var fullSequence = []domain.Phase{
	domain.PhaseDiscovery,
	domain.PhasePlan,
	domain.PhaseImplementation,
	domain.PhaseReview,
	domain.PhaseOperations,
	domain.PhaseEvolution,
}

// Sequencer answers sequence-navigation queries per work item type. Its
// tables are built once and are immutable, safe for unsynchronized
// concurrent reads.
type Sequencer struct {
	sequences map[domain.WorkItemType][]domain.Phase
}

// NewSequencer builds the per-type phase tables. The research/planning
// track terminates at plan or review depending on opts.ResearchTerminal.
func NewSequencer(opts Options) *Sequencer {
	research := []domain.Phase{domain.PhaseDiscovery, domain.PhasePlan}
	if opts.ResearchTerminal == ResearchEndsAtReview {
		research = append(research, domain.PhaseReview)
	}

	return &Sequencer{sequences: map[domain.WorkItemType][]domain.Phase{
		domain.TypeFeature:        fullSequence,
		domain.TypeEnhancement:    fullSequence,
		domain.TypeRefactoring:    fullSequence,
		domain.TypeInfrastructure: fullSequence,
		domain.TypeBugfix:         {domain.PhaseImplementation, domain.PhaseReview},
		domain.TypeResearch:       research,
		domain.TypePlanning:       research,
	}}
}

// SequenceFor returns the ordered phase list for the given type.
func (s *Sequencer) SequenceFor(t domain.WorkItemType) []domain.Phase {
	seq := s.sequences[t]
	out := make([]domain.Phase, len(seq))
	copy(out, seq)
	return out
}

// NextPhase returns the phase immediately following current in the type's
// sequence. From PhaseNone it returns the sequence's first phase. It
// returns ErrSequenceComplete at the terminal phase.
func (s *Sequencer) NextPhase(t domain.WorkItemType, current domain.Phase) (domain.Phase, error) {
	seq, ok := s.sequences[t]
	if !ok {
		return domain.PhaseNone, fmt.Errorf("unknown work item type %q", t)
	}
	if current == domain.PhaseNone {
		return seq[0], nil
	}
	for i, p := range seq {
		if p == current {
			if i == len(seq)-1 {
				return domain.PhaseNone, ErrSequenceComplete
			}
			return seq[i+1], nil
		}
	}
	return domain.PhaseNone, fmt.Errorf("phase %q is not in the sequence for type %q", current, t)
}

// GateFor returns the phase whose gate governs progression from current.
// A work item still at PhaseNone is validated against the gate of the
// first phase in its sequence; afterwards the current phase's own gate
// governs the exit.
func (s *Sequencer) GateFor(t domain.WorkItemType, current domain.Phase) (domain.Phase, error) {
	seq, ok := s.sequences[t]
	if !ok {
		return domain.PhaseNone, fmt.Errorf("unknown work item type %q", t)
	}
	if current == domain.PhaseNone {
		return seq[0], nil
	}
	for _, p := range seq {
		if p == current {
			return current, nil
		}
	}
	return domain.PhaseNone, fmt.Errorf("phase %q is not in the sequence for type %q", current, t)
}

// IsTerminal reports whether current is the last phase in the type's
// sequence.
func (s *Sequencer) IsTerminal(t domain.WorkItemType, current domain.Phase) bool {
	seq, ok := s.sequences[t]
	if !ok || len(seq) == 0 {
		return false
	}
	return current == seq[len(seq)-1]
}
