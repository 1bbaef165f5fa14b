package gate

import (
	"testing"

	"github.com/rfontaine/stagegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceFor_FullTrack(t *testing.T) {
	s := NewSequencer(DefaultOptions())
	for _, typ := range []domain.WorkItemType{
		domain.TypeFeature, domain.TypeEnhancement, domain.TypeRefactoring, domain.TypeInfrastructure,
	} {
		seq := s.SequenceFor(typ)
		assert.Equal(t, []domain.Phase{
			domain.PhaseDiscovery, domain.PhasePlan, domain.PhaseImplementation,
			domain.PhaseReview, domain.PhaseOperations, domain.PhaseEvolution,
		}, seq, "type=%s", typ)
	}
}

func TestSequenceFor_Bugfix(t *testing.T) {
	s := NewSequencer(DefaultOptions())
	assert.Equal(t, []domain.Phase{domain.PhaseImplementation, domain.PhaseReview},
		s.SequenceFor(domain.TypeBugfix))
}

func TestSequenceFor_ResearchDefaultEndsAtReview(t *testing.T) {
	s := NewSequencer(DefaultOptions())
	want := []domain.Phase{domain.PhaseDiscovery, domain.PhasePlan, domain.PhaseReview}
	assert.Equal(t, want, s.SequenceFor(domain.TypeResearch))
	assert.Equal(t, want, s.SequenceFor(domain.TypePlanning))
}

func TestSequenceFor_ResearchEndsAtPlan(t *testing.T) {
	opts := DefaultOptions()
	opts.ResearchTerminal = ResearchEndsAtPlan
	s := NewSequencer(opts)
	assert.Equal(t, []domain.Phase{domain.PhaseDiscovery, domain.PhasePlan},
		s.SequenceFor(domain.TypeResearch))
}

func TestNextPhase_FromNone(t *testing.T) {
	s := NewSequencer(DefaultOptions())

	next, err := s.NextPhase(domain.TypeFeature, domain.PhaseNone)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseDiscovery, next)

	// Bugfix enters directly at implementation, skipping discovery/plan.
	next, err = s.NextPhase(domain.TypeBugfix, domain.PhaseNone)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseImplementation, next)
}

func TestNextPhase_WalksForward(t *testing.T) {
	s := NewSequencer(DefaultOptions())
	current := domain.PhaseNone
	var walked []domain.Phase
	for {
		next, err := s.NextPhase(domain.TypeFeature, current)
		if err != nil {
			require.ErrorIs(t, err, ErrSequenceComplete)
			break
		}
		walked = append(walked, next)
		current = next
	}
	assert.Equal(t, s.SequenceFor(domain.TypeFeature), walked)
}

func TestNextPhase_Terminal(t *testing.T) {
	s := NewSequencer(DefaultOptions())
	_, err := s.NextPhase(domain.TypeBugfix, domain.PhaseReview)
	assert.ErrorIs(t, err, ErrSequenceComplete)
}

func TestNextPhase_PhaseNotInSequence(t *testing.T) {
	s := NewSequencer(DefaultOptions())
	_, err := s.NextPhase(domain.TypeBugfix, domain.PhaseDiscovery)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSequenceComplete)
}

func TestNextPhase_UnknownType(t *testing.T) {
	s := NewSequencer(DefaultOptions())
	_, err := s.NextPhase(domain.WorkItemType("chore"), domain.PhaseNone)
	require.Error(t, err)
}

func TestGateFor(t *testing.T) {
	s := NewSequencer(DefaultOptions())

	g, err := s.GateFor(domain.TypeFeature, domain.PhaseNone)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseDiscovery, g, "entry gate is the first phase's gate")

	g, err = s.GateFor(domain.TypeBugfix, domain.PhaseNone)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseImplementation, g)

	g, err = s.GateFor(domain.TypeFeature, domain.PhasePlan)
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePlan, g, "after entry the current phase's gate governs")
}

func TestIsTerminal(t *testing.T) {
	s := NewSequencer(DefaultOptions())
	assert.True(t, s.IsTerminal(domain.TypeFeature, domain.PhaseEvolution))
	assert.True(t, s.IsTerminal(domain.TypeBugfix, domain.PhaseReview))
	assert.False(t, s.IsTerminal(domain.TypeFeature, domain.PhaseReview))
	assert.False(t, s.IsTerminal(domain.TypeFeature, domain.PhaseNone))
}
