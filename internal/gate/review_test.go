package gate

import (
	"testing"

	"github.com/rfontaine/stagegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewReadyMetadata() domain.Metadata {
	m := domain.Metadata{
		AcceptanceCriteria: []domain.AcceptanceCriterion{
			{Text: "user can request a reset link", Verified: true},
			{Text: "reset link expires after one hour", Verified: true},
		},
		Approvals: domain.Approvals{CodeReview: true, SecurityScan: true},
	}
	m.Signals.TestPassRate = fptr(1.0)
	return m
}

func TestReviewGate_AllChecksPass(t *testing.T) {
	g := NewReviewGate(DefaultOptions())
	w := &domain.WorkItem{Type: domain.TypeFeature, Metadata: reviewReadyMetadata()}

	res := g.Validate(w)
	assert.True(t, res.Passed)
	assert.Equal(t, domain.BandGreen, res.Band)
}

func TestReviewGate_UnverifiedCriterion(t *testing.T) {
	g := NewReviewGate(DefaultOptions())
	m := reviewReadyMetadata()
	m.AcceptanceCriteria[1].Verified = false
	w := &domain.WorkItem{Type: domain.TypeFeature, Metadata: m}

	res := g.Validate(w)
	assert.False(t, res.Passed)
	require.Len(t, res.MissingRequirements, 1)
	assert.Contains(t, res.MissingRequirements[0], "acceptance criterion 2 not verified")
}

func TestReviewGate_NoCriteriaAtAll(t *testing.T) {
	g := NewReviewGate(DefaultOptions())
	m := reviewReadyMetadata()
	m.AcceptanceCriteria = nil
	w := &domain.WorkItem{Type: domain.TypeFeature, Metadata: m}

	res := g.Validate(w)
	assert.False(t, res.Passed)
	assert.Contains(t, res.MissingRequirements[0], "no acceptance criteria recorded")
}

func TestReviewGate_TestPassRate(t *testing.T) {
	g := NewReviewGate(DefaultOptions())

	m := reviewReadyMetadata()
	m.Signals.TestPassRate = nil
	res := g.Validate(&domain.WorkItem{Metadata: m})
	assert.False(t, res.Passed)
	assert.Contains(t, res.MissingRequirements[0], "no recorded test pass rate")

	m = reviewReadyMetadata()
	m.Signals.TestPassRate = fptr(0.97)
	res = g.Validate(&domain.WorkItem{Metadata: m})
	assert.False(t, res.Passed)
	assert.Contains(t, res.MissingRequirements[0], "test pass rate 97% below required 100%")
}

func TestReviewGate_MissingApprovals(t *testing.T) {
	g := NewReviewGate(DefaultOptions())
	m := reviewReadyMetadata()
	m.Approvals = domain.Approvals{}
	w := &domain.WorkItem{Type: domain.TypeFeature, Metadata: m}

	res := g.Validate(w)
	assert.False(t, res.Passed)
	require.Len(t, res.MissingRequirements, 2)
	assert.Contains(t, res.MissingRequirements[0], "code review approval not recorded")
	assert.Contains(t, res.MissingRequirements[1], "security scan approval not recorded")
}
