package gate

import (
	"testing"

	"github.com/rfontaine/stagegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evolvedMetadata() domain.Metadata {
	return domain.Metadata{Evolution: domain.Evolution{
		TelemetryAnalysis: "reset completion rate 94%, p95 latency 310ms",
		UserFeedback:      []string{"link expiry window feels short"},
		Improvements:      []string{"extend expiry to 2h for mobile clients"},
	}}
}

func TestEvolutionGate_Complete(t *testing.T) {
	g := NewEvolutionGate(DefaultOptions())
	w := &domain.WorkItem{Type: domain.TypeFeature, Metadata: evolvedMetadata()}

	res := g.Validate(w)
	assert.True(t, res.Passed)
	assert.Equal(t, domain.BandGreen, res.Band)
}

func TestEvolutionGate_Empty(t *testing.T) {
	g := NewEvolutionGate(DefaultOptions())
	w := &domain.WorkItem{Type: domain.TypeFeature}

	res := g.Validate(w)
	assert.False(t, res.Passed)
	assert.Len(t, res.MissingRequirements, 3)
}

func TestEvolutionGate_NoImprovements(t *testing.T) {
	g := NewEvolutionGate(DefaultOptions())
	m := evolvedMetadata()
	m.Evolution.Improvements = nil
	w := &domain.WorkItem{Type: domain.TypeFeature, Metadata: m}

	res := g.Validate(w)
	assert.False(t, res.Passed)
	require.Len(t, res.MissingRequirements, 1)
	assert.Contains(t, res.MissingRequirements[0], "improvement proposal")
}
