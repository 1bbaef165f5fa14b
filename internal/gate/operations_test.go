package gate

import (
	"testing"

	"github.com/rfontaine/stagegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releasedMetadata() domain.Metadata {
	return domain.Metadata{Release: domain.Release{
		Version:              "1.4.0",
		Deployed:             true,
		HealthCheckPassed:    true,
		RollbackPlan:         "roll back to 1.3.2 via deploy tool",
		MonitoringConfigured: true,
	}}
}

func TestOperationsGate_CompleteRelease(t *testing.T) {
	g := NewOperationsGate(DefaultOptions())
	w := &domain.WorkItem{Type: domain.TypeFeature, Metadata: releasedMetadata()}

	res := g.Validate(w)
	assert.True(t, res.Passed)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, domain.BandGreen, res.Band)
}

func TestOperationsGate_EmptyRelease(t *testing.T) {
	g := NewOperationsGate(DefaultOptions())
	w := &domain.WorkItem{Type: domain.TypeFeature}

	res := g.Validate(w)
	assert.False(t, res.Passed)
	assert.Len(t, res.MissingRequirements, 5)
	assert.Equal(t, domain.BandRed, res.Band)
}

func TestOperationsGate_HealthCheckMissing(t *testing.T) {
	g := NewOperationsGate(DefaultOptions())
	m := releasedMetadata()
	m.Release.HealthCheckPassed = false
	w := &domain.WorkItem{Type: domain.TypeFeature, Metadata: m}

	res := g.Validate(w)
	assert.False(t, res.Passed)
	require.Len(t, res.MissingRequirements, 1)
	assert.Contains(t, res.MissingRequirements[0], "health check")
}
