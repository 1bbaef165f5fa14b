package formatter

import (
	"testing"
	"time"

	"github.com/rfontaine/stagegate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatGateResult_Failed(t *testing.T) {
	out := FormatGateResult(domain.PhaseDiscovery, domain.GateResult{
		Passed:              false,
		MissingRequirements: []string{"business context too short", "need ≥3 acceptance criteria"},
		Confidence:          0.24,
		Band:                domain.BandRed,
	})

	assert.Contains(t, out, "NOT READY")
	assert.Contains(t, out, "business context too short")
	assert.Contains(t, out, "0.24")
	assert.Contains(t, out, "RED")
}

func TestFormatGateResult_Passed(t *testing.T) {
	out := FormatGateResult(domain.PhaseDiscovery, domain.GateResult{
		Passed:     true,
		Confidence: 0.85,
		Band:       domain.BandGreen,
	})

	assert.Contains(t, out, "READY")
	assert.NotContains(t, out, "MISSING")
	assert.Contains(t, out, "GREEN")
}

func TestFormatTransition_Advanced(t *testing.T) {
	out := FormatTransition(&domain.PhaseTransitionResult{
		Gate:      domain.GateResult{Passed: true, Confidence: 0.85, Band: domain.BandGreen},
		Advanced:  true,
		OldPhase:  domain.PhaseNone,
		NewPhase:  domain.PhaseDiscovery,
		NewStatus: domain.StatusReady,
	})

	assert.Contains(t, out, "ADVANCED")
	assert.Contains(t, out, "Discovery")
	assert.NotContains(t, out, "audit trail")
}

func TestFormatTransition_Degraded(t *testing.T) {
	out := FormatTransition(&domain.PhaseTransitionResult{
		Gate:      domain.GateResult{Passed: true, Confidence: 0.85, Band: domain.BandGreen},
		Advanced:  true,
		Degraded:  true,
		OldPhase:  domain.PhaseNone,
		NewPhase:  domain.PhaseDiscovery,
		NewStatus: domain.StatusReady,
	})

	assert.Contains(t, out, "audit trail write failed")
}

func TestFormatTransition_Held(t *testing.T) {
	out := FormatTransition(&domain.PhaseTransitionResult{
		Gate: domain.GateResult{
			Passed:              false,
			MissingRequirements: []string{"code review approval missing"},
			Confidence:          0.40,
			Band:                domain.BandRed,
		},
		OldPhase: domain.PhaseReview,
	})

	assert.Contains(t, out, "HELD")
	assert.Contains(t, out, "code review approval missing")
}

func TestFormatAuditTrail(t *testing.T) {
	out := FormatAuditTrail([]*domain.AuditEvent{
		{
			OldPhase:   domain.PhaseNone,
			NewPhase:   domain.PhaseDiscovery,
			Confidence: 0.85,
			Band:       domain.BandGreen,
			CreatedAt:  time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
		},
	})

	assert.Contains(t, out, "2026-02-10 12:00")
	assert.Contains(t, out, "Discovery")
}

func TestFormatAuditTrail_Empty(t *testing.T) {
	assert.Contains(t, FormatAuditTrail(nil), "No phase transitions")
}
