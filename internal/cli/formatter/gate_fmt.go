package formatter

import (
	"fmt"
	"strings"

	"github.com/rfontaine/stagegate/internal/domain"
)

// FormatGateResult renders a gate validation outcome for terminal display.
func FormatGateResult(phase domain.Phase, result domain.GateResult) string {
	var b strings.Builder

	verdict := StyleRed.Render("✖ NOT READY")
	if result.Passed {
		verdict = StyleGreen.Render("✔ READY")
	}
	b.WriteString(fmt.Sprintf("%s  %s\n\n", PhaseBadge(phase), verdict))
	b.WriteString(fmt.Sprintf("  %s  %.2f %s\n", Dim("CONFIDENCE"), result.Confidence, BandIndicator(result.Band)))

	if len(result.MissingRequirements) > 0 {
		b.WriteString(fmt.Sprintf("\n  %s\n", Dim("MISSING")))
		for _, req := range result.MissingRequirements {
			b.WriteString(fmt.Sprintf("    %s %s\n", StyleRed.Render("·"), req))
		}
	}

	return RenderBox("Gate Check", b.String())
}

// FormatTransition renders the outcome of an advancement attempt.
func FormatTransition(result *domain.PhaseTransitionResult) string {
	var b strings.Builder

	switch {
	case result.AlreadyComplete:
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("✔"),
			"sequence already complete at "+string(result.OldPhase)))
	case result.Advanced:
		b.WriteString(fmt.Sprintf("%s  %s %s %s\n",
			StyleGreen.Render("✔ ADVANCED"),
			PhaseBadge(result.OldPhase), Dim("→"), PhaseBadge(result.NewPhase)))
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("STATUS    "), StatusPill(result.NewStatus)))
		b.WriteString(fmt.Sprintf("  %s  %.2f %s\n", Dim("CONFIDENCE"),
			result.Gate.Confidence, BandIndicator(result.Gate.Band)))
		if result.Degraded {
			b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("WARNING   "),
				StyleYellow.Render("audit trail write failed; transition committed")))
		}
	default:
		b.WriteString(fmt.Sprintf("%s  remains at %s\n\n",
			StyleRed.Render("✖ HELD"), PhaseBadge(result.OldPhase)))
		b.WriteString(fmt.Sprintf("  %s  %.2f %s\n", Dim("CONFIDENCE"),
			result.Gate.Confidence, BandIndicator(result.Gate.Band)))
		for _, req := range result.Gate.MissingRequirements {
			b.WriteString(fmt.Sprintf("    %s %s\n", StyleRed.Render("·"), req))
		}
	}

	return RenderBox("Phase Advance", b.String())
}

// FormatWorkItemRow renders one work item as a list row.
func FormatWorkItemRow(w *domain.WorkItem) string {
	return fmt.Sprintf("%s  %s  %s  %s  %s",
		TruncID(w.ID), StatusPill(w.Status), PhaseBadge(w.Phase), TypeBadge(w.Type), Bold(w.Title))
}

// FormatAuditTrail renders the phase transition history of a work item.
func FormatAuditTrail(events []*domain.AuditEvent) string {
	if len(events) == 0 {
		return Dim("No phase transitions recorded.") + "\n"
	}

	var b strings.Builder
	for _, e := range events {
		b.WriteString(fmt.Sprintf("%s  %s %s %s  %s %.2f %s\n",
			Dim(e.CreatedAt.Format("2006-01-02 15:04")),
			PhaseBadge(e.OldPhase), Dim("→"), PhaseBadge(e.NewPhase),
			Dim("confidence"), e.Confidence, BandIndicator(e.Band)))
	}
	return b.String()
}
