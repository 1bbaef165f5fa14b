package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rfontaine/stagegate/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// StatusPill returns a colored status indicator for work item status.
func StatusPill(status domain.WorkItemStatus) string {
	switch status {
	case domain.StatusDraft:
		return StyleDim.Render("○ Draft")
	case domain.StatusReady:
		return StyleBlue.Render("○ Ready")
	case domain.StatusActive:
		return StyleGreen.Render("● Active")
	case domain.StatusInReview:
		return StylePurple.Render("● In Review")
	case domain.StatusDone:
		return StyleDim.Render("✔ Done")
	case domain.StatusBlocked:
		return StyleRed.Render("▲ Blocked")
	case domain.StatusCancelled:
		return StyleDim.Render("⊘ Cancelled")
	case domain.StatusArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// PhaseBadge returns a capitalized, blue-styled phase label.
func PhaseBadge(p domain.Phase) string {
	if p == domain.PhaseNone {
		return StyleDim.Render("--")
	}
	label := string(p)
	label = strings.ToUpper(label[:1]) + label[1:]
	return StyleBlue.Render(label)
}

// TypeBadge returns a capitalized, purple-styled type label.
func TypeBadge(t domain.WorkItemType) string {
	if t == "" {
		return StyleDim.Render("--")
	}
	label := string(t)
	label = strings.ToUpper(label[:1]) + label[1:]
	return StylePurple.Render(label)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}
