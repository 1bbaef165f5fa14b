package testutil

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rfontaine/stagegate/internal/domain"
)

var fixtureNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

// WorkItemOption mutates a fixture work item.
type WorkItemOption func(*domain.WorkItem)

// NewTestWorkItem builds a work item with sensible defaults for tests.
func NewTestWorkItem(title string, opts ...WorkItemOption) *domain.WorkItem {
	w := &domain.WorkItem{
		ID:        uuid.New().String(),
		Title:     title,
		Type:      domain.TypeFeature,
		Phase:     domain.PhaseNone,
		Status:    domain.StatusDraft,
		CreatedAt: fixtureNow,
		UpdatedAt: fixtureNow,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WithType sets the work item type.
func WithType(t domain.WorkItemType) WorkItemOption {
	return func(w *domain.WorkItem) { w.Type = t }
}

// WithPhase sets phase and the matching phase-derived status.
func WithPhase(p domain.Phase) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Phase = p
		w.Status = domain.StatusForPhase(p)
	}
}

// WithMetadata replaces the metadata record.
func WithMetadata(m domain.Metadata) WorkItemOption {
	return func(w *domain.WorkItem) { w.Metadata = m }
}

// DiscoveryReadyMetadata satisfies the discovery gate with default options.
func DiscoveryReadyMetadata() domain.Metadata {
	return domain.Metadata{
		BusinessContext: strings.Repeat("reset flow context ", 4),
		AcceptanceCriteria: []domain.AcceptanceCriterion{
			{Text: "user can request a reset link"},
			{Text: "reset link expires after one hour"},
			{Text: "every reset is audit-logged"},
		},
		Risks: []domain.Risk{
			{Description: "email deliverability", Mitigation: "retry with backoff"},
		},
	}
}
