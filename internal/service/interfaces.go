package service

import (
	"context"

	"github.com/rfontaine/stagegate/internal/domain"
)

type WorkItemService interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.WorkItem, error)
	ListByPhase(ctx context.Context, phase domain.Phase) ([]*domain.WorkItem, error)
	UpdateMetadata(ctx context.Context, id string, m domain.Metadata) error
	Block(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	Reopen(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ProgressionService is the only caller-facing mutator of phase/status.
type ProgressionService interface {
	// ValidateCurrentGate is a read-only dry-run of the gate governing the
	// work item's next transition.
	ValidateCurrentGate(ctx context.Context, workItemID string) (domain.GateResult, error)

	// AdvanceToNextPhase validates the governing gate and, only on success,
	// commits the phase/status transition and emits an audit event.
	AdvanceToNextPhase(ctx context.Context, workItemID string) (*domain.PhaseTransitionResult, error)
}

type AuditService interface {
	ListByWorkItem(ctx context.Context, workItemID string) ([]*domain.AuditEvent, error)
}
