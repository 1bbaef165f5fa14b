package repository

import (
	"context"
	"time"

	"github.com/rfontaine/stagegate/internal/domain"
)

type WorkItemRepo interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.WorkItem, error)
	ListByPhase(ctx context.Context, phase domain.Phase) ([]*domain.WorkItem, error)
	Update(ctx context.Context, w *domain.WorkItem) error

	// UpdatePhaseStatus commits a phase transition guarded by the phase the
	// caller observed. It returns ErrConflict when the stored phase has
	// moved on since, and ErrNotFound when the item does not exist.
	UpdatePhaseStatus(ctx context.Context, id string, fromPhase, toPhase domain.Phase, status domain.WorkItemStatus, updatedAt time.Time) error

	Delete(ctx context.Context, id string) error
}

type AuditEventRepo interface {
	Create(ctx context.Context, e *domain.AuditEvent) error
	ListByWorkItem(ctx context.Context, workItemID string) ([]*domain.AuditEvent, error)
}
