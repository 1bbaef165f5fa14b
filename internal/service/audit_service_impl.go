package service

import (
	"context"

	"github.com/rfontaine/stagegate/internal/domain"
	"github.com/rfontaine/stagegate/internal/repository"
)

type auditService struct {
	events repository.AuditEventRepo
}

// NewAuditService creates the audit trail read service.
func NewAuditService(events repository.AuditEventRepo) AuditService {
	return &auditService{events: events}
}

func (s *auditService) ListByWorkItem(ctx context.Context, workItemID string) ([]*domain.AuditEvent, error) {
	return s.events.ListByWorkItem(ctx, workItemID)
}
