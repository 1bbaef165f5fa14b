package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rfontaine/stagegate/internal/db"
	"github.com/rfontaine/stagegate/internal/domain"
)

// SQLiteAuditEventRepo implements AuditEventRepo using a SQLite database.
type SQLiteAuditEventRepo struct {
	db db.DBTX
}

// NewSQLiteAuditEventRepo creates a new SQLiteAuditEventRepo.
func NewSQLiteAuditEventRepo(db db.DBTX) *SQLiteAuditEventRepo {
	return &SQLiteAuditEventRepo{db: db}
}

func (r *SQLiteAuditEventRepo) Create(ctx context.Context, e *domain.AuditEvent) error {
	query := `INSERT INTO audit_events (id, work_item_id, old_phase, new_phase, old_status, new_status, confidence, band, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.WorkItemID,
		string(e.OldPhase),
		string(e.NewPhase),
		string(e.OldStatus),
		string(e.NewStatus),
		e.Confidence,
		string(e.Band),
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting audit event: %w", err)
	}
	return nil
}

func (r *SQLiteAuditEventRepo) ListByWorkItem(ctx context.Context, workItemID string) ([]*domain.AuditEvent, error) {
	query := `SELECT id, work_item_id, old_phase, new_phase, old_status, new_status, confidence, band, created_at
		FROM audit_events WHERE work_item_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, workItemID)
	if err != nil {
		return nil, fmt.Errorf("listing audit events: %w", err)
	}
	defer rows.Close()

	var events []*domain.AuditEvent
	for rows.Next() {
		var e domain.AuditEvent
		var oldPhase, newPhase, oldStatus, newStatus, band, createdAtStr string
		if err := rows.Scan(&e.ID, &e.WorkItemID, &oldPhase, &newPhase, &oldStatus, &newStatus,
			&e.Confidence, &band, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning audit event: %w", err)
		}
		e.OldPhase = domain.Phase(oldPhase)
		e.NewPhase = domain.Phase(newPhase)
		e.OldStatus = domain.WorkItemStatus(oldStatus)
		e.NewStatus = domain.WorkItemStatus(newStatus)
		e.Band = domain.ConfidenceBand(band)
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit events: %w", err)
	}
	return events, nil
}
