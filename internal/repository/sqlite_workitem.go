package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rfontaine/stagegate/internal/db"
	"github.com/rfontaine/stagegate/internal/domain"
)

// workItemColumns is the canonical SELECT column list for work_items.
const workItemColumns = `id, title, type, phase, status, metadata, archived_at, created_at, updated_at`

// SQLiteWorkItemRepo implements WorkItemRepo using a SQLite database.
type SQLiteWorkItemRepo struct {
	db db.DBTX
}

// NewSQLiteWorkItemRepo creates a new SQLiteWorkItemRepo. Pass a *sql.Tx
// obtained from a UnitOfWork for transaction-scoped access.
func NewSQLiteWorkItemRepo(db db.DBTX) *SQLiteWorkItemRepo {
	return &SQLiteWorkItemRepo{db: db}
}

func (r *SQLiteWorkItemRepo) Create(ctx context.Context, w *domain.WorkItem) error {
	raw, err := domain.EncodeMetadata(w.Metadata)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	query := `INSERT INTO work_items (id, title, type, phase, status, metadata, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		w.ID,
		w.Title,
		string(w.Type),
		string(w.Phase),
		string(w.Status),
		string(raw),
		nullableTimeToString(w.ArchivedAt, time.RFC3339),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work item: %w", err)
	}
	return nil
}

func (r *SQLiteWorkItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanWorkItem(row)
}

func (r *SQLiteWorkItemRepo) List(ctx context.Context, includeArchived bool) ([]*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items ORDER BY created_at`
	if !includeArchived {
		query = `SELECT ` + workItemColumns + ` FROM work_items WHERE status != 'archived' ORDER BY created_at`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing work items: %w", err)
	}
	defer rows.Close()
	return r.scanWorkItems(rows)
}

func (r *SQLiteWorkItemRepo) ListByPhase(ctx context.Context, phase domain.Phase) ([]*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items
		WHERE phase = ? AND status NOT IN ('archived', 'cancelled')
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, string(phase))
	if err != nil {
		return nil, fmt.Errorf("listing work items by phase: %w", err)
	}
	defer rows.Close()
	return r.scanWorkItems(rows)
}

func (r *SQLiteWorkItemRepo) Update(ctx context.Context, w *domain.WorkItem) error {
	// An item loaded with a malformed document carries a zero-valued
	// Metadata; re-encoding that over the stored column would erase the only
	// copy of the evidence. Leave the column untouched until a caller
	// explicitly replaces the document and clears the flag.
	query := `UPDATE work_items SET title = ?, type = ?, phase = ?, status = ?, metadata = ?,
		archived_at = ?, updated_at = ?
		WHERE id = ?`
	args := []any{
		w.Title,
		string(w.Type),
		string(w.Phase),
		string(w.Status),
	}
	if w.MetadataInvalid {
		query = `UPDATE work_items SET title = ?, type = ?, phase = ?, status = ?,
			archived_at = ?, updated_at = ?
			WHERE id = ?`
	} else {
		raw, err := domain.EncodeMetadata(w.Metadata)
		if err != nil {
			return fmt.Errorf("encoding metadata: %w", err)
		}
		args = append(args, string(raw))
	}
	args = append(args,
		nullableTimeToString(w.ArchivedAt, time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating work item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating work item: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("work item: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteWorkItemRepo) UpdatePhaseStatus(ctx context.Context, id string, fromPhase, toPhase domain.Phase, status domain.WorkItemStatus, updatedAt time.Time) error {
	query := `UPDATE work_items SET phase = ?, status = ?, updated_at = ?
		WHERE id = ? AND phase = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(toPhase),
		string(status),
		updatedAt.Format(time.RFC3339),
		id,
		string(fromPhase),
	)
	if err != nil {
		return fmt.Errorf("committing phase transition: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("committing phase transition: %w", err)
	}
	if affected == 1 {
		return nil
	}

	// Nothing updated: distinguish a vanished row from a concurrent move.
	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM work_items WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking work item existence: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("work item: %w", ErrNotFound)
	}
	return fmt.Errorf("work item %s phase moved past %q: %w", id, fromPhase, ErrConflict)
}

func (r *SQLiteWorkItemRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM work_items WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting work item: %w", err)
	}
	return nil
}

// scanWorkItem scans a single work item from a *sql.Row.
func (r *SQLiteWorkItemRepo) scanWorkItem(row *sql.Row) (*domain.WorkItem, error) {
	var w domain.WorkItem
	var typeStr, phaseStr, statusStr, metadataStr string
	var archivedAtStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(&w.ID, &w.Title, &typeStr, &phaseStr, &statusStr, &metadataStr,
		&archivedAtStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work item: %w", err)
	}

	return r.populateWorkItem(&w, typeStr, phaseStr, statusStr, metadataStr,
		archivedAtStr, createdAtStr, updatedAtStr)
}

// scanWorkItems scans multiple work items from *sql.Rows.
func (r *SQLiteWorkItemRepo) scanWorkItems(rows *sql.Rows) ([]*domain.WorkItem, error) {
	var items []*domain.WorkItem
	for rows.Next() {
		var w domain.WorkItem
		var typeStr, phaseStr, statusStr, metadataStr string
		var archivedAtStr sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(&w.ID, &w.Title, &typeStr, &phaseStr, &statusStr, &metadataStr,
			&archivedAtStr, &createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning work item row: %w", err)
		}

		item, err := r.populateWorkItem(&w, typeStr, phaseStr, statusStr, metadataStr,
			archivedAtStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	return items, nil
}

// populateWorkItem fills in parsed fields on a WorkItem after scanning raw
// values. A metadata document that fails to decode flags the item instead
// of failing the load, so gates can report it as a deficiency.
func (r *SQLiteWorkItemRepo) populateWorkItem(
	w *domain.WorkItem,
	typeStr, phaseStr, statusStr, metadataStr string,
	archivedAtStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.WorkItem, error) {
	w.Type = domain.WorkItemType(typeStr)
	w.Phase = domain.Phase(phaseStr)
	w.Status = domain.WorkItemStatus(statusStr)
	w.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)

	meta, err := domain.ParseMetadata([]byte(metadataStr))
	if err != nil {
		w.MetadataInvalid = true
	} else {
		w.Metadata = meta
	}

	var parseErr error
	w.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	w.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return w, nil
}
