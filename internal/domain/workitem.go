package domain

import (
	"fmt"
	"time"
)

type WorkItem struct {
	ID       string
	Title    string
	Type     WorkItemType
	Phase    Phase
	Status   WorkItemStatus
	Metadata Metadata

	// MetadataInvalid is set when the stored metadata document could not be
	// decoded. Validators report it as a gate deficiency instead of the
	// repository failing the load.
	MetadataInvalid bool

	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Block suspends progression. Only non-terminal, non-exceptional items can
// be blocked.
func (w *WorkItem) Block(now time.Time) error {
	if IsExceptionalStatus(w.Status) {
		return fmt.Errorf("cannot block work item in status %q", w.Status)
	}
	w.Status = StatusBlocked
	w.UpdatedAt = now
	return nil
}

// Cancel terminates the work item without completing its sequence.
func (w *WorkItem) Cancel(now time.Time) error {
	if w.Status == StatusArchived {
		return fmt.Errorf("cannot cancel archived work item")
	}
	w.Status = StatusCancelled
	w.UpdatedAt = now
	return nil
}

// Archive is the terminal, out-of-band transition.
func (w *WorkItem) Archive(now time.Time) error {
	if w.Status == StatusArchived {
		return nil
	}
	w.Status = StatusArchived
	w.ArchivedAt = &now
	w.UpdatedAt = now
	return nil
}

// Reopen clears a blocked or cancelled status and restores the
// phase-derived one. Archival is terminal and cannot be reopened.
func (w *WorkItem) Reopen(now time.Time) error {
	if w.Status == StatusArchived {
		return fmt.Errorf("cannot reopen archived work item")
	}
	if !IsExceptionalStatus(w.Status) {
		return fmt.Errorf("work item is not in an exceptional status (status %q)", w.Status)
	}
	w.Status = StatusForPhase(w.Phase)
	w.UpdatedAt = now
	return nil
}

// Progressable reports whether phase-driven progression may run.
func (w *WorkItem) Progressable() bool {
	return !IsExceptionalStatus(w.Status)
}
