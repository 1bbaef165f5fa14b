package domain

import "time"

// AuditEvent records one committed phase transition.
type AuditEvent struct {
	ID         string
	WorkItemID string
	OldPhase   Phase
	NewPhase   Phase
	OldStatus  WorkItemStatus
	NewStatus  WorkItemStatus
	Confidence float64
	Band       ConfidenceBand
	CreatedAt  time.Time
}
