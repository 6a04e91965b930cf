package domain

import "time"

// TicketField names a mutable ticket attribute tracked in the audit trail.
type TicketField string

const (
	FieldCategory TicketField = "category"
	FieldStatus   TicketField = "status"
	FieldPriority TicketField = "priority"
	FieldTitle    TicketField = "title"
	FieldContent  TicketField = "content"
)

// HistoryEntry is an append-only audit record of one field change on one
// ticket. Entries are never mutated; they disappear only when the owning
// ticket is deleted.
type HistoryEntry struct {
	ID           int64
	TicketID     int64
	FieldChanged TicketField
	OldValue     string
	NewValue     string
	ChangedBy    int64 // agent id
	ChangedAt    time.Time
}
