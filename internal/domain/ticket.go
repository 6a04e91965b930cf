package domain

import "time"

// Reserved status ids. These mirror the seeded taxonomy rows and are a
// fixed convention carried over from existing installations: status 1 marks
// a freshly opened ticket, status 3 marks a ticket that no longer counts as
// active. Statuses beyond these are admin-managed rows.
const (
	StatusOpen   int64 = 1
	StatusClosed int64 = 3
)

// Ticket is the core support-request entity.
type Ticket struct {
	ID         int64
	UserID     *int64 // requester; nulled when the user record is removed
	AgentID    *int64 // opening agent; nulled when the agent record is removed
	PriorityID *int64
	Title      string
	Content    string
	CategoryID int64
	StatusID   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Active reports whether the ticket counts toward active-ticket totals.
func (t *Ticket) Active() bool {
	return t.StatusID != StatusClosed
}
