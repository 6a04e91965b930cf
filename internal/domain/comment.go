package domain

import "time"

// Comment is a requester-attributed entry in a ticket's thread.
type Comment struct {
	ID        int64
	TicketID  int64
	UserID    int64 // requester record, not an agent
	Body      string
	CreatedAt time.Time
}
