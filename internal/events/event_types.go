package events

import (
	"time"

	"github.com/queueshq/queues-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketUpdated   EventType = "ticket_updated"
	EventTicketCommented EventType = "ticket_commented"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	AgentID   *int64      `json:"agent_id,omitempty"`
	UserID    *int64      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	CategoryID int64  `json:"category_id"`
	PriorityID *int64 `json:"priority_id,omitempty"`
	Title      string `json:"title"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	Fields []domain.TicketField `json:"fields"`
}

// TicketCommentedPayload payload.
type TicketCommentedPayload struct {
	CommentID int64 `json:"comment_id"`
}
