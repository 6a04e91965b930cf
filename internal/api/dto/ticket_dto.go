package dto

import (
	"time"

	"github.com/queueshq/queues-service/internal/domain"
	"github.com/queueshq/queues-service/internal/service"
)

// CreateTicketRequest opens a ticket on behalf of a requester. The acting
// agent comes from the token, the requester from the body.
type CreateTicketRequest struct {
	ForPlatformUserID int64  `json:"for_platform_user_id"`
	Title             string `json:"title"`
	Content           string `json:"content"`
	CategoryID        int64  `json:"category_id"`
	PriorityID        *int64 `json:"priority_id,omitempty"`
}

// Validate checks required fields.
func (r CreateTicketRequest) Validate() map[string]any {
	problems := map[string]any{}
	if r.ForPlatformUserID <= 0 {
		problems["for_platform_user_id"] = "required"
	}
	if r.Title == "" {
		problems["title"] = "required"
	}
	if r.Content == "" {
		problems["content"] = "required"
	}
	if r.CategoryID <= 0 {
		problems["category_id"] = "required"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// UpdateTicketRequest carries the updatable ticket fields. Unknown keys in
// the JSON body never reach the service; only these five are decoded.
type UpdateTicketRequest struct {
	CategoryID *int64  `json:"category_id,omitempty"`
	StatusID   *int64  `json:"status_id,omitempty"`
	PriorityID *int64  `json:"priority_id,omitempty"`
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
}

// ToInput maps the request onto the service input.
func (r UpdateTicketRequest) ToInput() service.TicketUpdateInput {
	return service.TicketUpdateInput{
		CategoryID: r.CategoryID,
		StatusID:   r.StatusID,
		PriorityID: r.PriorityID,
		Title:      r.Title,
		Content:    r.Content,
	}
}

// AddCommentRequest appends to a ticket thread.
type AddCommentRequest struct {
	Text string `json:"text"`
}

// TicketResponse is the wire shape of a ticket.
type TicketResponse struct {
	ID         int64     `json:"id"`
	UserID     *int64    `json:"user_id,omitempty"`
	AgentID    *int64    `json:"agent_id,omitempty"`
	PriorityID *int64    `json:"priority_id,omitempty"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CategoryID int64     `json:"category_id"`
	StatusID   int64     `json:"status_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:         t.ID,
		UserID:     t.UserID,
		AgentID:    t.AgentID,
		PriorityID: t.PriorityID,
		Title:      t.Title,
		Content:    t.Content,
		CategoryID: t.CategoryID,
		StatusID:   t.StatusID,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// NewTicketListResponse maps a slice of tickets.
func NewTicketListResponse(tickets []domain.Ticket) []TicketResponse {
	result := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		result = append(result, NewTicketResponse(&tickets[i]))
	}
	return result
}

// CommentResponse is the wire shape of a thread entry.
type CommentResponse struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticket_id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentListResponse maps a slice of comments.
func NewCommentListResponse(comments []domain.Comment) []CommentResponse {
	result := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		result = append(result, CommentResponse{
			ID:        c.ID,
			TicketID:  c.TicketID,
			UserID:    c.UserID,
			Text:      c.Body,
			CreatedAt: c.CreatedAt,
		})
	}
	return result
}

// HistoryEntryResponse is the wire shape of an audit entry.
type HistoryEntryResponse struct {
	ID           int64     `json:"id"`
	TicketID     int64     `json:"ticket_id"`
	FieldChanged string    `json:"field_changed"`
	OldValue     string    `json:"old_value"`
	NewValue     string    `json:"new_value"`
	ChangedBy    int64     `json:"changed_by"`
	ChangedAt    time.Time `json:"changed_at"`
}

// NewHistoryListResponse maps a slice of audit entries.
func NewHistoryListResponse(entries []domain.HistoryEntry) []HistoryEntryResponse {
	result := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, HistoryEntryResponse{
			ID:           e.ID,
			TicketID:     e.TicketID,
			FieldChanged: string(e.FieldChanged),
			OldValue:     e.OldValue,
			NewValue:     e.NewValue,
			ChangedBy:    e.ChangedBy,
			ChangedAt:    e.ChangedAt,
		})
	}
	return result
}

// CreatedResponse reports a newly created row id.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// UpdatedResponse reports how many rows an update touched.
type UpdatedResponse struct {
	Affected int64 `json:"affected"`
}

// CountsResponse maps category ids to active-ticket counts. Categories
// without active tickets are absent.
type CountsResponse struct {
	Counts map[int64]int64 `json:"counts"`
}
