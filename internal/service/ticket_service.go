package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/queueshq/queues-service/internal/cache"
	"github.com/queueshq/queues-service/internal/domain"
	"github.com/queueshq/queues-service/internal/events"
	"github.com/queueshq/queues-service/internal/repository"
)

// TicketService owns the ticket lifecycle: creation, audited field updates,
// the comment thread and history retrieval. Acting identities are always
// passed in explicitly as platform user ids and resolved through the
// identity mapper; nothing here reads ambient "current user" state.
type TicketService struct {
	identity   *IdentityService
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	history    repository.HistoryRepository
	agents     repository.AgentRepository
	counts     *cache.TicketCounts
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	Identity    *IdentityService
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	HistoryRepo repository.HistoryRepository
	AgentRepo   repository.AgentRepository
	Counts      *cache.TicketCounts
	Dispatcher  events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title      string
	Content    string
	CategoryID int64
	PriorityID *int64
}

// TicketUpdateInput carries the updatable ticket fields. Only these five
// are ever applied; anything else a client sends is discarded before it
// gets here. Nil means "not supplied" and a supplied field is written (and
// audited) even when it matches the current value.
type TicketUpdateInput struct {
	CategoryID *int64
	StatusID   *int64
	PriorityID *int64
	Title      *string
	Content    *string
}

// Empty reports whether no updatable field was supplied.
func (in TicketUpdateInput) Empty() bool {
	return in.CategoryID == nil && in.StatusID == nil && in.PriorityID == nil &&
		in.Title == nil && in.Content == nil
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		identity:   deps.Identity,
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		history:    deps.HistoryRepo,
		agents:     deps.AgentRepo,
		counts:     deps.Counts,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket opens a ticket on behalf of a requester. The status is
// always the initial open value and the first audit entry records the
// transition into it.
func (s *TicketService) CreateTicket(ctx context.Context, actingPlatformUserID, forPlatformUserID int64, input TicketCreateInput) (int64, error) {
	agentID, ok, err := s.identity.ResolveAgentID(ctx, actingPlatformUserID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.ErrAgentNotFound
	}

	userID, ok, err := s.identity.ResolveUserID(ctx, forPlatformUserID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.ErrUserNotFound
	}

	ticket := &domain.Ticket{
		UserID:     &userID,
		AgentID:    &agentID,
		PriorityID: input.PriorityID,
		Title:      strings.TrimSpace(input.Title),
		Content:    strings.TrimSpace(input.Content),
		CategoryID: input.CategoryID,
		StatusID:   domain.StatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return 0, err
	}

	if err := s.recordChange(ctx, ticket.ID, domain.FieldStatus, "", formatID(domain.StatusOpen), agentID); err != nil {
		return 0, err
	}

	s.counts.Bump(ctx)
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		AgentID:  &agentID,
		UserID:   &userID,
		Payload: events.TicketCreatedPayload{
			CategoryID: ticket.CategoryID,
			PriorityID: ticket.PriorityID,
			Title:      ticket.Title,
		},
	})
	return ticket.ID, nil
}

// fieldChange pairs an audit entry with the column write that realizes it.
type fieldChange struct {
	field  domain.TicketField
	old    string
	new    string
	column string
	value  any
}

// UpdateTicket applies the supplied fields to a ticket. Every supplied
// field produces one audit entry capturing the prior and new value, written
// before the row itself changes, so a history reader racing the update sees
// old values that still match the ticket row. An unmapped actor and a
// missing ticket both surface as ErrUnauthorized.
func (s *TicketService) UpdateTicket(ctx context.Context, actingPlatformUserID, ticketID int64, input TicketUpdateInput) (int64, error) {
	agentID, ok, err := s.identity.ResolveAgentID(ctx, actingPlatformUserID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUnauthorized
		}
		return 0, err
	}

	if input.Empty() {
		return 0, nil
	}

	changes := collectChanges(ticket, input)
	for _, change := range changes {
		if err := s.recordChange(ctx, ticket.ID, change.field, change.old, change.new, agentID); err != nil {
			return 0, err
		}
	}

	updates := make(map[string]any, len(changes))
	for _, change := range changes {
		updates[change.column] = change.value
	}
	affected, err := s.tickets.UpdateFields(ctx, ticket.ID, updates)
	if err != nil {
		return 0, err
	}

	s.counts.Bump(ctx)
	fields := make([]domain.TicketField, 0, len(changes))
	for _, change := range changes {
		fields = append(fields, change.field)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		AgentID:  &agentID,
		Payload:  events.TicketUpdatedPayload{Fields: fields},
	})
	return affected, nil
}

// collectChanges walks the updatable fields in a fixed order so audit
// batches are deterministic.
func collectChanges(ticket *domain.Ticket, input TicketUpdateInput) []fieldChange {
	var changes []fieldChange
	if input.CategoryID != nil {
		changes = append(changes, fieldChange{
			field:  domain.FieldCategory,
			old:    formatID(ticket.CategoryID),
			new:    formatID(*input.CategoryID),
			column: "category_id",
			value:  *input.CategoryID,
		})
	}
	if input.StatusID != nil {
		changes = append(changes, fieldChange{
			field:  domain.FieldStatus,
			old:    formatID(ticket.StatusID),
			new:    formatID(*input.StatusID),
			column: "status_id",
			value:  *input.StatusID,
		})
	}
	if input.PriorityID != nil {
		changes = append(changes, fieldChange{
			field:  domain.FieldPriority,
			old:    formatNullableID(ticket.PriorityID),
			new:    formatID(*input.PriorityID),
			column: "priority_id",
			value:  *input.PriorityID,
		})
	}
	if input.Title != nil {
		changes = append(changes, fieldChange{
			field:  domain.FieldTitle,
			old:    ticket.Title,
			new:    *input.Title,
			column: "title",
			value:  *input.Title,
		})
	}
	if input.Content != nil {
		changes = append(changes, fieldChange{
			field:  domain.FieldContent,
			old:    ticket.Content,
			new:    *input.Content,
			column: "content",
			value:  *input.Content,
		})
	}
	return changes
}

// AddComment appends to the ticket thread. Comments are attributed through
// the requester mapping even when posted from an agent-facing screen; an
// agent without a requester record cannot comment.
func (s *TicketService) AddComment(ctx context.Context, actingPlatformUserID, ticketID int64, text string) (int64, error) {
	userID, ok, err := s.identity.ResolveUserID(ctx, actingPlatformUserID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.ErrUserNotFound
	}

	comment := &domain.Comment{
		TicketID: ticketID,
		UserID:   userID,
		Body:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return 0, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCommented,
		TicketID: ticketID,
		UserID:   &userID,
		Payload:  events.TicketCommentedPayload{CommentID: comment.ID},
	})
	return comment.ID, nil
}

// ListComments returns the ticket thread, oldest first.
func (s *TicketService) ListComments(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	return s.comments.ListByTicket(ctx, ticketID)
}

// ListHistory returns the audit trail, oldest first.
func (s *TicketService) ListHistory(ctx context.Context, ticketID int64) ([]domain.HistoryEntry, error) {
	return s.history.ListByTicket(ctx, ticketID)
}

// CountActiveByCategory returns, per category the agent is assigned to, the
// number of tickets not in the closed status. Categories with no active
// tickets are omitted. An unmapped actor gets an empty mapping, not an
// error.
func (s *TicketService) CountActiveByCategory(ctx context.Context, actingPlatformUserID int64) (map[int64]int64, error) {
	agentID, ok, err := s.identity.ResolveAgentID(ctx, actingPlatformUserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[int64]int64{}, nil
	}

	if cached, hit := s.counts.Get(ctx, agentID); hit {
		return cached, nil
	}

	queues, err := s.agents.ListQueues(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if len(queues) == 0 {
		return map[int64]int64{}, nil
	}

	counts, err := s.tickets.CountActiveByCategory(ctx, queues)
	if err != nil {
		return nil, err
	}
	s.counts.Set(ctx, agentID, counts)
	return counts, nil
}

// GetTicketByID fetches a ticket. The acting identity is accepted for
// signature parity with the other operations but applies no visibility
// filtering; any caller can read any ticket.
func (s *TicketService) GetTicketByID(ctx context.Context, actingPlatformUserID, ticketID int64) (*domain.Ticket, error) {
	_ = actingPlatformUserID
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return ticket, nil
}

// ListTicketsForAgent returns all tickets, newest first. The agent argument
// does not narrow the result; per-agent filtering was never applied here
// and callers depend on the full listing.
func (s *TicketService) ListTicketsForAgent(ctx context.Context, actingPlatformUserID int64) ([]domain.Ticket, error) {
	_ = actingPlatformUserID
	return s.tickets.List(ctx)
}

func (s *TicketService) recordChange(ctx context.Context, ticketID int64, field domain.TicketField, oldValue, newValue string, agentID int64) error {
	entry := &domain.HistoryEntry{
		TicketID:     ticketID,
		FieldChanged: field,
		OldValue:     oldValue,
		NewValue:     newValue,
		ChangedBy:    agentID,
	}
	return s.history.Create(ctx, entry)
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatNullableID(id *int64) string {
	if id == nil {
		return ""
	}
	return formatID(*id)
}
