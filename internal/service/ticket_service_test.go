package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueshq/queues-service/internal/domain"
	"github.com/queueshq/queues-service/internal/events"
)

type fakeAgentRepo struct {
	byPlatform map[int64]*domain.Agent
	queues     map[int64][]int64
}

func (f *fakeAgentRepo) Create(_ context.Context, agent *domain.Agent) error {
	agent.ID = int64(len(f.byPlatform) + 1)
	f.byPlatform[agent.PlatformUserID] = agent
	return nil
}

func (f *fakeAgentRepo) Delete(_ context.Context, id int64) error {
	for platformID, agent := range f.byPlatform {
		if agent.ID == id {
			delete(f.byPlatform, platformID)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeAgentRepo) GetByID(_ context.Context, id int64) (*domain.Agent, error) {
	for _, agent := range f.byPlatform {
		if agent.ID == id {
			return agent, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAgentRepo) GetByPlatformUserID(_ context.Context, platformUserID int64) (*domain.Agent, error) {
	agent, ok := f.byPlatform[platformUserID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return agent, nil
}

func (f *fakeAgentRepo) List(_ context.Context) ([]domain.Agent, error) {
	var result []domain.Agent
	for _, agent := range f.byPlatform {
		result = append(result, *agent)
	}
	return result, nil
}

func (f *fakeAgentRepo) ListQueues(_ context.Context, agentID int64) ([]int64, error) {
	return f.queues[agentID], nil
}

func (f *fakeAgentRepo) ReplaceQueues(_ context.Context, agentID int64, queueIDs []int64) error {
	f.queues[agentID] = queueIDs
	return nil
}

type fakeUserRepo struct {
	byPlatform map[int64]*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = int64(len(f.byPlatform) + 1)
	f.byPlatform[user.PlatformUserID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	for platformID, user := range f.byPlatform {
		if user.ID == id {
			delete(f.byPlatform, platformID)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range f.byPlatform {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByPlatformUserID(_ context.Context, platformUserID int64) (*domain.User, error) {
	user, ok := f.byPlatform[platformUserID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range f.byPlatform {
		result = append(result, *user)
	}
	return result, nil
}

// fakeTicketRepo records writes in a shared journal so tests can assert
// ordering against history writes.
type fakeTicketRepo struct {
	tickets map[int64]*domain.Ticket
	nextID  int64
	counts  map[int64]int64
	journal *[]string
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.nextID++
	ticket.ID = f.nextID
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	*f.journal = append(*f.journal, fmt.Sprintf("ticket-insert:%d", ticket.ID))
	return nil
}

func (f *fakeTicketRepo) UpdateFields(_ context.Context, id int64, updates map[string]any) (int64, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return 0, nil
	}
	for column, value := range updates {
		switch column {
		case "category_id":
			ticket.CategoryID = value.(int64)
		case "status_id":
			ticket.StatusID = value.(int64)
		case "priority_id":
			v := value.(int64)
			ticket.PriorityID = &v
		case "title":
			ticket.Title = value.(string)
		case "content":
			ticket.Content = value.(string)
		}
	}
	*f.journal = append(*f.journal, fmt.Sprintf("ticket-update:%d", id))
	return 1, nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) List(_ context.Context) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		result = append(result, *ticket)
	}
	return result, nil
}

func (f *fakeTicketRepo) CountActiveByCategory(_ context.Context, categoryIDs []int64) (map[int64]int64, error) {
	result := map[int64]int64{}
	for _, id := range categoryIDs {
		if count, ok := f.counts[id]; ok {
			result[id] = count
		}
	}
	return result, nil
}

type fakeHistoryRepo struct {
	entries []domain.HistoryEntry
	journal *[]string
}

func (f *fakeHistoryRepo) Create(_ context.Context, entry *domain.HistoryEntry) error {
	entry.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, *entry)
	*f.journal = append(*f.journal, fmt.Sprintf("history:%s", entry.FieldChanged))
	return nil
}

func (f *fakeHistoryRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.HistoryEntry, error) {
	var result []domain.HistoryEntry
	for _, entry := range f.entries {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	return result, nil
}

type fakeCommentRepo struct {
	comments []domain.Comment
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	comment.ID = int64(len(f.comments) + 1)
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.Comment, error) {
	var result []domain.Comment
	for _, comment := range f.comments {
		if comment.TicketID == ticketID {
			result = append(result, comment)
		}
	}
	return result, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type ticketFixture struct {
	service    *TicketService
	agents     *fakeAgentRepo
	users      *fakeUserRepo
	tickets    *fakeTicketRepo
	history    *fakeHistoryRepo
	comments   *fakeCommentRepo
	dispatcher *recordingDispatcher
	journal    *[]string
}

// newTicketFixture seeds agent platform id 7 -> agent 1 and requester
// platform id 42 -> user 5.
func newTicketFixture() *ticketFixture {
	journal := &[]string{}
	agents := &fakeAgentRepo{
		byPlatform: map[int64]*domain.Agent{7: {ID: 1, PlatformUserID: 7}},
		queues:     map[int64][]int64{},
	}
	users := &fakeUserRepo{
		byPlatform: map[int64]*domain.User{42: {ID: 5, PlatformUserID: 42, OrganizationID: 1}},
	}
	tickets := &fakeTicketRepo{tickets: map[int64]*domain.Ticket{}, counts: map[int64]int64{}, journal: journal}
	history := &fakeHistoryRepo{journal: journal}
	comments := &fakeCommentRepo{}
	dispatcher := &recordingDispatcher{}

	svc := NewTicketService(TicketDependencies{
		Identity:    NewIdentityService(agents, users),
		TicketRepo:  tickets,
		CommentRepo: comments,
		HistoryRepo: history,
		AgentRepo:   agents,
		Counts:      nil,
		Dispatcher:  dispatcher,
	})
	return &ticketFixture{
		service:    svc,
		agents:     agents,
		users:      users,
		tickets:    tickets,
		history:    history,
		comments:   comments,
		dispatcher: dispatcher,
		journal:    journal,
	}
}

func TestCreateTicketForcesOpenStatusAndWritesAudit(t *testing.T) {
	fx := newTicketFixture()
	ctx := context.Background()

	priority := int64(2)
	ticketID, err := fx.service.CreateTicket(ctx, 7, 42, TicketCreateInput{
		Title:      "Printer on fire",
		Content:    "It is literally on fire.",
		CategoryID: 3,
		PriorityID: &priority,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), ticketID)

	ticket := fx.tickets.tickets[ticketID]
	assert.Equal(t, domain.StatusOpen, ticket.StatusID)
	require.NotNil(t, ticket.UserID)
	assert.Equal(t, int64(5), *ticket.UserID)
	require.NotNil(t, ticket.AgentID)
	assert.Equal(t, int64(1), *ticket.AgentID)

	require.Len(t, fx.history.entries, 1)
	entry := fx.history.entries[0]
	assert.Equal(t, domain.FieldStatus, entry.FieldChanged)
	assert.Equal(t, "", entry.OldValue)
	assert.Equal(t, "1", entry.NewValue)
	assert.Equal(t, int64(1), entry.ChangedBy)

	require.Len(t, fx.dispatcher.published, 1)
	assert.Equal(t, events.EventTicketCreated, fx.dispatcher.published[0].Type)
}

func TestCreateTicketUnmappedAgent(t *testing.T) {
	fx := newTicketFixture()

	_, err := fx.service.CreateTicket(context.Background(), 99, 42, TicketCreateInput{
		Title: "t", Content: "c", CategoryID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrAgentNotFound)
	assert.Empty(t, fx.tickets.tickets)
}

func TestCreateTicketUnmappedRequester(t *testing.T) {
	fx := newTicketFixture()

	_, err := fx.service.CreateTicket(context.Background(), 7, 99, TicketCreateInput{
		Title: "t", Content: "c", CategoryID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, fx.tickets.tickets)
}

func TestUpdateTicketAuditsBeforeRowWrite(t *testing.T) {
	fx := newTicketFixture()
	ctx := context.Background()

	ticketID, err := fx.service.CreateTicket(ctx, 7, 42, TicketCreateInput{
		Title: "t", Content: "c", CategoryID: 3,
	})
	require.NoError(t, err)
	*fx.journal = nil
	fx.history.entries = nil

	status := int64(2)
	priority := int64(3)
	affected, err := fx.service.UpdateTicket(ctx, 7, ticketID, TicketUpdateInput{
		StatusID:   &status,
		PriorityID: &priority,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// one audit entry per supplied field, all before the row write
	assert.Equal(t, []string{"history:status", "history:priority", fmt.Sprintf("ticket-update:%d", ticketID)}, *fx.journal)

	require.Len(t, fx.history.entries, 2)
	assert.Equal(t, domain.FieldStatus, fx.history.entries[0].FieldChanged)
	assert.Equal(t, "1", fx.history.entries[0].OldValue)
	assert.Equal(t, "2", fx.history.entries[0].NewValue)
	assert.Equal(t, domain.FieldPriority, fx.history.entries[1].FieldChanged)
	assert.Equal(t, "", fx.history.entries[1].OldValue)
	assert.Equal(t, "3", fx.history.entries[1].NewValue)

	assert.Equal(t, int64(2), fx.tickets.tickets[ticketID].StatusID)
}

func TestUpdateTicketAuditsUnchangedValue(t *testing.T) {
	fx := newTicketFixture()
	ctx := context.Background()

	ticketID, err := fx.service.CreateTicket(ctx, 7, 42, TicketCreateInput{
		Title: "t", Content: "c", CategoryID: 3,
	})
	require.NoError(t, err)
	fx.history.entries = nil

	same := domain.StatusOpen
	affected, err := fx.service.UpdateTicket(ctx, 7, ticketID, TicketUpdateInput{StatusID: &same})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// a supplied field is audited even when the value did not change
	require.Len(t, fx.history.entries, 1)
	assert.Equal(t, "1", fx.history.entries[0].OldValue)
	assert.Equal(t, "1", fx.history.entries[0].NewValue)
}

func TestUpdateTicketEmptyInputIsNoOp(t *testing.T) {
	fx := newTicketFixture()
	ctx := context.Background()

	ticketID, err := fx.service.CreateTicket(ctx, 7, 42, TicketCreateInput{
		Title: "t", Content: "c", CategoryID: 3,
	})
	require.NoError(t, err)
	fx.history.entries = nil
	*fx.journal = nil

	affected, err := fx.service.UpdateTicket(ctx, 7, ticketID, TicketUpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.Empty(t, fx.history.entries)
	assert.Empty(t, *fx.journal)
}

func TestUpdateTicketUnmappedActor(t *testing.T) {
	fx := newTicketFixture()
	ctx := context.Background()

	ticketID, err := fx.service.CreateTicket(ctx, 7, 42, TicketCreateInput{
		Title: "t", Content: "c", CategoryID: 3,
	})
	require.NoError(t, err)

	title := "new"
	_, err = fx.service.UpdateTicket(ctx, 99, ticketID, TicketUpdateInput{Title: &title})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateTicketMissingTicket(t *testing.T) {
	fx := newTicketFixture()

	title := "new"
	_, err := fx.service.UpdateTicket(context.Background(), 7, 404, TicketUpdateInput{Title: &title})
	// same error as an unmapped actor; callers cannot tell the cases apart
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAddCommentAttributedThroughRequesterMapping(t *testing.T) {
	fx := newTicketFixture()
	ctx := context.Background()

	ticketID, err := fx.service.CreateTicket(ctx, 7, 42, TicketCreateInput{
		Title: "t", Content: "c", CategoryID: 3,
	})
	require.NoError(t, err)

	commentID, err := fx.service.AddComment(ctx, 42, ticketID, "any update?")
	require.NoError(t, err)
	require.Equal(t, int64(1), commentID)
	assert.Equal(t, int64(5), fx.comments.comments[0].UserID)

	// platform id 7 is an agent but has no requester record
	_, err = fx.service.AddComment(ctx, 7, ticketID, "working on it")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCountActiveByCategory(t *testing.T) {
	fx := newTicketFixture()
	ctx := context.Background()

	fx.agents.queues[1] = []int64{3, 4, 9}
	fx.tickets.counts = map[int64]int64{3: 2, 9: 1, 8: 7}

	counts, err := fx.service.CountActiveByCategory(ctx, 7)
	require.NoError(t, err)
	// category 4 has no active tickets and is omitted; category 8 is not
	// one of the agent's queues
	assert.Equal(t, map[int64]int64{3: 2, 9: 1}, counts)
}

func TestCountActiveByCategoryUnmappedActor(t *testing.T) {
	fx := newTicketFixture()

	counts, err := fx.service.CountActiveByCategory(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.NotNil(t, counts)
}

func TestCountActiveByCategoryNoQueues(t *testing.T) {
	fx := newTicketFixture()

	counts, err := fx.service.CountActiveByCategory(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestGetTicketByIDIgnoresActingIdentity(t *testing.T) {
	fx := newTicketFixture()
	ctx := context.Background()

	ticketID, err := fx.service.CreateTicket(ctx, 7, 42, TicketCreateInput{
		Title: "t", Content: "c", CategoryID: 3,
	})
	require.NoError(t, err)

	// any acting id works, mapped or not
	ticket, err := fx.service.GetTicketByID(ctx, 99, ticketID)
	require.NoError(t, err)
	assert.Equal(t, ticketID, ticket.ID)

	_, err = fx.service.GetTicketByID(ctx, 7, 404)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListHistoryReturnsEntriesInOrder(t *testing.T) {
	fx := newTicketFixture()
	ctx := context.Background()

	ticketID, err := fx.service.CreateTicket(ctx, 7, 42, TicketCreateInput{
		Title: "t", Content: "c", CategoryID: 3,
	})
	require.NoError(t, err)

	status := int64(3)
	_, err = fx.service.UpdateTicket(ctx, 7, ticketID, TicketUpdateInput{StatusID: &status})
	require.NoError(t, err)

	entries, err := fx.service.ListHistory(ctx, ticketID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].NewValue)
	assert.Equal(t, "3", entries[1].NewValue)
}
