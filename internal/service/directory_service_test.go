package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueshq/queues-service/internal/domain"
	apperrors "github.com/queueshq/queues-service/pkg/util"
)

type fakeOrganizationRepo struct {
	rows map[int64]*domain.Organization
}

func (f *fakeOrganizationRepo) Create(_ context.Context, org *domain.Organization) error {
	org.ID = int64(len(f.rows) + 1)
	f.rows[org.ID] = org
	return nil
}

func (f *fakeOrganizationRepo) Update(_ context.Context, org *domain.Organization) error {
	if _, ok := f.rows[org.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.rows[org.ID] = org
	return nil
}

func (f *fakeOrganizationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeOrganizationRepo) GetByID(_ context.Context, id int64) (*domain.Organization, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return row, nil
}

func (f *fakeOrganizationRepo) List(_ context.Context) ([]domain.Organization, error) {
	var result []domain.Organization
	for _, row := range f.rows {
		result = append(result, *row)
	}
	return result, nil
}

func newDirectoryFixture() (*DirectoryService, *fakeOrganizationRepo, *fakeAgentRepo, *fakeUserRepo) {
	orgs := &fakeOrganizationRepo{rows: map[int64]*domain.Organization{}}
	agents := &fakeAgentRepo{byPlatform: map[int64]*domain.Agent{}, queues: map[int64][]int64{}}
	users := &fakeUserRepo{byPlatform: map[int64]*domain.User{}}
	svc := NewDirectoryService(DirectoryDependencies{
		OrganizationRepo: orgs,
		AgentRepo:        agents,
		UserRepo:         users,
	})
	return svc, orgs, agents, users
}

func TestRegisterAgentAssignsQueues(t *testing.T) {
	svc, _, agents, _ := newDirectoryFixture()

	agent, err := svc.RegisterAgent(context.Background(), 7, []int64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, int64(7), agent.PlatformUserID)
	assert.Equal(t, []int64{3, 4}, agents.queues[agent.ID])
}

func TestRegisterAgentRequiresQueues(t *testing.T) {
	svc, _, _, _ := newDirectoryFixture()

	_, err := svc.RegisterAgent(context.Background(), 7, nil)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestUpdateAgentQueuesReplacesAssignments(t *testing.T) {
	svc, _, agents, _ := newDirectoryFixture()
	ctx := context.Background()

	agent, err := svc.RegisterAgent(ctx, 7, []int64{3})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateAgentQueues(ctx, agent.ID, []int64{4, 9}))
	assert.Equal(t, []int64{4, 9}, agents.queues[agent.ID])
}

func TestUpdateAgentQueuesMissingAgent(t *testing.T) {
	svc, _, _, _ := newDirectoryFixture()

	err := svc.UpdateAgentQueues(context.Background(), 404, []int64{1})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestRegisterUserRequiresExistingOrganization(t *testing.T) {
	svc, orgs, _, users := newDirectoryFixture()
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, 42, 1)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	require.NoError(t, svc.CreateOrganization(ctx, &domain.Organization{Name: "Acme"}))
	require.Len(t, orgs.rows, 1)

	user, err := svc.RegisterUser(ctx, 42, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.PlatformUserID)
	assert.Equal(t, int64(1), user.OrganizationID)
	assert.Len(t, users.byPlatform, 1)
}

func TestListAgentsIncludesQueues(t *testing.T) {
	svc, _, _, _ := newDirectoryFixture()
	ctx := context.Background()

	agent, err := svc.RegisterAgent(ctx, 7, []int64{3, 4})
	require.NoError(t, err)

	listed, err := svc.ListAgents(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, agent.ID, listed[0].Agent.ID)
	assert.Equal(t, []int64{3, 4}, listed[0].Queues)
}
