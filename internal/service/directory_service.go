package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/queueshq/queues-service/internal/domain"
	"github.com/queueshq/queues-service/internal/repository"
	apperrors "github.com/queueshq/queues-service/pkg/util"
)

// DirectoryService manages the people side of the helpdesk: organizations,
// agent records with their queue assignments, and requester records. These
// are the rows the identity mapper resolves against.
type DirectoryService struct {
	organizations repository.OrganizationRepository
	agents        repository.AgentRepository
	users         repository.UserRepository
}

// DirectoryDependencies bundles repositories.
type DirectoryDependencies struct {
	OrganizationRepo repository.OrganizationRepository
	AgentRepo        repository.AgentRepository
	UserRepo         repository.UserRepository
}

// AgentWithQueues pairs an agent record with its assigned queue ids.
type AgentWithQueues struct {
	Agent  domain.Agent
	Queues []int64
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		organizations: deps.OrganizationRepo,
		agents:        deps.AgentRepo,
		users:         deps.UserRepo,
	}
}

// CreateOrganization adds an organization.
func (s *DirectoryService) CreateOrganization(ctx context.Context, org *domain.Organization) error {
	org.Name = strings.TrimSpace(org.Name)
	if org.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	return s.organizations.Create(ctx, org)
}

// UpdateOrganization modifies an organization.
func (s *DirectoryService) UpdateOrganization(ctx context.Context, org *domain.Organization) error {
	org.Name = strings.TrimSpace(org.Name)
	if org.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	return s.organizations.Update(ctx, org)
}

// DeleteOrganization removes an organization; its requester records go with
// it via the schema cascade.
func (s *DirectoryService) DeleteOrganization(ctx context.Context, id int64) error {
	return s.organizations.Delete(ctx, id)
}

// ListOrganizations returns organizations ordered by name.
func (s *DirectoryService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	return s.organizations.List(ctx)
}

// RegisterAgent creates an agent record for a platform identity and assigns
// it to the given queues. At least one queue is required, matching the
// admin screen this replaces.
func (s *DirectoryService) RegisterAgent(ctx context.Context, platformUserID int64, queueIDs []int64) (*domain.Agent, error) {
	if platformUserID <= 0 {
		return nil, apperrors.NewValidationError("platform_user_id required", nil)
	}
	if len(queueIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one queue required", nil)
	}
	agent := &domain.Agent{PlatformUserID: platformUserID}
	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, err
	}
	if err := s.agents.ReplaceQueues(ctx, agent.ID, queueIDs); err != nil {
		return nil, err
	}
	return agent, nil
}

// UpdateAgentQueues swaps an agent's full assignment set.
func (s *DirectoryService) UpdateAgentQueues(ctx context.Context, agentID int64, queueIDs []int64) error {
	if len(queueIDs) == 0 {
		return apperrors.NewValidationError("at least one queue required", nil)
	}
	if _, err := s.agents.GetByID(ctx, agentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("agent", map[string]any{"agent_id": agentID})
		}
		return err
	}
	return s.agents.ReplaceQueues(ctx, agentID, queueIDs)
}

// DeleteAgent removes an agent record. Queue assignments cascade away;
// tickets the agent opened keep their history with the reference nulled.
func (s *DirectoryService) DeleteAgent(ctx context.Context, id int64) error {
	return s.agents.Delete(ctx, id)
}

// ListAgents returns all agents with their queue assignments.
func (s *DirectoryService) ListAgents(ctx context.Context) ([]AgentWithQueues, error) {
	agents, err := s.agents.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]AgentWithQueues, 0, len(agents))
	for _, agent := range agents {
		queues, err := s.agents.ListQueues(ctx, agent.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, AgentWithQueues{Agent: agent, Queues: queues})
	}
	return result, nil
}

// RegisterUser creates a requester record for a platform identity within an
// organization.
func (s *DirectoryService) RegisterUser(ctx context.Context, platformUserID, organizationID int64) (*domain.User, error) {
	if platformUserID <= 0 {
		return nil, apperrors.NewValidationError("platform_user_id required", nil)
	}
	if _, err := s.organizations.GetByID(ctx, organizationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("organization", map[string]any{"organization_id": organizationID})
		}
		return nil, err
	}
	user := &domain.User{PlatformUserID: platformUserID, OrganizationID: organizationID}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a requester record; tickets they filed survive with
// the reference nulled.
func (s *DirectoryService) DeleteUser(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

// ListUsers returns all requester records.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
