package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/queueshq/queues-service/internal/repository"
)

// IdentityService translates platform-native user identities into the
// service's own agent and requester record ids. The two mappings are
// independent; a platform account may be both.
type IdentityService struct {
	agents repository.AgentRepository
	users  repository.UserRepository
}

// NewIdentityService constructs the service.
func NewIdentityService(agents repository.AgentRepository, users repository.UserRepository) *IdentityService {
	return &IdentityService{agents: agents, users: users}
}

// ResolveAgentID looks up the agent record for a platform identity. An
// absent mapping is a normal outcome, not an error; callers decide what it
// means.
func (s *IdentityService) ResolveAgentID(ctx context.Context, platformUserID int64) (int64, bool, error) {
	agent, err := s.agents.GetByPlatformUserID(ctx, platformUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return agent.ID, true, nil
}

// ResolveUserID is the symmetric lookup against the requester table.
func (s *IdentityService) ResolveUserID(ctx context.Context, platformUserID int64) (int64, bool, error) {
	user, err := s.users.GetByPlatformUserID(ctx, platformUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return user.ID, true, nil
}
