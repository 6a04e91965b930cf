package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueshq/queues-service/internal/domain"
)

func TestResolveAgentID(t *testing.T) {
	agents := &fakeAgentRepo{
		byPlatform: map[int64]*domain.Agent{7: {ID: 1, PlatformUserID: 7}},
		queues:     map[int64][]int64{},
	}
	users := &fakeUserRepo{byPlatform: map[int64]*domain.User{}}
	svc := NewIdentityService(agents, users)

	id, ok, err := svc.ResolveAgentID(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)

	// unmapped is not an error
	id, ok, err = svc.ResolveAgentID(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestResolveUserID(t *testing.T) {
	agents := &fakeAgentRepo{byPlatform: map[int64]*domain.Agent{}, queues: map[int64][]int64{}}
	users := &fakeUserRepo{
		byPlatform: map[int64]*domain.User{42: {ID: 5, PlatformUserID: 42, OrganizationID: 1}},
	}
	svc := NewIdentityService(agents, users)

	id, ok, err := svc.ResolveUserID(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)

	_, ok, err = svc.ResolveUserID(context.Background(), 43)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMappingsAreIndependent(t *testing.T) {
	// the same platform identity can hold both records with different ids
	agents := &fakeAgentRepo{
		byPlatform: map[int64]*domain.Agent{7: {ID: 1, PlatformUserID: 7}},
		queues:     map[int64][]int64{},
	}
	users := &fakeUserRepo{
		byPlatform: map[int64]*domain.User{7: {ID: 9, PlatformUserID: 7, OrganizationID: 2}},
	}
	svc := NewIdentityService(agents, users)

	agentID, ok, err := svc.ResolveAgentID(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)

	userID, ok, err := svc.ResolveUserID(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)

	assert.NotEqual(t, agentID, userID)
}
