package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueshq/queues-service/internal/domain"
)

func TestToDomainErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"agent not found", domain.ErrAgentNotFound, "AGENT_NOT_FOUND", http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, "USER_NOT_FOUND", http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, "UNAUTHORIZED", http.StatusForbidden},
		{"no rows", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"unknown", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := ToDomainError(tc.err)
			require.NotNil(t, mapped)
			assert.Equal(t, tc.code, mapped.Code)
			assert.Equal(t, tc.status, mapped.HTTPStatus)
		})
	}
}

func TestToDomainErrorPassesThroughDomainError(t *testing.T) {
	original := NewValidationError("bad input", map[string]any{"title": "required"})

	mapped := ToDomainError(original)
	assert.Equal(t, "VALIDATION_FAILED", mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	assert.Equal(t, "required", mapped.Details["title"])
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	wrapped := NewInternalError(inner)

	assert.ErrorIs(t, wrapped, inner)
}
