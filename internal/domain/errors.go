package domain

import "errors"

var (
	// ErrAgentNotFound indicates the acting platform identity has no agent
	// record.
	ErrAgentNotFound = errors.New("agent record not found")

	// ErrUserNotFound indicates the platform identity has no requester
	// record.
	ErrUserNotFound = errors.New("user record not found")

	// ErrUnauthorized covers both a missing ticket and an unmapped actor on
	// the update/read path; callers cannot distinguish the two cases.
	ErrUnauthorized = errors.New("no access or ticket not found")
)
