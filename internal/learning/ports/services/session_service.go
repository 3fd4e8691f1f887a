package services

import (
	"context"
	"time"
)

// SessionService issues and resolves per-request identity tokens.
type SessionService interface {
	// Issue signs a session token for the user.
	Issue(ctx context.Context, userID, name string) (string, time.Time, error)

	// Identify resolves a session token to the user ID it was issued for.
	Identify(ctx context.Context, token string) (string, error)
}
