package session

import (
	"context"
	"net/http"
	"time"
)

// Session is the identity attached to authenticated requests. IsAdmin is
// captured at login time so moderation routes do not re-read the user.
type Session struct {
	ID        string
	UserID    string
	IsAdmin   bool
	StartTime time.Time
	EndTime   time.Time
}

// SessionRepo manages login sessions in Redis.
//
//go:generate mockgen -source=session.go -destination=../mocks/mock_session_repo.go -package=mocks
type SessionRepo interface {
	// CreateSession starts a session for the user, stores it in Redis and
	// writes a signed JWT to the response.
	CreateSession(ctx context.Context, w http.ResponseWriter, userID string, isAdmin bool) (*Session, error)
	// CheckSession validates the bearer token and returns the live session.
	CheckSession(r *http.Request) (*Session, error)
	// ExtendSession pushes the expiry forward for an active user.
	ExtendSession(ctx context.Context, sessionID string) error
}
