package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"mazdady-market/internal/session"
	myErr "mazdady-market/internal/types/errors"
)

type sessKey string

var sessionContextKey sessKey = "sessionKey"

// Auth rejects requests without a live session and passes the session down
// through the request context.
func Auth(sm session.SessionRepo, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sm.CheckSession(r)
			if err != nil {
				myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, logger)
				return
			}

			ctx := ContextWithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly guards moderation and configuration routes. Must run after Auth.
func AdminOnly(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSessionFromContext(r.Context())
			if !ok || !sess.IsAdmin {
				myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusForbidden, logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ContextWithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

func GetSessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(*session.Session)
	return s, ok
}
