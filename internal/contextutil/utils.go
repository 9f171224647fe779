package contextutil

import (
	"context"

	"mazdady-market/internal/middleware"
)

// GetUserIDFromContext pulls the authenticated user id out of the request
// context. The second result is false for anonymous requests.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok || sess == nil {
		return "", false
	}
	return sess.UserID, true
}
