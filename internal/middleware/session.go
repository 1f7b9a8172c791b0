package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// SessionChecker is the interface that wraps the session presence check
type SessionChecker interface {
	IsAuthenticated(ctx context.Context) (bool, error)
}

// RequireSession rejects requests of devices without a logged in student.
// It must run after DeviceMiddleware so that the session of the calling device is checked.
func RequireSession(sessions SessionChecker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authenticated, err := sessions.IsAuthenticated(r.Context())
			if err != nil {
				logger.Error("failed to check session",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if !authenticated {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
