package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// RequestSizeLimitMiddleware rejects request bodies larger than maxRequestSize bytes.
// A declared Content-Length over the limit is refused before the handler runs,
// an undeclared body is cut by http.MaxBytesReader while the handler reads it.
func RequestSizeLimitMiddleware(maxRequestSize int64, logger *zap.Logger) func(http.Handler) http.Handler {
	tooLarge := fmt.Sprintf("request body exceeds %d bytes", maxRequestSize)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxRequestSize {
				logger.Warn("request body too large",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("path", r.URL.Path),
					zap.Int64("content_length", r.ContentLength),
				)
				writeError(w, http.StatusRequestEntityTooLarge, tooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
			next.ServeHTTP(w, r)
		})
	}
}
