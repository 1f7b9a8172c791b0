package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	requestInfoKey contextKey = "requestInfo"
	deviceIDKey    contextKey = "deviceID"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client supplied request IDs kept in logs
const maxRequestIDLength = 64

// requestInfo is shared by every middleware of one request.
// Inner middlewares fill it in, outer ones read it after the handler returned or panicked.
type requestInfo struct {
	id       string
	deviceID string
}

// RequestIDMiddleware adds a request ID to each request.
// A client supplied X-Request-ID is kept when it is short printable ASCII, otherwise a new one is generated.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), requestInfoKey, &requestInfo{id: requestID})
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if info := requestInfoFrom(ctx); info != nil {
		return info.id
	}
	return ""
}

func requestInfoFrom(ctx context.Context) *requestInfo {
	info, _ := ctx.Value(requestInfoKey).(*requestInfo)
	return info
}

// requestDeviceID returns the device identified further down the chain, if any
func requestDeviceID(ctx context.Context) string {
	if info := requestInfoFrom(ctx); info != nil {
		return info.deviceID
	}
	return ""
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
