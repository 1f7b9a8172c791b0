package middleware

import (
	"context"
	"net/http"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DeviceTokenHeader carries the device token for clients that do not keep cookies
	DeviceTokenHeader = "X-Device-Token"
	// DeviceTokenCookie carries the device token for browsers
	DeviceTokenCookie = "device_token"
)

// DeviceTokens is the interface that wraps device token signing
type DeviceTokens interface {
	GenerateDeviceToken(deviceID string) (string, error)
	ValidateDeviceToken(token string) (string, error)
}

// DeviceCookieOptions configures the device token cookie
type DeviceCookieOptions struct {
	MaxAge int // seconds
	Secure bool
}

// DeviceMiddleware identifies the calling device and scopes the key-value store to it.
//
// The device token is read from the X-Device-Token header, then from the device_token cookie.
// A missing or invalid token gets a new device ID, whose token is returned in both the header and the cookie.
func DeviceMiddleware(tokens DeviceTokens, cookie DeviceCookieOptions, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var deviceID string

			token := r.Header.Get(DeviceTokenHeader)
			if token == "" {
				if c, err := r.Cookie(DeviceTokenCookie); err == nil {
					token = c.Value
				}
			}

			if token != "" {
				id, err := tokens.ValidateDeviceToken(token)
				if err != nil {
					logger.Debug("device token rejected", zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
				} else {
					deviceID = id
				}
			}

			if deviceID == "" {
				deviceID = uuid.NewString()
				issued, err := tokens.GenerateDeviceToken(deviceID)
				if err != nil {
					logger.Error("failed to issue device token", zap.Error(err))
					writeError(w, http.StatusInternalServerError, "internal server error")
					return
				}

				http.SetCookie(w, &http.Cookie{
					Name:     DeviceTokenCookie,
					Value:    issued,
					Path:     "/",
					MaxAge:   cookie.MaxAge,
					HttpOnly: true,
					Secure:   cookie.Secure,
					SameSite: http.SameSiteLaxMode,
				})
				w.Header().Set(DeviceTokenHeader, issued)
				logger.Info("device registered", zap.String("device_id", deviceID))
			}

			if info := requestInfoFrom(r.Context()); info != nil {
				info.deviceID = deviceID
			}
			ctx := context.WithValue(r.Context(), deviceIDKey, deviceID)
			ctx = kvstore.WithScope(ctx, deviceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetDeviceID retrieves the device ID from context
func GetDeviceID(ctx context.Context) string {
	if id, ok := ctx.Value(deviceIDKey).(string); ok {
		return id
	}
	return ""
}
