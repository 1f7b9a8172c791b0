// Package auth signs and validates the device tokens identifying study devices
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const deviceTokenType = "device"

// TokenGenerator handles device token generation and validation
type TokenGenerator struct {
	secret string
	expiry time.Duration
	now    func() time.Time
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, expiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret: secret,
		expiry: expiry,
		now:    time.Now,
	}
}

// Expiry returns the lifetime of generated tokens
func (tg *TokenGenerator) Expiry() time.Duration {
	return tg.expiry
}

// GenerateDeviceToken creates a signed token carrying "deviceID"
func (tg *TokenGenerator) GenerateDeviceToken(deviceID string) (string, error) {
	if deviceID == "" {
		return "", fmt.Errorf("device id is required")
	}

	now := tg.now()
	claims := jwt.MapClaims{
		"sub":  deviceID,
		"exp":  now.Add(tg.expiry).Unix(),
		"iat":  now.Unix(),
		"type": deviceTokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign device token: %w", err)
	}

	return tokenString, nil
}

// ValidateDeviceToken validates a device token and returns its device id
func (tg *TokenGenerator) ValidateDeviceToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	}, jwt.WithTimeFunc(tg.now))

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != deviceTokenType {
		return "", fmt.Errorf("token is not a device token")
	}

	deviceID, ok := claims["sub"].(string)
	if !ok || deviceID == "" {
		return "", fmt.Errorf("device id not found in token")
	}

	return deviceID, nil
}
