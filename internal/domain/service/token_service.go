package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims carried by a session token.
type SessionClaims struct {
	UserID int64  `json:"uid"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the session tokens handed out at login.
type TokenService interface {
	// GenerateSessionToken signs a token for the given user.
	GenerateSessionToken(userID int64) (string, error)

	// ValidateSessionToken checks signature, type and expiry.
	ValidateSessionToken(token string) (*SessionClaims, error)

	// SessionTTL returns how long issued tokens stay valid.
	SessionTTL() time.Duration
}
