package services

import (
	"errors"
	"time"
)

// Session errors.
var (
	ErrInvalidCredentials    = errors.New("invalid name or password")
	ErrInvalidSessionToken   = errors.New("invalid session token")
	ErrExpiredSessionToken   = errors.New("session token has expired")
	ErrTokenGenerationFailed = errors.New("failed to generate session token")
)

// SessionConfig holds the signing parameters for session tokens.
type SessionConfig struct {
	SecretKey []byte
	TokenTTL  time.Duration
}

// SessionClaims is the identity carried by a session token. Identity always
// travels as an explicit per-request value; there is no ambient current user.
type SessionClaims struct {
	UserID    string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Session is the result of a successful registration or login.
type Session struct {
	UserID    string
	Name      string
	Token     string
	ExpiresAt time.Time
}
