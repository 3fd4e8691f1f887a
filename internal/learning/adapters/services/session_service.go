package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"langmaster/internal/learning/domain/services"
	svc "langmaster/internal/learning/ports/services"
	"langmaster/pkg/logger"
)

const (
	methodIssue    = "Issue"
	methodIdentify = "Identify"

	msgIssuingToken   = "issuing session token"
	msgTokenIssued    = "session token issued"
	msgResolvingToken = "resolving session token"
	msgTokenResolved  = "session token resolved"
	msgTokenExpired   = "session token has expired"
	msgInvalidToken   = "invalid session token"

	errCtxSigningToken = "signing session token"
	errCtxParsingToken = "parsing session token"
)

// ErrInvalidAlgorithm is returned when a token was signed with an
// unexpected algorithm.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// sessionClaims adapts the domain claims to the JWT library format.
type sessionClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// ServiceSession implements the SessionService port with signed JWTs.
type ServiceSession struct {
	config services.SessionConfig
}

// NewSession creates a session token service.
func NewSession(secretKey string, tokenTTL time.Duration) svc.SessionService {
	return &ServiceSession{
		config: services.SessionConfig{
			SecretKey: []byte(secretKey),
			TokenTTL:  tokenTTL,
		},
	}
}

// Issue signs a session token for the user.
func (s *ServiceSession) Issue(ctx context.Context, userID, name string) (string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssue), zap.String("userID", userID))
	log.Debug(ctx, msgIssuingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxSigningToken, services.ErrTokenGenerationFailed)
	}

	now := time.Now()
	expiresAt := now.Add(s.config.TokenTTL)

	claims := sessionClaims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, "error signing session token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxSigningToken, services.ErrTokenGenerationFailed, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// Identify resolves a session token to the user ID it was issued for.
func (s *ServiceSession) Identify(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIdentify))
	log.Debug(ctx, msgResolvingToken)

	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return "", fmt.Errorf("%s: %w", errCtxParsingToken, services.ErrExpiredSessionToken)
		}
		log.Debug(ctx, msgInvalidToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidSessionToken, err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return "", fmt.Errorf("%s: %w", errCtxParsingToken, services.ErrInvalidSessionToken)
	}

	if claims.UserID == "" {
		log.Debug(ctx, "user_id claim is empty")
		return "", fmt.Errorf("%s: %w: empty user_id", errCtxParsingToken, services.ErrInvalidSessionToken)
	}

	log.Debug(ctx, msgTokenResolved, zap.String("userID", claims.UserID))
	return claims.UserID, nil
}
