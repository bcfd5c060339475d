package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bilio-backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// SessionClaims defines the claims for locally issued dev-mode sessions
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type tokenAuthenticator struct {
	secret []byte
}

// NewTokenAuthenticator verifies HS256 session tokens issued by
// GenerateSessionToken. Development mode only; production uses the
// Firebase authenticator.
func NewTokenAuthenticator(secret string) Authenticator {
	return &tokenAuthenticator{secret: []byte(secret)}
}

func (m *tokenAuthenticator) Verify(ctx context.Context, sessionToken string) (*domain.Identity, error) {
	token, err := jwt.ParseWithClaims(sessionToken, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" && claims.Subject != "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &domain.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

// GenerateSessionToken issues an HS256 session token for dev-mode logins
// and tests.
func GenerateSessionToken(secret string, ident domain.Identity, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		UserID: ident.UserID,
		Email:  ident.Email,
		Name:   ident.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "bilio-backend",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
