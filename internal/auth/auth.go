package auth

import (
	"context"
	"errors"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"bilio-backend/internal/domain"
)

var ErrInvalidSession = errors.New("invalid session")

// Authenticator resolves a session token to a user identity. The session
// itself is owned by the external auth provider; this service only
// verifies it.
type Authenticator interface {
	Verify(ctx context.Context, sessionToken string) (*domain.Identity, error)
}

type firebaseAuthenticator struct {
	client *fbauth.Client
}

// NewFirebaseAuthenticator verifies provider session cookies against
// Firebase Auth.
func NewFirebaseAuthenticator(ctx context.Context, credentialsFile string) (Authenticator, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &firebaseAuthenticator{client: client}, nil
}

func (a *firebaseAuthenticator) Verify(ctx context.Context, sessionToken string) (*domain.Identity, error) {
	decoded, err := a.client.VerifySessionCookie(ctx, sessionToken)
	if err != nil {
		return nil, ErrInvalidSession
	}

	ident := &domain.Identity{UserID: decoded.UID}
	if v, ok := decoded.Claims["email"].(string); ok {
		ident.Email = v
	}
	if v, ok := decoded.Claims["name"].(string); ok {
		ident.Name = v
	}
	return ident, nil
}
