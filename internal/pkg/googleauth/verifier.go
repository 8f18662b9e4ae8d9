package googleauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"
)

var (
	ErrNotConfigured    = errors.New("google sign-in is not configured")
	ErrEmailNotVerified = errors.New("google account email is not verified")
)

// Identity holds the claims of a verified Google ID token.
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

type Verifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}

// IDTokenVerifier checks signature, expiry and audience against Google's
// published keys.
type IDTokenVerifier struct {
	clientID string
}

func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{
		clientID: clientID,
	}
}

func (v *IDTokenVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	if v.clientID == "" {
		return Identity{}, ErrNotConfigured
	}

	payload, err := idtoken.Validate(ctx, idToken, v.clientID)
	if err != nil {
		return Identity{}, fmt.Errorf("idtoken.Validate -> %w", err)
	}

	return identityFromClaims(payload.Subject, payload.Claims)
}

func identityFromClaims(subject string, claims map[string]interface{}) (Identity, error) {
	identity := Identity{Subject: subject}
	identity.Email, _ = claims["email"].(string)
	identity.Name, _ = claims["name"].(string)

	// Some issuers encode the flag as a string.
	switch verified := claims["email_verified"].(type) {
	case bool:
		identity.EmailVerified = verified
	case string:
		identity.EmailVerified = strings.EqualFold(verified, "true")
	}

	if identity.Subject == "" || identity.Email == "" {
		return Identity{}, errors.New("token is missing the sub or email claim")
	}
	if !identity.EmailVerified {
		return Identity{}, ErrEmailNotVerified
	}

	return identity, nil
}
