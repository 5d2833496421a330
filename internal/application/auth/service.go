package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JHSeo-git/close-mountain-api/internal/domain"
	"github.com/JHSeo-git/close-mountain-api/internal/infrastructure/google"
	"github.com/JHSeo-git/close-mountain-api/internal/pkg/validate"
)

// LoginRequest is the identity assertion supplied by the caller. All
// credentials come from the request — nothing is read from configuration.
type LoginRequest struct {
	OAuthToken  string `json:"oauthToken" validate:"required"`
	AccessToken string `json:"accessToken" validate:"required"`
	Email       string `json:"email" validate:"required"`
}

// LoginResult pairs the freshly minted session token with the resolved user.
type LoginResult struct {
	JWT  string
	User *domain.User
}

// IdentityVerifier exchanges an OAuth/access token pair for a
// provider-confirmed identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, oauthToken, accessToken string) (*google.Identity, error)
}

// UserStore is the read-only view of the content backend's user collection.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenSigner mints opaque session tokens.
type TokenSigner interface {
	Sign(userID, email, role string) (string, error)
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	verifier IdentityVerifier
	users    UserStore
	signer   TokenSigner
}

func NewService(verifier IdentityVerifier, users UserStore, signer TokenSigner) Service {
	return &service{verifier: verifier, users: users, signer: signer}
}

// Login verifies the caller's Google identity and issues a session token for
// the matching local account. Accounts are never auto-provisioned here: an
// unknown primary email fails with NotFoundUser.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	// Empty strings are missing fields; all credentials come from the caller.
	if err := validate.Struct(&req); err != nil {
		return nil, domain.ErrMissingRequiredFields("oauthToken", "accessToken", "email")
	}

	identity, err := s.verifier.Verify(ctx, req.OAuthToken, req.AccessToken)
	if err != nil {
		return nil, err
	}

	// The lookup uses the provider-confirmed primary email, not the
	// caller-claimed one.
	u, err := s.users.GetByEmail(ctx, identity.PrimaryEmail)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrNotFoundUser()
		}
		return nil, fmt.Errorf("look up user by primary email: %w", err)
	}

	token, err := s.signer.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	slog.Info("oauth login", "user_id", u.UserID, "display_name", identity.DisplayName)
	return &LoginResult{JWT: token, User: u}, nil
}

func (s *service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrNotFoundUser()
		}
		return nil, err
	}
	return u, nil
}
