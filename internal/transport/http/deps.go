package http

import (
	"context"

	"github.com/JHSeo-git/close-mountain-api/internal/application/verify"
	"github.com/JHSeo-git/close-mountain-api/internal/domain"
	"github.com/JHSeo-git/close-mountain-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/JHSeo-git/close-mountain-api/internal/infrastructure/jwt"
	"github.com/JHSeo-git/close-mountain-api/internal/infrastructure/smtp"
	"github.com/JHSeo-git/close-mountain-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	CodeRepo    *dynamo.CodeRepo
	Mailer      smtp.Mailer
	SMSSender   sns.SMSSender
	JWTProvider *jwtinfra.Provider
}

// CodeStore is the minimal interface the router requires from a
// verification-code store.
type CodeStore interface {
	Replace(ctx context.Context, v *domain.VerificationCode) error
	Get(ctx context.Context, target string) (*domain.VerificationCode, error)
	MarkUsed(ctx context.Context, target, codeID string) error
}

// UserStore is the minimal read-only interface the router requires from the
// content backend's user collection.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

var (
	_ CodeStore     = (*dynamo.CodeRepo)(nil)
	_ UserStore     = (*dynamo.UserRepo)(nil)
	_ verify.Sender = (*smtp.CodeSender)(nil)
	_ verify.Sender = (*sns.CodeSender)(nil)
)
