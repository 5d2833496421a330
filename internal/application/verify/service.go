package verify

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/JHSeo-git/close-mountain-api/internal/domain"
	"github.com/JHSeo-git/close-mountain-api/internal/pkg/id"
	"github.com/JHSeo-git/close-mountain-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// SendCodeRequest carries the wire fields of the send-code endpoint.
type SendCodeRequest struct {
	Target   string `json:"targetForSendCode" validate:"required"`
	Provider string `json:"verificationProvider"`
	UseType  string `json:"verificationUseType"`
}

// CheckCodeRequest carries the wire fields of the check-code endpoint.
type CheckCodeRequest struct {
	Target   string `json:"targetForSendCode" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Provider string `json:"verificationProvider"`
	UseType  string `json:"verificationUseType"`
}

// CodeStore persists one-time verification codes keyed by target.
// Replace must atomically supersede any existing record for the target;
// MarkUsed must fail with domain.ErrRecordNotFound once the code is consumed.
type CodeStore interface {
	Replace(ctx context.Context, v *domain.VerificationCode) error
	Get(ctx context.Context, target string) (*domain.VerificationCode, error)
	MarkUsed(ctx context.Context, target, codeID string) error
}

// UserStore is the read-only view of the content backend's user collection.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Sender dispatches a plaintext code to a target over one provider channel.
type Sender interface {
	Send(ctx context.Context, target, code string, useType domain.VerificationUseType) error
}

type Service interface {
	SendCode(ctx context.Context, req SendCodeRequest) error
	CheckCode(ctx context.Context, req CheckCodeRequest) error
	CheckUsernameAvailable(ctx context.Context, username string) error
}

type service struct {
	codes   CodeStore
	users   UserStore
	senders map[domain.VerificationProvider]Sender
	ttl     time.Duration
}

// NewService builds the verification engine. senders defines the recognized
// providers: a provider missing from the map is rejected as invalid.
func NewService(codes CodeStore, users UserStore, senders map[domain.VerificationProvider]Sender, ttl time.Duration) Service {
	return &service{codes: codes, users: users, senders: senders, ttl: ttl}
}

func (s *service) SendCode(ctx context.Context, req SendCodeRequest) error {
	if err := validate.Struct(&req); err != nil {
		return domain.ErrMissingRequiredFields("targetForSendCode")
	}
	provider := domain.VerificationProvider(req.Provider)
	sender, ok := s.senders[provider]
	if !ok {
		return domain.ErrInvalidVerifyProvider(req.Provider)
	}
	useType := domain.VerificationUseType(req.UseType)
	if !useType.Valid() {
		return domain.ErrNotAllowedVerifyType(req.UseType)
	}

	// Signup targets have no account yet; every other use type must belong
	// to an existing user.
	if useType.RequiresExistingUser() {
		if _, err := s.users.GetByEmail(ctx, req.Target); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrNotFoundUser()
			}
			return fmt.Errorf("look up user for %s: %w", req.Target, err)
		}
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash verification code: %w", err)
	}

	now := time.Now().UTC()
	v := &domain.VerificationCode{
		CodeID:    id.New(),
		Target:    req.Target,
		CodeHash:  string(hash),
		UseType:   useType,
		Provider:  provider,
		Used:      false,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	if err := s.codes.Replace(ctx, v); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	// Dispatch is fire-and-forget: the code is already persisted, and a slow
	// or failing channel must not fail the request.
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
		defer cancel()
		if err := sender.Send(sendCtx, req.Target, code, useType); err != nil {
			slog.Warn("failed to dispatch verification code",
				"target", req.Target, "provider", provider, "use_type", useType, "err", err)
		}
	}()

	slog.Info("verification code issued", "target", req.Target, "use_type", useType, "code_id", v.CodeID)
	return nil
}

func (s *service) CheckCode(ctx context.Context, req CheckCodeRequest) error {
	if err := validate.Struct(&req); err != nil {
		return domain.ErrMissingRequiredFields("targetForSendCode", "code")
	}
	if _, ok := s.senders[domain.VerificationProvider(req.Provider)]; !ok {
		return domain.ErrInvalidVerifyProvider(req.Provider)
	}
	useType := domain.VerificationUseType(req.UseType)
	if !useType.Valid() {
		return domain.ErrNotAllowedVerifyType(req.UseType)
	}

	v, err := s.codes.Get(ctx, req.Target)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrNotFound("verification code not found")
		}
		return fmt.Errorf("load verification code for %s: %w", req.Target, err)
	}

	// Used, expired, wrong purpose, or wrong code all answer identically and
	// leave the record untouched.
	if v.Used || v.Expired(time.Now()) || v.UseType != useType {
		return domain.ErrNotFound("verification code not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(v.CodeHash), []byte(req.Code)) != nil {
		return domain.ErrNotFound("verification code not found")
	}

	// Conditional consumption: losing the race to a concurrent check of the
	// same code is indistinguishable from the code not existing.
	if err := s.codes.MarkUsed(ctx, req.Target, v.CodeID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrNotFound("verification code not found")
		}
		return fmt.Errorf("consume verification code for %s: %w", req.Target, err)
	}

	slog.Info("verification code consumed", "target", req.Target, "use_type", useType, "code_id", v.CodeID)
	return nil
}

func (s *service) CheckUsernameAvailable(ctx context.Context, username string) error {
	if username == "" {
		return domain.ErrMissingRequiredFields("username")
	}
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return domain.ErrUsernameAlreadyExist(username)
	}
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil
	}
	return fmt.Errorf("look up username %s: %w", username, err)
}

// generateCode returns a 6-digit code uniform over [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
