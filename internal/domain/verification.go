package domain

import "time"

// VerificationUseType is the purpose a verification code was issued for.
type VerificationUseType string

const (
	UseTypeSignup        VerificationUseType = "signup"
	UseTypeResetPassword VerificationUseType = "reset-password"
	UseTypeTwoFactor     VerificationUseType = "two-factor"
)

// Valid reports whether t is a recognized use type.
func (t VerificationUseType) Valid() bool {
	switch t {
	case UseTypeSignup, UseTypeResetPassword, UseTypeTwoFactor:
		return true
	}
	return false
}

// RequiresExistingUser reports whether a code of this use type may only be
// issued for a target that already has an account. Signup is exempt — the
// user does not exist yet.
func (t VerificationUseType) RequiresExistingUser() bool {
	return t == UseTypeResetPassword || t == UseTypeTwoFactor
}

// VerificationProvider is the channel a code is dispatched over.
// "mobile" is wired but only enabled by configuration.
type VerificationProvider string

const (
	ProviderEmail  VerificationProvider = "email"
	ProviderMobile VerificationProvider = "mobile"
)

// VerificationCode is a one-time code issued for a target.
// PK: target — issuing a new code for the same target replaces the old
// record in a single PutItem, so at most one code per target can exist.
// ExpiresAt doubles as the DynamoDB TTL attribute.
type VerificationCode struct {
	CodeID    string               `json:"id" dynamodbav:"code_id"`
	Target    string               `json:"target" dynamodbav:"target"`
	CodeHash  string               `json:"-" dynamodbav:"code_hash"`
	UseType   VerificationUseType  `json:"use_type" dynamodbav:"use_type"`
	Provider  VerificationProvider `json:"provider" dynamodbav:"provider"`
	Used      bool                 `json:"used" dynamodbav:"used"`
	CreatedAt time.Time            `json:"created" dynamodbav:"created_at"`
	ExpiresAt int64                `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Expired reports whether the code's validity window has passed at now.
func (v *VerificationCode) Expired(now time.Time) bool {
	return v.ExpiresAt < now.Unix()
}
