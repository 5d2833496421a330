package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseType_Valid(t *testing.T) {
	assert.True(t, UseTypeSignup.Valid())
	assert.True(t, UseTypeResetPassword.Valid())
	assert.True(t, UseTypeTwoFactor.Valid())
	assert.False(t, VerificationUseType("magic-link").Valid())
	assert.False(t, VerificationUseType("").Valid())
}

func TestUseType_RequiresExistingUser(t *testing.T) {
	assert.False(t, UseTypeSignup.RequiresExistingUser())
	assert.True(t, UseTypeResetPassword.RequiresExistingUser())
	assert.True(t, UseTypeTwoFactor.RequiresExistingUser())
}

func TestVerificationCode_Expired(t *testing.T) {
	now := time.Now()
	v := &VerificationCode{ExpiresAt: now.Add(time.Minute).Unix()}
	assert.False(t, v.Expired(now))
	assert.True(t, v.Expired(now.Add(2*time.Minute)))
}

func TestAsAPIError(t *testing.T) {
	apiErr, ok := AsAPIError(ErrNotFoundUser())
	require.True(t, ok)
	assert.Equal(t, "NotFoundUser", apiErr.Name)

	wrapped := fmt.Errorf("login: %w", ErrUsernameAlreadyExist("alice"))
	apiErr, ok = AsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "UsernameAlreadyExist", apiErr.Name)

	_, ok = AsAPIError(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrGoogleAPI_FallbackMessage(t *testing.T) {
	e := ErrGoogleAPI(401, "")
	assert.Equal(t, "GoogleApiError", e.Name)
	assert.Equal(t, 401, e.Status)
	assert.Equal(t, "Unknown error", e.Message)

	e = ErrGoogleAPI(403, "Insufficient Permission")
	assert.Equal(t, "Insufficient Permission", e.Message)
}
