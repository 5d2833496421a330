package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRecordNotFound is the storage-level sentinel for a missing record.
// Repositories return it wrapped; application services translate it into
// the wire-level *APIError that fits the operation.
var ErrRecordNotFound = errors.New("record not found")

// APIError is the structured failure every handler writes into the response
// envelope. Name values are wire literals consumed by clients — do not
// rename them.
type APIError struct {
	Status  int                    `json:"status"`
	Name    string                 `json:"name"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Status, e.Message)
}

// AsAPIError unwraps err into an *APIError when one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func ErrMissingRequiredFields(fields ...string) *APIError {
	details := map[string]interface{}{}
	if len(fields) > 0 {
		details["required"] = fields
	}
	return &APIError{
		Status:  http.StatusBadRequest,
		Name:    "MissingRequiredFields",
		Message: "required fields are missing",
		Details: details,
	}
}

func ErrInvalidVerifyProvider(provider string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Name:    "InvalidVerifyProvider",
		Message: fmt.Sprintf("unrecognized verification provider: %q", provider),
		Details: map[string]interface{}{"provider": provider},
	}
}

// ErrNotAllowedVerifyType keeps the historical "Notallowed" wire literal.
func ErrNotAllowedVerifyType(useType string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Name:    "NotallowedVerifyType",
		Message: fmt.Sprintf("unrecognized verification use type: %q", useType),
		Details: map[string]interface{}{"useType": useType},
	}
}

func ErrNotFoundUser() *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Name:    "NotFoundUser",
		Message: "user not found",
		Details: map[string]interface{}{},
	}
}

func ErrNotFound(message string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Name:    "NotFound",
		Message: message,
		Details: map[string]interface{}{},
	}
}

func ErrUsernameAlreadyExist(username string) *APIError {
	return &APIError{
		Status:  http.StatusConflict,
		Name:    "UsernameAlreadyExist",
		Message: fmt.Sprintf("username %q is already taken", username),
		Details: map[string]interface{}{"username": username},
	}
}

func ErrNotFoundGoogleEmail() *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Name:    "NotFoundGoogleEmail",
		Message: "no email addresses returned by identity provider",
		Details: map[string]interface{}{},
	}
}

func ErrNotFoundPrimaryGoogleEmail() *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Name:    "NotFoundPrimaryGoogleEmail",
		Message: "identity provider returned no primary email address",
		Details: map[string]interface{}{},
	}
}

// ErrGoogleAPI carries an identity-provider failure through with the
// provider's own status code.
func ErrGoogleAPI(status int, message string) *APIError {
	if message == "" {
		message = "Unknown error"
	}
	return &APIError{
		Status:  status,
		Name:    "GoogleApiError",
		Message: message,
		Details: map[string]interface{}{},
	}
}

// ErrInternal is the generic 500 surfaced for unrecognized failures.
// The underlying cause is logged server-side and never sent to the client.
func ErrInternal() *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Name:    "InternalServerError",
		Message: "internal server error",
		Details: map[string]interface{}{},
	}
}

func ErrUnauthorized(message string) *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Name:    "Unauthorized",
		Message: message,
		Details: map[string]interface{}{},
	}
}
