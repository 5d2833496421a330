package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JHSeo-git/close-mountain-api/internal/domain"
)

// Envelope is the single canonical response wrapper: data on success,
// a structured error on failure, never both.
type Envelope struct {
	Data  interface{}      `json:"data"`
	Error *domain.APIError `json:"error"`
}

// SafeUser is the sanitized user projection exposed on the wire.
type SafeUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func toSafeUser(u *domain.User) *SafeUser {
	if u == nil {
		return nil
	}
	return &SafeUser{
		ID:        u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeData wraps a successful payload in the envelope.
func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Envelope{Data: data})
}

// writeNoContent answers a bodiless success.
func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// writeError converts any failure into the envelope. Errors that are not
// *domain.APIError are logged with full detail and answered as a generic
// 500 — raw internals never reach the client.
func writeError(w http.ResponseWriter, err error) {
	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		slog.Error("unhandled error", "err", err)
		apiErr = domain.ErrInternal()
	}
	writeJSON(w, apiErr.Status, Envelope{Error: apiErr})
}
