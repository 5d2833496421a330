package handler

import (
	"encoding/json"
	"net/http"

	"github.com/JHSeo-git/close-mountain-api/internal/application/auth"
	"github.com/JHSeo-git/close-mountain-api/internal/domain"
	"github.com/JHSeo-git/close-mountain-api/internal/transport/http/middleware"
)

// AuthHandler handles the OAuth login and session introspection endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginPayload struct {
	JWT  string    `json:"jwt"`
	User *SafeUser `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrMissingRequiredFields("oauthToken", "accessToken", "email"))
		return
	}
	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, loginPayload{JWT: result.JWT, User: toSafeUser(result.User)})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized("missing session token"))
		return
	}
	u, err := h.svc.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]interface{}{"user": toSafeUser(u)})
}
