package handler

import (
	"encoding/json"
	"net/http"

	"github.com/JHSeo-git/close-mountain-api/internal/application/verify"
	"github.com/JHSeo-git/close-mountain-api/internal/domain"
)

// VerifyHandler handles the verification-code endpoints.
type VerifyHandler struct {
	svc verify.Service
}

func NewVerifyHandler(svc verify.Service) *VerifyHandler {
	return &VerifyHandler{svc: svc}
}

func (h *VerifyHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req verify.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrMissingRequiredFields("targetForSendCode", "verificationProvider", "verificationUseType"))
		return
	}
	if err := h.svc.SendCode(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeNoContent(w)
}

func (h *VerifyHandler) CheckCode(w http.ResponseWriter, r *http.Request) {
	var req verify.CheckCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrMissingRequiredFields("targetForSendCode", "code", "verificationProvider", "verificationUseType"))
		return
	}
	if err := h.svc.CheckCode(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeNoContent(w)
}

func (h *VerifyHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrMissingRequiredFields("username"))
		return
	}
	if err := h.svc.CheckUsernameAvailable(r.Context(), req.Username); err != nil {
		writeError(w, err)
		return
	}
	writeNoContent(w)
}
