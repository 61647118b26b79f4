package handler

import (
	"net/http"
	"time"

	"github.com/fboard-dev/fboard/internal/api"
	"github.com/fboard-dev/fboard/internal/utils"
)

// SendVerificationCode mails a one-time code for the anonymous vote/comment
// verification flow.
func (h *Handler) SendVerificationCode(w http.ResponseWriter, r *http.Request) {
	var body api.SendCodeRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.verification.SendCode(body.Email); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Code sent"})
}

// CheckVerificationCode consumes a code and opens the trust window. No
// session is created.
func (h *Handler) CheckVerificationCode(w http.ResponseWriter, r *http.Request) {
	var body api.CheckCodeRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	record, err := h.verification.CheckCode(body.Email, body.Code)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.VerificationResponse{
		Email:     record.Email,
		ExpiresAt: record.ExpiresAt.Format(time.RFC3339),
	})
}

// GetVerifiedStatus lets clients decide whether to prompt for a code before
// a vote or comment attempt.
func (h *Handler) GetVerifiedStatus(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email query parameter is required", http.StatusBadRequest)
		return
	}

	verified, err := h.verification.Verified(email)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.VerifiedStatusResponse{Verified: verified})
}

// SendLoginCode starts passwordless sign-in.
func (h *Handler) SendLoginCode(w http.ResponseWriter, r *http.Request) {
	var body api.SendCodeRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.account.SendLoginCode(body.Email); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Code sent"})
}

// Login finishes passwordless sign-in: checks the code, upserts the account
// and sets the session cookie. The token is echoed in the body for
// non-browser clients.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	accessToken, account, err := h.account.Login(body.Email, body.Code)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    accessToken,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, api.LoginResponse{
		Message:     "You logged in",
		AccessToken: accessToken,
		Email:       account.Email,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusOK)
}
