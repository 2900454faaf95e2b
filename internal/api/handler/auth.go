// internal/api/handler/auth.go
package handler

import (
	"log/slog"
	"net/http"

	"salapi-backend/internal/api/types"
	"salapi-backend/internal/auth"
	"salapi-backend/internal/service"
	"salapi-backend/internal/util"
)

// AuthHandler handles registration, login and credential maintenance.
type AuthHandler struct {
	accounts *service.AccountService
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, logger: logger}
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles the new account request.
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	profile, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusCreated,
		"Account created. Please verify your email before logging in.", profile)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles the credential check and session issue.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	token, profile, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "Login successful",
		types.TokenResponse{Token: token, User: profile})
}

// VerifyEmail consumes the token from the emailed verification link.
// GET /auth/verify?token=...
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.accounts.VerifyEmail(r.Context(), token); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "Email verified. You can now log in.", nil)
}

// ResendVerification issues a fresh verification email.
// POST /auth/resend-verification
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	if err := h.accounts.ResendVerification(r.Context(), uid); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "Verification email sent. Check your inbox.", nil)
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// ChangePassword re-proves the current password and sets the new one.
// POST /auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	if err := h.accounts.ChangePassword(r.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		// The change-password flow words provider failures differently: a
		// wrong password here means the current password.
		if code := auth.CodeOf(err); code != "" {
			respondWithJSON(h.logger, w, authStatus(code), types.APIResponse{
				Success: false,
				Msg:     auth.PasswordChangeMessage(code),
			})
			return
		}
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "Password updated successfully", nil)
}
