// internal/api/handler/account.go
package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"salapi-backend/internal/service"
	"salapi-backend/internal/util"
)

// AccountHandler handles profile reads/updates and account deletion.
type AccountHandler struct {
	accounts *service.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

// Profile serves the signed-in user's profile.
// GET /account
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	profile, err := h.accounts.GetProfile(r.Context(), uid)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithSuccess(h.logger, w, http.StatusOK, "", profile)
}

// ProfileRequest represents the request body for a profile update.
type ProfileRequest struct {
	Name string `json:"name"`
}

// UpdateProfile patches the profile's name and avatar.
// PUT /account
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respondWithError(h.logger, w, fmt.Errorf("%w: malformed form", util.ErrInvalidInput))
			return
		}
		name := r.FormValue("name")
		file, err := formImage(r)
		if err != nil {
			respondWithError(h.logger, w, err)
			return
		}
		profile, err := h.accounts.UpdateProfile(r.Context(), uid, name, file)
		if err != nil {
			respondWithError(h.logger, w, err)
			return
		}
		respondWithSuccess(h.logger, w, http.StatusOK, "Profile updated", profile)
		return
	}

	var req ProfileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	profile, err := h.accounts.UpdateProfile(r.Context(), uid, req.Name, nil)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithSuccess(h.logger, w, http.StatusOK, "Profile updated", profile)
}

// Delete tears down the whole account: transactions, wallets, profile and
// identity.
// DELETE /account
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	if err := h.accounts.DeleteAccount(r.Context(), uid); err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithSuccess(h.logger, w, http.StatusOK, "Account deleted", nil)
}
