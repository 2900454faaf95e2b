// internal/api/handler/wallet.go
package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"salapi-backend/internal/service"
	"salapi-backend/internal/util"
)

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	wallets *service.WalletService
	logger  *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallets *service.WalletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{wallets: wallets, logger: logger}
}

// WalletRequest represents the request body for wallet create/update.
type WalletRequest struct {
	Name   string           `json:"name"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// walletInput builds the service input from either a JSON body or a
// multipart form carrying an image.
func (h *WalletHandler) walletInput(r *http.Request) (service.WalletInput, error) {
	var in service.WalletInput

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return in, fmt.Errorf("%w: malformed form", util.ErrInvalidInput)
		}
		in.Name = r.FormValue("name")
		if amountStr := r.FormValue("amount"); amountStr != "" {
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return in, fmt.Errorf("%w: invalid amount %q", util.ErrInvalidInput, amountStr)
			}
			in.Amount = &amount
		}
		image, err := formImage(r)
		if err != nil {
			return in, err
		}
		in.Image = image
		return in, nil
	}

	var req WalletRequest
	if err := decodeAndValidate(r, &req); err != nil {
		return in, err
	}
	in.Name = req.Name
	in.Amount = req.Amount
	return in, nil
}

// Create handles the new wallet request.
// POST /wallets
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	in, err := h.walletInput(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	wallet, err := h.wallets.Create(r.Context(), uid, in)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusCreated, "Wallet created", wallet)
}

// Update handles the wallet patch request.
// PUT /wallets/{walletID}
func (h *WalletHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	in, err := h.walletInput(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	wallet, err := h.wallets.Update(r.Context(), uid, chi.URLParam(r, "walletID"), in)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "Wallet updated", wallet)
}

// Delete handles the wallet delete request, cascading to its transactions.
// DELETE /wallets/{walletID}
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	deleted, err := h.wallets.Delete(r.Context(), uid, chi.URLParam(r, "walletID"))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "Wallet deleted",
		map[string]any{"deletedTransactions": deleted})
}

// Get handles the single wallet request.
// GET /wallets/{walletID}
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	wallet, err := h.wallets.Get(r.Context(), uid, chi.URLParam(r, "walletID"))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "", wallet)
}

// List handles the wallet list request.
// GET /wallets
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	wallets, err := h.wallets.List(r.Context(), uid)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "", wallets)
}
