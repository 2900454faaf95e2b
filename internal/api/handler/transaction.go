// internal/api/handler/transaction.go
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/service"
	"salapi-backend/internal/util"
)

// TransactionHandler handles HTTP requests related to transaction operations.
type TransactionHandler struct {
	transactions *service.TransactionService
	logger       *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactions *service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, logger: logger}
}

// TransactionRequest represents the request body for transaction create/update.
type TransactionRequest struct {
	WalletID       string          `json:"walletId" validate:"required"`
	Type           string          `json:"type" validate:"required,oneof=income expense"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	Category       string          `json:"category"`
	CustomCategory string          `json:"customCategory"`
	Description    string          `json:"description"`
	Date           time.Time       `json:"date" validate:"required"`
}

// transactionInput builds the service input from either a JSON body or a
// multipart form carrying a receipt image.
func (h *TransactionHandler) transactionInput(r *http.Request) (service.TransactionInput, error) {
	var in service.TransactionInput

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return in, fmt.Errorf("%w: malformed form", util.ErrInvalidInput)
		}

		amount, err := decimal.NewFromString(r.FormValue("amount"))
		if err != nil {
			return in, fmt.Errorf("%w: invalid amount %q", util.ErrInvalidInput, r.FormValue("amount"))
		}
		date, err := parseDate(r.FormValue("date"))
		if err != nil {
			return in, err
		}
		image, err := formImage(r)
		if err != nil {
			return in, err
		}

		in = service.TransactionInput{
			WalletID:       r.FormValue("walletId"),
			Type:           domain.TransactionType(r.FormValue("type")),
			Amount:         amount,
			Category:       r.FormValue("category"),
			CustomCategory: r.FormValue("customCategory"),
			Description:    r.FormValue("description"),
			Date:           date,
			Image:          image,
		}
		return in, nil
	}

	var req TransactionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		return in, err
	}
	in = service.TransactionInput{
		WalletID:       req.WalletID,
		Type:           domain.TransactionType(req.Type),
		Amount:         req.Amount,
		Category:       req.Category,
		CustomCategory: req.CustomCategory,
		Description:    req.Description,
		Date:           req.Date,
	}
	return in, nil
}

// Create handles the new transaction request.
// POST /transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	in, err := h.transactionInput(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	transaction, err := h.transactions.Create(r.Context(), uid, in)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusCreated, "Transaction created", transaction)
}

// Update handles the transaction rewrite request.
// PUT /transactions/{transactionID}
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	in, err := h.transactionInput(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	transaction, err := h.transactions.Update(r.Context(), uid, chi.URLParam(r, "transactionID"), in)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "Transaction updated", transaction)
}

// Delete handles the transaction delete request.
// DELETE /transactions/{transactionID}
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	if err := h.transactions.Delete(r.Context(), uid, chi.URLParam(r, "transactionID")); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "Transaction deleted", nil)
}

// Get handles the single transaction request.
// GET /transactions/{transactionID}
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	transaction, err := h.transactions.Get(r.Context(), uid, chi.URLParam(r, "transactionID"))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "", transaction)
}

// List handles the transaction history request, optionally scoped to one
// wallet or filtered by a search query.
// GET /transactions?walletId=...&q=...
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	var (
		transactions []domain.Transaction
		err          error
	)
	switch {
	case r.URL.Query().Get("walletId") != "":
		transactions, err = h.transactions.ListByWallet(r.Context(), uid, r.URL.Query().Get("walletId"))
	case r.URL.Query().Get("q") != "":
		transactions, err = h.transactions.Search(r.Context(), uid, r.URL.Query().Get("q"))
	default:
		transactions, err = h.transactions.ListByUID(r.Context(), uid)
	}
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "", transactions)
}

// Categories returns the fixed category catalog for transaction entry.
// GET /transactions/categories
func (h *TransactionHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUID(h.logger, w, r); !ok {
		return
	}

	respondWithSuccess(h.logger, w, http.StatusOK, "", map[string]any{
		"expense": domain.ExpenseCategories,
		"income":  domain.IncomeCategory,
	})
}
