// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"salapi-backend/internal/api/types"
	"salapi-backend/internal/auth"
	"salapi-backend/internal/util"
)

// DefaultTimeout bounds request handling via the router's timeout middleware.
const DefaultTimeout = 60 * time.Second

var validate = validator.New()

// Helper function to send JSON responses.
func respondWithJSON(logger *slog.Logger, w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithSuccess(logger *slog.Logger, w http.ResponseWriter, code int, msg string, data any) {
	respondWithJSON(logger, w, code, types.APIResponse{Success: true, Msg: msg, Data: data})
}

// Helper function to send error responses. Provider errors map through their
// fixed code/message table; store errors map through the util sentinels.
func respondWithError(logger *slog.Logger, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	if code := auth.CodeOf(err); code != "" {
		respondWithJSON(logger, w, authStatus(code), types.APIResponse{Success: false, Msg: auth.Message(code)})
		return
	}

	switch {
	case util.IsError(err, util.ErrInvalidInput), util.IsError(err, util.ErrInvalidImageType):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrForbidden):
		statusCode = http.StatusForbidden
		message = "You do not have access to this resource"
	case util.IsError(err, util.ErrNotFound),
		util.IsError(err, util.ErrWalletNotFound),
		util.IsError(err, util.ErrTransactionNotFound),
		util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrNoDataInRange):
		statusCode = http.StatusNotFound
		message = err.Error()
	case util.IsError(err, util.ErrInsufficientBalance):
		statusCode = http.StatusPaymentRequired
		message = "Insufficient balance"
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = "Resource already exists"
	case util.IsError(err, util.ErrImageUpload):
		statusCode = http.StatusBadGateway
		message = "Image upload failed"
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(logger, w, statusCode, types.APIResponse{Success: false, Msg: message})
}

func authStatus(code string) int {
	switch code {
	case auth.CodeEmailAlreadyInUse:
		return http.StatusConflict
	case auth.CodeTooManyRequests:
		return http.StatusTooManyRequests
	case auth.CodeWeakPassword, auth.CodeInvalidEmail, auth.CodeInvalidToken:
		return http.StatusBadRequest
	default:
		return http.StatusUnauthorized
	}
}

// decodeAndValidate decodes a JSON body into req and runs struct validation.
func decodeAndValidate(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return util.ErrInvalidInput
	}
	if err := validate.Struct(req); err != nil {
		return util.ErrInvalidInput
	}
	return nil
}
