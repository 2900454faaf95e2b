// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrForbidden           = errors.New("resource belongs to another user")
	ErrNoDataInRange       = errors.New("no data available for the selected period")
	ErrImageUpload         = errors.New("image upload failed")
	ErrInvalidImageType    = errors.New("invalid file type. Only JPEG, PNG, GIF, and WebP images are allowed")
	ErrDuplicateEntry      = errors.New("duplicate entry")
)

// IsError reports whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
