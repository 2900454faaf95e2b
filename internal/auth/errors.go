// internal/auth/errors.go
package auth

// Provider error codes. They deliberately mirror the upstream auth
// provider's code space so the message table below stays a fixed lookup.
const (
	CodeInvalidCredential   = "auth/invalid-credential"
	CodeInvalidEmail        = "auth/invalid-email"
	CodeUserNotFound        = "auth/user-not-found"
	CodeWrongPassword       = "auth/wrong-password"
	CodeTooManyRequests     = "auth/too-many-requests"
	CodeEmailAlreadyInUse   = "auth/email-already-in-use"
	CodeWeakPassword        = "auth/weak-password"
	CodeRequiresRecentLogin = "auth/requires-recent-login"
	CodeEmailNotVerified    = "auth/email-not-verified"
	CodeInvalidToken        = "auth/invalid-action-code"
	CodeInternalError       = "auth/internal-error"
)

// Error is a provider failure carrying a stable code.
type Error struct {
	Code string
}

func (e *Error) Error() string {
	return Message(e.Code)
}

// NewError returns a provider error for the given code.
func NewError(code string) *Error {
	return &Error{Code: code}
}

// CodeOf extracts the provider code from an error, or "" if the error did
// not originate from the provider.
func CodeOf(err error) string {
	if pe, ok := err.(*Error); ok {
		return pe.Code
	}
	return ""
}

var errorMessages = map[string]string{
	// Login errors
	CodeInvalidCredential: "Invalid email or password. Please try again.",
	CodeInvalidEmail:      "Please enter a valid email address.",
	CodeUserNotFound:      "Invalid email or password. Please try again.",
	CodeWrongPassword:     "Invalid email or password. Please try again.",
	CodeTooManyRequests:   "Too many failed attempts. Please try again later.",

	// Registration errors
	CodeEmailAlreadyInUse: "An account with this email already exists.",
	CodeWeakPassword:      "Password is too weak. Please choose a stronger password.",

	// Session errors
	CodeRequiresRecentLogin: "Please log in again before retrying this request.",
	CodeEmailNotVerified:    "Please verify your email before logging in. Check your inbox.",
	CodeInvalidToken:        "This verification link is invalid or has expired.",

	// General errors
	CodeInternalError: "Something went wrong. Please try again later.",
}

// Message maps a provider code to a stable user-facing string. Unmapped
// codes fall back to a generic message.
func Message(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An unexpected error occurred. Please try again."
}

// PasswordChangeMessage maps a provider code to the message shown on the
// change-password flow, where a wrong password means the *current* password.
func PasswordChangeMessage(code string) string {
	switch code {
	case CodeWrongPassword, CodeInvalidCredential:
		return "Current password is incorrect."
	case CodeWeakPassword:
		return "New password is too weak. Please choose a stronger password."
	case CodeTooManyRequests:
		return "Too many failed attempts. Please try again later."
	case CodeRequiresRecentLogin:
		return "Please log in again before changing your password."
	}
	return Message(code)
}
