// internal/api/types/response.go
package types

// APIResponse is the uniform envelope every endpoint returns. Msg carries
// the user-facing message on failures and on mutations; Data carries the
// payload when there is one.
type APIResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// TokenResponse is the login payload: a signed session token plus the
// profile it belongs to.
type TokenResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}
