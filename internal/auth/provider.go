// internal/auth/provider.go
package auth

import "context"

// Identity is the authentication-side view of a user. Core services only
// ever need the UID; the rest is used by the auth flows themselves.
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
}

// Session is the explicit session object passed into core operations,
// extracted from a verified token. Core code never reads ambient state.
type Session struct {
	UID   string
	Email string
}

// Provider is the authentication collaborator contract.
type Provider interface {
	// SignUp registers a new identity with an email/password credential.
	SignUp(ctx context.Context, email, password string) (*Identity, error)
	// SignIn verifies a credential and returns the identity.
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	// SendVerificationEmail issues a verification token and mails it.
	SendVerificationEmail(ctx context.Context, uid string) error
	// VerifyEmail consumes a verification token and marks the identity verified.
	VerifyEmail(ctx context.Context, token string) (*Identity, error)
	// Reauthenticate re-proves the current password for a signed-in identity.
	Reauthenticate(ctx context.Context, uid, currentPassword string) error
	// ChangePassword sets a new password. Requires a recent Reauthenticate.
	ChangePassword(ctx context.Context, uid, newPassword string) error
	// DeleteIdentity permanently removes the identity.
	DeleteIdentity(ctx context.Context, uid string) error
	// GetIdentity looks up an identity by uid.
	GetIdentity(ctx context.Context, uid string) (*Identity, error)
}

// Mailer delivers verification emails. The production wiring logs them;
// swapping in a real SMTP sender is a deployment concern.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
