// internal/auth/local_test.go
package auth

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMailer captures outgoing mail for inspection.
type recordingMailer struct {
	to     []string
	bodies []string
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.to = append(m.to, to)
	m.bodies = append(m.bodies, body)
	return nil
}

// lastToken pulls the verification token out of the most recent mail body.
func (m *recordingMailer) lastToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.bodies)
	fields := strings.Fields(m.bodies[len(m.bodies)-1])
	return fields[len(fields)-1]
}

func newProviderFixture(t *testing.T) (*LocalProvider, *recordingMailer) {
	t.Helper()
	mailer := &recordingMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLocalProvider(NewMemoryIdentityStore(), mailer, logger), mailer
}

func TestSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	provider, _ := newProviderFixture(t)

	identity, err := provider.SignUp(ctx, "Maria@Example.com ", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, identity.UID)
	assert.Equal(t, "maria@example.com", identity.Email)
	assert.False(t, identity.EmailVerified)

	// Sign-in normalizes the email the same way.
	signedIn, err := provider.SignIn(ctx, "MARIA@example.COM", "secret1")
	require.NoError(t, err)
	assert.Equal(t, identity.UID, signedIn.UID)
}

func TestSignUpValidation(t *testing.T) {
	ctx := context.Background()
	provider, _ := newProviderFixture(t)

	_, err := provider.SignUp(ctx, "nope", "secret1")
	assert.Equal(t, CodeInvalidEmail, CodeOf(err))

	_, err = provider.SignUp(ctx, "maria@example.com", "short")
	assert.Equal(t, CodeWeakPassword, CodeOf(err))

	_, err = provider.SignUp(ctx, "maria@example.com", "secret1")
	require.NoError(t, err)
	_, err = provider.SignUp(ctx, "maria@example.com", "another1")
	assert.Equal(t, CodeEmailAlreadyInUse, CodeOf(err))
}

func TestSignInFailuresUseOneCode(t *testing.T) {
	ctx := context.Background()
	provider, _ := newProviderFixture(t)
	_, err := provider.SignUp(ctx, "maria@example.com", "secret1")
	require.NoError(t, err)

	// Wrong password and unknown account are indistinguishable to a caller.
	_, err = provider.SignIn(ctx, "maria@example.com", "wrong")
	assert.Equal(t, CodeInvalidCredential, CodeOf(err))
	_, err = provider.SignIn(ctx, "nobody@example.com", "whatever")
	assert.Equal(t, CodeInvalidCredential, CodeOf(err))
}

func TestSignInThrottlesRepeatedFailures(t *testing.T) {
	ctx := context.Background()
	provider, _ := newProviderFixture(t)
	_, err := provider.SignUp(ctx, "maria@example.com", "secret1")
	require.NoError(t, err)

	for i := 0; i < maxFailedAttempts; i++ {
		_, err = provider.SignIn(ctx, "maria@example.com", "wrong")
		assert.Equal(t, CodeInvalidCredential, CodeOf(err))
	}

	// Even the correct password is refused while throttled.
	_, err = provider.SignIn(ctx, "maria@example.com", "secret1")
	assert.Equal(t, CodeTooManyRequests, CodeOf(err))
}

func TestEmailVerificationFlow(t *testing.T) {
	ctx := context.Background()
	provider, mailer := newProviderFixture(t)
	identity, err := provider.SignUp(ctx, "maria@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, provider.SendVerificationEmail(ctx, identity.UID))
	assert.Equal(t, []string{"maria@example.com"}, mailer.to)

	_, err = provider.VerifyEmail(ctx, "bogus-token")
	assert.Equal(t, CodeInvalidToken, CodeOf(err))

	verified, err := provider.VerifyEmail(ctx, mailer.lastToken(t))
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)

	// The token is single-use.
	_, err = provider.VerifyEmail(ctx, mailer.lastToken(t))
	assert.Equal(t, CodeInvalidToken, CodeOf(err))

	// Verified identities do not get another mail.
	require.NoError(t, provider.SendVerificationEmail(ctx, identity.UID))
	assert.Len(t, mailer.to, 1)
}

func TestChangePasswordRequiresRecentReauth(t *testing.T) {
	ctx := context.Background()
	provider, _ := newProviderFixture(t)
	identity, err := provider.SignUp(ctx, "maria@example.com", "secret1")
	require.NoError(t, err)

	err = provider.ChangePassword(ctx, identity.UID, "newsecret1")
	assert.Equal(t, CodeRequiresRecentLogin, CodeOf(err))

	err = provider.Reauthenticate(ctx, identity.UID, "wrong")
	assert.Equal(t, CodeWrongPassword, CodeOf(err))

	require.NoError(t, provider.Reauthenticate(ctx, identity.UID, "secret1"))
	assert.Equal(t, CodeWeakPassword, CodeOf(provider.ChangePassword(ctx, identity.UID, "tiny")))
	require.NoError(t, provider.ChangePassword(ctx, identity.UID, "newsecret1"))

	_, err = provider.SignIn(ctx, "maria@example.com", "secret1")
	assert.Equal(t, CodeInvalidCredential, CodeOf(err))
	_, err = provider.SignIn(ctx, "maria@example.com", "newsecret1")
	assert.NoError(t, err)
}

func TestDeleteIdentity(t *testing.T) {
	ctx := context.Background()
	provider, _ := newProviderFixture(t)
	identity, err := provider.SignUp(ctx, "maria@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, provider.DeleteIdentity(ctx, identity.UID))
	_, err = provider.GetIdentity(ctx, identity.UID)
	assert.Equal(t, CodeUserNotFound, CodeOf(err))
	assert.Equal(t, CodeUserNotFound, CodeOf(provider.DeleteIdentity(ctx, identity.UID)))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Invalid email or password. Please try again.", Message(CodeWrongPassword))
	assert.Equal(t, "An account with this email already exists.", Message(CodeEmailAlreadyInUse))
	assert.Equal(t, "An unexpected error occurred. Please try again.", Message("auth/some-new-code"))

	// The change-password flow rewords credential failures.
	assert.Equal(t, "Current password is incorrect.", PasswordChangeMessage(CodeWrongPassword))
	assert.Equal(t, "Please log in again before changing your password.", PasswordChangeMessage(CodeRequiresRecentLogin))
}
