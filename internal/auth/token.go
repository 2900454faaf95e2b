// internal/auth/token.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies HMAC-signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager with the given signing secret and
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the identity.
func (m *TokenManager) Issue(identity *Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":   identity.UID,
		"email": identity.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies a session token and returns the session it carries.
func (m *TokenManager) Parse(tokenStr string) (*Session, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, NewError(CodeRequiresRecentLogin)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, NewError(CodeRequiresRecentLogin)
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return nil, NewError(CodeRequiresRecentLogin)
	}
	email, _ := claims["email"].(string)

	return &Session{UID: uid, Email: email}, nil
}
