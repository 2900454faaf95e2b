// internal/api/handler/middleware.go
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"salapi-backend/internal/api/types"
	"salapi-backend/internal/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// RequireSession verifies the bearer token on every request and injects the
// resulting session into the context. Requests without a valid token are
// rejected before reaching a handler.
func RequireSession(tokens *auth.TokenManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				respondWithJSON(logger, w, http.StatusUnauthorized, types.APIResponse{
					Success: false,
					Msg:     "Missing or malformed authorization header",
				})
				return
			}

			session, err := tokens.Parse(tokenStr)
			if err != nil {
				respondWithJSON(logger, w, http.StatusUnauthorized, types.APIResponse{
					Success: false,
					Msg:     auth.Message(auth.CodeOf(err)),
				})
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFrom extracts the verified session injected by RequireSession.
func sessionFrom(r *http.Request) (*auth.Session, bool) {
	session, ok := r.Context().Value(sessionContextKey).(*auth.Session)
	return session, ok
}

// requireUID is the per-handler guard: it returns the session uid or writes
// a 401 and reports false.
func requireUID(logger *slog.Logger, w http.ResponseWriter, r *http.Request) (string, bool) {
	session, ok := sessionFrom(r)
	if !ok {
		respondWithJSON(logger, w, http.StatusUnauthorized, types.APIResponse{
			Success: false,
			Msg:     "Authentication required",
		})
		return "", false
	}
	return session.UID, true
}
