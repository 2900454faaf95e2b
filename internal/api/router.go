// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"salapi-backend/internal/api/handler"
	"salapi-backend/internal/auth"
)

// Handlers bundles the per-area handlers the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Account     *handler.AccountHandler
	Wallet      *handler.WalletHandler
	Transaction *handler.TransactionHandler
	Stats       *handler.StatsHandler
	Export      *handler.ExportHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, tokens *auth.TokenManager, imageDir string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Public auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Get("/verify", h.Auth.VerifyEmail)

		// Credential maintenance requires a session
		r.Group(func(r chi.Router) {
			r.Use(handler.RequireSession(tokens, logger))
			r.Post("/resend-verification", h.Auth.ResendVerification)
			r.Post("/change-password", h.Auth.ChangePassword)
		})
	})

	// Stored images are served straight off disk
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(imageDir))))

	// Everything below requires a verified session token
	r.Group(func(r chi.Router) {
		r.Use(handler.RequireSession(tokens, logger))

		r.Route("/wallets", func(r chi.Router) {
			r.Post("/", h.Wallet.Create)
			r.Get("/", h.Wallet.List)
			r.Get("/{walletID}", h.Wallet.Get)
			r.Put("/{walletID}", h.Wallet.Update)
			r.Delete("/{walletID}", h.Wallet.Delete)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", h.Transaction.Create)
			r.Get("/", h.Transaction.List)
			r.Get("/categories", h.Transaction.Categories)
			r.Get("/{transactionID}", h.Transaction.Get)
			r.Put("/{transactionID}", h.Transaction.Update)
			r.Delete("/{transactionID}", h.Transaction.Delete)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/weekly", h.Stats.Weekly)
			r.Get("/monthly", h.Stats.Monthly)
			r.Get("/yearly", h.Stats.Yearly)
		})

		r.Route("/export", func(r chi.Router) {
			r.Get("/csv", h.Export.CSV)
			r.Get("/pdf", h.Export.PDF)
			r.Get("/statement", h.Export.Statement)
			r.Get("/range", h.Export.Range)
		})

		r.Route("/account", func(r chi.Router) {
			r.Get("/", h.Account.Profile)
			r.Put("/", h.Account.UpdateProfile)
			r.Delete("/", h.Account.Delete)
		})
	})

	return r
}
