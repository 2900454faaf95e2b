// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "salapi-backend/internal/api"
	"salapi-backend/internal/api/handler"
	"salapi-backend/internal/auth"
	"salapi-backend/internal/config"
	"salapi-backend/internal/imagestore"
	"salapi-backend/internal/repository"
	"salapi-backend/internal/repository/postgres"
	"salapi-backend/internal/service"
	"salapi-backend/internal/util"
	"salapi-backend/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	WalletRepository      repository.WalletRepository
	TransactionRepository repository.TransactionRepository

	// Auth
	AuthProvider auth.Provider
	Tokens       *auth.TokenManager

	// Services
	WalletService      *service.WalletService
	TransactionService *service.TransactionService
	StatsService       *service.StatsService
	ExportService      *service.ExportService
	AccountService     *service.AccountService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Auth
	identityStore := auth.NewPostgresIdentityStore(app.DB)
	mailer := auth.NewLogMailer(app.Logger)
	app.AuthProvider = auth.NewLocalProvider(identityStore, mailer, app.Logger)
	app.Tokens = auth.NewTokenManager(app.Config.JWTSecret, app.Config.SessionTTL)
	app.Logger.Info("Auth provider initialized.")

	// 6. Initialize Services
	images := imagestore.NewDiskStore(app.Config.ImageDir, app.Config.ImageBaseURL)
	ledger := service.NewLedger(app.WalletRepository, app.Logger)

	app.WalletService = service.NewWalletService(
		app.WalletRepository,
		app.TransactionRepository,
		images,
		app.Logger,
	)
	app.TransactionService = service.NewTransactionService(
		app.TransactionRepository,
		app.WalletRepository,
		ledger,
		images,
		app.Logger,
	)
	app.StatsService = service.NewStatsService(app.TransactionRepository, app.Logger)
	app.ExportService = service.NewExportService(app.TransactionRepository, app.UserRepository, app.Config.ExportDir, app.Logger)
	app.AccountService = service.NewAccountService(
		app.AuthProvider,
		app.Tokens,
		app.UserRepository,
		app.WalletRepository,
		app.TransactionRepository,
		images,
		app.Logger,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(app.AccountService, app.Logger),
		Account:     handler.NewAccountHandler(app.AccountService, app.Logger),
		Wallet:      handler.NewWalletHandler(app.WalletService, app.Logger),
		Transaction: handler.NewTransactionHandler(app.TransactionService, app.Logger),
		Stats:       handler.NewStatsHandler(app.StatsService, app.Logger),
		Export:      handler.NewExportHandler(app.ExportService, app.Logger),
	}
	app.HTTPHandler = router.NewRouter(handlers, app.Tokens, app.Config.ImageDir, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
