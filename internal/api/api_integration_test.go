// internal/api/api_integration_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salapi-backend/internal/api/handler"
	"salapi-backend/internal/auth"
	"salapi-backend/internal/imagestore"
	"salapi-backend/internal/repository/memory"
	"salapi-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMailer struct {
	bodies []string
}

func (m *testMailer) Send(ctx context.Context, to, subject, body string) error {
	m.bodies = append(m.bodies, body)
	return nil
}

func (m *testMailer) lastToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.bodies)
	fields := strings.Fields(m.bodies[len(m.bodies)-1])
	return fields[len(fields)-1]
}

// newTestServer wires the full HTTP stack over in-memory stores.
func newTestServer(t *testing.T) (*httptest.Server, *testMailer) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mailer := &testMailer{}

	wallets := memory.NewWalletRepository()
	transactions := memory.NewTransactionRepository()
	users := memory.NewUserRepository()
	provider := auth.NewLocalProvider(auth.NewMemoryIdentityStore(), mailer, logger)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	images := imagestore.NewDiskStore(t.TempDir(), "/images")
	ledger := service.NewLedger(wallets, logger)

	walletSvc := service.NewWalletService(wallets, transactions, images, logger)
	transactionSvc := service.NewTransactionService(transactions, wallets, ledger, images, logger)
	statsSvc := service.NewStatsService(transactions, logger)
	exportSvc := service.NewExportService(transactions, users, t.TempDir(), logger)
	accountSvc := service.NewAccountService(provider, tokens, users, wallets, transactions, images, logger)

	handlers := Handlers{
		Auth:        handler.NewAuthHandler(accountSvc, logger),
		Account:     handler.NewAccountHandler(accountSvc, logger),
		Wallet:      handler.NewWalletHandler(walletSvc, logger),
		Transaction: handler.NewTransactionHandler(transactionSvc, logger),
		Stats:       handler.NewStatsHandler(statsSvc, logger),
		Export:      handler.NewExportHandler(exportSvc, logger),
	}

	server := httptest.NewServer(NewRouter(handlers, tokens, t.TempDir(), logger))
	t.Cleanup(server.Close)
	return server, mailer
}

type envelope struct {
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

// registerAndLogin walks the whole signup flow over HTTP and returns a
// session token.
func registerAndLogin(t *testing.T, server *httptest.Server, mailer *testMailer) string {
	t.Helper()
	resp, _ := doJSON(t, http.MethodPost, server.URL+"/auth/register", "", map[string]string{
		"name": "Maria", "email": "maria@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/auth/verify?token="+mailer.lastToken(t), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/auth/login", "", map[string]string{
		"email": "maria@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func TestAPIRejectsMissingToken(t *testing.T) {
	server, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, server.URL+"/wallets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/wallets", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPILoginRequiresVerifiedEmail(t *testing.T) {
	server, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/auth/register", "", map[string]string{
		"name": "Maria", "email": "maria@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/auth/login", "", map[string]string{
		"email": "maria@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, env.Msg, "verify your email")
}

func TestAPIWalletAndTransactionFlow(t *testing.T) {
	server, mailer := newTestServer(t)
	token := registerAndLogin(t, server, mailer)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/wallets", token, map[string]any{"name": "Cash"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var wallet struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &wallet))

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/transactions", token, map[string]any{
		"walletId": wallet.ID, "type": "income", "amount": 100,
		"date": "2026-03-01T12:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Overdrawing the wallet is refused with 402.
	resp, env = doJSON(t, http.MethodPost, server.URL+"/transactions", token, map[string]any{
		"walletId": wallet.ID, "type": "expense", "amount": 150,
		"date": "2026-03-02T12:00:00Z",
	})
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Equal(t, "Insufficient balance", env.Msg)

	resp, env = doJSON(t, http.MethodGet, server.URL+"/wallets/"+wallet.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Amount string `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "100", got.Amount)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/stats/weekly", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPIExportEmptyRange(t *testing.T) {
	server, mailer := newTestServer(t)
	token := registerAndLogin(t, server, mailer)

	resp, env := doJSON(t, http.MethodGet, server.URL+"/export/csv?from=2020-01-01&to=2020-01-31", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, env.Msg, "no data available")

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/export/csv", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
