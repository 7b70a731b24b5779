// Package testutils builds an in-memory application and issues requests
// against it for handler tests.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/amirasaad/bankoffice/infra/memory"
	"github.com/amirasaad/bankoffice/pkg/app"
	"github.com/amirasaad/bankoffice/pkg/config"
	"github.com/amirasaad/bankoffice/pkg/metrics"
	clientsvc "github.com/amirasaad/bankoffice/pkg/service/client"
	"github.com/amirasaad/bankoffice/pkg/utils"
	"github.com/amirasaad/bankoffice/webapi"
	"github.com/amirasaad/bankoffice/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Mail is a message captured by RecordingNotifier.
type Mail struct {
	To, Subject, Body string
}

// RecordingNotifier keeps every message instead of sending it.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []Mail
}

func (n *RecordingNotifier) SendEmail(_ context.Context, to, subject, htmlBody string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, Mail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// Sent returns a copy of the captured messages.
func (n *RecordingNotifier) Sent() []Mail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Mail(nil), n.sent...)
}

// TestApp bundles the fiber app with the backing in-memory state.
type TestApp struct {
	Fiber    *fiber.App
	App      *app.App
	Store    *memory.Store
	Notifier *RecordingNotifier
}

// NewTestApp wires the full HTTP stack over an in-memory store. Rate
// limiting is disabled and passwords are hashed at the minimum bcrypt cost.
func NewTestApp(t *testing.T) *TestApp {
	t.Helper()
	store := memory.NewStore()
	notifier := &RecordingNotifier{}
	cfg := &config.App{
		Env:    "test",
		Ledger: &config.Ledger{DefaultWithdrawalLimit: "5000"},
	}
	deps := &app.Deps{
		Uow:      memory.NewUoW(store),
		Notifier: notifier,
		Metrics:  metrics.NewCollector(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	a := app.New(deps, cfg, clientsvc.WithPasswordHasher(func(p string) (string, error) {
		return utils.HashPasswordWithCost(p, bcrypt.MinCost)
	}))
	return &TestApp{
		Fiber:    webapi.SetupApp(a),
		App:      a,
		Store:    store,
		Notifier: notifier,
	}
}

// MakeRequestWithApp is a helper for making HTTP requests with a standalone app (for non-suite tests)
func MakeRequestWithApp(app *fiber.App, method, path, body string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err) // For standalone tests, panic on error
	}
	return resp
}

// Do issues a request against the test app.
func (a *TestApp) Do(method, path, body string) *http.Response {
	return MakeRequestWithApp(a.Fiber, method, path, body)
}

// DecodeResponse reads a success envelope and closes the body.
func DecodeResponse(t *testing.T, resp *http.Response) common.Response {
	t.Helper()
	defer resp.Body.Close() //nolint: errcheck
	var out common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// DecodeProblem reads a problem details body and closes it.
func DecodeProblem(t *testing.T, resp *http.Response) common.ProblemDetails {
	t.Helper()
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	var out common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// DataMap returns the envelope data as a JSON object.
func DataMap(t *testing.T, r common.Response) map[string]any {
	t.Helper()
	m, ok := r.Data.(map[string]any)
	require.True(t, ok, "data is %T", r.Data)
	return m
}

// RegisterClient registers a client over HTTP and returns its account
// number.
func (a *TestApp) RegisterClient(t *testing.T, dni, email string) string {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"dni":      dni,
		"name":     "Client " + dni,
		"email":    email,
		"password": "secret123",
		"address":  "Main Street " + dni,
	})
	require.NoError(t, err)
	resp := a.Do(fiber.MethodPost, "/api/v1/clients/client", string(body))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := DataMap(t, DecodeResponse(t, resp))
	acc, ok := data["bankingAccount"].(map[string]any)
	require.True(t, ok)
	number, ok := acc["accountNumber"].(string)
	require.True(t, ok)
	return number
}

// Recharge credits number over HTTP and fails the test unless it succeeds.
func (a *TestApp) Recharge(t *testing.T, number, amount string) {
	t.Helper()
	resp := a.Do(fiber.MethodPost,
		"/api/v1/accounts/account/"+number+"/transactions/transaction/recharge/"+amount, "")
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
