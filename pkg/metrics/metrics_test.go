package metrics_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *metrics.Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	assert.Equal(t, metrics.OutcomeSuccess, metrics.Outcome(nil))
	assert.Equal(t, metrics.OutcomeRejected, metrics.Outcome(fmt.Errorf("%w: x", domain.ErrInsufficientFunds)))
	assert.Equal(t, metrics.OutcomeError, metrics.Outcome(errors.New("db down")))
}

func TestObserveLedgerOperation(t *testing.T) {
	t.Parallel()

	c := metrics.NewCollector()
	c.ObserveLedgerOperation("recharge", 5*time.Millisecond, nil)
	c.ObserveLedgerOperation("withdraw", time.Millisecond, domain.ErrInsufficientFunds)

	body := scrape(t, c)
	assert.Contains(t, body, `bankoffice_ledger_operations_total{operation="recharge",outcome="success"} 1`)
	assert.Contains(t, body, `bankoffice_ledger_operations_total{operation="withdraw",outcome="rejected"} 1`)
	assert.Contains(t, body, `bankoffice_ledger_operation_duration_seconds_count{operation="recharge"} 1`)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	c := metrics.NewCollector()
	app := fiber.New()
	app.Use(c.Middleware())
	app.Get("/accounts/:number", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/accounts/A1", nil))
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	body := scrape(t, c)
	assert.Contains(t, body,
		`bankoffice_http_request_duration_seconds_count{method="GET",route="/accounts/:number",status="204"} 1`)
}
