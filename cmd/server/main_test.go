package main

import (
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/amirasaad/bankoffice/infra/initializer"
	"github.com/amirasaad/bankoffice/pkg/app"
	"github.com/amirasaad/bankoffice/pkg/config"
	"github.com/amirasaad/bankoffice/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", listenAddr(&config.Server{Host: "0.0.0.0", Port: 8080}))
	assert.Equal(t, ":9000", listenAddr(&config.Server{Port: 9000}))
}

func TestServerWiring(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("MAIL_ENABLED", "false")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.Load(os.DevNull)
	require.NoError(t, err)

	deps, err := initializer.InitializeDependencies(cfg)
	require.NoError(t, err)
	fiberApp := webapi.SetupApp(app.New(deps, cfg))

	resp, err := fiberApp.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, body)

	resp, err = fiberApp.Test(httptest.NewRequest(fiber.MethodGet, "/swagger/doc.json", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
