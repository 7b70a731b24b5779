package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "memory")

	cfg, err := Load("definitely-not-here.env")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, "5000", cfg.Ledger.DefaultWithdrawalLimit)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "LEDGER_DEFAULT_WITHDRAWAL_LIMIT=250\nMAIL_PORT=2525\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("LEDGER_DEFAULT_WITHDRAWAL_LIMIT")
		_ = os.Unsetenv("MAIL_PORT")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "250", cfg.Ledger.DefaultWithdrawalLimit)
	assert.Equal(t, 2525, cfg.Mail.Port)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "****", maskValue("short"))
	assert.Equal(t, "po****able", maskValue("postgres://u:p@h/db?sslmode=disable"))
}
