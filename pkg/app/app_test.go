package app_test

import (
	"context"
	"testing"

	"github.com/amirasaad/bankoffice/infra/memory"
	"github.com/amirasaad/bankoffice/pkg/app"
	"github.com/amirasaad/bankoffice/pkg/config"
	clientsvc "github.com/amirasaad/bankoffice/pkg/service/client"
	"github.com/amirasaad/bankoffice/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewWiresConfiguredLimit(t *testing.T) {
	t.Parallel()

	cfg := &config.App{Ledger: &config.Ledger{DefaultWithdrawalLimit: "1200.50"}}
	a := app.New(&app.Deps{Uow: memory.NewUoW(memory.NewStore())}, cfg,
		clientsvc.WithPasswordHasher(func(p string) (string, error) {
			return utils.HashPasswordWithCost(p, bcrypt.MinCost)
		}),
	)
	require.NotNil(t, a.LedgerService)
	require.NotNil(t, a.ReportService)
	require.NotNil(t, a.Deps.Metrics)

	c, err := a.ClientService.Register(context.Background(), clientsvc.Registration{
		Dni: "111", Name: "Ana", Email: "ana@example.com", Password: "pw",
	})
	require.NoError(t, err)
	assert.True(t, c.Account.WithdrawalLimit.Equal(decimal.RequireFromString("1200.50")))

	acc, err := a.LedgerService.GetAccount(context.Background(), c.Account.Number)
	require.NoError(t, err)
	assert.Equal(t, c.Account.ID, acc.ID)
}
