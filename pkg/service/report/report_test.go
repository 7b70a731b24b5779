package report_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/domain/client"
	"github.com/amirasaad/bankoffice/pkg/report"
	reportsvc "github.com/amirasaad/bankoffice/pkg/service/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

type mockClients struct{ mock.Mock }

func (m *mockClients) GetByDni(ctx context.Context, dni string) (*client.Client, error) {
	args := m.Called(ctx, dni)
	c, _ := args.Get(0).(*client.Client)
	return c, args.Error(1)
}

type mockLedger struct{ mock.Mock }

func (m *mockLedger) ListAll(ctx context.Context, number string) ([]*account.Transaction, error) {
	args := m.Called(ctx, number)
	txs, _ := args.Get(0).([]*account.Transaction)
	return txs, args.Error(1)
}

func (m *mockLedger) FilterByDateRange(ctx context.Context, number string, from, to time.Time) ([]*account.Transaction, error) {
	args := m.Called(ctx, number, from, to)
	txs, _ := args.Get(0).([]*account.Transaction)
	return txs, args.Error(1)
}

func sample(t *testing.T) (*client.Client, []*account.Transaction) {
	t.Helper()
	acc, err := account.New().WithNumber("ACC1").WithBalance(decimal.NewFromInt(80)).Build()
	require.NoError(t, err)
	c := &client.Client{Dni: "111", Name: "Ana", Email: "ana@example.com", Status: client.StatusActive, Account: acc}
	txs := []*account.Transaction{
		account.NewTransaction(acc, account.TypeRecharge, decimal.NewFromInt(80), time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)),
	}
	return c, txs
}

func TestAccountDetails(t *testing.T) {
	t.Parallel()
	c, _ := sample(t)
	clients := &mockClients{}
	clients.On("GetByDni", mock.Anything, "111").Return(c, nil)
	clients.On("GetByDni", mock.Anything, "404").Return(nil, domain.ErrNotFound)
	svc := reportsvc.New(clients, &mockLedger{}, slog.Default())

	out, err := svc.AccountDetails(context.Background(), "111")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	_, err = svc.AccountDetails(context.Background(), "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactions(t *testing.T) {
	t.Parallel()
	c, txs := sample(t)
	clients := &mockClients{}
	clients.On("GetByDni", mock.Anything, "111").Return(c, nil)
	ledger := &mockLedger{}
	ledger.On("ListAll", mock.Anything, "ACC1").Return(txs, nil).Once()
	svc := reportsvc.New(clients, ledger, slog.Default())

	out, err := svc.Transactions(context.Background(), "111")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	ledger.AssertExpectations(t)
}

func TestTransactionsPropagatesInactiveAccount(t *testing.T) {
	t.Parallel()
	c, _ := sample(t)
	clients := &mockClients{}
	clients.On("GetByDni", mock.Anything, "111").Return(c, nil)
	ledger := &mockLedger{}
	ledger.On("ListAll", mock.Anything, "ACC1").Return(nil, domain.ErrInactiveAccount)
	svc := reportsvc.New(clients, ledger, slog.Default())

	_, err := svc.Transactions(context.Background(), "111")
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}

func TestTransactionsByDateRange(t *testing.T) {
	t.Parallel()
	c, txs := sample(t)
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	clients := &mockClients{}
	clients.On("GetByDni", mock.Anything, "111").Return(c, nil)
	ledger := &mockLedger{}
	ledger.On("FilterByDateRange", mock.Anything, "ACC1", from, to).Return(txs, nil).Once()
	svc := reportsvc.New(clients, ledger, slog.Default())

	out, err := svc.TransactionsByDateRange(context.Background(), "111", from, to)
	require.NoError(t, err)
	file, err := xlsx.OpenBinary(out)
	require.NoError(t, err)
	sheet := file.Sheet[report.SheetName]
	require.NotNil(t, sheet)
	assert.Len(t, sheet.Rows, 2)

	_, err = svc.TransactionsByDateRange(context.Background(), "111", to, from)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	ledger.AssertExpectations(t)
}
