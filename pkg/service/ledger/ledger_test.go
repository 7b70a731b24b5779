package ledger_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/bankoffice/infra/memory"
	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/repository"
	"github.com/amirasaad/bankoffice/pkg/service/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) ObserveLedgerOperation(operation string, elapsed time.Duration, err error) {
	m.Called(operation, elapsed, err)
}

type LedgerTestSuite struct {
	suite.Suite
	ctx context.Context
	uow *memory.UoW
	svc *ledger.Service
}

func (s *LedgerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow = memory.NewUoW(memory.NewStore())
	s.svc = ledger.New(s.uow, slog.Default(), ledger.WithClock(func() time.Time { return fixedNow }))
}

func (s *LedgerTestSuite) seed(number string, balance, limit int64, status account.Status) *account.Account {
	acc, err := account.New().
		WithNumber(number).
		WithBalance(decimal.NewFromInt(balance)).
		WithWithdrawalLimit(decimal.NewFromInt(limit)).
		WithStatus(status).
		Build()
	s.Require().NoError(err)
	repo, err := s.uow.AccountRepository()
	s.Require().NoError(err)
	s.Require().NoError(repo.Create(s.ctx, acc))
	return acc
}

func (s *LedgerTestSuite) balance(number string) decimal.Decimal {
	acc, err := s.svc.GetAccount(s.ctx, number)
	s.Require().NoError(err)
	return acc.Balance
}

func (s *LedgerTestSuite) entries(number string) []*account.Transaction {
	txs, err := s.svc.ListAll(s.ctx, number)
	s.Require().NoError(err)
	return txs
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) TestRecharge() {
	s.seed("A1", 0, 5000, account.StatusActive)

	tx, err := s.svc.Recharge(s.ctx, "A1", dec(100))
	s.Require().NoError(err)
	s.Equal(account.TypeRecharge, tx.Type)
	s.Equal(account.DirectionCredit, tx.Direction)
	s.Equal(fixedNow, tx.ExecutedAt)
	s.NotZero(tx.ID)
	s.True(s.balance("A1").Equal(dec(100)))
	s.Len(s.entries("A1"), 1)
}

func (s *LedgerTestSuite) TestRechargeRejectsNonPositiveAmount() {
	s.seed("A1", 0, 5000, account.StatusActive)

	_, err := s.svc.Recharge(s.ctx, "A1", decimal.Zero)
	s.ErrorIs(err, domain.ErrInvalidTransaction)
	_, err = s.svc.Recharge(s.ctx, "A1", dec(-5))
	s.ErrorIs(err, domain.ErrInvalidTransaction)
	s.Empty(s.entries("A1"))
}

func (s *LedgerTestSuite) TestFractionsOfACentAreRejected() {
	s.seed("A", 500, 5000, account.StatusActive)
	s.seed("B", 0, 5000, account.StatusActive)
	tiny := decimal.RequireFromString("0.001")

	_, err := s.svc.Recharge(s.ctx, "A", tiny)
	s.ErrorIs(err, domain.ErrInvalidTransaction)
	_, err = s.svc.Withdraw(s.ctx, "A", tiny)
	s.ErrorIs(err, domain.ErrInvalidTransaction)
	_, err = s.svc.Transfer(s.ctx, "A", "B", tiny)
	s.ErrorIs(err, domain.ErrInvalidTransaction)
	s.Empty(s.entries("A"))

	tx, err := s.svc.Recharge(s.ctx, "A", dec(10))
	s.Require().NoError(err)
	_, err = s.svc.UpdateTransaction(s.ctx, "A", tx.ID, ledger.TransactionPatch{Amount: &tiny})
	s.ErrorIs(err, domain.ErrInvalidTransaction)

	s.True(s.balance("A").Equal(dec(510)))
	s.True(s.balance("B").IsZero())
	got, err := s.svc.GetTransaction(s.ctx, "A", tx.ID)
	s.Require().NoError(err)
	s.True(got.Amount.Equal(dec(10)))
}

func (s *LedgerTestSuite) TestRechargeInactiveAccount() {
	s.seed("A1", 0, 5000, account.StatusFrozen)

	_, err := s.svc.Recharge(s.ctx, "A1", dec(10))
	s.ErrorIs(err, domain.ErrInactiveAccount)
	s.True(s.balance("A1").IsZero())
}

func (s *LedgerTestSuite) TestRechargeUnknownAccount() {
	_, err := s.svc.Recharge(s.ctx, "nope", dec(10))
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *LedgerTestSuite) TestWithdraw() {
	s.seed("A1", 500, 5000, account.StatusActive)

	tx, err := s.svc.Withdraw(s.ctx, "A1", dec(200))
	s.Require().NoError(err)
	s.Equal(account.TypeWithdrawal, tx.Type)
	s.Equal(account.DirectionDebit, tx.Direction)
	s.True(s.balance("A1").Equal(dec(300)))
}

func (s *LedgerTestSuite) TestWithdrawExactBalance() {
	s.seed("A1", 500, 5000, account.StatusActive)

	_, err := s.svc.Withdraw(s.ctx, "A1", dec(500))
	s.Require().NoError(err)
	s.True(s.balance("A1").IsZero())
}

func (s *LedgerTestSuite) TestWithdrawInsufficientFunds() {
	s.seed("A1", 500, 5000, account.StatusActive)

	_, err := s.svc.Withdraw(s.ctx, "A1", dec(501))
	s.ErrorIs(err, domain.ErrInsufficientFunds)
	s.True(s.balance("A1").Equal(dec(500)))
	s.Empty(s.entries("A1"))
}

func (s *LedgerTestSuite) TestWithdrawAboveLimit() {
	s.seed("A1", 10000, 5000, account.StatusActive)

	_, err := s.svc.Withdraw(s.ctx, "A1", dec(6000))
	s.Require().ErrorIs(err, domain.ErrInsufficientFunds)
	s.Contains(err.Error(), "withdrawal limit")
	s.True(s.balance("A1").Equal(dec(10000)))
}

func (s *LedgerTestSuite) TestTransfer() {
	s.seed("A", 500, 5000, account.StatusActive)
	s.seed("B", 300, 5000, account.StatusActive)

	tx, err := s.svc.Transfer(s.ctx, "A", "B", dec(100))
	s.Require().NoError(err)
	s.Equal("A", tx.AccountNumber)
	s.Equal("B", tx.CounterpartyNumber)
	s.Equal(account.DirectionDebit, tx.Direction)

	s.True(s.balance("A").Equal(dec(400)))
	s.True(s.balance("B").Equal(dec(400)))

	srcEntries := s.entries("A")
	dstEntries := s.entries("B")
	s.Require().Len(srcEntries, 1)
	s.Require().Len(dstEntries, 1)
	s.Equal(account.TypeTransfer, srcEntries[0].Type)
	s.Equal(account.TypeTransfer, dstEntries[0].Type)
	s.Equal(account.DirectionCredit, dstEntries[0].Direction)
	s.Equal("A", dstEntries[0].CounterpartyNumber)
}

func (s *LedgerTestSuite) TestTransferToSelf() {
	s.seed("A", 500, 5000, account.StatusActive)

	_, err := s.svc.Transfer(s.ctx, "A", "A", dec(1_000_000))
	s.Require().ErrorIs(err, domain.ErrInvalidTransaction)
	s.Contains(err.Error(), "cannot transfer into the same account")
	s.True(s.balance("A").Equal(dec(500)))
}

func (s *LedgerTestSuite) TestTransferFailuresLeaveBothAccountsUntouched() {
	s.seed("A", 500, 5000, account.StatusActive)
	s.seed("B", 300, 5000, account.StatusBlocked)

	_, err := s.svc.Transfer(s.ctx, "A", "B", dec(100))
	s.ErrorIs(err, domain.ErrInactiveAccount)

	_, err = s.svc.Transfer(s.ctx, "A", "missing", dec(100))
	s.ErrorIs(err, domain.ErrNotFound)

	s.seed("C", 300, 5000, account.StatusActive)
	_, err = s.svc.Transfer(s.ctx, "A", "C", dec(600))
	s.ErrorIs(err, domain.ErrInsufficientFunds)

	s.True(s.balance("A").Equal(dec(500)))
	s.True(s.balance("C").Equal(dec(300)))
	s.Empty(s.entries("A"))
	s.Empty(s.entries("C"))
}

func (s *LedgerTestSuite) TestTransferSourceSortsAfterDestination() {
	s.seed("Z", 500, 5000, account.StatusActive)
	s.seed("A", 0, 5000, account.StatusActive)

	tx, err := s.svc.Transfer(s.ctx, "Z", "A", dec(50))
	s.Require().NoError(err)
	s.Equal("Z", tx.AccountNumber)
	s.True(s.balance("Z").Equal(dec(450)))
	s.True(s.balance("A").Equal(dec(50)))
}

func (s *LedgerTestSuite) TestConcurrentWithdrawalsNeverOverdraw() {
	s.seed("A1", 100, 5000, account.StatusActive)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.svc.Withdraw(s.ctx, "A1", dec(30)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(3, succeeded)
	s.True(s.balance("A1").Equal(dec(10)))
	s.Len(s.entries("A1"), 3)
}

func (s *LedgerTestSuite) TestReadsAreStatusGated() {
	acc := s.seed("A1", 0, 5000, account.StatusActive)
	tx, err := s.svc.Recharge(s.ctx, "A1", dec(10))
	s.Require().NoError(err)
	s.Require().NoError(s.svc.UpdateAccountStatus(s.ctx, "A1", account.StatusFrozen))

	got, err := s.svc.GetAccount(s.ctx, "A1")
	s.Require().NoError(err)
	s.Equal(acc.ID, got.ID)
	s.Equal(account.StatusFrozen, got.Status)

	_, err = s.svc.ListAll(s.ctx, "A1")
	s.ErrorIs(err, domain.ErrInactiveAccount)
	_, err = s.svc.GetTransaction(s.ctx, "A1", tx.ID)
	s.ErrorIs(err, domain.ErrInactiveAccount)
}

func (s *LedgerTestSuite) TestGetTransactionScopedToAccount() {
	s.seed("A1", 0, 5000, account.StatusActive)
	s.seed("B1", 0, 5000, account.StatusActive)
	tx, err := s.svc.Recharge(s.ctx, "A1", dec(10))
	s.Require().NoError(err)

	got, err := s.svc.GetTransaction(s.ctx, "A1", tx.ID)
	s.Require().NoError(err)
	s.Equal(tx.ID, got.ID)

	_, err = s.svc.GetTransaction(s.ctx, "B1", tx.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *LedgerTestSuite) TestFilters() {
	acc := s.seed("A1", 0, 5000, account.StatusActive)
	txRepo, err := s.uow.TransactionRepository()
	s.Require().NoError(err)
	at := func(d int) time.Time { return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC) }
	for _, tx := range []*account.Transaction{
		account.NewTransaction(acc, account.TypeRecharge, dec(10), at(1)),
		account.NewTransaction(acc, account.TypeWithdrawal, dec(5), at(2)),
		account.NewTransaction(acc, account.TypeRecharge, dec(20), at(3)),
	} {
		s.Require().NoError(txRepo.Create(s.ctx, tx))
	}

	recharges, err := s.svc.FilterByType(s.ctx, "A1", account.TypeRecharge)
	s.Require().NoError(err)
	s.Len(recharges, 2)

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	inRange, err := s.svc.FilterByDateRange(s.ctx, "A1", day(2), day(3))
	s.Require().NoError(err)
	s.Len(inRange, 2)

	both, err := s.svc.FilterByTypeAndDateRange(s.ctx, "A1", account.TypeRecharge, day(2), day(3))
	s.Require().NoError(err)
	s.Require().Len(both, 1)
	s.True(both[0].Amount.Equal(dec(20)))

	_, err = s.svc.FilterByDateRange(s.ctx, "A1", day(3), day(2))
	s.ErrorIs(err, domain.ErrInvalidDateRange)
}

func (s *LedgerTestSuite) TestUpdateTransactionResettlesBalance() {
	s.seed("A1", 0, 5000, account.StatusActive)
	tx, err := s.svc.Recharge(s.ctx, "A1", dec(100))
	s.Require().NoError(err)

	amount := dec(40)
	updated, err := s.svc.UpdateTransaction(s.ctx, "A1", tx.ID, ledger.TransactionPatch{Amount: &amount})
	s.Require().NoError(err)
	s.True(updated.Amount.Equal(dec(40)))
	s.True(s.balance("A1").Equal(dec(40)))

	withdrawal := account.TypeWithdrawal
	_, err = s.svc.UpdateTransaction(s.ctx, "A1", tx.ID, ledger.TransactionPatch{Type: &withdrawal})
	s.ErrorIs(err, domain.ErrInsufficientFunds)
	s.True(s.balance("A1").Equal(dec(40)))

	got, err := s.svc.GetTransaction(s.ctx, "A1", tx.ID)
	s.Require().NoError(err)
	s.Equal(account.TypeRecharge, got.Type)
}

func (s *LedgerTestSuite) TestTransferLegsAreImmutable() {
	s.seed("A", 500, 5000, account.StatusActive)
	s.seed("B", 0, 5000, account.StatusActive)
	tx, err := s.svc.Transfer(s.ctx, "A", "B", dec(100))
	s.Require().NoError(err)

	amount := dec(1)
	_, err = s.svc.UpdateTransaction(s.ctx, "A", tx.ID, ledger.TransactionPatch{Amount: &amount})
	s.ErrorIs(err, domain.ErrInvalidTransaction)
	s.ErrorIs(s.svc.DeleteTransaction(s.ctx, "A", tx.ID), domain.ErrInvalidTransaction)
}

func (s *LedgerTestSuite) TestDeleteTransactionReversesEffect() {
	s.seed("A1", 0, 5000, account.StatusActive)
	recharge, err := s.svc.Recharge(s.ctx, "A1", dec(100))
	s.Require().NoError(err)
	withdrawal, err := s.svc.Withdraw(s.ctx, "A1", dec(80))
	s.Require().NoError(err)

	s.ErrorIs(s.svc.DeleteTransaction(s.ctx, "A1", recharge.ID), domain.ErrInsufficientFunds)

	s.Require().NoError(s.svc.DeleteTransaction(s.ctx, "A1", withdrawal.ID))
	s.True(s.balance("A1").Equal(dec(100)))
	s.Len(s.entries("A1"), 1)

	s.ErrorIs(s.svc.DeleteTransaction(s.ctx, "A1", withdrawal.ID), domain.ErrNotFound)
}

func (s *LedgerTestSuite) TestAccountLifecycle() {
	s.seed("A1", 0, 5000, account.StatusActive)
	s.seed("B1", 0, 5000, account.StatusInactive)

	active, err := s.svc.ListAccounts(s.ctx, account.StatusActive)
	s.Require().NoError(err)
	s.Len(active, 1)

	s.Require().NoError(s.svc.UpdateAccountStatus(s.ctx, "A1", account.StatusActive))
	s.Require().NoError(s.svc.CloseAccount(s.ctx, "A1"))

	closed, err := s.svc.GetAccount(s.ctx, "A1")
	s.Require().NoError(err)
	s.Equal(account.StatusClosed, closed.Status)
	s.Require().NotNil(closed.ClosedOn)
	s.Equal(account.DateOf(fixedNow), *closed.ClosedOn)

	s.ErrorIs(s.svc.CloseAccount(s.ctx, "A1"), domain.ErrInactiveAccount)
	s.ErrorIs(s.svc.CloseAccount(s.ctx, "missing"), domain.ErrNotFound)
}

// failingUoW fails every unit of work with an infrastructure error.
type failingUoW struct {
	repository.UnitOfWork
	err error
}

func (f failingUoW) Do(context.Context, func(repository.UnitOfWork) error) error {
	return f.err
}

func TestInfrastructureErrorsAreWrapped(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	svc := ledger.New(failingUoW{err: boom}, slog.Default())

	_, err := svc.Recharge(context.Background(), "A1", dec(10))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), ledger.OpRecharge)
	assert.False(t, domain.IsDomainError(err))
}

func TestMetricsRecorded(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uow := memory.NewUoW(memory.NewStore())
	rec := &mockRecorder{}
	rec.On("ObserveLedgerOperation", ledger.OpRecharge, mock.AnythingOfType("time.Duration"), nil).Once()
	rec.On("ObserveLedgerOperation", ledger.OpWithdraw, mock.AnythingOfType("time.Duration"),
		mock.MatchedBy(func(err error) bool { return errors.Is(err, domain.ErrInsufficientFunds) })).Once()

	acc, err := account.New().WithNumber("A1").WithWithdrawalLimit(dec(5000)).Build()
	require.NoError(t, err)
	repo, err := uow.AccountRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, acc))

	svc := ledger.New(uow, slog.Default(), ledger.WithMetrics(rec))
	_, err = svc.Recharge(ctx, "A1", dec(10))
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, "A1", dec(50))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	rec.AssertExpectations(t)
}
