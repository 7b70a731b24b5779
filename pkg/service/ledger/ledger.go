// Package ledger implements balance mutation and transaction management for
// banking accounts. Every operation runs inside a single unit of work, and the
// account rows it mutates are locked for the duration.
package ledger

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/repository"
	"github.com/shopspring/decimal"
)

// Operation names used for logging and metrics.
const (
	OpRecharge          = "recharge"
	OpWithdraw          = "withdraw"
	OpTransfer          = "transfer"
	OpUpdateTransaction = "update_transaction"
	OpDeleteTransaction = "delete_transaction"
)

// Recorder observes money movement operations.
type Recorder interface {
	ObserveLedgerOperation(operation string, elapsed time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveLedgerOperation(string, time.Duration, error) {}

// Service provides the ledger operations.
type Service struct {
	uow     repository.UnitOfWork
	logger  *slog.Logger
	now     func() time.Time
	metrics Recorder
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used to stamp transactions and closing dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics sets the recorder notified after each money movement.
func WithMetrics(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

// New creates a new ledger Service.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		uow:     uow,
		logger:  logger.With("service", "ledger"),
		now:     func() time.Time { return time.Now().UTC() },
		metrics: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TransactionPatch carries the fields of a correction. Nil fields keep their
// current value.
type TransactionPatch struct {
	Type   *account.Type
	Amount *decimal.Decimal
}

func repos(uow repository.UnitOfWork) (
	repository.AccountRepository,
	repository.TransactionRepository,
	error,
) {
	accRepo, err := uow.AccountRepository()
	if err != nil {
		return nil, nil, err
	}
	txRepo, err := uow.TransactionRepository()
	if err != nil {
		return nil, nil, err
	}
	return accRepo, txRepo, nil
}

// fail returns domain errors untouched. Anything else is an infrastructure
// failure: it is logged once here and wrapped with the operation name.
func (s *Service) fail(op, number string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	s.logger.Error("ledger operation failed", "op", op, "account", number, "error", err)
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Service) observe(op string, start time.Time, err error) {
	s.metrics.ObserveLedgerOperation(op, time.Since(start), err)
}
