// Package report assembles the downloadable documents of a client.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/domain/client"
	"github.com/amirasaad/bankoffice/pkg/report"
)

// ClientFinder loads a client with its account.
type ClientFinder interface {
	GetByDni(ctx context.Context, dni string) (*client.Client, error)
}

// TransactionLister reads ledger entries of an account.
type TransactionLister interface {
	ListAll(ctx context.Context, number string) ([]*account.Transaction, error)
	FilterByDateRange(ctx context.Context, number string, from, to time.Time) ([]*account.Transaction, error)
}

// Service renders reports from the client directory and the ledger.
type Service struct {
	clients ClientFinder
	ledger  TransactionLister
	logger  *slog.Logger
}

// New creates a report Service.
func New(clients ClientFinder, ledger TransactionLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		clients: clients,
		ledger:  ledger,
		logger:  logger.With("service", "report"),
	}
}

func (s *Service) accountOf(ctx context.Context, dni string) (*client.Client, error) {
	c, err := s.clients.GetByDni(ctx, dni)
	if err != nil {
		return nil, err
	}
	if c.Account == nil {
		return nil, fmt.Errorf("%w: client %s has no account", domain.ErrNotFound, dni)
	}
	return c, nil
}

// AccountDetails renders the account details PDF of the client.
func (s *Service) AccountDetails(ctx context.Context, dni string) ([]byte, error) {
	c, err := s.accountOf(ctx, dni)
	if err != nil {
		return nil, err
	}
	out, err := report.AccountDetailsPDF(c)
	if err != nil {
		s.logger.Error("Failed to render account details", "dni", dni, "error", err)
		return nil, err
	}
	return out, nil
}

// Transactions renders the transactions PDF of the client's account.
func (s *Service) Transactions(ctx context.Context, dni string) ([]byte, error) {
	c, err := s.accountOf(ctx, dni)
	if err != nil {
		return nil, err
	}
	txs, err := s.ledger.ListAll(ctx, c.Account.Number)
	if err != nil {
		return nil, err
	}
	out, err := report.TransactionsPDF(c, txs)
	if err != nil {
		s.logger.Error("Failed to render transactions", "dni", dni, "error", err)
		return nil, err
	}
	return out, nil
}

// TransactionsByDateRange renders the XLSX of entries executed between from
// and to, both days included.
func (s *Service) TransactionsByDateRange(ctx context.Context, dni string, from, to time.Time) ([]byte, error) {
	if account.DateOf(from).After(account.DateOf(to)) {
		return nil, fmt.Errorf("%w: from date is after to date", domain.ErrInvalidDateRange)
	}
	c, err := s.accountOf(ctx, dni)
	if err != nil {
		return nil, err
	}
	txs, err := s.ledger.FilterByDateRange(ctx, c.Account.Number, from, to)
	if err != nil {
		return nil, err
	}
	out, err := report.TransactionsXLSX(txs)
	if err != nil {
		s.logger.Error("Failed to render transactions workbook", "dni", dni, "error", err)
		return nil, err
	}
	return out, nil
}
