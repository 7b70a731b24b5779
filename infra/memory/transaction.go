package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/repository"
)

type transactionRepository struct {
	u *UoW
}

func (r *transactionRepository) Create(_ context.Context, tx *account.Transaction) error {
	return r.u.view(func(s *state) error {
		if _, ok := s.accounts[tx.AccountID]; !ok {
			return fmt.Errorf("%w: account %d", domain.ErrNotFound, tx.AccountID)
		}
		tx.ID = s.nextID()
		s.transactions[tx.ID] = copyTransaction(tx)
		return nil
	})
}

func (r *transactionRepository) Get(_ context.Context, accountID, id uint) (*account.Transaction, error) {
	var out *account.Transaction
	err := r.u.view(func(s *state) error {
		tx, ok := s.transactions[id]
		if !ok || tx.AccountID != accountID {
			return fmt.Errorf("%w: transaction %d", domain.ErrNotFound, id)
		}
		out = copyTransaction(tx)
		return nil
	})
	return out, err
}

// List returns the matching entries ordered by execution time, then id.
func (r *transactionRepository) List(
	_ context.Context,
	accountID uint,
	filter repository.TransactionFilter,
) ([]*account.Transaction, error) {
	out := make([]*account.Transaction, 0)
	err := r.u.view(func(s *state) error {
		for _, tx := range s.transactions {
			if tx.AccountID == accountID && filter.Matches(tx) {
				out = append(out, copyTransaction(tx))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExecutedAt.Equal(out[j].ExecutedAt) {
			return out[i].ExecutedAt.Before(out[j].ExecutedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *transactionRepository) Update(_ context.Context, tx *account.Transaction) error {
	return r.u.view(func(s *state) error {
		if _, ok := s.transactions[tx.ID]; !ok {
			return fmt.Errorf("%w: transaction %d", domain.ErrNotFound, tx.ID)
		}
		s.transactions[tx.ID] = copyTransaction(tx)
		return nil
	})
}

func (r *transactionRepository) Delete(_ context.Context, id uint) error {
	return r.u.view(func(s *state) error {
		if _, ok := s.transactions[id]; !ok {
			return fmt.Errorf("%w: transaction %d", domain.ErrNotFound, id)
		}
		delete(s.transactions, id)
		return nil
	})
}

func (r *transactionRepository) DeleteByAccount(_ context.Context, accountID uint) error {
	return r.u.view(func(s *state) error {
		for id, tx := range s.transactions {
			if tx.AccountID == accountID {
				delete(s.transactions, id)
			}
		}
		return nil
	})
}

var _ repository.TransactionRepository = (*transactionRepository)(nil)
