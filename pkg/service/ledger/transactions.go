package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/repository"
)

// GetTransaction returns entry id of an ACTIVE account. An entry owned by
// another account is reported as not found.
func (s *Service) GetTransaction(
	ctx context.Context,
	number string,
	id uint,
) (tx *account.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, txRepo, err := repos(uow)
		if err != nil {
			return err
		}
		acc, err := accRepo.Get(ctx, number)
		if err != nil {
			return err
		}
		if err := acc.RequireActive(); err != nil {
			return err
		}
		tx, err = txRepo.Get(ctx, acc.ID, id)
		return err
	})
	if err != nil {
		return nil, s.fail("get_transaction", number, err)
	}
	return tx, nil
}

// ListTransactions returns the entries of an ACTIVE account that match filter,
// oldest first.
func (s *Service) ListTransactions(
	ctx context.Context,
	number string,
	filter repository.TransactionFilter,
) (txs []*account.Transaction, err error) {
	if filter.From != nil && filter.To != nil && account.DateOf(*filter.From).After(account.DateOf(*filter.To)) {
		return nil, fmt.Errorf("%w: from date is after to date", domain.ErrInvalidDateRange)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, txRepo, err := repos(uow)
		if err != nil {
			return err
		}
		acc, err := accRepo.Get(ctx, number)
		if err != nil {
			return err
		}
		if err := acc.RequireActive(); err != nil {
			return err
		}
		txs, err = txRepo.List(ctx, acc.ID, filter)
		return err
	})
	if err != nil {
		return nil, s.fail("list_transactions", number, err)
	}
	s.logger.Debug("Listed transactions", "account", number, "count", len(txs))
	return txs, nil
}

// ListAll returns every entry of the account.
func (s *Service) ListAll(ctx context.Context, number string) ([]*account.Transaction, error) {
	return s.ListTransactions(ctx, number, repository.TransactionFilter{})
}

// FilterByType returns the entries of the given type.
func (s *Service) FilterByType(
	ctx context.Context,
	number string,
	t account.Type,
) ([]*account.Transaction, error) {
	return s.ListTransactions(ctx, number, repository.TransactionFilter{Type: &t})
}

// FilterByDateRange returns the entries executed between the two calendar
// days, both inclusive.
func (s *Service) FilterByDateRange(
	ctx context.Context,
	number string,
	from, to time.Time,
) ([]*account.Transaction, error) {
	return s.ListTransactions(ctx, number, repository.TransactionFilter{From: &from, To: &to})
}

// FilterByTypeAndDateRange combines FilterByType and FilterByDateRange.
func (s *Service) FilterByTypeAndDateRange(
	ctx context.Context,
	number string,
	t account.Type,
	from, to time.Time,
) ([]*account.Transaction, error) {
	return s.ListTransactions(ctx, number, repository.TransactionFilter{Type: &t, From: &from, To: &to})
}

// UpdateTransaction corrects a RECHARGE or WITHDRAWAL entry and re-settles the
// balance with the difference between the new and the old effect.
func (s *Service) UpdateTransaction(
	ctx context.Context,
	number string,
	id uint,
	patch TransactionPatch,
) (tx *account.Transaction, err error) {
	start := time.Now()
	defer func() { s.observe(OpUpdateTransaction, start, err) }()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, txRepo, err := repos(uow)
		if err != nil {
			return err
		}
		acc, err := accRepo.GetForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if err := acc.RequireActive(); err != nil {
			return err
		}
		tx, err = txRepo.Get(ctx, acc.ID, id)
		if err != nil {
			return err
		}
		delta, err := tx.Correct(patch.Type, patch.Amount, s.now())
		if err != nil {
			return err
		}
		if err := acc.Apply(delta); err != nil {
			return err
		}
		if err := txRepo.Update(ctx, tx); err != nil {
			return err
		}
		return accRepo.Update(ctx, acc)
	})
	if err != nil {
		return nil, s.fail(OpUpdateTransaction, number, err)
	}
	s.logger.Info("Transaction corrected",
		"account", number, "transaction_id", id, "type", tx.Type, "amount", tx.Amount.StringFixed(2))
	return tx, nil
}

// DeleteTransaction removes a RECHARGE or WITHDRAWAL entry and reverses its
// effect on the balance.
func (s *Service) DeleteTransaction(
	ctx context.Context,
	number string,
	id uint,
) (err error) {
	start := time.Now()
	defer func() { s.observe(OpDeleteTransaction, start, err) }()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, txRepo, err := repos(uow)
		if err != nil {
			return err
		}
		acc, err := accRepo.GetForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if err := acc.RequireActive(); err != nil {
			return err
		}
		tx, err := txRepo.Get(ctx, acc.ID, id)
		if err != nil {
			return err
		}
		delta, err := tx.Reversal()
		if err != nil {
			return err
		}
		if err := acc.Apply(delta); err != nil {
			return err
		}
		if err := txRepo.Delete(ctx, tx.ID); err != nil {
			return err
		}
		return accRepo.Update(ctx, acc)
	})
	if err != nil {
		return s.fail(OpDeleteTransaction, number, err)
	}
	s.logger.Info("Transaction deleted", "account", number, "transaction_id", id)
	return nil
}
