package ledger

import (
	"context"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/repository"
	"github.com/shopspring/decimal"
)

// Recharge credits amount to the account and records a RECHARGE entry.
func (s *Service) Recharge(
	ctx context.Context,
	number string,
	amount decimal.Decimal,
) (tx *account.Transaction, err error) {
	start := time.Now()
	defer func() { s.observe(OpRecharge, start, err) }()

	if err = account.RequirePositive(amount); err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, txRepo, err := repos(uow)
		if err != nil {
			return err
		}
		acc, err := accRepo.GetForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if err := acc.ValidateRecharge(amount); err != nil {
			return err
		}
		if err := acc.Apply(amount); err != nil {
			return err
		}
		tx = account.NewTransaction(acc, account.TypeRecharge, amount, s.now())
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		return accRepo.Update(ctx, acc)
	})
	if err != nil {
		return nil, s.fail(OpRecharge, number, err)
	}
	s.logger.Info("Recharge applied",
		"account", number, "amount", amount.StringFixed(2), "transaction_id", tx.ID)
	return tx, nil
}

// Withdraw debits amount from the account and records a WITHDRAWAL entry.
// The amount is checked against the withdrawal limit, then against the
// balance.
func (s *Service) Withdraw(
	ctx context.Context,
	number string,
	amount decimal.Decimal,
) (tx *account.Transaction, err error) {
	start := time.Now()
	defer func() { s.observe(OpWithdraw, start, err) }()

	if err = account.RequirePositive(amount); err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, txRepo, err := repos(uow)
		if err != nil {
			return err
		}
		acc, err := accRepo.GetForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if err := acc.ValidateWithdraw(amount); err != nil {
			return err
		}
		if err := acc.Apply(amount.Neg()); err != nil {
			return err
		}
		tx = account.NewTransaction(acc, account.TypeWithdrawal, amount, s.now())
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		return accRepo.Update(ctx, acc)
	})
	if err != nil {
		return nil, s.fail(OpWithdraw, number, err)
	}
	s.logger.Info("Withdrawal applied",
		"account", number, "amount", amount.StringFixed(2), "transaction_id", tx.ID)
	return tx, nil
}

// Transfer moves amount from source to destination and returns the source
// leg. Both rows are locked in ascending account number order.
func (s *Service) Transfer(
	ctx context.Context,
	source, destination string,
	amount decimal.Decimal,
) (tx *account.Transaction, err error) {
	start := time.Now()
	defer func() { s.observe(OpTransfer, start, err) }()

	if err = account.RequirePositive(amount); err != nil {
		return nil, err
	}
	if err = account.RequireDistinct(source, destination); err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, txRepo, err := repos(uow)
		if err != nil {
			return err
		}
		src, dst, err := lockPair(ctx, accRepo, source, destination)
		if err != nil {
			return err
		}
		if err := src.ValidateTransferTo(dst, amount); err != nil {
			return err
		}
		if err := src.Apply(amount.Neg()); err != nil {
			return err
		}
		if err := dst.Apply(amount); err != nil {
			return err
		}
		debit, credit := account.NewTransferLegs(src, dst, amount, s.now())
		if err := txRepo.Create(ctx, debit); err != nil {
			return err
		}
		if err := txRepo.Create(ctx, credit); err != nil {
			return err
		}
		if err := accRepo.Update(ctx, src); err != nil {
			return err
		}
		if err := accRepo.Update(ctx, dst); err != nil {
			return err
		}
		tx = debit
		return nil
	})
	if err != nil {
		return nil, s.fail(OpTransfer, source, err)
	}
	s.logger.Info("Transfer applied",
		"account", source, "destination", destination,
		"amount", amount.StringFixed(2), "transaction_id", tx.ID)
	return tx, nil
}

// lockPair locks both accounts, lowest number first, and returns them as
// (source, destination).
func lockPair(
	ctx context.Context,
	repo repository.AccountRepository,
	source, destination string,
) (*account.Account, *account.Account, error) {
	first, second := source, destination
	if second < first {
		first, second = second, first
	}
	a, err := repo.GetForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := repo.GetForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}
	if a.Number == source {
		return a, b, nil
	}
	return b, a, nil
}
