package ledger

import (
	"context"

	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/repository"
)

// GetAccount returns the account with the given number regardless of status.
func (s *Service) GetAccount(
	ctx context.Context,
	number string,
) (acc *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err = repo.Get(ctx, number)
		return err
	})
	if err != nil {
		return nil, s.fail("get_account", number, err)
	}
	return acc, nil
}

// ListAccounts returns every account in the given status.
func (s *Service) ListAccounts(
	ctx context.Context,
	status account.Status,
) (accounts []*account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err = repo.ListByStatus(ctx, status)
		return err
	})
	if err != nil {
		return nil, s.fail("list_accounts", "", err)
	}
	s.logger.Debug("Listed accounts", "status", status, "count", len(accounts))
	return accounts, nil
}

// UpdateAccountStatus moves the account to status. Setting the current status
// again is a no-op.
func (s *Service) UpdateAccountStatus(
	ctx context.Context,
	number string,
	status account.Status,
) error {
	changed := false
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err := repo.GetForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if acc.Status == status {
			return nil
		}
		acc.Status = status
		changed = true
		return repo.Update(ctx, acc)
	})
	if err != nil {
		return s.fail("update_account_status", number, err)
	}
	if changed {
		s.logger.Info("Account status updated", "account", number, "status", status)
	}
	return nil
}

// CloseAccount marks an ACTIVE account CLOSED as of today.
func (s *Service) CloseAccount(ctx context.Context, number string) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err := repo.GetForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if err := acc.Close(s.now()); err != nil {
			return err
		}
		return repo.Update(ctx, acc)
	})
	if err != nil {
		return s.fail("close_account", number, err)
	}
	s.logger.Info("Account closed", "account", number)
	return nil
}
