package client

import (
	"context"
	"errors"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/client"
	"github.com/amirasaad/bankoffice/pkg/repository"
)

// findAdherent loads the main client and then the adherent through the
// (main client, dni) pair.
func findAdherent(
	ctx context.Context,
	clients repository.ClientRepository,
	mainDni, adherentDni string,
) (*client.Client, error) {
	mainClient, err := clients.GetByDni(ctx, mainDni)
	if err != nil {
		return nil, err
	}
	adherent, err := clients.GetAdherent(ctx, mainClient.ID, adherentDni)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, client.NotAdherentError(adherentDni, mainDni)
	}
	if err != nil {
		return nil, err
	}
	if !adherent.IsAdherentOf(mainClient) {
		return nil, client.NotAdherentError(adherentDni, mainDni)
	}
	return adherent, nil
}

// ListAdherents returns the adherents of the main client.
func (s *Service) ListAdherents(ctx context.Context, mainDni string) (list []*client.Client, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		mainClient, err := clients.GetByDni(ctx, mainDni)
		if err != nil {
			return err
		}
		list, err = clients.ListAdherents(ctx, mainClient.ID)
		return err
	})
	if err != nil {
		return nil, s.fail("list_adherents", mainDni, err)
	}
	return list, nil
}

// GetAdherent returns one adherent of the main client.
func (s *Service) GetAdherent(ctx context.Context, mainDni, adherentDni string) (c *client.Client, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		c, err = findAdherent(ctx, clients, mainDni, adherentDni)
		return err
	})
	if err != nil {
		return nil, s.fail("get_adherent", mainDni, err)
	}
	return c, nil
}

// UpdateAdherent applies patch to the adherent. Unlike UpdateByDni, the
// adherent's status is not checked.
func (s *Service) UpdateAdherent(
	ctx context.Context,
	mainDni, adherentDni string,
	patch Patch,
) (c *client.Client, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		c, err = findAdherent(ctx, clients, mainDni, adherentDni)
		if err != nil {
			return err
		}
		return s.save(ctx, clients, c, patch)
	})
	if err != nil {
		return nil, s.fail("update_adherent", mainDni, err)
	}
	s.logger.Info("Adherent updated", "dni", adherentDni, "main_dni", mainDni)
	return c, nil
}

// SetAdherentStatus moves the adherent to status.
func (s *Service) SetAdherentStatus(
	ctx context.Context,
	mainDni, adherentDni string,
	status client.Status,
) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		c, err := findAdherent(ctx, clients, mainDni, adherentDni)
		if err != nil {
			return err
		}
		return setStatus(ctx, clients, c, status)
	})
	if err != nil {
		return s.fail("set_adherent_status", mainDni, err)
	}
	return nil
}

// RemoveAdherent deletes the adherent together with its account and the
// account's transactions. Transfer legs recorded on other accounts are kept
// and still name the removed account as counterparty.
func (s *Service) RemoveAdherent(ctx context.Context, mainDni, adherentDni string) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		c, err := findAdherent(ctx, clients, mainDni, adherentDni)
		if err != nil {
			return err
		}
		acc, err := accounts.GetByClientID(ctx, c.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// adherent without an account
		case err != nil:
			return err
		default:
			acc.ClientID = nil
			if err := accounts.Update(ctx, acc); err != nil {
				return err
			}
			if err := txs.DeleteByAccount(ctx, acc.ID); err != nil {
				return err
			}
			if err := accounts.Delete(ctx, acc.ID); err != nil {
				return err
			}
		}
		return clients.Delete(ctx, c.ID)
	})
	if err != nil {
		return s.fail("remove_adherent", mainDni, err)
	}
	s.logger.Info("Adherent removed", "dni", adherentDni, "main_dni", mainDni)
	return nil
}
