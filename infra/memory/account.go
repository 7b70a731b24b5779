package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/repository"
)

type accountRepository struct {
	u *UoW
}

func findAccount(s *state, match func(*account.Account) bool) *account.Account {
	for _, a := range s.accounts {
		if match(a) {
			return a
		}
	}
	return nil
}

func (r *accountRepository) Get(_ context.Context, number string) (*account.Account, error) {
	var out *account.Account
	err := r.u.view(func(s *state) error {
		a := findAccount(s, func(a *account.Account) bool { return a.Number == number })
		if a == nil {
			return fmt.Errorf("%w: account %s", domain.ErrNotFound, number)
		}
		out = copyAccount(a)
		return nil
	})
	return out, err
}

// GetForUpdate is Get: the unit of work already serializes writers.
func (r *accountRepository) GetForUpdate(ctx context.Context, number string) (*account.Account, error) {
	return r.Get(ctx, number)
}

func (r *accountRepository) GetByClientID(_ context.Context, clientID uint) (*account.Account, error) {
	var out *account.Account
	err := r.u.view(func(s *state) error {
		a := findAccount(s, func(a *account.Account) bool {
			return a.ClientID != nil && *a.ClientID == clientID
		})
		if a == nil {
			return fmt.Errorf("%w: no account for client %d", domain.ErrNotFound, clientID)
		}
		out = copyAccount(a)
		return nil
	})
	return out, err
}

func (r *accountRepository) ListByStatus(_ context.Context, status account.Status) ([]*account.Account, error) {
	var out []*account.Account
	err := r.u.view(func(s *state) error {
		for _, a := range s.accounts {
			if a.Status == status {
				out = append(out, copyAccount(a))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *accountRepository) Create(_ context.Context, a *account.Account) error {
	return r.u.view(func(s *state) error {
		dup := findAccount(s, func(other *account.Account) bool {
			return other.Number == a.Number ||
				(a.ClientID != nil && other.ClientID != nil && *other.ClientID == *a.ClientID)
		})
		if dup != nil {
			return fmt.Errorf("%w: account %s", domain.ErrAlreadyExists, a.Number)
		}
		now := time.Now().UTC()
		a.ID = s.nextID()
		a.CreatedAt = now
		a.UpdatedAt = now
		s.accounts[a.ID] = copyAccount(a)
		return nil
	})
}

func (r *accountRepository) Update(_ context.Context, a *account.Account) error {
	return r.u.view(func(s *state) error {
		stored, ok := s.accounts[a.ID]
		if !ok {
			return fmt.Errorf("%w: account %d", domain.ErrNotFound, a.ID)
		}
		a.UpdatedAt = time.Now().UTC()
		a.CreatedAt = stored.CreatedAt
		s.accounts[a.ID] = copyAccount(a)
		return nil
	})
}

func (r *accountRepository) Delete(_ context.Context, id uint) error {
	return r.u.view(func(s *state) error {
		if _, ok := s.accounts[id]; !ok {
			return fmt.Errorf("%w: account %d", domain.ErrNotFound, id)
		}
		delete(s.accounts, id)
		return nil
	})
}

var _ repository.AccountRepository = (*accountRepository)(nil)
