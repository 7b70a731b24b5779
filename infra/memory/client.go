package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/domain/client"
	"github.com/amirasaad/bankoffice/pkg/repository"
)

type clientRepository struct {
	u *UoW
}

// hydrate copies c and attaches its account, mirroring the gorm repository.
func hydrate(s *state, c *client.Client) *client.Client {
	out := copyClient(c)
	if a := findAccount(s, func(a *account.Account) bool {
		return a.ClientID != nil && *a.ClientID == c.ID
	}); a != nil {
		out.Account = copyAccount(a)
	}
	return out
}

func (r *clientRepository) one(match func(*client.Client) bool, notFound string) (*client.Client, error) {
	var out *client.Client
	err := r.u.view(func(s *state) error {
		for _, c := range s.clients {
			if match(c) {
				out = hydrate(s, c)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", domain.ErrNotFound, notFound)
	})
	return out, err
}

func (r *clientRepository) many(match func(*client.Client) bool) ([]*client.Client, error) {
	var out []*client.Client
	err := r.u.view(func(s *state) error {
		for _, c := range s.clients {
			if match(c) {
				out = append(out, hydrate(s, c))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *clientRepository) Get(_ context.Context, id uint) (*client.Client, error) {
	return r.one(func(c *client.Client) bool { return c.ID == id }, fmt.Sprintf("client %d", id))
}

func (r *clientRepository) GetByDni(_ context.Context, dni string) (*client.Client, error) {
	return r.one(func(c *client.Client) bool { return c.Dni == dni }, "client "+dni)
}

func (r *clientRepository) ExistsByDni(ctx context.Context, dni string) (bool, error) {
	_, err := r.GetByDni(ctx, dni)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (r *clientRepository) ListByStatus(_ context.Context, status client.Status) ([]*client.Client, error) {
	return r.many(func(c *client.Client) bool { return c.Status == status })
}

func (r *clientRepository) ListAdherents(_ context.Context, mainClientID uint) ([]*client.Client, error) {
	return r.many(func(c *client.Client) bool {
		return c.MainClientID != nil && *c.MainClientID == mainClientID
	})
}

func (r *clientRepository) GetAdherent(_ context.Context, mainClientID uint, dni string) (*client.Client, error) {
	return r.one(func(c *client.Client) bool {
		return c.Dni == dni && c.MainClientID != nil && *c.MainClientID == mainClientID
	}, "adherent "+dni)
}

func checkUnique(s *state, c *client.Client) error {
	for id, other := range s.clients {
		if id == c.ID {
			continue
		}
		if other.Dni == c.Dni {
			return fmt.Errorf("%w: dni %s", domain.ErrAlreadyExists, c.Dni)
		}
		if strings.EqualFold(other.Email, c.Email) {
			return fmt.Errorf("%w: email %s", domain.ErrAlreadyExists, c.Email)
		}
	}
	return nil
}

func (r *clientRepository) Create(_ context.Context, c *client.Client) error {
	return r.u.view(func(s *state) error {
		c.ID = 0
		if err := checkUnique(s, c); err != nil {
			return err
		}
		now := time.Now().UTC()
		c.ID = s.nextID()
		c.CreatedAt = now
		c.UpdatedAt = now
		s.clients[c.ID] = copyClient(c)
		return nil
	})
}

func (r *clientRepository) Update(_ context.Context, c *client.Client) error {
	return r.u.view(func(s *state) error {
		stored, ok := s.clients[c.ID]
		if !ok {
			return fmt.Errorf("%w: client %d", domain.ErrNotFound, c.ID)
		}
		if err := checkUnique(s, c); err != nil {
			return err
		}
		c.CreatedAt = stored.CreatedAt
		c.UpdatedAt = time.Now().UTC()
		s.clients[c.ID] = copyClient(c)
		return nil
	})
}

func (r *clientRepository) Delete(_ context.Context, id uint) error {
	return r.u.view(func(s *state) error {
		if _, ok := s.clients[id]; !ok {
			return fmt.Errorf("%w: client %d", domain.ErrNotFound, id)
		}
		delete(s.clients, id)
		return nil
	})
}

var _ repository.ClientRepository = (*clientRepository)(nil)
