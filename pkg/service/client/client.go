// Package client provides registration and management of clients and their
// adherents. Every registered client owns exactly one banking account.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/domain/client"
	"github.com/amirasaad/bankoffice/pkg/notify"
	"github.com/amirasaad/bankoffice/pkg/repository"
	"github.com/amirasaad/bankoffice/pkg/utils"
	"github.com/shopspring/decimal"
)

// DefaultWithdrawalLimit applies to accounts provisioned at registration.
var DefaultWithdrawalLimit = decimal.NewFromInt(5000)

// Registration is the input of Register and AddAdherent.
type Registration struct {
	Dni      string
	Name     string
	Email    string
	Password string
	Address  string
}

// Patch holds the mutable client fields. Nil fields are left untouched.
type Patch struct {
	Name     *string
	Email    *string
	Address  *string
	Password *string
}

// Summary is the listing projection of a client.
type Summary struct {
	ID            uint
	Dni           string
	Name          string
	Email         string
	Address       string
	Status        client.Status
	Account       *account.Account
	Adherents     []*client.Client
	MainClientDni string
}

// Service provides client directory operations.
type Service struct {
	uow             repository.UnitOfWork
	notifier        notify.Notifier
	logger          *slog.Logger
	now             func() time.Time
	withdrawalLimit decimal.Decimal
	hash            func(string) (string, error)
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for account opening dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDefaultWithdrawalLimit sets the limit of newly provisioned accounts.
func WithDefaultWithdrawalLimit(limit decimal.Decimal) Option {
	return func(s *Service) { s.withdrawalLimit = limit }
}

// WithPasswordHasher replaces the bcrypt hasher.
func WithPasswordHasher(hash func(string) (string, error)) Option {
	return func(s *Service) { s.hash = hash }
}

// New creates a new client Service.
func New(
	uow repository.UnitOfWork,
	notifier notify.Notifier,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	s := &Service{
		uow:             uow,
		notifier:        notifier,
		logger:          logger.With("service", "client"),
		now:             func() time.Time { return time.Now().UTC() },
		withdrawalLimit: DefaultWithdrawalLimit,
		hash:            utils.HashPassword,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a PENDING client with a fresh account and sends the
// welcome e-mail once the client is stored. A delivery failure is only
// logged.
func (s *Service) Register(ctx context.Context, reg Registration) (*client.Client, error) {
	c, err := s.create(ctx, reg, client.StatusPending, "")
	if err != nil {
		return nil, s.fail("register", reg.Dni, err)
	}
	s.logger.Info("Client registered", "dni", c.Dni, "account", c.Account.Number)
	s.sendWelcome(ctx, c)
	return c, nil
}

// AddAdherent creates an ACTIVE client with its own account, linked to the
// main client.
func (s *Service) AddAdherent(
	ctx context.Context,
	mainDni string,
	reg Registration,
) (*client.Client, error) {
	c, err := s.create(ctx, reg, client.StatusActive, mainDni)
	if err != nil {
		return nil, s.fail("add_adherent", mainDni, err)
	}
	s.logger.Info("Adherent added", "dni", c.Dni, "main_dni", mainDni)
	return c, nil
}

// create stores a client and its default account in one unit of work. When
// mainDni is set the client becomes an adherent of that client.
func (s *Service) create(
	ctx context.Context,
	reg Registration,
	status client.Status,
	mainDni string,
) (c *client.Client, err error) {
	hash, err := s.hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	c, err = client.NewClient(reg.Dni, reg.Name, reg.Email, hash, reg.Address, status)
	if err != nil {
		return nil, err
	}

	var insertErr error
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if mainDni != "" {
			mainClient, err := clients.GetByDni(ctx, mainDni)
			if err != nil {
				return err
			}
			c.MainClientID = &mainClient.ID
		}
		exists, err := clients.ExistsByDni(ctx, c.Dni)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", domain.ErrDniAlreadyExists, c.Dni)
		}
		if insertErr = clients.Create(ctx, c); insertErr != nil {
			return insertErr
		}
		acc, err := account.New().
			WithNumber(utils.NewAccountNumber()).
			WithClientID(c.ID).
			WithWithdrawalLimit(s.withdrawalLimit).
			WithOpenedOn(s.now()).
			Build()
		if err != nil {
			return err
		}
		if err := accounts.Create(ctx, acc); err != nil {
			return err
		}
		c.Account = acc
		return nil
	})
	if insertErr != nil && errors.Is(insertErr, domain.ErrAlreadyExists) {
		return nil, s.insertConflict(ctx, c, insertErr)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// insertConflict names the unique column a failed client insert collided
// with. A concurrent registration can take the DNI between the existence
// check and the insert, so the DNI is checked again in a fresh unit of work.
func (s *Service) insertConflict(ctx context.Context, c *client.Client, cause error) error {
	var dniTaken bool
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		dniTaken, err = clients.ExistsByDni(ctx, c.Dni)
		return err
	})
	switch {
	case err != nil:
		return errors.Join(cause, err)
	case dniTaken:
		return fmt.Errorf("%w: %s", domain.ErrDniAlreadyExists, c.Dni)
	default:
		return emailConflict(cause, c.Email)
	}
}

func (s *Service) sendWelcome(ctx context.Context, c *client.Client) {
	subject, body, err := notify.WelcomeEmail(c.Name, c.Account.Number)
	if err != nil {
		s.logger.Warn("Failed to render welcome e-mail", "dni", c.Dni, "error", err)
		return
	}
	if err := s.notifier.SendEmail(ctx, c.Email, subject, body); err != nil {
		s.logger.Warn("Failed to send welcome e-mail", "dni", c.Dni, "error", err)
	}
}

// GetByDni returns the client with its account.
func (s *Service) GetByDni(ctx context.Context, dni string) (c *client.Client, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		c, err = clients.GetByDni(ctx, dni)
		return err
	})
	if err != nil {
		return nil, s.fail("get_client", dni, err)
	}
	return c, nil
}

// UpdateByDni applies patch to an ACTIVE client.
func (s *Service) UpdateByDni(ctx context.Context, dni string, patch Patch) (c *client.Client, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		c, err = clients.GetByDni(ctx, dni)
		if err != nil {
			return err
		}
		if err := c.RequireActive(); err != nil {
			return err
		}
		return s.save(ctx, clients, c, patch)
	})
	if err != nil {
		return nil, s.fail("update_client", dni, err)
	}
	s.logger.Info("Client updated", "dni", dni)
	return c, nil
}

// SetStatus moves the client to status. Setting the current status again is
// a no-op.
func (s *Service) SetStatus(ctx context.Context, dni string, status client.Status) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		c, err := clients.GetByDni(ctx, dni)
		if err != nil {
			return err
		}
		return setStatus(ctx, clients, c, status)
	})
	if err != nil {
		return s.fail("set_client_status", dni, err)
	}
	return nil
}

// DeleteByDni soft deletes the client by setting it INACTIVE. The account is
// left as is.
func (s *Service) DeleteByDni(ctx context.Context, dni string) error {
	if err := s.SetStatus(ctx, dni, client.StatusInactive); err != nil {
		return err
	}
	s.logger.Info("Client deactivated", "dni", dni)
	return nil
}

// ListByStatus returns a summary of every client in the given status.
func (s *Service) ListByStatus(ctx context.Context, status client.Status) (out []Summary, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		list, err := clients.ListByStatus(ctx, status)
		if err != nil {
			return err
		}
		out = make([]Summary, 0, len(list))
		for _, c := range list {
			sum, err := summarize(ctx, clients, c)
			if err != nil {
				return err
			}
			out = append(out, sum)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("list_clients", "", err)
	}
	return out, nil
}

func summarize(ctx context.Context, clients repository.ClientRepository, c *client.Client) (Summary, error) {
	adherents, err := clients.ListAdherents(ctx, c.ID)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{
		ID:        c.ID,
		Dni:       c.Dni,
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		Status:    c.Status,
		Account:   c.Account,
		Adherents: adherents,
	}
	if c.MainClientID != nil {
		mainClient, err := clients.Get(ctx, *c.MainClientID)
		if err != nil {
			return Summary{}, err
		}
		sum.MainClientDni = mainClient.Dni
	}
	return sum, nil
}

// save applies patch to c and persists it.
func (s *Service) save(
	ctx context.Context,
	clients repository.ClientRepository,
	c *client.Client,
	patch Patch,
) error {
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return fmt.Errorf("%w: name cannot be empty", client.ErrInvalidClient)
		}
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		if !utils.IsEmail(*patch.Email) {
			return fmt.Errorf("%w: invalid email %q", client.ErrInvalidClient, *patch.Email)
		}
		c.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	if patch.Password != nil {
		hash, err := s.hash(*patch.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		c.PasswordHash = hash
	}
	if err := clients.Update(ctx, c); err != nil {
		return emailConflict(err, c.Email)
	}
	return nil
}

func setStatus(
	ctx context.Context,
	clients repository.ClientRepository,
	c *client.Client,
	status client.Status,
) error {
	if c.Status == status {
		return nil
	}
	c.Status = status
	return clients.Update(ctx, c)
}

// emailConflict turns a unique violation on the clients table into
// ErrEmailDuplicate. Callers rule out the DNI first.
func emailConflict(err error, email string) error {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return fmt.Errorf("%w: %s", domain.ErrEmailDuplicate, email)
	}
	return err
}

func (s *Service) fail(op, dni string, err error) error {
	if domain.IsDomainError(err) || errors.Is(err, client.ErrInvalidClient) {
		return err
	}
	s.logger.Error("client operation failed", "op", op, "dni", dni, "error", err)
	return fmt.Errorf("%s: %w", op, err)
}
