package client

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/utils"
)

var (
	// ErrNotAdherent is returned when a client is not linked to the given main client.
	ErrNotAdherent = fmt.Errorf("%w: not an adherent", domain.ErrNotFound)
	// ErrInvalidClient is returned when mandatory identity fields are missing.
	ErrInvalidClient = errors.New("invalid client data")
)

// Status is the lifecycle state of a client.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusPending  Status = "PENDING"
	StatusBanned   Status = "BANNED"
)

// ParseStatus converts a token such as "pending" into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusActive, StatusInactive, StatusPending, StatusBanned:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown client status %q", domain.ErrInvalidStatus, s)
}

func (s Status) String() string { return string(s) }

// Client represents an account holder. A client whose MainClientID is set is
// an adherent of that main client.
type Client struct {
	ID           uint
	Dni          string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Status       Status
	MainClientID *uint
	Account      *account.Account
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewClient validates identity fields and returns a client in the given
// status. The password must already be hashed.
func NewClient(dni, name, email, passwordHash, address string, status Status) (*Client, error) {
	dni = strings.TrimSpace(dni)
	if dni == "" {
		return nil, fmt.Errorf("%w: dni cannot be empty", ErrInvalidClient)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidClient)
	}
	if !utils.IsEmail(email) {
		return nil, fmt.Errorf("%w: invalid email %q", ErrInvalidClient, email)
	}
	now := time.Now().UTC()
	return &Client{
		Dni:          dni,
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Address:      address,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsActive reports whether the client may be updated.
func (c *Client) IsActive() bool {
	return c.Status == StatusActive
}

// RequireActive fails with ErrInactiveAccount unless the client is ACTIVE.
func (c *Client) RequireActive() error {
	if !c.IsActive() {
		return fmt.Errorf("%w: client %s is %s", domain.ErrInactiveAccount, c.Dni, c.Status)
	}
	return nil
}

// IsAdherentOf reports whether c is linked to main.
func (c *Client) IsAdherentOf(main *Client) bool {
	return c.MainClientID != nil && *c.MainClientID == main.ID
}

// NotAdherentError builds the lookup failure for an unlinked adherent.
func NotAdherentError(adherentDni, mainDni string) error {
	return fmt.Errorf("%w: client with DNI %s is not an adherent of %s", ErrNotAdherent, adherentDni, mainDni)
}
