package repository

import (
	"context"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/domain/client"
)

// AccountRepository defines the interface for account data access operations.
type AccountRepository interface {
	// Get returns the account with the given number.
	Get(ctx context.Context, number string) (*account.Account, error)
	// GetForUpdate returns the account and holds a row lock until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, number string) (*account.Account, error)
	GetByClientID(ctx context.Context, clientID uint) (*account.Account, error)
	ListByStatus(ctx context.Context, status account.Status) ([]*account.Account, error)
	Create(ctx context.Context, a *account.Account) error
	Update(ctx context.Context, a *account.Account) error
	Delete(ctx context.Context, id uint) error
}

// TransactionRepository defines the interface for ledger entry data access.
type TransactionRepository interface {
	Create(ctx context.Context, tx *account.Transaction) error
	// Get returns the entry only if it belongs to accountID.
	Get(ctx context.Context, accountID, id uint) (*account.Transaction, error)
	List(ctx context.Context, accountID uint, filter TransactionFilter) ([]*account.Transaction, error)
	Update(ctx context.Context, tx *account.Transaction) error
	Delete(ctx context.Context, id uint) error
	DeleteByAccount(ctx context.Context, accountID uint) error
}

// ClientRepository defines the interface for client data access operations.
// Read methods populate Client.Account when the client owns one.
type ClientRepository interface {
	Get(ctx context.Context, id uint) (*client.Client, error)
	GetByDni(ctx context.Context, dni string) (*client.Client, error)
	ExistsByDni(ctx context.Context, dni string) (bool, error)
	ListByStatus(ctx context.Context, status client.Status) ([]*client.Client, error)
	ListAdherents(ctx context.Context, mainClientID uint) ([]*client.Client, error)
	// GetAdherent looks the adherent up by (mainClientID, dni).
	GetAdherent(ctx context.Context, mainClientID uint, dni string) (*client.Client, error)
	Create(ctx context.Context, c *client.Client) error
	Update(ctx context.Context, c *client.Client) error
	Delete(ctx context.Context, id uint) error
}

// TransactionFilter narrows a transaction listing. Nil fields do not filter.
// From and To are calendar days and both bounds are inclusive.
type TransactionFilter struct {
	Type *account.Type
	From *time.Time
	To   *time.Time
}

// Range returns the half open instant interval [start, end) covered by the
// From and To days. A zero time means the side is unbounded.
func (f TransactionFilter) Range() (start, end time.Time) {
	if f.From != nil {
		start = account.DateOf(*f.From)
	}
	if f.To != nil {
		end = account.DateOf(*f.To).AddDate(0, 0, 1)
	}
	return start, end
}

// Matches reports whether tx passes the filter.
func (f TransactionFilter) Matches(tx *account.Transaction) bool {
	if f.Type != nil && tx.Type != *f.Type {
		return false
	}
	start, end := f.Range()
	at := tx.ExecutedAt.UTC()
	if !start.IsZero() && at.Before(start) {
		return false
	}
	if !end.IsZero() && !at.Before(end) {
		return false
	}
	return true
}
