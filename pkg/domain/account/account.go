package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a banking account.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusBlocked  Status = "BLOCKED"
	StatusInactive Status = "INACTIVE"
	StatusClosed   Status = "CLOSED"
	StatusOverdue  Status = "OVERDUE"
	StatusFrozen   Status = "FROZEN"
)

var statuses = []Status{
	StatusActive,
	StatusBlocked,
	StatusInactive,
	StatusClosed,
	StatusOverdue,
	StatusFrozen,
}

// ParseStatus converts a token such as "active" into a Status.
func ParseStatus(s string) (Status, error) {
	token := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range statuses {
		if st == token {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown account status %q", domain.ErrInvalidStatus, s)
}

func (s Status) String() string { return string(s) }

// Account is a client's banking account. It is the aggregate through which
// every balance mutation goes.
//
// Invariants:
//   - Number is globally unique.
//   - Balance only changes together with a Transaction record.
//   - Withdrawals and outbound transfers never drive Balance below zero.
type Account struct {
	ID              uint
	ClientID        *uint
	Number          string
	Balance         decimal.Decimal
	WithdrawalLimit decimal.Decimal
	OpenedOn        time.Time
	ClosedOn        *time.Time
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	number          string
	clientID        *uint
	balance         decimal.Decimal
	withdrawalLimit decimal.Decimal
	openedOn        time.Time
	status          Status
}

// New creates a Builder for an ACTIVE, zero balance account opened now.
func New() *Builder {
	return &Builder{
		balance:  decimal.Zero,
		openedOn: time.Now().UTC(),
		status:   StatusActive,
	}
}

// WithNumber sets the account number. This is a mandatory field.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithClientID links the account to its owner.
func (b *Builder) WithClientID(id uint) *Builder {
	b.clientID = &id
	return b
}

// WithBalance sets the initial balance. Used for hydration and test setup.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithWithdrawalLimit sets the per transaction withdrawal cap.
func (b *Builder) WithWithdrawalLimit(limit decimal.Decimal) *Builder {
	b.withdrawalLimit = limit
	return b
}

// WithOpenedOn sets the opening date. The clock part is dropped.
func (b *Builder) WithOpenedOn(t time.Time) *Builder {
	b.openedOn = t
	return b
}

// WithStatus sets the initial status.
func (b *Builder) WithStatus(s Status) *Builder {
	b.status = s
	return b
}

// Build validates the collected fields and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.number == "" {
		return nil, fmt.Errorf("%w: account number is required", domain.ErrInvalidTransaction)
	}
	if b.balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance cannot be negative", domain.ErrInsufficientFunds)
	}
	if b.withdrawalLimit.IsNegative() {
		return nil, fmt.Errorf("%w: withdrawal limit cannot be negative", domain.ErrInvalidTransaction)
	}
	return &Account{
		ClientID:        b.clientID,
		Number:          b.number,
		Balance:         b.balance,
		WithdrawalLimit: b.withdrawalLimit,
		OpenedOn:        DateOf(b.openedOn),
		Status:          b.status,
	}, nil
}

// IsActive reports whether balance mutations and transaction reads are allowed.
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

// RequireActive fails with ErrInactiveAccount unless the account is ACTIVE.
func (a *Account) RequireActive() error {
	if !a.IsActive() {
		return fmt.Errorf("%w: account %s is %s", domain.ErrInactiveAccount, a.Number, a.Status)
	}
	return nil
}

// AmountScale is the number of decimal places money is stored with.
const AmountScale int32 = 2

// HasCentScale reports whether amount fits in AmountScale decimal places.
// Trailing zeros such as 10.500 are accepted.
func HasCentScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(AmountScale))
}

// RequirePositive fails with ErrInvalidTransaction when amount <= 0 or when
// it carries fractions of a cent.
func RequirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidTransaction)
	}
	if !HasCentScale(amount) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places",
			domain.ErrInvalidTransaction, amount.String(), AmountScale)
	}
	return nil
}

func (a *Account) requireWithinLimit(amount decimal.Decimal) error {
	if amount.GreaterThan(a.WithdrawalLimit) {
		return fmt.Errorf("%w: amount exceeds the withdrawal limit of %s",
			domain.ErrInsufficientFunds, a.WithdrawalLimit.StringFixed(2))
	}
	return nil
}

func (a *Account) requireSufficientFunds(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Balance) {
		return fmt.Errorf("%w: balance %s is lower than %s",
			domain.ErrInsufficientFunds, a.Balance.StringFixed(2), amount.StringFixed(2))
	}
	return nil
}

// ValidateRecharge checks the invariants of a recharge.
func (a *Account) ValidateRecharge(amount decimal.Decimal) error {
	if err := RequirePositive(amount); err != nil {
		return err
	}
	return a.RequireActive()
}

// ValidateWithdraw checks the invariants of a withdrawal.
// Invariants enforced:
//   - Amount must be positive.
//   - Account must be ACTIVE.
//   - Amount must not exceed the withdrawal limit.
//   - Amount must not exceed the balance.
func (a *Account) ValidateWithdraw(amount decimal.Decimal) error {
	if err := RequirePositive(amount); err != nil {
		return err
	}
	if err := a.RequireActive(); err != nil {
		return err
	}
	if err := a.requireWithinLimit(amount); err != nil {
		return err
	}
	return a.requireSufficientFunds(amount)
}

// ValidateTransferTo ensures a transfer from a to dest is valid. The source
// is checked for status, funds and limit, then the destination for status.
func (a *Account) ValidateTransferTo(dest *Account, amount decimal.Decimal) error {
	if err := RequirePositive(amount); err != nil {
		return err
	}
	if err := RequireDistinct(a.Number, dest.Number); err != nil {
		return err
	}
	if err := a.RequireActive(); err != nil {
		return err
	}
	if err := a.requireSufficientFunds(amount); err != nil {
		return err
	}
	if err := a.requireWithinLimit(amount); err != nil {
		return err
	}
	return dest.RequireActive()
}

// RequireDistinct rejects a transfer whose source and destination match.
func RequireDistinct(source, destination string) error {
	if source == destination {
		return fmt.Errorf("%w: cannot transfer into the same account", domain.ErrInvalidTransaction)
	}
	return nil
}

// Apply adds delta to the balance. It refuses to leave the balance negative.
func (a *Account) Apply(delta decimal.Decimal) error {
	next := a.Balance.Add(delta)
	if next.IsNegative() {
		return fmt.Errorf("%w: balance would become %s", domain.ErrInsufficientFunds, next.StringFixed(2))
	}
	a.Balance = next
	return nil
}

// Close marks the account CLOSED as of the given day. Only ACTIVE accounts
// can be closed.
func (a *Account) Close(at time.Time) error {
	if err := a.RequireActive(); err != nil {
		return err
	}
	day := DateOf(at)
	a.Status = StatusClosed
	a.ClosedOn = &day
	return nil
}

// DateOf truncates t to midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
