package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/shopspring/decimal"
)

// Type is the kind of ledger entry.
type Type string

const (
	TypeRecharge   Type = "RECHARGE"
	TypeWithdrawal Type = "WITHDRAWAL"
	TypeTransfer   Type = "TRANSFER"
)

// ParseType converts a token such as "recharge" into a Type.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeRecharge, TypeWithdrawal, TypeTransfer:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown transaction type %q", domain.ErrInvalidStatus, s)
}

func (t Type) String() string { return string(t) }

// Direction tells which way money moved on the owning account.
type Direction string

const (
	DirectionCredit Direction = "CREDIT"
	DirectionDebit  Direction = "DEBIT"
)

// Transaction is a ledger entry against one account. A transfer is recorded
// as two transactions, a DEBIT leg on the source and a CREDIT leg on the
// destination, each naming the other account as counterparty.
type Transaction struct {
	ID                 uint
	AccountID          uint
	AccountNumber      string
	Type               Type
	Direction          Direction
	CounterpartyNumber string
	Amount             decimal.Decimal
	ExecutedAt         time.Time
}

// NewTransaction builds an entry for a, executed at the given instant.
func NewTransaction(a *Account, t Type, amount decimal.Decimal, at time.Time) *Transaction {
	dir := DirectionCredit
	if t == TypeWithdrawal {
		dir = DirectionDebit
	}
	return &Transaction{
		AccountID:     a.ID,
		AccountNumber: a.Number,
		Type:          t,
		Direction:     dir,
		Amount:        amount,
		ExecutedAt:    at.UTC(),
	}
}

// NewTransferLegs builds the debit leg on source and the credit leg on dest.
func NewTransferLegs(source, dest *Account, amount decimal.Decimal, at time.Time) (debit, credit *Transaction) {
	debit = NewTransaction(source, TypeTransfer, amount, at)
	debit.Direction = DirectionDebit
	debit.CounterpartyNumber = dest.Number

	credit = NewTransaction(dest, TypeTransfer, amount, at)
	credit.Direction = DirectionCredit
	credit.CounterpartyNumber = source.Number
	return debit, credit
}

// Effect is the signed amount this entry contributed to the balance.
func (t *Transaction) Effect() decimal.Decimal {
	if t.Direction == DirectionDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Date is the calendar day of execution.
func (t *Transaction) Date() string {
	return t.ExecutedAt.UTC().Format(time.DateOnly)
}

// Time is the clock time of execution.
func (t *Transaction) Time() string {
	return t.ExecutedAt.UTC().Format(time.TimeOnly)
}

// Correct rewrites type and amount of a settled RECHARGE or WITHDRAWAL and
// returns the balance delta the owning account must absorb. TRANSFER legs are
// immutable since their counterpart lives on another account.
func (t *Transaction) Correct(newType *Type, newAmount *decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	if t.Type == TypeTransfer {
		return decimal.Zero, fmt.Errorf("%w: transfer legs cannot be modified", domain.ErrInvalidTransaction)
	}
	before := t.Effect()

	nextType := t.Type
	if newType != nil {
		nextType = *newType
	}
	if nextType == TypeTransfer {
		return decimal.Zero, fmt.Errorf("%w: a transaction cannot become a transfer", domain.ErrInvalidTransaction)
	}
	nextAmount := t.Amount
	if newAmount != nil {
		nextAmount = *newAmount
	}
	if err := RequirePositive(nextAmount); err != nil {
		return decimal.Zero, err
	}

	t.Type = nextType
	t.Direction = DirectionCredit
	if nextType == TypeWithdrawal {
		t.Direction = DirectionDebit
	}
	t.Amount = nextAmount
	t.ExecutedAt = at.UTC()
	return t.Effect().Sub(before), nil
}

// Reversal returns the balance delta that undoes this entry.
func (t *Transaction) Reversal() (decimal.Decimal, error) {
	if t.Type == TypeTransfer {
		return decimal.Zero, fmt.Errorf("%w: transfer legs cannot be deleted", domain.ErrInvalidTransaction)
	}
	return t.Effect().Neg(), nil
}
