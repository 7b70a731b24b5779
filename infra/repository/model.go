package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client represents a client record in the database.
type Client struct {
	ID           uint   `gorm:"primaryKey"`
	Dni          string `gorm:"type:varchar(32);uniqueIndex;not null"`
	Name         string `gorm:"size:255;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Address      string `gorm:"size:255"`
	Status       string `gorm:"type:varchar(16);index;not null"`
	MainClientID *uint  `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Client model.
func (Client) TableName() string {
	return "clients"
}

// Account represents a banking account record in the database.
type Account struct {
	ID              uint            `gorm:"primaryKey"`
	ClientID        *uint           `gorm:"uniqueIndex"`
	Number          string          `gorm:"type:varchar(32);uniqueIndex;not null"`
	Balance         decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	WithdrawalLimit decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	OpenedOn        time.Time       `gorm:"type:date;not null"`
	ClosedOn        *time.Time      `gorm:"type:date"`
	Status          string          `gorm:"type:varchar(16);index;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Transaction represents a persisted ledger entry.
type Transaction struct {
	ID                 uint            `gorm:"primaryKey"`
	AccountID          uint            `gorm:"index;not null"`
	AccountNumber      string          `gorm:"type:varchar(32);not null"`
	Type               string          `gorm:"type:varchar(16);index;not null"`
	Direction          string          `gorm:"type:varchar(8);not null"`
	CounterpartyNumber string          `gorm:"type:varchar(32)"`
	Amount             decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	ExecutedAt         time.Time       `gorm:"index;not null"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{&Client{}, &Account{}, &Transaction{}}
}
