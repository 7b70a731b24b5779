package repository

import (
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/domain/client"
)

func mapAccountDomainToModel(a *account.Account) Account {
	return Account{
		ID:              a.ID,
		ClientID:        a.ClientID,
		Number:          a.Number,
		Balance:         a.Balance,
		WithdrawalLimit: a.WithdrawalLimit,
		OpenedOn:        a.OpenedOn,
		ClosedOn:        a.ClosedOn,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func mapAccountModelToDomain(m *Account) *account.Account {
	return &account.Account{
		ID:              m.ID,
		ClientID:        m.ClientID,
		Number:          m.Number,
		Balance:         m.Balance,
		WithdrawalLimit: m.WithdrawalLimit,
		OpenedOn:        m.OpenedOn,
		ClosedOn:        m.ClosedOn,
		Status:          account.Status(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func mapTransactionDomainToModel(tx *account.Transaction) Transaction {
	return Transaction{
		ID:                 tx.ID,
		AccountID:          tx.AccountID,
		AccountNumber:      tx.AccountNumber,
		Type:               string(tx.Type),
		Direction:          string(tx.Direction),
		CounterpartyNumber: tx.CounterpartyNumber,
		Amount:             tx.Amount,
		ExecutedAt:         tx.ExecutedAt,
	}
}

func mapTransactionModelToDomain(m *Transaction) *account.Transaction {
	return &account.Transaction{
		ID:                 m.ID,
		AccountID:          m.AccountID,
		AccountNumber:      m.AccountNumber,
		Type:               account.Type(m.Type),
		Direction:          account.Direction(m.Direction),
		CounterpartyNumber: m.CounterpartyNumber,
		Amount:             m.Amount,
		ExecutedAt:         m.ExecutedAt.UTC(),
	}
}

func mapClientDomainToModel(c *client.Client) Client {
	return Client{
		ID:           c.ID,
		Dni:          c.Dni,
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Address:      c.Address,
		Status:       string(c.Status),
		MainClientID: c.MainClientID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func mapClientModelToDomain(m *Client) *client.Client {
	return &client.Client{
		ID:           m.ID,
		Dni:          m.Dni,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Address:      m.Address,
		Status:       client.Status(m.Status),
		MainClientID: m.MainClientID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
