package transaction

import (
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/shopspring/decimal"
)

//revive:disable

// TransferRequest is the body of a transfer between two accounts.
type TransferRequest struct {
	Amount                   decimal.Decimal `json:"amount" swaggertype:"string"`
	DestinationAccountNumber string          `json:"destinationAccountNumber" validate:"required,max=64"`
}

// UpdateTransactionRequest corrects a settled recharge or withdrawal. Absent
// fields are left unchanged.
type UpdateTransactionRequest struct {
	Type   string           `json:"type" validate:"omitempty,oneof=RECHARGE WITHDRAWAL recharge withdrawal"`
	Amount *decimal.Decimal `json:"amount,omitempty" swaggertype:"string"`
}

// TransactionDTO is the API representation of a ledger entry.
type TransactionDTO struct {
	ID                        uint            `json:"id"`
	AccountNumber             string          `json:"accountNumber"`
	Type                      string          `json:"transactionType"`
	Direction                 string          `json:"direction"`
	CounterpartyAccountNumber string          `json:"counterpartyAccountNumber,omitempty"`
	Amount                    decimal.Decimal `json:"amount" swaggertype:"string"`
	Date                      string          `json:"date"`
	Time                      string          `json:"time"`
}

// ToTransactionDTO maps a ledger entry to its API representation.
func ToTransactionDTO(tx *account.Transaction) *TransactionDTO {
	if tx == nil {
		return nil
	}
	return &TransactionDTO{
		ID:                        tx.ID,
		AccountNumber:             tx.AccountNumber,
		Type:                      tx.Type.String(),
		Direction:                 string(tx.Direction),
		CounterpartyAccountNumber: tx.CounterpartyNumber,
		Amount:                    tx.Amount,
		Date:                      tx.Date(),
		Time:                      tx.Time(),
	}
}

func toTransactionDTOs(txs []*account.Transaction) []*TransactionDTO {
	out := make([]*TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, ToTransactionDTO(tx))
	}
	return out
}
