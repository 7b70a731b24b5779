package account

import (
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/shopspring/decimal"
)

//revive:disable

// AccountDTO is the API representation of a banking account.
type AccountDTO struct {
	ID              uint            `json:"id"`
	Number          string          `json:"accountNumber"`
	Balance         decimal.Decimal `json:"balance" swaggertype:"string"`
	WithdrawalLimit decimal.Decimal `json:"withdrawalLimit" swaggertype:"string"`
	OpenedOn        string          `json:"openedOn"`
	ClosedOn        string          `json:"closedOn,omitempty"`
	Status          string          `json:"status"`
}

// ToAccountDTO maps a domain account to its API representation.
func ToAccountDTO(a *account.Account) *AccountDTO {
	if a == nil {
		return nil
	}
	dto := &AccountDTO{
		ID:              a.ID,
		Number:          a.Number,
		Balance:         a.Balance,
		WithdrawalLimit: a.WithdrawalLimit,
		OpenedOn:        a.OpenedOn.Format(time.DateOnly),
		Status:          a.Status.String(),
	}
	if a.ClosedOn != nil {
		dto.ClosedOn = a.ClosedOn.Format(time.DateOnly)
	}
	return dto
}

func toAccountDTOs(accounts []*account.Account) []*AccountDTO {
	out := make([]*AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ToAccountDTO(a))
	}
	return out
}
