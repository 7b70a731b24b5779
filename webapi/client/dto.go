package client

import (
	"github.com/amirasaad/bankoffice/pkg/domain/client"
	clientsvc "github.com/amirasaad/bankoffice/pkg/service/client"
	accountweb "github.com/amirasaad/bankoffice/webapi/account"
)

//revive:disable

// RegisterRequest is the body for registering a client or an adherent.
type RegisterRequest struct {
	Dni      string `json:"dni" validate:"required,min=1,max=32"`
	Name     string `json:"name" validate:"required,min=1,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=72"`
	Address  string `json:"address" validate:"omitempty,max=256"`
}

// UpdateRequest carries the mutable client fields. Absent fields are left
// unchanged.
type UpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=4,max=72"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=256"`
}

func (r *RegisterRequest) registration() clientsvc.Registration {
	return clientsvc.Registration{
		Dni:      r.Dni,
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Address:  r.Address,
	}
}

func (r *UpdateRequest) patch() clientsvc.Patch {
	return clientsvc.Patch{
		Name:     r.Name,
		Email:    r.Email,
		Address:  r.Address,
		Password: r.Password,
	}
}

// ClientDTO is the API representation of a client. The password hash is
// never exposed.
type ClientDTO struct {
	ID            uint                   `json:"id"`
	Dni           string                 `json:"dni"`
	Name          string                 `json:"name"`
	Email         string                 `json:"email"`
	Address       string                 `json:"address,omitempty"`
	Status        string                 `json:"status"`
	Account       *accountweb.AccountDTO `json:"bankingAccount,omitempty"`
	MainClientDni string                 `json:"mainClientDni,omitempty"`
	Adherents     []*ClientDTO           `json:"adherents,omitempty"`
}

// ToClientDTO maps a client to its API representation.
func ToClientDTO(c *client.Client) *ClientDTO {
	if c == nil {
		return nil
	}
	return &ClientDTO{
		ID:      c.ID,
		Dni:     c.Dni,
		Name:    c.Name,
		Email:   c.Email,
		Address: c.Address,
		Status:  c.Status.String(),
		Account: accountweb.ToAccountDTO(c.Account),
	}
}

func toClientDTOs(list []*client.Client) []*ClientDTO {
	out := make([]*ClientDTO, 0, len(list))
	for _, c := range list {
		out = append(out, ToClientDTO(c))
	}
	return out
}

// fromSummary maps the listing projection, adherents included.
func fromSummary(s clientsvc.Summary) *ClientDTO {
	dto := &ClientDTO{
		ID:            s.ID,
		Dni:           s.Dni,
		Name:          s.Name,
		Email:         s.Email,
		Address:       s.Address,
		Status:        s.Status.String(),
		Account:       accountweb.ToAccountDTO(s.Account),
		MainClientDni: s.MainClientDni,
	}
	if len(s.Adherents) > 0 {
		dto.Adherents = toClientDTOs(s.Adherents)
	}
	return dto
}
