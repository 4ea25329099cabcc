package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/account"
)

type accountResponse struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Kind      account.Kind `json:"kind"`
	Balance   int64        `json:"balance"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt *time.Time   `json:"updatedAt,omitempty"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Kind:      a.Kind,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toResponseList(accounts []*account.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toResponse(a)
	}

	return resp
}
