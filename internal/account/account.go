package account

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies a bank account.
type Kind string

const (
	KindChecking Kind = "checking"
	KindSavings  Kind = "savings"
	KindCredit   Kind = "credit"
	KindCash     Kind = "cash"
)

// Account represents a bank account tracked on the dashboard. Balance is
// kept in cents and adjusted by transaction writes against the account.
type Account struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Kind      Kind
	Balance   int64 // Balance in cents
	CreatedAt time.Time
	UpdatedAt *time.Time
}
