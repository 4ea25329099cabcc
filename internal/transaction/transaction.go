package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Transaction represents a single money movement. Amount is always
// positive; IsIncome tells the two directions apart. Income and
// uncategorized transactions are excluded from budget aggregation.
type Transaction struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	AccountID      *uuid.UUID
	CategoryID     *uuid.UUID
	Amount         int64 // Amount in cents
	IsIncome       bool
	Description    string
	RawDescription string
	Date           time.Time
	ReceiptURL     *string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}
