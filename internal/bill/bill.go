package bill

import (
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/recur"
)

// Bill represents a payable obligation, one-off or recurring. DueDate
// always points at the current occurrence; marking a recurring bill
// paid rolls it one period forward. The projector never mutates a
// stored bill.
type Bill struct {
	ID                uuid.UUID
	OwnerID           uuid.UUID
	Name              string
	Amount            int64 // Amount in cents
	DueDate           time.Time
	OriginalStartDate *time.Time
	Period            recur.Period
	IsPaid            bool
	ReminderDays      int
	CategoryID        *uuid.UUID
	LastRemindedAt    *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// Anchor returns the date future occurrences are projected from: the
// original start date when recorded, the current due date otherwise.
func (b *Bill) Anchor() time.Time {
	if b.OriginalStartDate != nil {
		return *b.OriginalStartDate
	}

	return b.DueDate
}

// Occurrence is one entry of the upcoming-bills list: either a stored
// bill due within the lookahead window, or a derived copy carrying a
// projected due date. Derived, never persisted.
type Occurrence struct {
	Bill
	IsRecurringOccurrence bool
	OriginalDueDate       *time.Time
}

// DaysUntil returns the whole days between t's calendar date and the
// occurrence's due date.
func (o *Occurrence) DaysUntil(t time.Time) int {
	return int(o.DueDate.Sub(recur.Day(t)).Hours() / 24)
}
