package budget

import (
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/recur"
)

// DefaultAlertThreshold is the percent-of-budget at which a threshold
// alert fires when the budget does not set its own.
const DefaultAlertThreshold = 80

// Budget caps spending for one category over a repeating period.
// AlertThreshold is a percentage of Amount.
type Budget struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	CategoryID     uuid.UUID
	Amount         int64 // Amount in cents
	Period         recur.Period
	AlertThreshold int
	StartDate      time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// CurrentPeriod returns the budget window containing at, with windows
// anchored at StartDate and advancing by whole periods. A zero
// StartDate anchors at the first day of at's calendar month. ok is
// false when the budget is not active at that instant.
func (b *Budget) CurrentPeriod(at time.Time) (start, stop time.Time, ok bool) {
	anchor := b.StartDate
	if anchor.IsZero() {
		anchor = time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
	}

	return recur.Window(anchor, b.Period, b.EndDate, at)
}

// Status is a point-in-time snapshot of one budget for the dashboard.
// Derived, never persisted.
type Status struct {
	Budget       *Budget
	CategoryName string
	Spent        int64
	Remaining    int64
	PercentSpent float64
	PeriodStart  time.Time
	PeriodEnd    time.Time
}
