package alert

import (
	"github.com/google/uuid"
)

// BudgetAlert describes one budget line crossed on the write path.
// SpentAmount is the period total including the transaction that
// caused the crossing.
type BudgetAlert struct {
	CategoryID   uuid.UUID
	CategoryName string
	BudgetAmount int64
	SpentAmount  int64
	PercentSpent float64
	IsExceeded   bool
}

// Result carries the alerts a single transaction raised. At most one
// of the two is set: crossing the budget itself outranks the warning
// threshold.
type Result struct {
	Threshold *BudgetAlert
	Exceeded  *BudgetAlert
}
