package alert

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/budget"
	"github.com/moneta-dev/moneta/internal/category"
	"github.com/moneta-dev/moneta/internal/recur"
	"github.com/moneta-dev/moneta/internal/transaction"
	"github.com/moneta-dev/moneta/internal/user"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=alert
type BudgetSource interface {
	GetBudgetByCategory(ctx context.Context, ownerID, categoryID uuid.UUID) (*budget.Budget, error)
}

type SpendSource interface {
	SpendByCategory(ctx context.Context, ownerID, categoryID uuid.UUID, start, end time.Time) (int64, error)
}

type CategorySource interface {
	GetCategory(ctx context.Context, ownerID, id uuid.UUID) (*category.Category, error)
}

type UserSource interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Notifier delivers alerts to the budget owner. Implementations live
// in the notify package.
type Notifier interface {
	SendBudgetAlert(ctx context.Context, email string, a BudgetAlert) error
}

type Service struct {
	budgets    BudgetSource
	spend      SpendSource
	categories CategorySource
	users      UserSource
	notifier   Notifier
}

func NewService(budgets BudgetSource, spend SpendSource, categories CategorySource, users UserSource, notifier Notifier) *Service {
	return &Service{
		budgets:    budgets,
		spend:      spend,
		categories: categories,
		users:      users,
		notifier:   notifier,
	}
}

// Check evaluates a just-recorded transaction against its category's
// budget and reports the lines it crossed. Alerts are edge triggered:
// the period total must land at or above a line it was below before
// this transaction, so further spending inside the same band stays
// quiet.
//
// Income, uncategorized transactions, categories without a budget, and
// transactions dated outside the budget's current period never alert.
// Lookup failures are logged and swallowed; alerting must not break
// the write path.
func (s *Service) Check(ctx context.Context, tx *transaction.Transaction, at time.Time) Result {
	if tx == nil || tx.IsIncome || tx.CategoryID == nil {
		return Result{}
	}

	b, err := s.budgets.GetBudgetByCategory(ctx, tx.OwnerID, *tx.CategoryID)
	if err != nil {
		if !errors.Is(err, budget.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to look up budget for alerting", "owner", tx.OwnerID, "error", err)
		}

		return Result{}
	}

	if b.Amount <= 0 {
		return Result{}
	}

	start, stop, ok := b.CurrentPeriod(at)
	if !ok {
		return Result{}
	}

	day := recur.Day(tx.Date)
	if day.Before(start) || day.After(stop) {
		return Result{}
	}

	cat, err := s.categories.GetCategory(ctx, tx.OwnerID, b.CategoryID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to look up category for alerting", "owner", tx.OwnerID, "error", err)

		return Result{}
	}

	after, err := s.spend.SpendByCategory(ctx, tx.OwnerID, b.CategoryID, start, stop)
	if err != nil {
		slog.ErrorContext(ctx, "failed to total spending for alerting", "owner", tx.OwnerID, "error", err)

		return Result{}
	}

	before := after - tx.Amount

	pctAfter := float64(after) / float64(b.Amount) * 100
	pctBefore := float64(before) / float64(b.Amount) * 100
	threshold := float64(b.AlertThreshold)

	a := BudgetAlert{
		CategoryID:   b.CategoryID,
		CategoryName: cat.Name,
		BudgetAmount: b.Amount,
		SpentAmount:  after,
		PercentSpent: pctAfter,
	}

	var res Result

	switch {
	case pctAfter >= 100 && pctBefore < 100:
		a.IsExceeded = true
		res.Exceeded = &a
	case pctAfter >= threshold && pctBefore < threshold && pctAfter < 100:
		res.Threshold = &a
	}

	return res
}

// TransactionRecorded runs the budget check for a transaction that was
// just persisted and notifies the owner about any crossing. It never
// reports failure; delivery problems are logged and the write path
// moves on.
func (s *Service) TransactionRecorded(ctx context.Context, tx *transaction.Transaction) {
	res := s.Check(ctx, tx, time.Now())
	if res.Threshold == nil && res.Exceeded == nil {
		return
	}

	u, err := s.users.GetUser(ctx, tx.OwnerID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to look up owner for alerting", "owner", tx.OwnerID, "error", err)

		return
	}

	if u.Email == "" {
		slog.WarnContext(ctx, "owner has no email address, dropping budget alert", "owner", tx.OwnerID)

		return
	}

	for _, a := range []*BudgetAlert{res.Threshold, res.Exceeded} {
		if a == nil {
			continue
		}

		if err := s.notifier.SendBudgetAlert(ctx, u.Email, *a); err != nil {
			slog.ErrorContext(ctx, "failed to send budget alert", "owner", tx.OwnerID, "category", a.CategoryName, "error", err)
		}
	}
}
