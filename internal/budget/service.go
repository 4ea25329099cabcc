package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/category"
	"github.com/moneta-dev/moneta/internal/recur"
	"github.com/moneta-dev/moneta/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, ownerID, id uuid.UUID) (*Budget, error)
	GetBudgetByCategory(ctx context.Context, ownerID, categoryID uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, ownerID uuid.UUID) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, ownerID, id uuid.UUID) error
}

// TransactionSource supplies the transactions spend is aggregated over.
type TransactionSource interface {
	ListInRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]*transaction.Transaction, error)
}

// CategorySource resolves category names for status snapshots.
type CategorySource interface {
	GetCategory(ctx context.Context, ownerID, id uuid.UUID) (*category.Category, error)
}

type Service struct {
	repo Repository
	txs  TransactionSource
	cats CategorySource
}

func NewService(repo Repository, txs TransactionSource, cats CategorySource) *Service {
	return &Service{repo: repo, txs: txs, cats: cats}
}

type CreateParams struct {
	CategoryID     uuid.UUID
	Amount         int64
	Period         recur.Period
	AlertThreshold int
	StartDate      time.Time
	EndDate        *time.Time
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Budget, error) {
	if params.CategoryID == uuid.Nil {
		return nil, fmt.Errorf("category is required")
	}

	if params.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	threshold := params.AlertThreshold
	if threshold == 0 {
		threshold = DefaultAlertThreshold
	}

	if threshold < 1 || threshold > 100 {
		return nil, fmt.Errorf("alert threshold must be between 1 and 100")
	}

	period := recur.PeriodMonthly
	if params.Period != "" {
		period = recur.Parse(string(params.Period))
	}

	start := params.StartDate
	if start.IsZero() {
		now := time.Now()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}

	b := &Budget{
		OwnerID:        ownerID,
		CategoryID:     params.CategoryID,
		Amount:         params.Amount,
		Period:         period,
		AlertThreshold: threshold,
		StartDate:      recur.Day(start),
		EndDate:        params.EndDate,
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, b *Budget) error {
	if b.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	if b.AlertThreshold < 1 || b.AlertThreshold > 100 {
		return fmt.Errorf("alert threshold must be between 1 and 100")
	}

	return s.repo.UpdateBudget(ctx, b)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, ownerID, id)
}

// SpendByCategory sums spending against one category between start and
// end, both bounds inclusive. Income and uncategorized transactions
// never count. The total is recomputed from the transaction set on
// every call; nothing is cached.
func (s *Service) SpendByCategory(ctx context.Context, ownerID, categoryID uuid.UUID, start, end time.Time) (int64, error) {
	txs, err := s.txs.ListInRange(ctx, ownerID, start, end)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	start = recur.Day(start)
	end = recur.Day(end)

	var total int64

	for _, tx := range txs {
		if tx.IsIncome || tx.CategoryID == nil || *tx.CategoryID != categoryID {
			continue
		}

		d := recur.Day(tx.Date)
		if d.Before(start) || d.After(end) {
			continue
		}

		total += tx.Amount
	}

	return total, nil
}

// Status snapshots every budget active at the given instant. Store
// failures degrade to partial results with a log line so the dashboard
// stays available.
func (s *Service) Status(ctx context.Context, ownerID uuid.UUID, at time.Time) []Status {
	budgets, err := s.repo.ListBudgets(ctx, ownerID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list budgets", "owner", ownerID, "error", err)
		return nil
	}

	statuses := make([]Status, 0, len(budgets))

	for _, b := range budgets {
		start, stop, ok := b.CurrentPeriod(at)
		if !ok {
			continue
		}

		spent, err := s.SpendByCategory(ctx, ownerID, b.CategoryID, start, stop)
		if err != nil {
			slog.ErrorContext(ctx, "failed to aggregate spend", "budget", b.ID, "error", err)

			spent = 0
		}

		var percent float64
		if b.Amount > 0 {
			percent = float64(spent) / float64(b.Amount) * 100
		}

		var name string
		if c, err := s.cats.GetCategory(ctx, ownerID, b.CategoryID); err == nil {
			name = c.Name
		} else {
			slog.ErrorContext(ctx, "failed to resolve category", "category", b.CategoryID, "error", err)
		}

		statuses = append(statuses, Status{
			Budget:       b,
			CategoryName: name,
			Spent:        spent,
			Remaining:    b.Amount - spent,
			PercentSpent: percent,
			PeriodStart:  start,
			PeriodEnd:    stop,
		})
	}

	return statuses
}

// Alerting returns the subset of Status whose spend sits at or above
// the budget's alert threshold: a level snapshot for the alerts panel,
// as opposed to the edge-triggered detection on the write path.
func (s *Service) Alerting(ctx context.Context, ownerID uuid.UUID, at time.Time) []Status {
	var alerting []Status

	for _, st := range s.Status(ctx, ownerID, at) {
		if st.PercentSpent >= float64(st.Budget.AlertThreshold) {
			alerting = append(alerting, st)
		}
	}

	return alerting
}
