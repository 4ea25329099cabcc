package notify

import (
	"context"
	"log/slog"

	"github.com/moneta-dev/moneta/internal/alert"
)

// LogNotifier writes notifications to the log instead of delivering
// them. It stands in for SMTP when no relay is configured.
type LogNotifier struct{}

func (LogNotifier) SendBudgetAlert(ctx context.Context, email string, a alert.BudgetAlert) error {
	slog.InfoContext(ctx, "budget alert",
		"email", email,
		"category", a.CategoryName,
		"percent", a.PercentSpent,
		"exceeded", a.IsExceeded,
	)

	return nil
}

func (LogNotifier) SendBillReminder(ctx context.Context, email string, r BillReminder) error {
	slog.InfoContext(ctx, "bill reminder",
		"email", email,
		"bill", r.BillName,
		"due", r.DueDate.Format("2006-01-02"),
		"days", r.DaysToDue,
	)

	return nil
}
