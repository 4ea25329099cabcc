package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/bill"
	"github.com/moneta-dev/moneta/internal/notify"
	"github.com/moneta-dev/moneta/internal/recur"
	"github.com/moneta-dev/moneta/internal/user"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=reminder

type UserSource interface {
	ListUsers(ctx context.Context) ([]*user.User, error)
}

type BillSource interface {
	DueReminders(ctx context.Context, ownerID uuid.UUID, at time.Time, maxLeadDays int) []bill.Occurrence
	MarkReminded(ctx context.Context, ownerID, id uuid.UUID) error
}

// Notifier delivers reminders to the bill owner. Implementations live
// in the notify package.
type Notifier interface {
	SendBillReminder(ctx context.Context, email string, r notify.BillReminder) error
}

// Service runs reminder passes over every owner's upcoming bills.
type Service struct {
	users       UserSource
	bills       BillSource
	notifier    Notifier
	maxLeadDays int
}

func NewService(users UserSource, bills BillSource, notifier Notifier, maxLeadDays int) *Service {
	return &Service{
		users:       users,
		bills:       bills,
		notifier:    notifier,
		maxLeadDays: maxLeadDays,
	}
}

// Run performs one reminder pass at the given instant and reports how
// many reminders went out. Failures for one bill or one owner are
// logged and skipped so the rest of the pass still runs.
//
// A bill is only marked reminded after its notification was delivered,
// so a failed send is retried on the next pass.
func (s *Service) Run(ctx context.Context, at time.Time) int {
	owners, err := s.users.ListUsers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list owners for reminder pass", "error", err)
		return 0
	}

	today := recur.Day(at)
	sent := 0

	for _, owner := range owners {
		for _, occ := range s.bills.DueReminders(ctx, owner.ID, at, s.maxLeadDays) {
			r := notify.BillReminder{
				BillName:  occ.Name,
				Amount:    occ.Amount,
				DueDate:   occ.DueDate,
				DaysToDue: occ.DaysUntil(today),
			}

			if err := s.notifier.SendBillReminder(ctx, owner.Email, r); err != nil {
				slog.ErrorContext(ctx, "failed to send bill reminder",
					"bill_id", occ.ID,
					"email", owner.Email,
					"error", err,
				)

				continue
			}

			if err := s.bills.MarkReminded(ctx, owner.ID, occ.ID); err != nil {
				slog.ErrorContext(ctx, "failed to mark bill reminded", "bill_id", occ.ID, "error", err)
			}

			sent++
		}
	}

	return sent
}
