package bill

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/recur"
)

// DefaultWindowDays is the lookahead window for upcoming bills when the
// caller does not pick one.
const DefaultWindowDays = 30

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=bill
type Repository interface {
	CreateBill(ctx context.Context, b *Bill) error
	GetBill(ctx context.Context, ownerID, id uuid.UUID) (*Bill, error)
	ListBills(ctx context.Context, ownerID uuid.UUID) ([]*Bill, error)
	UpdateBill(ctx context.Context, b *Bill) error
	DeleteBill(ctx context.Context, ownerID, id uuid.UUID) error

	// ListDueBetween returns unpaid bills whose stored due date falls
	// inside [start, end].
	ListDueBetween(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]*Bill, error)
	// ListRecurring returns every bill with a recurring period,
	// regardless of paid state.
	ListRecurring(ctx context.Context, ownerID uuid.UUID) ([]*Bill, error)

	SetLastReminded(ctx context.Context, ownerID, id uuid.UUID, at time.Time) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name              string
	Amount            int64
	DueDate           time.Time
	OriginalStartDate *time.Time
	Period            recur.Period
	ReminderDays      int
	CategoryID        *uuid.UUID
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Bill, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("bill name is required")
	}

	if params.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	if params.DueDate.IsZero() {
		return nil, fmt.Errorf("due date is required")
	}

	if params.ReminderDays < 0 {
		return nil, fmt.Errorf("reminder days must not be negative")
	}

	// An absent period means a one-off bill; anything else goes through
	// the parser and its monthly fallback.
	period := recur.PeriodNone
	if params.Period != "" {
		period = recur.Parse(string(params.Period))
	}

	b := &Bill{
		OwnerID:      ownerID,
		Name:         name,
		Amount:       params.Amount,
		DueDate:      recur.Day(params.DueDate),
		Period:       period,
		ReminderDays: params.ReminderDays,
		CategoryID:   params.CategoryID,
	}

	if params.OriginalStartDate != nil {
		start := recur.Day(*params.OriginalStartDate)
		b.OriginalStartDate = &start
	}

	if err := s.repo.CreateBill(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Bill, error) {
	return s.repo.GetBill(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Bill, error) {
	return s.repo.ListBills(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, b *Bill) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("bill name is required")
	}

	if b.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	return s.repo.UpdateBill(ctx, b)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteBill(ctx, ownerID, id)
}

// Upcoming merges stored bills due within windowDays of at with
// projected next occurrences of recurring bills, deduplicated by bill
// identity and ordered by ascending due date.
//
// A bill appears at most once: its own stored row when that is already
// due in-window, otherwise its earliest projected occurrence. Projected
// copies are always unpaid and keep the projection anchor as
// OriginalDueDate. Store failures degrade to partial results with a log
// line so the dashboard stays available.
func (s *Service) Upcoming(ctx context.Context, ownerID uuid.UUID, at time.Time, windowDays int) []Occurrence {
	if windowDays < 0 {
		windowDays = 0
	}

	today := recur.Day(at)
	end := today.AddDate(0, 0, windowDays)

	stored, err := s.repo.ListDueBetween(ctx, ownerID, today, end)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list due bills", "owner", ownerID, "error", err)

		stored = nil
	}

	seen := make(map[uuid.UUID]struct{}, len(stored))
	occurrences := make([]Occurrence, 0, len(stored))

	for _, b := range stored {
		seen[b.ID] = struct{}{}

		occurrences = append(occurrences, Occurrence{Bill: *b})
	}

	recurring, err := s.repo.ListRecurring(ctx, ownerID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list recurring bills", "owner", ownerID, "error", err)

		recurring = nil
	}

	for _, b := range recurring {
		if _, ok := seen[b.ID]; ok {
			continue
		}

		anchor := recur.Day(b.Anchor())

		next := recur.Next(anchor, b.Period, today, b.IsPaid)
		if next.Before(today) || next.After(end) {
			continue
		}

		projected := *b
		projected.DueDate = next
		projected.IsPaid = false

		occurrences = append(occurrences, Occurrence{
			Bill:                  projected,
			IsRecurringOccurrence: true,
			OriginalDueDate:       &anchor,
		})

		seen[b.ID] = struct{}{}
	}

	sort.Slice(occurrences, func(i, j int) bool {
		if !occurrences[i].DueDate.Equal(occurrences[j].DueDate) {
			return occurrences[i].DueDate.Before(occurrences[j].DueDate)
		}

		return occurrences[i].Name < occurrences[j].Name
	})

	return occurrences
}

// MarkPaid settles the bill's current occurrence. A recurring bill
// rolls one period forward: the settled due date becomes the new
// projection anchor, so the stored due date and the projector agree on
// the next occurrence. The reminder bookkeeping resets with the roll.
func (s *Service) MarkPaid(ctx context.Context, ownerID, id uuid.UUID) (*Bill, error) {
	b, err := s.repo.GetBill(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	b.IsPaid = true

	if b.Period.Recurring() {
		paid := recur.Day(b.DueDate)
		b.OriginalStartDate = &paid
		b.DueDate = recur.Next(paid, b.Period, paid, true)
		b.LastRemindedAt = nil
	}

	if err := s.repo.UpdateBill(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DueReminders returns the upcoming occurrences whose reminder lead
// time has been reached at the given instant and that have not already
// been reminded on that day.
func (s *Service) DueReminders(ctx context.Context, ownerID uuid.UUID, at time.Time, maxLeadDays int) []Occurrence {
	today := recur.Day(at)

	var due []Occurrence

	for _, occ := range s.Upcoming(ctx, ownerID, at, maxLeadDays) {
		if occ.DaysUntil(today) > occ.ReminderDays {
			continue
		}

		if occ.LastRemindedAt != nil && recur.Day(*occ.LastRemindedAt).Equal(today) {
			continue
		}

		due = append(due, occ)
	}

	return due
}

// MarkReminded records that a reminder went out for the bill, keeping
// reminder passes idempotent within a day.
func (s *Service) MarkReminded(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.SetLastReminded(ctx, ownerID, id, time.Now())
}
