package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/bill"
	"github.com/moneta-dev/moneta/internal/recur"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectBillColumns = `
	b.id, b.owner_id, b.name, b.amount, b.due_date, b.original_start_date,
	b.recurring_period, b.is_paid, b.reminder_days, b.category_id,
	b.last_reminded_at, b.created_at, b.updated_at
`

func scanBill(s scanner) (*bill.Bill, error) {
	var b bill.Bill

	var period string

	if err := s.Scan(
		&b.ID, &b.OwnerID, &b.Name, &b.Amount, &b.DueDate, &b.OriginalStartDate,
		&period, &b.IsPaid, &b.ReminderDays, &b.CategoryID,
		&b.LastRemindedAt, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Period = recur.Period(period)

	return &b, nil
}

func (s *Store) CreateBill(ctx context.Context, b *bill.Bill) error {
	query := `
		INSERT INTO bills (owner_id, name, amount, due_date, original_start_date, recurring_period, is_paid, reminder_days, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.OwnerID,
		b.Name,
		b.Amount,
		b.DueDate,
		b.OriginalStartDate,
		b.Period,
		b.IsPaid,
		b.ReminderDays,
		b.CategoryID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating bill: %w", err)
	}

	return nil
}

func (s *Store) GetBill(ctx context.Context, ownerID, id uuid.UUID) (*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + `
		FROM bills b
		WHERE b.id = $1 AND b.owner_id = $2`

	b, err := scanBill(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, bill.ErrNotFound
		}

		return nil, fmt.Errorf("getting bill: %w", err)
	}

	return b, nil
}

func (s *Store) ListBills(ctx context.Context, ownerID uuid.UUID) ([]*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + `
		FROM bills b
		WHERE b.owner_id = $1
		ORDER BY b.due_date ASC, b.name ASC`

	return s.queryBills(ctx, "listing bills", query, ownerID)
}

func (s *Store) UpdateBill(ctx context.Context, b *bill.Bill) error {
	query := `
		UPDATE bills
		SET name = $1, amount = $2, due_date = $3, original_start_date = $4,
		    recurring_period = $5, is_paid = $6, reminder_days = $7,
		    category_id = $8, last_reminded_at = $9, updated_at = NOW()
		WHERE id = $10 AND owner_id = $11
	`

	_, err := s.db.ExecContext(ctx, query,
		b.Name,
		b.Amount,
		b.DueDate,
		b.OriginalStartDate,
		b.Period,
		b.IsPaid,
		b.ReminderDays,
		b.CategoryID,
		b.LastRemindedAt,
		b.ID,
		b.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating bill: %w", err)
	}

	return nil
}

func (s *Store) DeleteBill(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM bills WHERE id = $1 AND owner_id = $2`

	_, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}

	return nil
}

func (s *Store) ListDueBetween(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + `
		FROM bills b
		WHERE b.owner_id = $1 AND b.is_paid = FALSE
		  AND b.due_date >= $2 AND b.due_date <= $3
		ORDER BY b.due_date ASC, b.name ASC`

	return s.queryBills(ctx, "listing due bills", query, ownerID, start, end)
}

func (s *Store) ListRecurring(ctx context.Context, ownerID uuid.UUID) ([]*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + `
		FROM bills b
		WHERE b.owner_id = $1 AND b.recurring_period NOT IN ('none', 'once')
		ORDER BY b.due_date ASC, b.name ASC`

	return s.queryBills(ctx, "listing recurring bills", query, ownerID)
}

func (s *Store) SetLastReminded(ctx context.Context, ownerID, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE bills
		SET last_reminded_at = $1, updated_at = NOW()
		WHERE id = $2 AND owner_id = $3
	`

	_, err := s.db.ExecContext(ctx, query, at, id, ownerID)
	if err != nil {
		return fmt.Errorf("recording bill reminder: %w", err)
	}

	return nil
}

func (s *Store) queryBills(ctx context.Context, op, query string, args ...any) ([]*bill.Bill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bills []*bill.Bill

	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		bills = append(bills, b)
	}

	return bills, nil
}
