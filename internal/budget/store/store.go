package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/budget"
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

const selectBudgetColumns = `
	b.id, b.owner_id, b.category_id, b.amount, b.period, b.alert_threshold,
	b.start_date, b.end_date, b.created_at, b.updated_at
`

func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget

	var period string

	if err := s.Scan(
		&b.ID, &b.OwnerID, &b.CategoryID, &b.Amount, &period, &b.AlertThreshold,
		&b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Period = recur.Period(period)

	return &b, nil
}

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (owner_id, category_id, amount, period, alert_threshold, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.OwnerID,
		b.CategoryID,
		b.Amount,
		b.Period,
		b.AlertThreshold,
		b.StartDate,
		b.EndDate,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, ownerID, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b
		WHERE b.id = $1 AND b.owner_id = $2`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) GetBudgetByCategory(ctx context.Context, ownerID, categoryID uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b
		WHERE b.owner_id = $1 AND b.category_id = $2
		ORDER BY b.created_at DESC
		LIMIT 1`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, ownerID, categoryID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget by category: %w", err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, ownerID uuid.UUID) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b
		WHERE b.owner_id = $1
		ORDER BY b.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		UPDATE budgets
		SET category_id = $1, amount = $2, period = $3, alert_threshold = $4,
		    start_date = $5, end_date = $6, updated_at = NOW()
		WHERE id = $7 AND owner_id = $8
	`

	_, err := s.db.ExecContext(ctx, query,
		b.CategoryID,
		b.Amount,
		b.Period,
		b.AlertThreshold,
		b.StartDate,
		b.EndDate,
		b.ID,
		b.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM budgets WHERE id = $1 AND owner_id = $2`

	_, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	return nil
}
