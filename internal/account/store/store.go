package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/account"
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

const selectAccountColumns = `a.id, a.owner_id, a.name, a.kind, a.balance, a.created_at, a.updated_at`

func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	var kind string

	if err := s.Scan(&a.ID, &a.OwnerID, &a.Name, &kind, &a.Balance, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}

	a.Kind = account.Kind(kind)

	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (owner_id, name, kind, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.OwnerID,
		a.Name,
		a.Kind,
		a.Balance,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		WHERE a.id = $1 AND a.owner_id = $2`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		WHERE a.owner_id = $1
		ORDER BY a.name ASC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	return accounts, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, kind = $2, balance = $3, updated_at = NOW()
		WHERE id = $4 AND owner_id = $5
	`

	_, err := s.db.ExecContext(ctx, query, a.Name, a.Kind, a.Balance, a.ID, a.OwnerID)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM accounts WHERE id = $1 AND owner_id = $2`

	_, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	return nil
}
