package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindMatch returns the category of the longest rule whose pattern
// appears in the description, newest rule winning ties.
func (s *Store) FindMatch(ctx context.Context, ownerID uuid.UUID, rawDescription string) (*uuid.UUID, error) {
	query := `
		SELECT category_id
		FROM category_rules
		WHERE owner_id = $1 AND $2 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var categoryID uuid.UUID

	err := s.db.QueryRowContext(ctx, query, ownerID, rawDescription).Scan(&categoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding match: %w", err)
	}

	return &categoryID, nil
}

func (s *Store) UpsertRule(ctx context.Context, ownerID uuid.UUID, pattern string, categoryID uuid.UUID) error {
	query := `
		INSERT INTO category_rules (owner_id, pattern, category_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (owner_id, pattern)
		DO UPDATE SET category_id = EXCLUDED.category_id, created_at = NOW()
	`

	_, err := s.db.ExecContext(ctx, query, ownerID, pattern, categoryID)
	if err != nil {
		return fmt.Errorf("upserting rule: %w", err)
	}

	return nil
}
