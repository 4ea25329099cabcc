package categorize

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorize
type Repository interface {
	FindMatch(ctx context.Context, ownerID uuid.UUID, rawDescription string) (*uuid.UUID, error)
	UpsertRule(ctx context.Context, ownerID uuid.UUID, pattern string, categoryID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest tries to find a category for the given transaction description.
// Returns nil if no rule matches.
func (s *Service) Suggest(ctx context.Context, ownerID uuid.UUID, rawDescription string) (*uuid.UUID, error) {
	return s.repo.FindMatch(ctx, ownerID, rawDescription)
}

// Learn remembers that descriptions containing pattern belong to the
// given category. Relearning a pattern replaces its category.
func (s *Service) Learn(ctx context.Context, ownerID uuid.UUID, pattern string, categoryID uuid.UUID) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return fmt.Errorf("pattern is required")
	}

	if categoryID == uuid.Nil {
		return fmt.Errorf("category is required")
	}

	return s.repo.UpsertRule(ctx, ownerID, pattern, categoryID)
}
