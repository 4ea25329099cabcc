package statement

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=categorizer_mock.go -package=statement

// Categorizer suggests a category for a parsed transaction based on
// its description. Implemented by the categorize service.
type Categorizer interface {
	Suggest(ctx context.Context, ownerID uuid.UUID, description string) (*uuid.UUID, error)
}

// Service parses uploaded bank statements and enriches the resulting
// rows with category suggestions.
type Service struct {
	parser      *Parser
	categorizer Categorizer
}

func NewService(categorizer Categorizer) *Service {
	return &Service{
		parser:      NewParser(),
		categorizer: categorizer,
	}
}

// Parse reads a statement file and returns transaction params ready
// for review. Rows get a suggested category where a rule matches; a
// failed suggestion leaves the row uncategorized rather than failing
// the whole import.
func (s *Service) Parse(ctx context.Context, ownerID uuid.UUID, r io.Reader) ([]transaction.CreateParams, error) {
	params, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing statement: %w", err)
	}

	for i := range params {
		categoryID, err := s.categorizer.Suggest(ctx, ownerID, params[i].RawDescription)
		if err != nil {
			slog.WarnContext(ctx, "category suggestion failed", "description", params[i].RawDescription, "error", err)
			continue
		}

		params[i].CategoryID = categoryID
	}

	return params, nil
}
