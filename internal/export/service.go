package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneta-dev/moneta/internal/category"
	"github.com/moneta-dev/moneta/internal/transaction"
)

// Service writes an owner's transactions out as CSV for spreadsheet use.
type Service struct {
	transactions *transaction.Service
	categories   *category.Service
}

func NewService(txService *transaction.Service, categoryService *category.Service) *Service {
	return &Service{
		transactions: txService,
		categories:   categoryService,
	}
}

var csvHeader = []string{"Date", "Description", "Category", "Amount", "Receipt"}

// WriteCSV streams the transactions matching the filter to w. Amounts
// are signed decimal strings, expenses negative.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, ownerID uuid.UUID, filter transaction.ListFilter) error {
	txs, err := s.transactions.List(ctx, ownerID, filter)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	names, err := s.categoryNames(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("listing categories: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, t := range txs {
		if err := cw.Write(csvRow(t, names)); err != nil {
			return fmt.Errorf("writing transaction %s: %w", t.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func (s *Service) categoryNames(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID]string, error) {
	categories, err := s.categories.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	return names, nil
}

func csvRow(t *transaction.Transaction, names map[uuid.UUID]string) []string {
	cents := t.Amount
	if !t.IsIncome {
		cents = -cents
	}

	categoryName := ""
	if t.CategoryID != nil {
		categoryName = names[*t.CategoryID]
	}

	receipt := ""
	if t.ReceiptURL != nil {
		receipt = *t.ReceiptURL
	}

	return []string{
		t.Date.Format("2006-01-02"),
		t.Description,
		categoryName,
		decimal.New(cents, -2).StringFixed(2),
		receipt,
	}
}
