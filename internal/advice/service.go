package advice

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneta-dev/moneta/internal/category"
	"github.com/moneta-dev/moneta/internal/transaction"
)

// Summary describes one month of activity for the advice prompt.
// Amounts are in cents.
type Summary struct {
	Month         string
	TotalIncome   int64
	TotalExpenses int64
	Categories    []CategorySpend
}

type CategorySpend struct {
	Category string
	Amount   int64
}

// summaryPayload is the wire shape of a Summary. The service speaks
// decimal currency strings, not cents.
type summaryPayload struct {
	Month         string                 `json:"month"`
	TotalIncome   string                 `json:"totalIncome"`
	TotalExpenses string                 `json:"totalExpenses"`
	Categories    []categorySpendPayload `json:"categories"`
}

type categorySpendPayload struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

func (s Summary) payload() summaryPayload {
	p := summaryPayload{
		Month:         s.Month,
		TotalIncome:   euros(s.TotalIncome),
		TotalExpenses: euros(s.TotalExpenses),
	}

	for _, c := range s.Categories {
		p.Categories = append(p.Categories, categorySpendPayload{
			Category: c.Category,
			Amount:   euros(c.Amount),
		})
	}

	return p
}

func euros(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// Service prepares the data the advice client sends out.
type Service struct {
	transactions *transaction.Service
	categories   *category.Service
	client       *Client
}

func NewService(txService *transaction.Service, catService *category.Service, client *Client) *Service {
	return &Service{
		transactions: txService,
		categories:   catService,
		client:       client,
	}
}

// MonthlyAdvice summarizes the owner's activity for one month and asks
// the advice service for commentary on it.
func (s *Service) MonthlyAdvice(ctx context.Context, ownerID uuid.UUID, year int, month time.Month) (string, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	txs, err := s.transactions.ListInRange(ctx, ownerID, start, end)
	if err != nil {
		return "", fmt.Errorf("listing transactions: %w", err)
	}

	cats, err := s.categories.List(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("listing categories: %w", err)
	}

	names := make(map[uuid.UUID]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	return s.client.MonthlyAdvice(ctx, buildSummary(start.Format("2006-01"), txs, names))
}

// ScanReceipt forwards a receipt image to the advice service.
func (s *Service) ScanReceipt(ctx context.Context, filename string, file io.Reader) (*Receipt, error) {
	return s.client.ScanReceipt(ctx, filename, file)
}

func buildSummary(month string, txs []*transaction.Transaction, names map[uuid.UUID]string) Summary {
	s := Summary{Month: month}

	byCategory := make(map[string]int64)

	for _, t := range txs {
		if t.IsIncome {
			s.TotalIncome += t.Amount

			continue
		}

		s.TotalExpenses += t.Amount

		name := "Uncategorized"
		if t.CategoryID != nil {
			if n, ok := names[*t.CategoryID]; ok {
				name = n
			}
		}

		byCategory[name] += t.Amount
	}

	for name, amount := range byCategory {
		s.Categories = append(s.Categories, CategorySpend{Category: name, Amount: amount})
	}

	// Largest categories first so the prompt leads with what matters.
	sort.Slice(s.Categories, func(i, j int) bool {
		if s.Categories[i].Amount != s.Categories[j].Amount {
			return s.Categories[i].Amount > s.Categories[j].Amount
		}

		return s.Categories[i].Category < s.Categories[j].Category
	})

	return s
}
