package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/category"
	"github.com/moneta-dev/moneta/internal/transaction"
)

// Mock Repositories
type mockTxRepo struct {
	listTransactionsFunc func(ctx context.Context, ownerID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

func (m *mockTxRepo) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	return nil
}

func (m *mockTxRepo) GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*transaction.Transaction, error) {
	return nil, nil
}

func (m *mockTxRepo) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	return nil
}

func (m *mockTxRepo) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	return nil
}

func (m *mockTxRepo) ListTransactions(ctx context.Context, ownerID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	if m.listTransactionsFunc != nil {
		return m.listTransactionsFunc(ctx, ownerID, filter)
	}

	return nil, nil
}

func (m *mockTxRepo) ListInRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]*transaction.Transaction, error) {
	return nil, nil
}

func (m *mockTxRepo) BeginImport(ctx context.Context, ownerID uuid.UUID, minDate, maxDate time.Time) (transaction.ImportTx, error) {
	return nil, nil
}

type mockCategoryRepo struct {
	listCategoriesFunc func(ctx context.Context, ownerID uuid.UUID) ([]*category.Category, error)
}

func (m *mockCategoryRepo) CreateCategory(ctx context.Context, c *category.Category) error {
	return nil
}

func (m *mockCategoryRepo) GetCategory(ctx context.Context, ownerID, id uuid.UUID) (*category.Category, error) {
	return nil, nil
}

func (m *mockCategoryRepo) ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*category.Category, error) {
	if m.listCategoriesFunc != nil {
		return m.listCategoriesFunc(ctx, ownerID)
	}

	return nil, nil
}

func (m *mockCategoryRepo) UpdateCategory(ctx context.Context, c *category.Category) error {
	return nil
}

func (m *mockCategoryRepo) DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error {
	return nil
}

func TestService_WriteCSV(t *testing.T) {
	ownerID := uuid.New()
	groceriesID := uuid.New()
	receiptURL := "https://files.example.com/receipts/rewe.pdf"

	txRepo := &mockTxRepo{
		listTransactionsFunc: func(ctx context.Context, gotOwner uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
			if gotOwner != ownerID {
				t.Errorf("ListTransactions owner = %s, want %s", gotOwner, ownerID)
			}

			return []*transaction.Transaction{
				{
					ID:          uuid.New(),
					OwnerID:     ownerID,
					CategoryID:  &groceriesID,
					Amount:      5874,
					IsIncome:    false,
					Description: "REWE SAGT DANKE 4301",
					Date:        time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC),
					ReceiptURL:  &receiptURL,
				},
				{
					ID:          uuid.New(),
					OwnerID:     ownerID,
					Amount:      260852,
					IsIncome:    true,
					Description: "GEHALT MUSTERMANN GMBH",
					Date:        time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
				},
			}, nil
		},
	}

	categoryRepo := &mockCategoryRepo{
		listCategoriesFunc: func(ctx context.Context, gotOwner uuid.UUID) ([]*category.Category, error) {
			return []*category.Category{
				{ID: groceriesID, OwnerID: ownerID, Name: "Groceries"},
			}, nil
		},
	}

	svc := NewService(transaction.NewService(txRepo), category.NewService(categoryRepo))

	var buf bytes.Buffer

	err := svc.WriteCSV(context.Background(), &buf, ownerID, transaction.ListFilter{})
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}

	if lines[0] != "Date,Description,Category,Amount,Receipt" {
		t.Errorf("header = %q", lines[0])
	}

	if lines[1] != "2024-03-28,REWE SAGT DANKE 4301,Groceries,-58.74,https://files.example.com/receipts/rewe.pdf" {
		t.Errorf("expense row = %q", lines[1])
	}

	if lines[2] != "2024-03-09,GEHALT MUSTERMANN GMBH,,2608.52," {
		t.Errorf("income row = %q", lines[2])
	}
}

func TestService_WriteCSV_Empty(t *testing.T) {
	svc := NewService(transaction.NewService(&mockTxRepo{}), category.NewService(&mockCategoryRepo{}))

	var buf bytes.Buffer

	err := svc.WriteCSV(context.Background(), &buf, uuid.New(), transaction.ListFilter{})
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	if got := buf.String(); got != "Date,Description,Category,Amount,Receipt\n" {
		t.Errorf("output = %q, want header only", got)
	}
}

func TestService_WriteCSV_PassesFilter(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	var gotFilter transaction.ListFilter

	txRepo := &mockTxRepo{
		listTransactionsFunc: func(ctx context.Context, ownerID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
			gotFilter = filter
			return nil, nil
		},
	}

	svc := NewService(transaction.NewService(txRepo), category.NewService(&mockCategoryRepo{}))

	filter := transaction.ListFilter{StartDate: &start, EndDate: &end}
	if err := svc.WriteCSV(context.Background(), &bytes.Buffer{}, uuid.New(), filter); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	if gotFilter.StartDate == nil || !gotFilter.StartDate.Equal(start) {
		t.Errorf("filter start = %v, want %v", gotFilter.StartDate, start)
	}

	if gotFilter.EndDate == nil || !gotFilter.EndDate.Equal(end) {
		t.Errorf("filter end = %v, want %v", gotFilter.EndDate, end)
	}
}
