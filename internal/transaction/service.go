package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error

	ListTransactions(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Transaction, error)
	ListInRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]*Transaction, error)

	BeginImport(ctx context.Context, ownerID uuid.UUID, minDate, maxDate time.Time) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerID        uuid.UUID
	AccountID      *uuid.UUID
	CategoryID     *uuid.UUID
	Amount         int64
	IsIncome       bool
	Description    string
	RawDescription string
	Date           time.Time
	ReceiptURL     *string
}

type ListFilter struct {
	CategoryID *uuid.UUID
	AccountID  *uuid.UUID
	IsIncome   *bool
	StartDate  *time.Time
	EndDate    *time.Time
}

func (p CreateParams) validate() error {
	if p.OwnerID == uuid.Nil {
		return fmt.Errorf("owner is required")
	}

	if p.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("description is required")
	}

	if p.Date.IsZero() {
		return fmt.Errorf("date is required")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	tx := paramsToTransactions([]CreateParams{params})[0]
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, ownerID, filter)
}

// ListInRange returns every live transaction for the owner with a date
// inside [start, end], both bounds inclusive. Budget aggregation reads
// through this and filters in memory.
func (s *Service) ListInRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]*Transaction, error) {
	return s.repo.ListInRange(ctx, ownerID, start, end)
}

func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	if tx.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	return s.repo.UpdateTransaction(ctx, tx)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, ownerID, id)
}

func (s *Service) AttachReceipt(ctx context.Context, ownerID, id uuid.UUID, receiptURL string) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	tx.ReceiptURL = &receiptURL
	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

type ImportResult struct {
	Imported  []*Transaction
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Transaction
}

// ImportBatch inserts a parsed statement's transactions for one owner.
// The whole batch runs inside a single repository transaction holding an
// advisory lock over the statement's date range, so two concurrent
// uploads of the same statement cannot both pass duplicate detection.
// When duplicates are found nothing is written; the caller gets the
// conflict report and may re-submit the non-conflicting rows via
// CreateBatch.
func (s *Service) ImportBatch(ctx context.Context, ownerID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, ownerID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	type dupKey struct {
		Date           string
		Amount         int64
		IsIncome       bool
		RawDescription string
	}

	lookup := make(map[dupKey]*Transaction, len(duplicates))

	for _, d := range duplicates {
		k := dupKey{
			Date:           d.Date.Format(time.DateOnly),
			Amount:         d.Amount,
			IsIncome:       d.IsIncome,
			RawDescription: d.RawDescription,
		}
		lookup[k] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		k := dupKey{
			Date:           p.Date.Format(time.DateOnly),
			Amount:         p.Amount,
			IsIncome:       p.IsIncome,
			RawDescription: p.RawDescription,
		}

		existing, found := lookup[k]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	txs := paramsToTransactions(newParams)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: txs}, nil
}

// CreateBatch writes the given rows without duplicate detection. Used to
// confirm an import after the user reviewed its conflicts.
func (s *Service) CreateBatch(ctx context.Context, ownerID uuid.UUID, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, ownerID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	txs := paramsToTransactions(params)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

func paramsToTransactions(params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = &Transaction{
			OwnerID:        p.OwnerID,
			AccountID:      p.AccountID,
			CategoryID:     p.CategoryID,
			Amount:         p.Amount,
			IsIncome:       p.IsIncome,
			Description:    p.Description,
			RawDescription: p.RawDescription,
			Date:           p.Date,
			ReceiptURL:     p.ReceiptURL,
		}
	}

	return txs
}
