package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/transaction"
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

// scanTransaction reads a transaction row from the scanner and returns a populated Transaction.
// Expected column order: id, owner_id, account_id, category_id, amount, is_income, description,
// raw_description, date, receipt_url, created_at, updated_at, deleted_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var rawDesc sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.OwnerID, &tx.AccountID, &tx.CategoryID,
		&tx.Amount, &tx.IsIncome, &tx.Description, &rawDesc, &tx.Date,
		&tx.ReceiptURL,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt,
	); err != nil {
		return nil, err
	}

	tx.RawDescription = rawDesc.String

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.owner_id, t.account_id, t.category_id, t.amount, t.is_income,
	t.description, t.raw_description, t.date, t.receipt_url,
	t.created_at, t.updated_at, t.deleted_at
`

const insertTransactionQuery = `
	INSERT INTO transactions (owner_id, account_id, category_id, amount, is_income, description, raw_description, date, receipt_url, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

// balanceDelta is the signed effect of a transaction on its account's
// balance: income adds, expense subtracts.
func balanceDelta(tx *transaction.Transaction) int64 {
	if tx.IsIncome {
		return tx.Amount
	}

	return -tx.Amount
}

func adjustBalance(ctx context.Context, dbTx *sql.Tx, ownerID, accountID uuid.UUID, delta int64) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2 AND owner_id = $3
	`

	if _, err := dbTx.ExecContext(ctx, query, delta, accountID, ownerID); err != nil {
		return fmt.Errorf("adjusting account balance: %w", err)
	}

	return nil
}

// CreateTransaction inserts the row and, when it targets an account,
// applies its effect to the account balance in the same database
// transaction.
func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	err = dbTx.QueryRowContext(ctx, insertTransactionQuery,
		tx.OwnerID,
		tx.AccountID,
		tx.CategoryID,
		tx.Amount,
		tx.IsIncome,
		tx.Description,
		tx.RawDescription,
		tx.Date,
		tx.ReceiptURL,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	if tx.AccountID != nil {
		if err := adjustBalance(ctx, dbTx, tx.OwnerID, *tx.AccountID, balanceDelta(tx)); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1 AND t.owner_id = $2 AND t.deleted_at IS NULL`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, ownerID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.owner_id = $1 AND t.deleted_at IS NULL`

	args := []any{ownerID}

	argIdx := 2

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND t.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND t.account_id = $%d", argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.IsIncome != nil {
		query += fmt.Sprintf(" AND t.is_income = $%d", argIdx)

		args = append(args, *filter.IsIncome)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY t.date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

func (s *Store) ListInRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]*transaction.Transaction, error) {
	return s.ListTransactions(ctx, ownerID, transaction.ListFilter{
		StartDate: &start,
		EndDate:   &end,
	})
}

// UpdateTransaction rewrites the row and rebalances the affected
// accounts: the old row's effect is reversed and the new one applied,
// atomically.
func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	old, err := lockTransaction(ctx, dbTx, tx.OwnerID, tx.ID)
	if err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET account_id = $1, category_id = $2, amount = $3, is_income = $4,
		    description = $5, date = $6, receipt_url = $7, updated_at = NOW()
		WHERE id = $8 AND owner_id = $9 AND deleted_at IS NULL
	`

	_, err = dbTx.ExecContext(ctx, query,
		tx.AccountID,
		tx.CategoryID,
		tx.Amount,
		tx.IsIncome,
		tx.Description,
		tx.Date,
		tx.ReceiptURL,
		tx.ID,
		tx.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if old.AccountID != nil {
		if err := adjustBalance(ctx, dbTx, tx.OwnerID, *old.AccountID, -balanceDelta(old)); err != nil {
			return err
		}
	}

	if tx.AccountID != nil {
		if err := adjustBalance(ctx, dbTx, tx.OwnerID, *tx.AccountID, balanceDelta(tx)); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// DeleteTransaction soft-deletes the row and reverses its effect on the
// account balance. Deleting an already-deleted or missing row is a
// no-op.
func (s *Store) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	old, err := lockTransaction(ctx, dbTx, ownerID, id)
	if err != nil {
		if err == transaction.ErrNotFound {
			return nil
		}

		return err
	}

	query := `
		UPDATE transactions
		SET deleted_at = NOW()
		WHERE id = $1 AND owner_id = $2
	`

	if _, err := dbTx.ExecContext(ctx, query, id, ownerID); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if old.AccountID != nil {
		if err := adjustBalance(ctx, dbTx, ownerID, *old.AccountID, -balanceDelta(old)); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// lockTransaction reads a live row FOR UPDATE so balance rebalancing
// cannot race a concurrent write to the same row.
func lockTransaction(ctx context.Context, dbTx *sql.Tx, ownerID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT t.id, t.owner_id, t.account_id, t.amount, t.is_income
		FROM transactions t
		WHERE t.id = $1 AND t.owner_id = $2 AND t.deleted_at IS NULL
		FOR UPDATE
	`

	var tx transaction.Transaction

	err := dbTx.QueryRowContext(ctx, query, id, ownerID).Scan(
		&tx.ID, &tx.OwnerID, &tx.AccountID, &tx.Amount, &tx.IsIncome,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("locking transaction: %w", err)
	}

	return &tx, nil
}

func importLockKey(ownerID uuid.UUID, minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write(ownerID[:])
	h.Write([]byte{0})
	h.Write([]byte(minDate.Format("2006-01-02")))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format("2006-01-02")))

	return int64(h.Sum64())
}

type importTx struct {
	tx      *sql.Tx
	ownerID uuid.UUID
}

func (s *Store) BeginImport(ctx context.Context, ownerID uuid.UUID, minDate, maxDate time.Time) (transaction.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(ownerID, minDate, maxDate)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx, ownerID: ownerID}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date           string
		Amount         int64
		IsIncome       bool
		RawDescription string
	}

	// Find min/max dates and build lookup set.
	minDate := params[0].Date
	maxDate := params[0].Date
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}

		keySet[lookupKey{
			Date:           p.Date.Format("2006-01-02"),
			Amount:         p.Amount,
			IsIncome:       p.IsIncome,
			RawDescription: p.RawDescription,
		}] = struct{}{}
	}

	// Query all live transactions for the owner in the date range.
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.owner_id = $1 AND t.deleted_at IS NULL AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date ASC`

	rows, err := itx.tx.QueryContext(ctx, query, itx.ownerID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		k := lookupKey{
			Date:           tx.Date.Format("2006-01-02"),
			Amount:         tx.Amount,
			IsIncome:       tx.IsIncome,
			RawDescription: tx.RawDescription,
		}

		_, found := keySet[k]
		if !found {
			continue
		}

		duplicates = append(duplicates, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	deltas := make(map[uuid.UUID]int64)

	for _, tx := range txs {
		err := itx.tx.QueryRowContext(ctx, insertTransactionQuery,
			tx.OwnerID,
			tx.AccountID,
			tx.CategoryID,
			tx.Amount,
			tx.IsIncome,
			tx.Description,
			tx.RawDescription,
			tx.Date,
			tx.ReceiptURL,
		).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}

		if tx.AccountID != nil {
			deltas[*tx.AccountID] += balanceDelta(tx)
		}
	}

	for accountID, delta := range deltas {
		if err := adjustBalance(ctx, itx.tx, itx.ownerID, accountID, delta); err != nil {
			return err
		}
	}

	return nil
}
