package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/transaction"
)

type transactionResponse struct {
	ID             uuid.UUID  `json:"id"`
	AccountID      *uuid.UUID `json:"accountId,omitempty"`
	CategoryID     *uuid.UUID `json:"categoryId,omitempty"`
	Amount         int64      `json:"amount"`
	IsIncome       bool       `json:"isIncome"`
	Description    string     `json:"description"`
	RawDescription string     `json:"rawDescription,omitempty"`
	Date           time.Time  `json:"date"`
	ReceiptURL     *string    `json:"receiptUrl,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:             tx.ID,
		AccountID:      tx.AccountID,
		CategoryID:     tx.CategoryID,
		Amount:         tx.Amount,
		IsIncome:       tx.IsIncome,
		Description:    tx.Description,
		RawDescription: tx.RawDescription,
		Date:           tx.Date,
		ReceiptURL:     tx.ReceiptURL,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
