package bill

import (
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/bill"
	"github.com/moneta-dev/moneta/internal/recur"
)

type billResponse struct {
	ID                uuid.UUID    `json:"id"`
	Name              string       `json:"name"`
	Amount            int64        `json:"amount"`
	DueDate           time.Time    `json:"dueDate"`
	OriginalStartDate *time.Time   `json:"originalStartDate,omitempty"`
	RecurringPeriod   recur.Period `json:"recurringPeriod"`
	IsPaid            bool         `json:"isPaid"`
	ReminderDays      int          `json:"reminderDays"`
	CategoryID        *uuid.UUID   `json:"categoryId,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         *time.Time   `json:"updatedAt,omitempty"`
}

type occurrenceResponse struct {
	billResponse
	IsRecurringOccurrence bool       `json:"isRecurringOccurrence"`
	OriginalDueDate       *time.Time `json:"originalDueDate,omitempty"`
}

func toResponse(b *bill.Bill) billResponse {
	return billResponse{
		ID:                b.ID,
		Name:              b.Name,
		Amount:            b.Amount,
		DueDate:           b.DueDate,
		OriginalStartDate: b.OriginalStartDate,
		RecurringPeriod:   b.Period,
		IsPaid:            b.IsPaid,
		ReminderDays:      b.ReminderDays,
		CategoryID:        b.CategoryID,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func toResponseList(bills []*bill.Bill) []billResponse {
	resp := make([]billResponse, len(bills))
	for i, b := range bills {
		resp[i] = toResponse(b)
	}

	return resp
}

func toOccurrenceList(occurrences []bill.Occurrence) []occurrenceResponse {
	resp := make([]occurrenceResponse, len(occurrences))
	for i, occ := range occurrences {
		resp[i] = occurrenceResponse{
			billResponse:          toResponse(&occ.Bill),
			IsRecurringOccurrence: occ.IsRecurringOccurrence,
			OriginalDueDate:       occ.OriginalDueDate,
		}
	}

	return resp
}
