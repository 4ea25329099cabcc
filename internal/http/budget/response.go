package budget

import (
	"time"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/budget"
	"github.com/moneta-dev/moneta/internal/recur"
)

type budgetResponse struct {
	ID             uuid.UUID    `json:"id"`
	CategoryID     uuid.UUID    `json:"categoryId"`
	Amount         int64        `json:"amount"`
	Period         recur.Period `json:"period"`
	AlertThreshold int          `json:"alertThreshold"`
	StartDate      time.Time    `json:"startDate"`
	EndDate        *time.Time   `json:"endDate,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      *time.Time   `json:"updatedAt,omitempty"`
}

type statusResponse struct {
	Budget       budgetResponse `json:"budget"`
	CategoryName string         `json:"categoryName"`
	Spent        int64          `json:"spent"`
	Remaining    int64          `json:"remaining"`
	PercentSpent float64        `json:"percentSpent"`
	PeriodStart  time.Time      `json:"periodStart"`
	PeriodEnd    time.Time      `json:"periodEnd"`
}

type alertResponse struct {
	CategoryID   uuid.UUID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	BudgetAmount int64     `json:"budgetAmount"`
	SpentAmount  int64     `json:"spentAmount"`
	PercentSpent float64   `json:"percentSpent"`
	IsExceeded   bool      `json:"isExceeded"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:             b.ID,
		CategoryID:     b.CategoryID,
		Amount:         b.Amount,
		Period:         b.Period,
		AlertThreshold: b.AlertThreshold,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func toResponseList(budgets []*budget.Budget) []budgetResponse {
	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toResponse(b)
	}

	return resp
}

func toStatusList(statuses []budget.Status) []statusResponse {
	resp := make([]statusResponse, len(statuses))
	for i, st := range statuses {
		resp[i] = statusResponse{
			Budget:       toResponse(st.Budget),
			CategoryName: st.CategoryName,
			Spent:        st.Spent,
			Remaining:    st.Remaining,
			PercentSpent: st.PercentSpent,
			PeriodStart:  st.PeriodStart,
			PeriodEnd:    st.PeriodEnd,
		}
	}

	return resp
}

func toAlertList(statuses []budget.Status) []alertResponse {
	resp := make([]alertResponse, len(statuses))
	for i, st := range statuses {
		resp[i] = alertResponse{
			CategoryID:   st.Budget.CategoryID,
			CategoryName: st.CategoryName,
			BudgetAmount: st.Budget.Amount,
			SpentAmount:  st.Spent,
			PercentSpent: st.PercentSpent,
			IsExceeded:   st.PercentSpent >= 100,
		}
	}

	return resp
}
