package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/auth"
	"github.com/moneta-dev/moneta/internal/budget"
	"github.com/moneta-dev/moneta/internal/recur"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/status", h.status)
	r.Get("/alerts", h.alerts)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createBudgetRequest struct {
	CategoryID     uuid.UUID    `json:"categoryId"`
	Amount         int64        `json:"amount"`
	Period         recur.Period `json:"period"`
	AlertThreshold int          `json:"alertThreshold"`
	StartDate      time.Time    `json:"startDate"`
	EndDate        *time.Time   `json:"endDate,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Create(r.Context(), auth.OwnerID(r.Context()), budget.CreateParams{
		CategoryID:     req.CategoryID,
		Amount:         req.Amount,
		Period:         req.Period,
		AlertThreshold: req.AlertThreshold,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.List(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(budgets)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	statuses := h.svc.Status(r.Context(), auth.OwnerID(r.Context()), time.Now())

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toStatusList(statuses)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	alerting := h.svc.Alerting(r.Context(), auth.OwnerID(r.Context()), time.Now())

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toAlertList(alerting)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateBudgetRequest struct {
	Amount         *int64        `json:"amount,omitempty"`
	Period         *recur.Period `json:"period,omitempty"`
	AlertThreshold *int          `json:"alertThreshold,omitempty"`
	StartDate      *time.Time    `json:"startDate,omitempty"`
	EndDate        *time.Time    `json:"endDate,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Amount != nil {
		b.Amount = *req.Amount
	}

	if req.Period != nil {
		b.Period = *req.Period
	}

	if req.AlertThreshold != nil {
		b.AlertThreshold = *req.AlertThreshold
	}

	if req.StartDate != nil {
		b.StartDate = *req.StartDate
	}

	if req.EndDate != nil {
		b.EndDate = req.EndDate
	}

	if err := h.svc.Update(r.Context(), b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), auth.OwnerID(r.Context()), id); err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
