package bill

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/auth"
	"github.com/moneta-dev/moneta/internal/bill"
	"github.com/moneta-dev/moneta/internal/recur"
)

type Handler struct {
	svc *bill.Service
}

func NewHandler(svc *bill.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/upcoming", h.upcoming)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/pay", h.pay)
}

type createBillRequest struct {
	Name              string       `json:"name"`
	Amount            int64        `json:"amount"`
	DueDate           time.Time    `json:"dueDate"`
	OriginalStartDate *time.Time   `json:"originalStartDate,omitempty"`
	RecurringPeriod   recur.Period `json:"recurringPeriod"`
	ReminderDays      int          `json:"reminderDays"`
	CategoryID        *uuid.UUID   `json:"categoryId,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Create(r.Context(), auth.OwnerID(r.Context()), bill.CreateParams{
		Name:              req.Name,
		Amount:            req.Amount,
		DueDate:           req.DueDate,
		OriginalStartDate: req.OriginalStartDate,
		Period:            req.RecurringPeriod,
		ReminderDays:      req.ReminderDays,
		CategoryID:        req.CategoryID,
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
	bills, err := h.svc.List(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(bills)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) upcoming(w http.ResponseWriter, r *http.Request) {
	days := bill.DefaultWindowDays

	if s := r.URL.Query().Get("days"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			http.Error(w, "days must be a non-negative integer", http.StatusBadRequest)
			return
		}

		days = v
	}

	occurrences := h.svc.Upcoming(r.Context(), auth.OwnerID(r.Context()), time.Now(), days)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toOccurrenceList(occurrences)); err != nil {
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
		if errors.Is(err, bill.ErrNotFound) {
			http.Error(w, "bill not found", http.StatusNotFound)
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

type updateBillRequest struct {
	Name            *string       `json:"name,omitempty"`
	Amount          *int64        `json:"amount,omitempty"`
	DueDate         *time.Time    `json:"dueDate,omitempty"`
	RecurringPeriod *recur.Period `json:"recurringPeriod,omitempty"`
	IsPaid          *bool         `json:"isPaid,omitempty"`
	ReminderDays    *int          `json:"reminderDays,omitempty"`
	CategoryID      *uuid.UUID    `json:"categoryId,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		if errors.Is(err, bill.ErrNotFound) {
			http.Error(w, "bill not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		b.Name = *req.Name
	}

	if req.Amount != nil {
		b.Amount = *req.Amount
	}

	if req.DueDate != nil {
		b.DueDate = *req.DueDate
	}

	if req.RecurringPeriod != nil {
		b.Period = *req.RecurringPeriod
	}

	if req.IsPaid != nil {
		b.IsPaid = *req.IsPaid
	}

	if req.ReminderDays != nil {
		b.ReminderDays = *req.ReminderDays
	}

	if req.CategoryID != nil {
		b.CategoryID = req.CategoryID
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
		if errors.Is(err, bill.ErrNotFound) {
			http.Error(w, "bill not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.MarkPaid(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		if errors.Is(err, bill.ErrNotFound) {
			http.Error(w, "bill not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
