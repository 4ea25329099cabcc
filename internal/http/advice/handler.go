package advice

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/moneta-dev/moneta/internal/advice"
	"github.com/moneta-dev/moneta/internal/auth"
)

type Handler struct {
	svc *advice.Service
}

func NewHandler(svc *advice.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts directly under /api/v1: the two endpoints don't share
// a resource prefix.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/receipts/scan", h.scanReceipt)
	r.Get("/advice", h.monthlyAdvice)
}

type receiptResponse struct {
	Merchant string    `json:"merchant"`
	Total    int64     `json:"total"`
	Date     time.Time `json:"date"`
	Category string    `json:"category,omitempty"`
}

func (h *Handler) scanReceipt(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	receipt, err := h.svc.ScanReceipt(r.Context(), header.Filename, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(receiptResponse{
		Merchant: receipt.Merchant,
		Total:    receipt.Total,
		Date:     receipt.Date,
		Category: receipt.Category,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

func (h *Handler) monthlyAdvice(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if s := r.URL.Query().Get("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}

		year = v
	}

	if s := r.URL.Query().Get("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}

		month = time.Month(v)
	}

	text, err := h.svc.MonthlyAdvice(r.Context(), auth.OwnerID(r.Context()), year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(adviceResponse{Advice: text}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
