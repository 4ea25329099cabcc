package budget_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/moneta-dev/moneta/internal/auth"
	"github.com/moneta-dev/moneta/internal/budget"
	"github.com/moneta-dev/moneta/internal/category"
	budgetHandler "github.com/moneta-dev/moneta/internal/http/budget"
	"github.com/moneta-dev/moneta/internal/recur"
	"github.com/moneta-dev/moneta/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

type serviceMocks struct {
	repo *budget.MockRepository
	txs  *budget.MockTransactionSource
	cats *budget.MockCategorySource
}

func newServer(t *testing.T) (serviceMocks, http.Handler, uuid.UUID) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo: budget.NewMockRepository(ctrl),
		txs:  budget.NewMockTransactionSource(ctrl),
		cats: budget.NewMockCategorySource(ctrl),
	}

	h := budgetHandler.NewHandler(budget.NewService(m.repo, m.txs, m.cats))
	owner := uuid.New()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithOwnerID(req.Context(), owner)))
		})
	})
	r.Route("/budgets", h.Routes)

	return m, r, owner
}

// monthlyBudget anchors far enough back that the current period always
// contains the real clock the handler reads.
func monthlyBudget(owner, categoryID uuid.UUID, amount int64, threshold int) *budget.Budget {
	return &budget.Budget{
		ID:             uuid.New(),
		OwnerID:        owner,
		CategoryID:     categoryID,
		Amount:         amount,
		Period:         recur.PeriodMonthly,
		AlertThreshold: threshold,
		StartDate:      date(2024, 1, 1),
	}
}

func expense(owner, categoryID uuid.UUID, amount int64) *transaction.Transaction {
	return &transaction.Transaction{
		ID:         uuid.New(),
		OwnerID:    owner,
		CategoryID: &categoryID,
		Amount:     amount,
		Date:       recur.Day(time.Now()),
	}
}

func TestHandler_Create(t *testing.T) {
	m, srv, owner := newServer(t)

	categoryID := uuid.New()

	m.repo.EXPECT().
		CreateBudget(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *budget.Budget) error {
			assert.Equal(t, owner, b.OwnerID)
			assert.Equal(t, categoryID, b.CategoryID)

			b.ID = uuid.New()
			b.CreatedAt = date(2024, 3, 1)

			return nil
		})

	body := `{"categoryId":"` + categoryID.String() + `","amount":50000,"period":"monthly","alertThreshold":80,"startDate":"2024-03-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/budgets", strings.NewReader(body))
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, categoryID.String(), resp["categoryId"])
	assert.Equal(t, float64(50000), resp["amount"])
	assert.Equal(t, "monthly", resp["period"])
	assert.Equal(t, float64(80), resp["alertThreshold"])
}

func TestHandler_Create_InvalidThreshold(t *testing.T) {
	_, srv, _ := newServer(t)

	body := `{"categoryId":"` + uuid.New().String() + `","amount":50000,"alertThreshold":150}`
	req := httptest.NewRequest(http.MethodPost, "/budgets", strings.NewReader(body))
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "alert threshold")
}

func TestHandler_Status(t *testing.T) {
	m, srv, owner := newServer(t)

	categoryID := uuid.New()
	b := monthlyBudget(owner, categoryID, 50000, 80)

	m.repo.EXPECT().ListBudgets(gomock.Any(), owner).Return([]*budget.Budget{b}, nil)
	m.txs.EXPECT().
		ListInRange(gomock.Any(), owner, gomock.Any(), gomock.Any()).
		Return([]*transaction.Transaction{expense(owner, categoryID, 45000)}, nil)
	m.cats.EXPECT().
		GetCategory(gomock.Any(), owner, categoryID).
		Return(&category.Category{ID: categoryID, Name: "Groceries"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/budgets/status", nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)

	assert.Equal(t, "Groceries", resp[0]["categoryName"])
	assert.Equal(t, float64(45000), resp[0]["spent"])
	assert.Equal(t, float64(5000), resp[0]["remaining"])
	assert.Equal(t, float64(90), resp[0]["percentSpent"])
	assert.NotEmpty(t, resp[0]["periodStart"])
	assert.NotEmpty(t, resp[0]["periodEnd"])

	nested, ok := resp[0]["budget"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(50000), nested["amount"])
}

func TestHandler_Alerts_OnlyBudgetsAtThreshold(t *testing.T) {
	m, srv, owner := newServer(t)

	groceriesID := uuid.New()
	travelID := uuid.New()

	hot := monthlyBudget(owner, groceriesID, 50000, 80)
	quiet := monthlyBudget(owner, travelID, 50000, 80)

	m.repo.EXPECT().ListBudgets(gomock.Any(), owner).Return([]*budget.Budget{hot, quiet}, nil)
	m.txs.EXPECT().
		ListInRange(gomock.Any(), owner, gomock.Any(), gomock.Any()).
		Return([]*transaction.Transaction{expense(owner, groceriesID, 60000)}, nil)
	m.txs.EXPECT().
		ListInRange(gomock.Any(), owner, gomock.Any(), gomock.Any()).
		Return([]*transaction.Transaction{expense(owner, travelID, 5000)}, nil)
	m.cats.EXPECT().
		GetCategory(gomock.Any(), owner, groceriesID).
		Return(&category.Category{ID: groceriesID, Name: "Groceries"}, nil)
	m.cats.EXPECT().
		GetCategory(gomock.Any(), owner, travelID).
		Return(&category.Category{ID: travelID, Name: "Travel"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/budgets/alerts", nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)

	assert.Equal(t, "Groceries", resp[0]["categoryName"])
	assert.Equal(t, float64(60000), resp[0]["spentAmount"])
	assert.Equal(t, float64(50000), resp[0]["budgetAmount"])
	assert.Equal(t, float64(120), resp[0]["percentSpent"])
	assert.Equal(t, true, resp[0]["isExceeded"])
}

func TestHandler_Get_NotFound(t *testing.T) {
	m, srv, owner := newServer(t)

	id := uuid.New()
	m.repo.EXPECT().GetBudget(gomock.Any(), owner, id).Return(nil, budget.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/budgets/"+id.String(), nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Update_PartialPatch(t *testing.T) {
	m, srv, owner := newServer(t)

	id := uuid.New()
	b := monthlyBudget(owner, uuid.New(), 50000, 80)
	b.ID = id

	m.repo.EXPECT().GetBudget(gomock.Any(), owner, id).Return(b, nil)

	var updated *budget.Budget
	m.repo.EXPECT().
		UpdateBudget(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *budget.Budget) error {
			updated = b
			return nil
		})

	req := httptest.NewRequest(http.MethodPatch, "/budgets/"+id.String(), strings.NewReader(`{"amount":60000}`))
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, updated)
	assert.Equal(t, int64(60000), updated.Amount)
	assert.Equal(t, 80, updated.AlertThreshold)
}

func TestHandler_Delete(t *testing.T) {
	m, srv, owner := newServer(t)

	id := uuid.New()
	m.repo.EXPECT().DeleteBudget(gomock.Any(), owner, id).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/budgets/"+id.String(), nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
