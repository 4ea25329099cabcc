package alert_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/moneta-dev/moneta/internal/alert"
	"github.com/moneta-dev/moneta/internal/budget"
	"github.com/moneta-dev/moneta/internal/category"
	"github.com/moneta-dev/moneta/internal/recur"
	"github.com/moneta-dev/moneta/internal/transaction"
	"github.com/moneta-dev/moneta/internal/user"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

type serviceMocks struct {
	budgets    *alert.MockBudgetSource
	spend      *alert.MockSpendSource
	categories *alert.MockCategorySource
	users      *alert.MockUserSource
	notifier   *alert.MockNotifier
}

func newService(t *testing.T) (*alert.Service, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		budgets:    alert.NewMockBudgetSource(ctrl),
		spend:      alert.NewMockSpendSource(ctrl),
		categories: alert.NewMockCategorySource(ctrl),
		users:      alert.NewMockUserSource(ctrl),
		notifier:   alert.NewMockNotifier(ctrl),
	}

	return alert.NewService(m.budgets, m.spend, m.categories, m.users, m.notifier), m
}

func groceriesBudget(ownerID, categoryID uuid.UUID, threshold int) *budget.Budget {
	return &budget.Budget{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		CategoryID:     categoryID,
		Amount:         50000,
		Period:         recur.PeriodMonthly,
		AlertThreshold: threshold,
		StartDate:      date(2024, 3, 1),
	}
}

// expectMarchCheck wires the lookups Check makes for a March
// transaction, with after as the period total it will see.
func expectMarchCheck(m serviceMocks, ownerID, categoryID uuid.UUID, b *budget.Budget, after int64) {
	m.budgets.EXPECT().GetBudgetByCategory(gomock.Any(), ownerID, categoryID).Return(b, nil)
	m.categories.EXPECT().
		GetCategory(gomock.Any(), ownerID, categoryID).
		Return(&category.Category{ID: categoryID, Name: "Groceries"}, nil)
	m.spend.EXPECT().
		SpendByCategory(gomock.Any(), ownerID, categoryID, date(2024, 3, 1), date(2024, 3, 31)).
		Return(after, nil)
}

func TestService_Check_ThresholdCrossing(t *testing.T) {
	ownerID := uuid.New()
	categoryID := uuid.New()

	// 35000 already spent, this 7500 lands the period total on 85% of
	// a 50000 budget with an 80% threshold.
	tx := &transaction.Transaction{
		OwnerID:    ownerID,
		CategoryID: &categoryID,
		Amount:     7500,
		Date:       date(2024, 3, 10),
	}

	svc, m := newService(t)
	expectMarchCheck(m, ownerID, categoryID, groceriesBudget(ownerID, categoryID, 80), 42500)

	res := svc.Check(context.Background(), tx, date(2024, 3, 15))

	require.NotNil(t, res.Threshold)
	assert.Nil(t, res.Exceeded)

	a := res.Threshold
	assert.Equal(t, categoryID, a.CategoryID)
	assert.Equal(t, "Groceries", a.CategoryName)
	assert.Equal(t, int64(50000), a.BudgetAmount)
	assert.Equal(t, int64(42500), a.SpentAmount)
	assert.InDelta(t, 85.0, a.PercentSpent, 0.001)
	assert.False(t, a.IsExceeded)
}

func TestService_Check_ExceededCrossing(t *testing.T) {
	ownerID := uuid.New()
	categoryID := uuid.New()

	// From 90% to 105%: only the exceeded alert fires.
	tx := &transaction.Transaction{
		OwnerID:    ownerID,
		CategoryID: &categoryID,
		Amount:     7500,
		Date:       date(2024, 3, 10),
	}

	svc, m := newService(t)
	expectMarchCheck(m, ownerID, categoryID, groceriesBudget(ownerID, categoryID, 80), 52500)

	res := svc.Check(context.Background(), tx, date(2024, 3, 15))

	require.NotNil(t, res.Exceeded)
	assert.Nil(t, res.Threshold)

	a := res.Exceeded
	assert.True(t, a.IsExceeded)
	assert.Equal(t, int64(52500), a.SpentAmount)
	assert.InDelta(t, 105.0, a.PercentSpent, 0.001)
}

func TestService_Check_EdgeTriggering(t *testing.T) {
	type testCase struct {
		name          string
		txAmount      int64
		after         int64
		wantThreshold bool
		wantExceeded  bool
	}

	// Budget 50000, threshold 80%. before = after - txAmount.
	tests := []testCase{
		{
			name:     "BelowThresholdStaysQuiet",
			txAmount: 5000,
			after:    30000,
		},
		{
			name:          "LandsExactlyOnThreshold",
			txAmount:      5000,
			after:         40000,
			wantThreshold: true,
		},
		{
			name:     "FurtherSpendingInsideBandStaysQuiet",
			txAmount: 1500,
			after:    44000,
		},
		{
			name:         "LandsExactlyOnBudget",
			txAmount:     5000,
			after:        50000,
			wantExceeded: true,
		},
		{
			name:         "CrossesBothLinesFiresExceededOnly",
			txAmount:     17500,
			after:        52500,
			wantExceeded: true,
		},
		{
			name:     "SpendingPastAnExceededBudgetStaysQuiet",
			txAmount: 2000,
			after:    54500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ownerID := uuid.New()
			categoryID := uuid.New()

			tx := &transaction.Transaction{
				OwnerID:    ownerID,
				CategoryID: &categoryID,
				Amount:     tt.txAmount,
				Date:       date(2024, 3, 10),
			}

			svc, m := newService(t)
			expectMarchCheck(m, ownerID, categoryID, groceriesBudget(ownerID, categoryID, 80), tt.after)

			res := svc.Check(context.Background(), tx, date(2024, 3, 15))

			assert.Equal(t, tt.wantThreshold, res.Threshold != nil)
			assert.Equal(t, tt.wantExceeded, res.Exceeded != nil)
		})
	}
}

func TestService_Check_SkipsNonQualifyingTransactions(t *testing.T) {
	ownerID := uuid.New()
	categoryID := uuid.New()

	type testCase struct {
		name      string
		tx        *transaction.Transaction
		setupMock func(m serviceMocks)
	}

	tests := []testCase{
		{
			name: "NilTransaction",
		},
		{
			name: "Income",
			tx: &transaction.Transaction{
				OwnerID:    ownerID,
				CategoryID: &categoryID,
				Amount:     7500,
				IsIncome:   true,
				Date:       date(2024, 3, 10),
			},
		},
		{
			name: "Uncategorized",
			tx: &transaction.Transaction{
				OwnerID: ownerID,
				Amount:  7500,
				Date:    date(2024, 3, 10),
			},
		},
		{
			name: "NoBudgetForCategory",
			tx: &transaction.Transaction{
				OwnerID:    ownerID,
				CategoryID: &categoryID,
				Amount:     7500,
				Date:       date(2024, 3, 10),
			},
			setupMock: func(m serviceMocks) {
				m.budgets.EXPECT().
					GetBudgetByCategory(gomock.Any(), ownerID, categoryID).
					Return(nil, budget.ErrNotFound)
			},
		},
		{
			name: "DatedOutsideCurrentPeriod",
			tx: &transaction.Transaction{
				OwnerID:    ownerID,
				CategoryID: &categoryID,
				Amount:     7500,
				Date:       date(2024, 2, 20),
			},
			setupMock: func(m serviceMocks) {
				m.budgets.EXPECT().
					GetBudgetByCategory(gomock.Any(), ownerID, categoryID).
					Return(groceriesBudget(ownerID, categoryID, 80), nil)
			},
		},
		{
			name: "ZeroAmountBudget",
			tx: &transaction.Transaction{
				OwnerID:    ownerID,
				CategoryID: &categoryID,
				Amount:     7500,
				Date:       date(2024, 3, 10),
			},
			setupMock: func(m serviceMocks) {
				b := groceriesBudget(ownerID, categoryID, 80)
				b.Amount = 0
				m.budgets.EXPECT().
					GetBudgetByCategory(gomock.Any(), ownerID, categoryID).
					Return(b, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			res := svc.Check(context.Background(), tt.tx, date(2024, 3, 15))

			assert.Nil(t, res.Threshold)
			assert.Nil(t, res.Exceeded)
		})
	}
}

func TestService_Check_LookupFailuresStayQuiet(t *testing.T) {
	ownerID := uuid.New()
	categoryID := uuid.New()

	tx := &transaction.Transaction{
		OwnerID:    ownerID,
		CategoryID: &categoryID,
		Amount:     7500,
		Date:       date(2024, 3, 10),
	}

	t.Run("BudgetLookup", func(t *testing.T) {
		svc, m := newService(t)
		m.budgets.EXPECT().
			GetBudgetByCategory(gomock.Any(), ownerID, categoryID).
			Return(nil, errors.New("db error"))

		res := svc.Check(context.Background(), tx, date(2024, 3, 15))
		assert.Nil(t, res.Threshold)
		assert.Nil(t, res.Exceeded)
	})

	t.Run("CategoryLookup", func(t *testing.T) {
		svc, m := newService(t)
		m.budgets.EXPECT().
			GetBudgetByCategory(gomock.Any(), ownerID, categoryID).
			Return(groceriesBudget(ownerID, categoryID, 80), nil)
		m.categories.EXPECT().
			GetCategory(gomock.Any(), ownerID, categoryID).
			Return(nil, errors.New("db error"))

		res := svc.Check(context.Background(), tx, date(2024, 3, 15))
		assert.Nil(t, res.Threshold)
		assert.Nil(t, res.Exceeded)
	})

	t.Run("SpendTotal", func(t *testing.T) {
		svc, m := newService(t)
		m.budgets.EXPECT().
			GetBudgetByCategory(gomock.Any(), ownerID, categoryID).
			Return(groceriesBudget(ownerID, categoryID, 80), nil)
		m.categories.EXPECT().
			GetCategory(gomock.Any(), ownerID, categoryID).
			Return(&category.Category{ID: categoryID, Name: "Groceries"}, nil)
		m.spend.EXPECT().
			SpendByCategory(gomock.Any(), ownerID, categoryID, gomock.Any(), gomock.Any()).
			Return(int64(0), errors.New("db error"))

		res := svc.Check(context.Background(), tx, date(2024, 3, 15))
		assert.Nil(t, res.Threshold)
		assert.Nil(t, res.Exceeded)
	})
}

// currentMonthCheck wires the lookups for a transaction dated today
// against a budget with no explicit start date, so the check works
// against the running calendar month.
func currentMonthCheck(m serviceMocks, ownerID, categoryID uuid.UUID, after int64) {
	b := &budget.Budget{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		CategoryID:     categoryID,
		Amount:         50000,
		Period:         recur.PeriodMonthly,
		AlertThreshold: 80,
	}

	m.budgets.EXPECT().GetBudgetByCategory(gomock.Any(), ownerID, categoryID).Return(b, nil)
	m.categories.EXPECT().
		GetCategory(gomock.Any(), ownerID, categoryID).
		Return(&category.Category{ID: categoryID, Name: "Groceries"}, nil)
	m.spend.EXPECT().
		SpendByCategory(gomock.Any(), ownerID, categoryID, gomock.Any(), gomock.Any()).
		Return(after, nil)
}

func TestService_TransactionRecorded_NotifiesOwner(t *testing.T) {
	ownerID := uuid.New()
	categoryID := uuid.New()

	tx := &transaction.Transaction{
		OwnerID:    ownerID,
		CategoryID: &categoryID,
		Amount:     7500,
		Date:       recur.Day(time.Now()),
	}

	svc, m := newService(t)
	currentMonthCheck(m, ownerID, categoryID, 42500)
	m.users.EXPECT().
		GetUser(gomock.Any(), ownerID).
		Return(&user.User{ID: ownerID, Email: "jane@example.com"}, nil)

	var sent alert.BudgetAlert
	m.notifier.EXPECT().
		SendBudgetAlert(gomock.Any(), "jane@example.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, a alert.BudgetAlert) error {
			sent = a
			return nil
		})

	svc.TransactionRecorded(context.Background(), tx)

	assert.Equal(t, "Groceries", sent.CategoryName)
	assert.Equal(t, int64(42500), sent.SpentAmount)
	assert.False(t, sent.IsExceeded)
}

func TestService_TransactionRecorded_QuietWithoutCrossing(t *testing.T) {
	ownerID := uuid.New()
	categoryID := uuid.New()

	tx := &transaction.Transaction{
		OwnerID:    ownerID,
		CategoryID: &categoryID,
		Amount:     1000,
		Date:       recur.Day(time.Now()),
	}

	svc, m := newService(t)
	currentMonthCheck(m, ownerID, categoryID, 20000)

	// No user lookup and no notification expected.
	svc.TransactionRecorded(context.Background(), tx)
}

func TestService_TransactionRecorded_NotifierFailureSwallowed(t *testing.T) {
	ownerID := uuid.New()
	categoryID := uuid.New()

	tx := &transaction.Transaction{
		OwnerID:    ownerID,
		CategoryID: &categoryID,
		Amount:     7500,
		Date:       recur.Day(time.Now()),
	}

	svc, m := newService(t)
	currentMonthCheck(m, ownerID, categoryID, 42500)
	m.users.EXPECT().
		GetUser(gomock.Any(), ownerID).
		Return(&user.User{ID: ownerID, Email: "jane@example.com"}, nil)
	m.notifier.EXPECT().
		SendBudgetAlert(gomock.Any(), "jane@example.com", gomock.Any()).
		Return(errors.New("smtp unreachable"))

	svc.TransactionRecorded(context.Background(), tx)
}
