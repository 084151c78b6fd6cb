package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/fahmibastari/cashflow-management/internal/derive"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverviewCountsOnlySettledRevenue(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	createRevenue(t, r, token, gin.H{"amount": "3000", "source": "Salary", "status": "PAID_CASH"})
	createRevenue(t, r, token, gin.H{"amount": "1000", "source": "Invoice", "status": "PENDING"})
	createExpense(t, r, token, gin.H{"category": "Food", "amount": "500"})

	rec := perform(r, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := respData(t, rec)

	assert.True(t, dec(t, data["balance"]).Equal(dec(t, "2500")), "balance %v", data["balance"])
	assert.True(t, dec(t, data["total_revenue"]).Equal(dec(t, "3000")))
	assert.True(t, dec(t, data["total_expenses"]).Equal(dec(t, "500")))
	assert.False(t, data["is_crisis"].(bool))

	days := derive.DaysRemaining(time.Now())
	assert.EqualValues(t, days, data["days_remaining"])
	want := derive.SafeDailySpend(dec(t, "2500"), days)
	assert.True(t, dec(t, data["safe_daily_spend"]).Equal(want),
		"safe_daily_spend %v want %s", data["safe_daily_spend"], want)
}

func TestOverviewCrisisFloorsSafeSpendAtZero(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	createRevenue(t, r, token, gin.H{"amount": "100", "source": "Salary", "status": "PAID_CASH"})
	createExpense(t, r, token, gin.H{"category": "Rent", "amount": "400"})

	rec := perform(r, http.MethodGet, "/api/dashboard", token, nil)
	data := respData(t, rec)

	assert.True(t, dec(t, data["balance"]).Equal(dec(t, "-300")))
	assert.True(t, data["is_crisis"].(bool))
	assert.True(t, dec(t, data["safe_daily_spend"]).IsZero())
}

func TestOverviewMonthlyFiguresUseCurrentMonthOnly(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	monthStart, _ := derive.MonthWindow(time.Now())
	lastMonth := monthStart.AddDate(0, 0, -1).Format("2006-01-02")
	createExpense(t, r, token, gin.H{"category": "Rent", "amount": "800", "date": lastMonth})
	createExpense(t, r, token, gin.H{"category": "Food", "amount": "200"})

	rec := perform(r, http.MethodGet, "/api/dashboard", token, nil)
	data := respData(t, rec)

	// all-time total keeps both, the monthly figure only this month's
	assert.True(t, dec(t, data["total_expenses"]).Equal(dec(t, "1000")))
	assert.True(t, dec(t, data["monthly_expenses"]).Equal(dec(t, "200")))
}

func TestBudgetReportClampsAndSortsWorstFirst(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	createPlan(t, r, token, gin.H{"category": "Food", "amount": "100", "frequency": "MONTHLY"})
	createPlan(t, r, token, gin.H{"category": "Transport", "amount": "25", "frequency": "WEEKLY"})

	createExpense(t, r, token, gin.H{"category": "Food", "amount": "120"})
	createExpense(t, r, token, gin.H{"category": "Transport", "amount": "50"})

	rec := perform(r, http.MethodGet, "/api/budget", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := respData(t, rec)["items"].([]any)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	second := items[1].(map[string]any)

	// Food overspent: percent is clamped at 100 but the flag still fires
	assert.Equal(t, "Food", first["category"])
	assert.InDelta(t, 100.0, first["percent"].(float64), 0.001)
	assert.True(t, first["is_over_budget"].(bool))
	assert.True(t, dec(t, first["actual"]).Equal(dec(t, "120")))

	// Transport: weekly 25 -> monthly 100, half spent
	assert.Equal(t, "Transport", second["category"])
	assert.True(t, dec(t, second["monthly_budget"]).Equal(dec(t, "100")))
	assert.InDelta(t, 50.0, second["percent"].(float64), 0.001)
	assert.False(t, second["is_over_budget"].(bool))
}

func TestBudgetIgnoresLastMonthsSpending(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	createPlan(t, r, token, gin.H{"category": "Food", "amount": "100", "frequency": "MONTHLY"})
	monthStart, _ := derive.MonthWindow(time.Now())
	lastMonth := monthStart.AddDate(0, 0, -1).Format("2006-01-02")
	createExpense(t, r, token, gin.H{"category": "Food", "amount": "90", "date": lastMonth})

	rec := perform(r, http.MethodGet, "/api/budget", token, nil)
	items := respData(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	assert.True(t, dec(t, line["actual"]).IsZero())
	assert.InDelta(t, 0.0, line["percent"].(float64), 0.001)
}

func TestAnalyticsGroupsByCategoryAndDay(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	createExpense(t, r, token, gin.H{"category": "Food", "amount": "30", "date": "2026-03-01"})
	createExpense(t, r, token, gin.H{"category": "Food", "amount": "20", "date": "2026-03-02"})
	createExpense(t, r, token, gin.H{"category": "Transport", "amount": "10", "date": "2026-03-01"})

	rec := perform(r, http.MethodGet, "/api/analytics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := respData(t, rec)

	categories := data["by_category"].([]any)
	require.Len(t, categories, 2)
	top := categories[0].(map[string]any)
	assert.Equal(t, "Food", top["name"])
	assert.True(t, dec(t, top["value"]).Equal(dec(t, "50")))

	days := data["by_day"].([]any)
	require.Len(t, days, 2)
	firstDay := days[0].(map[string]any)
	assert.Equal(t, "2026-03-01", firstDay["date"])
	assert.True(t, dec(t, firstDay["amount"]).Equal(dec(t, "40")))

	assert.True(t, dec(t, data["total_expenses"]).Equal(dec(t, "60")))
}

func TestDailyTimelineNewestDayFirst(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	createExpense(t, r, token, gin.H{"category": "Food", "amount": "15", "date": "2026-03-01"})
	createExpense(t, r, token, gin.H{"category": "Food", "amount": "25", "date": "2026-03-02"})
	createExpense(t, r, token, gin.H{"category": "Transport", "amount": "5", "date": "2026-03-02"})

	rec := perform(r, http.MethodGet, "/api/daily", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	days := respData(t, rec)["days"].([]any)
	require.Len(t, days, 2)

	newest := days[0].(map[string]any)
	assert.Equal(t, "2026-03-02", newest["date"])
	assert.True(t, dec(t, newest["total"]).Equal(dec(t, "30")))
	assert.Len(t, newest["expenses"], 2)

	older := days[1].(map[string]any)
	assert.Equal(t, "2026-03-01", older["date"])
	assert.True(t, dec(t, older["total"]).Equal(dec(t, "15")))
}
