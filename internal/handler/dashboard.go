package handler

import (
	"net/http"
	"time"

	"github.com/fahmibastari/cashflow-management/internal/derive"
	"github.com/fahmibastari/cashflow-management/internal/middleware"
	"github.com/fahmibastari/cashflow-management/internal/models"
	"github.com/fahmibastari/cashflow-management/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler serves the derived read-only views: overview, budget
// analysis, analytics and the daily timeline.
type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// Overview returns the dashboard numbers: all-time balance, this month's
// income/expenses and the safe daily spend for the rest of the month.
func (h *DashboardHandler) Overview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var revenues []models.Revenue
	if err := h.DB.Where("user_id = ?", user.ID).Find(&revenues).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load revenue")
		return
	}
	var expenses []models.RealizedExpense
	if err := h.DB.Where("user_id = ?", user.ID).Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load expenses")
		return
	}

	now := time.Now()
	monthStart, monthEnd := derive.MonthWindow(now)

	totalRevenue := derive.SumRevenue(revenues, true)
	totalExpenses := derive.SumExpenses(expenses)
	balance := derive.Balance(totalRevenue, totalExpenses)

	var monthRevenues []models.Revenue
	for i := range revenues {
		r := &revenues[i]
		if !r.Date.Before(monthStart) && r.Date.Before(monthEnd) {
			monthRevenues = append(monthRevenues, *r)
		}
	}
	var monthExpenses []models.RealizedExpense
	for i := range expenses {
		e := &expenses[i]
		if !e.Date.Before(monthStart) && e.Date.Before(monthEnd) {
			monthExpenses = append(monthExpenses, *e)
		}
	}

	daysRemaining := derive.DaysRemaining(now)

	util.Success(c, util.Response{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
		},
		"balance":          balance.String(),
		"total_revenue":    totalRevenue.String(),
		"total_expenses":   totalExpenses.String(),
		"monthly_income":   derive.SumRevenue(monthRevenues, true).String(),
		"monthly_expenses": derive.SumExpenses(monthExpenses).String(),
		"safe_daily_spend": derive.SafeDailySpend(balance, daysRemaining).String(),
		"days_remaining":   daysRemaining,
		"is_crisis":        derive.IsCrisis(balance),
	})
}

// Budget returns this month's budget-vs-actual report, worst offenders first.
func (h *DashboardHandler) Budget(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var plans []models.AllocationPlan
	if err := h.DB.Where("user_id = ?", user.ID).Find(&plans).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load plans")
		return
	}

	monthStart, monthEnd := derive.MonthWindow(time.Now())
	var monthExpenses []models.RealizedExpense
	if err := h.DB.Where("user_id = ? AND date >= ? AND date < ?",
		user.ID, monthStart, monthEnd).
		Find(&monthExpenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load expenses")
		return
	}

	report := derive.BudgetReport(plans, monthExpenses)

	type budgetResp struct {
		PlanID        uint    `json:"plan_id"`
		Category      string  `json:"category"`
		Frequency     string  `json:"frequency"`
		MonthlyBudget string  `json:"monthly_budget"`
		Actual        string  `json:"actual"`
		Percent       float64 `json:"percent"`
		IsOverBudget  bool    `json:"is_over_budget"`
	}

	items := make([]budgetResp, 0, len(report))
	for _, line := range report {
		items = append(items, budgetResp{
			PlanID:        line.Plan.ID,
			Category:      line.Plan.Category,
			Frequency:     string(line.Plan.Frequency),
			MonthlyBudget: line.MonthlyBudget.String(),
			Actual:        line.Actual.String(),
			Percent:       line.Percent,
			IsOverBudget:  line.IsOverBudget,
		})
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

// Analytics returns expense totals grouped by category and by calendar day.
func (h *DashboardHandler) Analytics(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var expenses []models.RealizedExpense
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date ASC").
		Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load expenses")
		return
	}

	type namedValue struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	type dayValue struct {
		Date   string `json:"date"`
		Amount string `json:"amount"`
	}

	byCategory := derive.SumByCategory(expenses)
	categories := make([]namedValue, 0, len(byCategory))
	for _, ct := range byCategory {
		categories = append(categories, namedValue{Name: ct.Category, Value: ct.Amount.String()})
	}

	byDay := derive.SumByDay(expenses)
	days := make([]dayValue, 0, len(byDay))
	for _, dt := range byDay {
		days = append(days, dayValue{Date: dt.Date, Amount: dt.Amount.String()})
	}

	util.Success(c, util.Response{
		"by_category":    categories,
		"by_day":         days,
		"total_expenses": derive.SumExpenses(expenses).String(),
	})
}

// Daily returns the expense timeline bucketed by day, newest day first.
func (h *DashboardHandler) Daily(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var expenses []models.RealizedExpense
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date DESC, id DESC").
		Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load expenses")
		return
	}

	type dayResp struct {
		Date     string        `json:"date"`
		Total    string        `json:"total"`
		Expenses []expenseResp `json:"expenses"`
	}

	groups := derive.GroupByDay(expenses)
	days := make([]dayResp, 0, len(groups))
	for _, g := range groups {
		items := make([]expenseResp, 0, len(g.Expenses))
		for i := range g.Expenses {
			items = append(items, toExpenseResp(&g.Expenses[i]))
		}
		days = append(days, dayResp{
			Date:     g.Date,
			Total:    g.Total.String(),
			Expenses: items,
		})
	}

	util.Success(c, util.Response{
		"days": days,
	})
}
