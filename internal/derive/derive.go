// Package derive holds the pure aggregation and derivation functions that
// turn raw ledger rows into the numbers the dashboard, budget and analytics
// views display. Nothing here touches gin or gorm; handlers fetch rows and
// pass them in.
package derive

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fahmibastari/cashflow-management/internal/models"
)

var (
	thirty = decimal.NewFromInt(30)
	four   = decimal.NewFromInt(4)
	hundred = decimal.NewFromInt(100)
)

// MonthlyEquivalent converts a plan amount to its monthly-scale value using
// fixed factors: DAILY x30, WEEKLY x4, MONTHLY and ONE_TIME as-is. There is
// no calendar-accurate day counting. Unknown frequencies yield zero.
func MonthlyEquivalent(amount decimal.Decimal, freq models.Frequency) decimal.Decimal {
	switch freq {
	case models.FrequencyDaily:
		return amount.Mul(thirty)
	case models.FrequencyWeekly:
		return amount.Mul(four)
	case models.FrequencyMonthly, models.FrequencyOneTime:
		return amount
	default:
		return decimal.Zero
	}
}

// Balance is settled income minus all expenses.
func Balance(paidRevenue, totalExpenses decimal.Decimal) decimal.Decimal {
	return paidRevenue.Sub(totalExpenses)
}

// SumRevenue totals revenue rows. With paidOnly set, PENDING rows are skipped.
func SumRevenue(revenues []models.Revenue, paidOnly bool) decimal.Decimal {
	total := decimal.Zero
	for i := range revenues {
		if paidOnly && !revenues[i].Status.Paid() {
			continue
		}
		total = total.Add(revenues[i].Amount)
	}
	return total
}

// SumExpenses totals expense rows.
func SumExpenses(expenses []models.RealizedExpense) decimal.Decimal {
	total := decimal.Zero
	for i := range expenses {
		total = total.Add(expenses[i].Amount)
	}
	return total
}

// DaysRemaining counts the days left in now's month, inclusive of today.
func DaysRemaining(now time.Time) int {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	daysInMonth := firstOfMonth.AddDate(0, 1, -1).Day()
	return daysInMonth - now.Day() + 1
}

// SafeDailySpend spreads a positive balance over the remaining days of the
// month. A non-positive balance yields zero; the crisis flag is a separate
// signal, see IsCrisis.
func SafeDailySpend(balance decimal.Decimal, daysRemaining int) decimal.Decimal {
	if balance.Sign() <= 0 || daysRemaining <= 0 {
		return decimal.Zero
	}
	return balance.DivRound(decimal.NewFromInt(int64(daysRemaining)), 2)
}

// IsCrisis reports whether the balance has gone negative. Independent of the
// zero floor applied by SafeDailySpend.
func IsCrisis(balance decimal.Decimal) bool {
	return balance.Sign() < 0
}

// MonthWindow returns the half-open interval [first day of now's month 00:00,
// first day of next month 00:00) in now's location. Every "this month" query
// uses this one convention.
func MonthWindow(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

// DayKey is the canonical calendar-date grouping key. Two timestamps on the
// same local day always produce the same key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// BudgetStatus is one plan's budget-vs-actual line for the current month.
type BudgetStatus struct {
	Plan          models.AllocationPlan
	MonthlyBudget decimal.Decimal
	Actual        decimal.Decimal
	Percent       float64
	IsOverBudget  bool
}

// BudgetReport compares each plan's monthly-equivalent budget with the actual
// spend per category, sorted by percent used descending so over-budget and
// near-limit plans surface first. Percent is clamped to [0,100]; a zero
// monthly budget counts as 0% used, never a division error.
func BudgetReport(plans []models.AllocationPlan, monthExpenses []models.RealizedExpense) []BudgetStatus {
	byCategory := make(map[string]decimal.Decimal)
	for i := range monthExpenses {
		e := &monthExpenses[i]
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	report := make([]BudgetStatus, 0, len(plans))
	for _, plan := range plans {
		monthly := MonthlyEquivalent(plan.Amount, plan.Frequency)
		actual := byCategory[plan.Category]

		percent := 0.0
		if monthly.Sign() > 0 {
			percent = actual.Div(monthly).Mul(hundred).InexactFloat64()
			if percent > 100 {
				percent = 100
			}
			if percent < 0 {
				percent = 0
			}
		}

		report = append(report, BudgetStatus{
			Plan:          plan,
			MonthlyBudget: monthly,
			Actual:        actual,
			Percent:       percent,
			IsOverBudget:  actual.GreaterThan(monthly),
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Percent > report[j].Percent
	})
	return report
}

// TotalMonthlyPlan sums the monthly equivalents of all plans.
func TotalMonthlyPlan(plans []models.AllocationPlan) decimal.Decimal {
	total := decimal.Zero
	for i := range plans {
		total = total.Add(MonthlyEquivalent(plans[i].Amount, plans[i].Frequency))
	}
	return total
}

// CategoryTotal is an expense sum for one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// SumByCategory groups expenses by category, largest total first.
func SumByCategory(expenses []models.RealizedExpense) []CategoryTotal {
	byCategory := make(map[string]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, amount := range byCategory {
		totals = append(totals, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount.Equal(totals[j].Amount) {
			return totals[i].Category < totals[j].Category
		}
		return totals[i].Amount.GreaterThan(totals[j].Amount)
	})
	return totals
}

// DayTotal is an expense sum for one calendar day.
type DayTotal struct {
	Date   string // DayKey format
	Amount decimal.Decimal
}

// SumByDay groups expenses by canonical calendar day, oldest first.
func SumByDay(expenses []models.RealizedExpense) []DayTotal {
	byDay := make(map[string]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		key := DayKey(e.Date)
		byDay[key] = byDay[key].Add(e.Amount)
	}

	totals := make([]DayTotal, 0, len(byDay))
	for date, amount := range byDay {
		totals = append(totals, DayTotal{Date: date, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date < totals[j].Date })
	return totals
}

// DayGroup is one day of the daily timeline: the day's expenses plus total.
type DayGroup struct {
	Date     string // DayKey format
	Total    decimal.Decimal
	Expenses []models.RealizedExpense
}

// GroupByDay buckets expenses into per-day groups, newest day first. Row
// order within a day follows the input order.
func GroupByDay(expenses []models.RealizedExpense) []DayGroup {
	byDay := make(map[string]*DayGroup)
	for i := range expenses {
		e := expenses[i]
		key := DayKey(e.Date)
		g, ok := byDay[key]
		if !ok {
			g = &DayGroup{Date: key}
			byDay[key] = g
		}
		g.Total = g.Total.Add(e.Amount)
		g.Expenses = append(g.Expenses, e)
	}

	groups := make([]DayGroup, 0, len(byDay))
	for _, g := range byDay {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date > groups[j].Date })
	return groups
}

// SavingProgress is current/target as a percentage, clamped to [0,100] for
// display. A zero target counts as 0%.
func SavingProgress(current, target decimal.Decimal) float64 {
	if target.Sign() <= 0 {
		return 0
	}
	percent := current.Div(target).Mul(hundred).InexactFloat64()
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}
