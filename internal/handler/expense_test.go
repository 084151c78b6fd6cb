package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createExpense(t *testing.T, r http.Handler, token string, body gin.H) map[string]any {
	t.Helper()
	rec := perform(r, http.MethodPost, "/api/expenses", token, body)
	require.Equal(t, http.StatusOK, rec.Code, "create expense: %s", rec.Body.String())
	return respData(t, rec)["expense"].(map[string]any)
}

func createPlan(t *testing.T, r http.Handler, token string, body gin.H) map[string]any {
	t.Helper()
	rec := perform(r, http.MethodPost, "/api/plans", token, body)
	require.Equal(t, http.StatusOK, rec.Code, "create plan: %s", rec.Body.String())
	return respData(t, rec)["plan"].(map[string]any)
}

func TestExpenseCreateAndListTotals(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	createExpense(t, r, token, gin.H{"category": "Food", "amount": "25.50"})
	createExpense(t, r, token, gin.H{"category": "Transport", "amount": "10"})

	rec := perform(r, http.MethodGet, "/api/expenses", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := respData(t, rec)
	assert.Len(t, data["items"], 2)
	assert.True(t, dec(t, data["total_spent"]).Equal(dec(t, "35.50")))
}

func TestExpenseCreateLinksOwnPlanOnly(t *testing.T) {
	r, _ := newTestEnv(t)
	alice := register(t, r, "alice")
	bob := register(t, r, "bob")

	plan := createPlan(t, r, alice, gin.H{"category": "Food", "amount": "100", "frequency": "MONTHLY"})
	planID := int(plan["id"].(float64))

	expense := createExpense(t, r, alice, gin.H{
		"category": "Food",
		"amount":   "12",
		"plan_id":  fmt.Sprintf("%d", planID),
	})
	assert.EqualValues(t, planID, expense["plan_id"])

	// someone else's plan is not a valid link
	rec := perform(r, http.MethodPost, "/api/expenses", bob, gin.H{
		"category": "Food",
		"amount":   "12",
		"plan_id":  fmt.Sprintf("%d", planID),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpenseCloneKeepsPlanLinkResetsDate(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	plan := createPlan(t, r, token, gin.H{"category": "Food", "amount": "100", "frequency": "MONTHLY"})
	planID := int(plan["id"].(float64))

	created := createExpense(t, r, token, gin.H{
		"category": "Food",
		"amount":   "30",
		"date":     "2026-02-01",
		"plan_id":  fmt.Sprintf("%d", planID),
	})
	id := int(created["id"].(float64))

	rec := perform(r, http.MethodPost, fmt.Sprintf("/api/expenses/%d/clone", id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	clone := respData(t, rec)["expense"].(map[string]any)

	assert.Equal(t, "Food", clone["category"])
	assert.True(t, dec(t, clone["amount"]).Equal(dec(t, "30")))
	assert.EqualValues(t, planID, clone["plan_id"])
	assert.NotEqual(t, created["date"], clone["date"])
}

func TestPlanDeleteLeavesExpensesInPlace(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	plan := createPlan(t, r, token, gin.H{"category": "Food", "amount": "100", "frequency": "MONTHLY"})
	planID := int(plan["id"].(float64))
	createExpense(t, r, token, gin.H{
		"category": "Food",
		"amount":   "20",
		"plan_id":  fmt.Sprintf("%d", planID),
	})

	rec := perform(r, http.MethodDelete, fmt.Sprintf("/api/plans/%d", planID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// the expense survives with its link dangling
	rec = perform(r, http.MethodGet, "/api/expenses", token, nil)
	data := respData(t, rec)
	require.Len(t, data["items"], 1)
	item := data["items"].([]any)[0].(map[string]any)
	assert.EqualValues(t, planID, item["plan_id"])
}

func TestExpenseValidation(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing category", gin.H{"amount": "10"}},
		{"bad amount", gin.H{"category": "Food", "amount": "ten"}},
		{"negative amount", gin.H{"category": "Food", "amount": "-10"}},
		{"bad date", gin.H{"category": "Food", "amount": "10", "date": "31/12/2026"}},
		{"bad plan id", gin.H{"category": "Food", "amount": "10", "plan_id": "zero"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := perform(r, http.MethodPost, "/api/expenses", token, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestExpenseDeleteMissingRowIs404(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	rec := perform(r, http.MethodDelete, "/api/expenses/7", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
