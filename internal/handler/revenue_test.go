package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRevenue(t *testing.T, r http.Handler, token string, body gin.H) map[string]any {
	t.Helper()
	rec := perform(r, http.MethodPost, "/api/revenues", token, body)
	require.Equal(t, http.StatusOK, rec.Code, "create revenue: %s", rec.Body.String())
	return respData(t, rec)["revenue"].(map[string]any)
}

func TestRevenueListTotalsSkipPendingInPaid(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	createRevenue(t, r, token, gin.H{"amount": "1000", "source": "Salary", "status": "PENDING"})
	createRevenue(t, r, token, gin.H{"amount": "500", "source": "Freelance", "status": "PAID_CASH"})

	rec := perform(r, http.MethodGet, "/api/revenues", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := respData(t, rec)

	assert.True(t, dec(t, data["total"]).Equal(dec(t, "1500")), "total %v", data["total"])
	assert.True(t, dec(t, data["paid"]).Equal(dec(t, "500")), "paid %v", data["paid"])
	assert.InDelta(t, 33.33, data["paid_percent"].(float64), 0.01)
	assert.Len(t, data["items"], 2)
}

func TestRevenueCreateRejectsMalformedAmount(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	for _, amount := range []string{"abc", "-5", "0", "12.3.4", "1000000000000"} {
		rec := perform(r, http.MethodPost, "/api/revenues", token, gin.H{
			"amount": amount,
			"source": "Salary",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "amount %q", amount)
	}
}

func TestRevenueCreateRejectsUnknownStatus(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	rec := perform(r, http.MethodPost, "/api/revenues", token, gin.H{
		"amount": "100",
		"source": "Salary",
		"status": "MAYBE_LATER",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRevenueUpdateStatus(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	created := createRevenue(t, r, token, gin.H{"amount": "1000", "source": "Salary"})
	id := int(created["id"].(float64))

	rec := perform(r, http.MethodPut, fmt.Sprintf("/api/revenues/%d/status", id), token,
		gin.H{"status": "PAID_TF"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = perform(r, http.MethodGet, "/api/revenues", token, nil)
	data := respData(t, rec)
	item := data["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "PAID_TF", item["status"])
	assert.True(t, dec(t, data["paid"]).Equal(dec(t, "1000")))
}

func TestRevenueUpdateStatusMissingRowIs404(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	rec := perform(r, http.MethodPut, "/api/revenues/999/status", token, gin.H{"status": "PAID_CASH"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRevenueClonePreservesStatusAndAmount(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	created := createRevenue(t, r, token, gin.H{
		"amount": "750.50",
		"source": "Consulting",
		"status": "PAID_TF",
		"date":   "2026-01-15",
	})
	id := int(created["id"].(float64))

	rec := perform(r, http.MethodPost, fmt.Sprintf("/api/revenues/%d/clone", id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	clone := respData(t, rec)["revenue"].(map[string]any)

	assert.Equal(t, "Consulting (Copy)", clone["source"])
	assert.Equal(t, "PAID_TF", clone["status"])
	assert.True(t, dec(t, clone["amount"]).Equal(dec(t, "750.50")))
	assert.NotEqual(t, created["date"], clone["date"], "clone date resets to now")
}

func TestRevenueDeleteMissingRowIs404(t *testing.T) {
	r, _ := newTestEnv(t)
	token := register(t, r, "alice")

	rec := perform(r, http.MethodDelete, "/api/revenues/42", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRevenueRowsAreIsolatedPerUser(t *testing.T) {
	r, _ := newTestEnv(t)
	alice := register(t, r, "alice")
	bob := register(t, r, "bob")

	created := createRevenue(t, r, alice, gin.H{"amount": "1000", "source": "Salary"})
	id := int(created["id"].(float64))

	// bob can neither see nor touch alice's row
	rec := perform(r, http.MethodGet, "/api/revenues", bob, nil)
	assert.Len(t, respData(t, rec)["items"], 0)

	rec = perform(r, http.MethodDelete, fmt.Sprintf("/api/revenues/%d", id), bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = perform(r, http.MethodGet, "/api/revenues", alice, nil)
	assert.Len(t, respData(t, rec)["items"], 1)
}
