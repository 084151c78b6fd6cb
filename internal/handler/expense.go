package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fahmibastari/cashflow-management/internal/derive"
	"github.com/fahmibastari/cashflow-management/internal/middleware"
	"github.com/fahmibastari/cashflow-management/internal/models"
	"github.com/fahmibastari/cashflow-management/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExpenseHandler owns realized expenses.
type ExpenseHandler struct {
	DB *gorm.DB
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{DB: db}
}

type createExpenseReq struct {
	Category    string `form:"category" json:"category" binding:"required"`
	Amount      string `form:"amount" json:"amount" binding:"required"`
	Source      string `form:"source" json:"source"`
	Description string `form:"description" json:"description"`
	Date        string `form:"date" json:"date"`
	PlanID      string `form:"plan_id" json:"plan_id"`
}

type expenseResp struct {
	ID          uint      `json:"id"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Source      string    `json:"source,omitempty"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	PlanID      *uint     `json:"plan_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toExpenseResp(e *models.RealizedExpense) expenseResp {
	return expenseResp{
		ID:          e.ID,
		Amount:      e.Amount.String(),
		Category:    e.Category,
		Source:      e.Source,
		Description: e.Description,
		Date:        e.Date,
		PlanID:      e.PlanID,
		CreatedAt:   e.CreatedAt,
	}
}

// Create records a spend for the current user, optionally linked to an
// allocation plan. The plan link is weak: it is accepted only if the plan
// belongs to the user, but it may dangle later if the plan is deleted.
func (h *ExpenseHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var req createExpenseReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category and amount are required")
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if err := util.ValidateCategory(req.Category); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	date, err := util.ParseDate(req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var planID *uint
	if req.PlanID != "" {
		parsed, err := strconv.ParseUint(req.PlanID, 10, 32)
		if err != nil || parsed == 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid plan_id")
			return
		}
		var plan models.AllocationPlan
		if err := h.DB.Where("id = ? AND user_id = ?", parsed, user.ID).First(&plan).Error; err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "plan not found")
			return
		}
		planID = &plan.ID
	}

	expense := models.RealizedExpense{
		UserID:      user.ID,
		Amount:      amount,
		Category:    req.Category,
		Source:      strings.TrimSpace(req.Source),
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		PlanID:      planID,
	}
	if err := h.DB.Create(&expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save expense")
		return
	}

	util.Success(c, util.Response{
		"redirect": "/realized",
		"expense":  toExpenseResp(&expense),
	})
}

// List returns the user's expenses, newest first, plus the all-time total.
func (h *ExpenseHandler) List(c *gin.Context) {
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

	items := make([]expenseResp, 0, len(expenses))
	for i := range expenses {
		items = append(items, toExpenseResp(&expenses[i]))
	}

	util.Success(c, util.Response{
		"items":       items,
		"total_spent": derive.SumExpenses(expenses).String(),
	})
}

// Clone duplicates an expense row with the date reset to now. All other
// fields carry over, including the plan link.
func (h *ExpenseHandler) Clone(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var original models.RealizedExpense
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&original).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "expense not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load expense")
		}
		return
	}

	clone := models.RealizedExpense{
		UserID:      original.UserID,
		Amount:      original.Amount,
		Category:    original.Category,
		Source:      original.Source,
		Description: original.Description,
		Date:        time.Now(),
		PlanID:      original.PlanID,
	}
	if err := h.DB.Create(&clone).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to clone expense")
		return
	}

	util.Success(c, util.Response{
		"refresh": []string{"/realized", "/daily", "/budget"},
		"expense": toExpenseResp(&clone),
	})
}

// Delete removes an expense row by id, reporting a missing row explicitly.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.RealizedExpense{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete expense")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "expense not found")
		return
	}

	util.Success(c, util.Response{
		"refresh": []string{"/realized", "/daily", "/budget", "/"},
	})
}
