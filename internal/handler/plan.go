package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/fahmibastari/cashflow-management/internal/derive"
	"github.com/fahmibastari/cashflow-management/internal/middleware"
	"github.com/fahmibastari/cashflow-management/internal/models"
	"github.com/fahmibastari/cashflow-management/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PlanHandler owns allocation plans (budget targets).
type PlanHandler struct {
	DB *gorm.DB
}

func NewPlanHandler(db *gorm.DB) *PlanHandler {
	return &PlanHandler{DB: db}
}

type createPlanReq struct {
	Category  string `form:"category" json:"category" binding:"required"`
	Amount    string `form:"amount" json:"amount" binding:"required"`
	Frequency string `form:"frequency" json:"frequency" binding:"required"`
	Notes     string `form:"notes" json:"notes"`
}

type planResp struct {
	ID                uint      `json:"id"`
	Category          string    `json:"category"`
	Amount            string    `json:"amount"`
	Frequency         string    `json:"frequency"`
	MonthlyEquivalent string    `json:"monthly_equivalent"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func toPlanResp(p *models.AllocationPlan) planResp {
	return planResp{
		ID:                p.ID,
		Category:          p.Category,
		Amount:            p.Amount.String(),
		Frequency:         string(p.Frequency),
		MonthlyEquivalent: derive.MonthlyEquivalent(p.Amount, p.Frequency).String(),
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt,
	}
}

// Create adds a budget target for a category.
func (h *PlanHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var req createPlanReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category, amount and frequency are required")
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

	frequency := models.Frequency(req.Frequency)
	if !frequency.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "frequency must be DAILY, WEEKLY, MONTHLY or ONE_TIME")
		return
	}

	plan := models.AllocationPlan{
		UserID:    user.ID,
		Category:  req.Category,
		Amount:    amount,
		Frequency: frequency,
		Notes:     strings.TrimSpace(req.Notes),
	}
	if err := h.DB.Create(&plan).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save plan")
		return
	}

	util.Success(c, util.Response{
		"redirect": "/allocation",
		"plan":     toPlanResp(&plan),
	})
}

// List returns the user's plans, newest first, with the total monthly budget
// their monthly equivalents add up to.
func (h *PlanHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var plans []models.AllocationPlan
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC, id DESC").
		Find(&plans).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load plans")
		return
	}

	items := make([]planResp, 0, len(plans))
	for i := range plans {
		items = append(items, toPlanResp(&plans[i]))
	}

	util.Success(c, util.Response{
		"items":              items,
		"total_monthly_plan": derive.TotalMonthlyPlan(plans).String(),
	})
}

// Delete removes a plan by id. Expenses that referenced the plan keep their
// category string and their (now dangling) plan_id; nothing cascades.
func (h *PlanHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.AllocationPlan{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete plan")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "plan not found")
		return
	}

	util.Success(c, util.Response{
		"refresh": []string{"/allocation", "/budget"},
	})
}
