package handler

import (
	"errors"
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

// RevenueHandler owns income records.
type RevenueHandler struct {
	DB *gorm.DB
}

func NewRevenueHandler(db *gorm.DB) *RevenueHandler {
	return &RevenueHandler{DB: db}
}

type createRevenueReq struct {
	Amount      string `form:"amount" json:"amount" binding:"required"`
	Source      string `form:"source" json:"source" binding:"required"`
	Description string `form:"description" json:"description"`
	Status      string `form:"status" json:"status"`
	Date        string `form:"date" json:"date"`
}

type revenueResp struct {
	ID          uint      `json:"id"`
	Amount      string    `json:"amount"`
	Source      string    `json:"source"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRevenueResp(r *models.Revenue) revenueResp {
	return revenueResp{
		ID:          r.ID,
		Amount:      r.Amount.String(),
		Source:      r.Source,
		Description: r.Description,
		Status:      string(r.Status),
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
	}
}

// Create records a new income row for the current user.
func (h *RevenueHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var req createRevenueReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount and source are required")
		return
	}

	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	req.Source = strings.TrimSpace(req.Source)
	if req.Source == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "source is required")
		return
	}

	status := models.RevenueStatus(req.Status)
	if req.Status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "status must be PENDING, PAID_CASH or PAID_TF")
		return
	}

	date, err := util.ParseDate(req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	revenue := models.Revenue{
		UserID:      user.ID,
		Amount:      amount,
		Source:      req.Source,
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		Date:        date,
	}
	if err := h.DB.Create(&revenue).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save revenue")
		return
	}

	util.Success(c, util.Response{
		"redirect": "/revenue",
		"revenue":  toRevenueResp(&revenue),
	})
}

// List returns the user's revenue, newest first, with totals. The paid total
// only counts settled rows; pending income never inflates it.
func (h *RevenueHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var revenues []models.Revenue
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date DESC, id DESC").
		Find(&revenues).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load revenue")
		return
	}

	items := make([]revenueResp, 0, len(revenues))
	for i := range revenues {
		items = append(items, toRevenueResp(&revenues[i]))
	}

	total := derive.SumRevenue(revenues, false)
	paid := derive.SumRevenue(revenues, true)

	paidPercent := 0.0
	if total.Sign() > 0 {
		paidPercent = paid.Div(total).Mul(hundred).InexactFloat64()
	}

	util.Success(c, util.Response{
		"items":        items,
		"total":        total.String(),
		"paid":         paid.String(),
		"paid_percent": paidPercent,
	})
}

// UpdateStatus changes a revenue row's settlement status.
func (h *RevenueHandler) UpdateStatus(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `form:"status" json:"status" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "status is required")
		return
	}
	status := models.RevenueStatus(req.Status)
	if !status.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "status must be PENDING, PAID_CASH or PAID_TF")
		return
	}

	res := h.DB.Model(&models.Revenue{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("status", status)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update status")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "revenue not found")
		return
	}

	util.Success(c, util.Response{
		"refresh": []string{"/revenue", "/"},
	})
}

// Clone duplicates a revenue row: source gains a " (Copy)" suffix, the date
// resets to now, everything else (amount, status, description) carries over.
func (h *RevenueHandler) Clone(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var original models.Revenue
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&original).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "revenue not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load revenue")
		}
		return
	}

	clone := models.Revenue{
		UserID:      original.UserID,
		Amount:      original.Amount,
		Source:      original.Source + " (Copy)",
		Description: original.Description,
		Status:      original.Status,
		Date:        time.Now(),
	}
	if err := h.DB.Create(&clone).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to clone revenue")
		return
	}

	util.Success(c, util.Response{
		"refresh": []string{"/revenue"},
		"revenue": toRevenueResp(&clone),
	})
}

// Delete removes a revenue row by id. A missing row is reported, not
// silently ignored.
func (h *RevenueHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Revenue{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete revenue")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "revenue not found")
		return
	}

	util.Success(c, util.Response{
		"refresh": []string{"/revenue", "/"},
	})
}
