package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fahmibastari/cashflow-management/internal/derive"
	"github.com/fahmibastari/cashflow-management/internal/middleware"
	"github.com/fahmibastari/cashflow-management/internal/models"
	"github.com/fahmibastari/cashflow-management/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SavingHandler owns savings, emergency funds and investments.
type SavingHandler struct {
	DB *gorm.DB
}

func NewSavingHandler(db *gorm.DB) *SavingHandler {
	return &SavingHandler{DB: db}
}

type createSavingReq struct {
	Name    string `form:"name" json:"name" binding:"required"`
	Target  string `form:"target" json:"target" binding:"required"`
	Current string `form:"current" json:"current"`
	Type    string `form:"type" json:"type"`
	Notes   string `form:"notes" json:"notes"`
}

type savingResp struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Target    string    `json:"target"`
	Current   string    `json:"current"`
	Type      string    `json:"type"`
	Progress  float64   `json:"progress"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toSavingResp(s *models.Saving) savingResp {
	return savingResp{
		ID:        s.ID,
		Name:      s.Name,
		Target:    s.Target.String(),
		Current:   s.Current.String(),
		Type:      string(s.Type),
		Progress:  derive.SavingProgress(s.Current, s.Target),
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
	}
}

// Create adds a savings pot. The starting balance defaults to zero.
func (h *SavingHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var req createSavingReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name and target are required")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}

	target, err := util.ParseAmount(req.Target)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	current, err := util.ParseOptionalAmount(req.Current)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	savingType := models.SavingType(req.Type)
	if req.Type == "" {
		savingType = models.SavingGoal
	}
	if !savingType.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "type must be GOAL, EMERGENCY or INVESTMENT")
		return
	}

	saving := models.Saving{
		UserID:  user.ID,
		Name:    req.Name,
		Target:  target,
		Current: current,
		Type:    savingType,
		Notes:   strings.TrimSpace(req.Notes),
	}
	if err := h.DB.Create(&saving).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save")
		return
	}

	util.Success(c, util.Response{
		"redirect": "/savings",
		"saving":   toSavingResp(&saving),
	})
}

// List returns the user's savings grouped by type plus total net worth.
func (h *SavingHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var savings []models.Saving
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC, id DESC").
		Find(&savings).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load savings")
		return
	}

	netWorth := decimal.Zero
	grouped := map[string][]savingResp{
		string(models.SavingGoal):       {},
		string(models.SavingEmergency):  {},
		string(models.SavingInvestment): {},
	}
	for i := range savings {
		s := &savings[i]
		netWorth = netWorth.Add(s.Current)
		grouped[string(s.Type)] = append(grouped[string(s.Type)], toSavingResp(s))
	}

	util.Success(c, util.Response{
		"net_worth":   netWorth.String(),
		"goals":       grouped[string(models.SavingGoal)],
		"emergency":   grouped[string(models.SavingEmergency)],
		"investments": grouped[string(models.SavingInvestment)],
	})
}

// Deposit adds money to a saving and books the matching "Savings" expense
// in one transaction: either both writes land or neither does.
func (h *SavingHandler) Deposit(c *gin.Context) {
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
		Amount string `form:"amount" json:"amount" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount is required")
		return
	}
	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var saving models.Saving
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&saving).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "saving not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load saving")
		}
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Saving{}).
			Where("id = ? AND user_id = ?", saving.ID, user.ID).
			Update("current", saving.Current.Add(amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		expense := models.RealizedExpense{
			UserID:      saving.UserID,
			Amount:      amount,
			Category:    models.SavingsCategory,
			Source:      "Savings Transfer",
			Description: fmt.Sprintf("Deposit to %s", saving.Name),
			Date:        time.Now(),
		}
		return tx.Create(&expense).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "deposit failed, nothing was recorded; please retry")
		return
	}

	saving.Current = saving.Current.Add(amount)
	util.Success(c, util.Response{
		"refresh": []string{"/savings", "/", "/daily"},
		"saving":  toSavingResp(&saving),
	})
}

// UpdateValue overwrites a saving's current balance (mark-to-market for
// investments). Deliberately asymmetric from Deposit: no expense row.
func (h *SavingHandler) UpdateValue(c *gin.Context) {
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
		Amount string `form:"amount" json:"amount" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount is required")
		return
	}
	value, err := util.ParseOptionalAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	res := h.DB.Model(&models.Saving{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("current", value)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update value")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "saving not found")
		return
	}

	util.Success(c, util.Response{
		"refresh": []string{"/savings"},
	})
}

// Delete removes a saving by id.
func (h *SavingHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Saving{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete saving")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "saving not found")
		return
	}

	util.Success(c, util.Response{
		"refresh": []string{"/savings"},
	})
}
