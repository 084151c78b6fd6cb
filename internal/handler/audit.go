package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fahmibastari/cashflow-management/internal/middleware"
	"github.com/fahmibastari/cashflow-management/internal/models"
	"github.com/fahmibastari/cashflow-management/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditHandler lists the audit trail written by middleware.AuditMiddleware.
type AuditHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewAuditHandler(db *gorm.DB, pageSize int) *AuditHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &AuditHandler{DB: db, PageSize: pageSize}
}

// List returns the current user's audit entries, newest first, paginated.
func (h *AuditHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size := h.PageSize

	var total int64
	base := h.DB.Model(&models.AuditLog{}).Where("user_id = ?", user.ID)
	if err := base.Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to count logs")
		return
	}

	var logs []models.AuditLog
	if err := base.Order("id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load logs")
		return
	}

	type logResp struct {
		ID        uint      `json:"id"`
		Method    string    `json:"method"`
		Path      string    `json:"path"`
		Action    string    `json:"action"`
		IP        string    `json:"ip"`
		CreatedAt time.Time `json:"created_at"`
	}

	items := make([]logResp, 0, len(logs))
	for _, entry := range logs {
		items = append(items, logResp{
			ID:        entry.ID,
			Method:    entry.Method,
			Path:      entry.Path,
			Action:    entry.Action,
			IP:        entry.IP,
			CreatedAt: entry.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
