package middleware

import (
	"github.com/fahmibastari/cashflow-management/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware records mutating requests of logged-in users. Reads are
// not logged; neither are requests that never resolved a user.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == "GET" || c.Request.Method == "HEAD" {
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			return
		}

		path := c.Request.URL.Path
		entry := models.AuditLog{
			UserID:    &user.ID,
			Method:    c.Request.Method,
			Path:      path,
			Action:    c.Request.Method + " " + path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		// best effort; an audit failure must not fail the request
		_ = db.Create(&entry).Error
	}
}
