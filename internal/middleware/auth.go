package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fahmibastari/cashflow-management/internal/models"
	"github.com/fahmibastari/cashflow-management/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionCookie carries the signed session token.
const SessionCookie = "session"

// AuthMiddleware verifies the session token and puts the current user into
// the gin context. It fails closed: no token, a bad signature, an expired
// token or a revoked server-side session all end the request with 401.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) HTTP-only cookie, the primary transport
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			tokenStr = cookie
		}

		// 2) Header: Authorization: Bearer xxx
		if tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenStr = parts[1]
				}
			}
		}

		// 3) URL query ?token=xxx (for export downloads where headers and
		// cookies may be unavailable)
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
			c.Abort()
			return
		}

		// the server-side session must still be live (logout revokes it)
		var session models.Session
		if err := db.First(&session, "id = ?", claims.SessionID).Error; err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
			c.Abort()
			return
		}
		if session.Revoked || time.Now().After(session.ExpiresAt) || session.UserID != claims.UserID {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user not found")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
			}
			c.Abort()
			return
		}

		c.Set("currentUser", &user)
		c.Set("sessionID", session.ID)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user set by AuthMiddleware out of the
// context. Handlers must not touch the store when this returns false.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
