package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fahmibastari/cashflow-management/internal/middleware"
	"github.com/fahmibastari/cashflow-management/internal/models"
	"github.com/fahmibastari/cashflow-management/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler owns signup, login and logout.
type AuthHandler struct {
	DB           *gorm.DB
	JWTSecret    string
	TokenTTL     time.Duration
	BcryptCost   int
	SecureCookie bool
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, ttlHours, bcryptCost int, secureCookie bool) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 7 * 24
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthHandler{
		DB:           db,
		JWTSecret:    jwtSecret,
		TokenTTL:     time.Duration(ttlHours) * time.Hour,
		BcryptCost:   bcryptCost,
		SecureCookie: secureCookie,
	}
}

type registerReq struct {
	Username string `form:"username" json:"username" binding:"required"`
	Name     string `form:"name" json:"name" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Register creates a user and logs them straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "all fields are required")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)

	if err := util.ValidateUsername(req.Username); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}
	if len(req.Password) < 6 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "password too short (min 6)")
		return
	}

	// case-insensitive uniqueness check
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", req.Username).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check username")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "username is already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	user := models.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		// race with the pre-check
		if isUniqueConstraintError(err) {
			util.Error(c, http.StatusConflict, util.CodeConflict, "username is already taken")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create user")
		return
	}

	if err := h.startSession(c, &user); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create session")
		return
	}

	util.Success(c, util.Response{
		"redirect": "/",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
		},
	})
}

type loginReq struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Login verifies credentials and issues a fresh session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username and password are required")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	if err := h.DB.Where("LOWER(username) = LOWER(?)", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid username or password")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid username or password")
		return
	}

	if err := h.startSession(c, &user); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create session")
		return
	}

	util.Success(c, util.Response{
		"redirect": "/",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
		},
	})
}

// Logout revokes the server-side session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, ok := c.Get("sessionID"); ok {
		if id, ok := sid.(string); ok && id != "" {
			_ = h.DB.Model(&models.Session{}).Where("id = ?", id).Update("revoked", true).Error
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.SecureCookie, true)

	util.Success(c, util.Response{
		"redirect": "/login",
	})
}

// startSession stores a session row and sets the signed HTTP-only cookie.
func (h *AuthHandler) startSession(c *gin.Context, user *models.User) error {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(h.TokenTTL),
	}
	if err := h.DB.Create(&session).Error; err != nil {
		return err
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, session.ID, h.TokenTTL)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.TokenTTL.Seconds()), "/", "", h.SecureCookie, true)
	return nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint") || strings.Contains(s, "unique constraint") || strings.Contains(s, "duplicate key")
}
