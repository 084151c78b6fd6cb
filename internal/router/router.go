package router

import (
	"github.com/fahmibastari/cashflow-management/internal/config"
	"github.com/fahmibastari/cashflow-management/internal/handler"
	"github.com/fahmibastari/cashflow-management/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires every API route.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	secureCookie := cfg.Server.Mode == gin.ReleaseMode
	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireHours,
		cfg.Security.BcryptCost, secureCookie)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.AuditMiddleware(db),
	)

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/me", handler.GetMe)

	revenueHandler := handler.NewRevenueHandler(db)
	protected.POST("/revenues", revenueHandler.Create)
	protected.GET("/revenues", revenueHandler.List)
	protected.PUT("/revenues/:id/status", revenueHandler.UpdateStatus)
	protected.POST("/revenues/:id/clone", revenueHandler.Clone)
	protected.DELETE("/revenues/:id", revenueHandler.Delete)

	expenseHandler := handler.NewExpenseHandler(db)
	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses", expenseHandler.List)
	protected.POST("/expenses/:id/clone", expenseHandler.Clone)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)

	planHandler := handler.NewPlanHandler(db)
	protected.POST("/plans", planHandler.Create)
	protected.GET("/plans", planHandler.List)
	protected.DELETE("/plans/:id", planHandler.Delete)

	savingHandler := handler.NewSavingHandler(db)
	protected.POST("/savings", savingHandler.Create)
	protected.GET("/savings", savingHandler.List)
	protected.POST("/savings/:id/deposit", savingHandler.Deposit)
	protected.POST("/savings/:id/value", savingHandler.UpdateValue)
	protected.DELETE("/savings/:id", savingHandler.Delete)

	dashboardHandler := handler.NewDashboardHandler(db)
	protected.GET("/dashboard", dashboardHandler.Overview)
	protected.GET("/budget", dashboardHandler.Budget)
	protected.GET("/analytics", dashboardHandler.Analytics)
	protected.GET("/daily", dashboardHandler.Daily)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	auditHandler := handler.NewAuditHandler(db, cfg.App.PageSize)
	protected.GET("/logs", auditHandler.List)

	return r
}
