package database

import (
	"fmt"

	"github.com/fahmibastari/cashflow-management/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Revenue{},
		&models.RealizedExpense{},
		&models.AllocationPlan{},
		&models.Saving{},
		&models.Session{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
