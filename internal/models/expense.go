package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsCategory is the expense category written by savings deposits.
const SavingsCategory = "Savings"

// RealizedExpense is an actual recorded expenditure, optionally linked
// to an allocation plan.
//
// PlanID is a weak reference on purpose: deleting a plan leaves the
// column dangling instead of cascading, so no FK constraint is declared.
type RealizedExpense struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,2);not null"`
	Category    string          `gorm:"size:64;index;not null"`
	Source      string          `gorm:"size:128"`
	Description string          `gorm:"size:255"`
	Date        time.Time       `gorm:"index;not null"`
	PlanID      *uint           `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:RESTRICT"`
}
