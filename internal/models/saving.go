package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingType classifies a balance-tracked asset.
type SavingType string

const (
	SavingGoal       SavingType = "GOAL"
	SavingEmergency  SavingType = "EMERGENCY"
	SavingInvestment SavingType = "INVESTMENT"
)

// Valid reports whether t is one of the known saving types.
func (t SavingType) Valid() bool {
	switch t {
	case SavingGoal, SavingEmergency, SavingInvestment:
		return true
	}
	return false
}

// Saving is a balance-tracked asset. Current is mutated independently of
// Target: it may go negative or exceed the target.
type Saving struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null"`
	Name      string          `gorm:"size:128;not null"`
	Target    decimal.Decimal `gorm:"type:DECIMAL(20,2);not null"`
	Current   decimal.Decimal `gorm:"type:DECIMAL(20,2);not null"`
	Type      SavingType      `gorm:"size:16;index;not null;default:GOAL"`
	Notes     string          `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:RESTRICT"`
}
