package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often an allocation plan's amount recurs.
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyOneTime Frequency = "ONE_TIME"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyOneTime:
		return true
	}
	return false
}

// AllocationPlan is a recurring budget target for a spending category.
type AllocationPlan struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null"`
	Category  string          `gorm:"size:64;index;not null"`
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,2);not null"`
	Frequency Frequency       `gorm:"size:16;not null"`
	Notes     string          `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:RESTRICT"`
}
