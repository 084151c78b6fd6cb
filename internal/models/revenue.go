package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueStatus is the settlement state of an income record.
type RevenueStatus string

const (
	StatusPending      RevenueStatus = "PENDING"
	StatusPaidCash     RevenueStatus = "PAID_CASH"
	StatusPaidTransfer RevenueStatus = "PAID_TF"
)

// Valid reports whether s is one of the known settlement states.
func (s RevenueStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaidCash, StatusPaidTransfer:
		return true
	}
	return false
}

// Paid reports whether the revenue counts as settled income.
// PENDING revenue never contributes to the balance.
func (s RevenueStatus) Paid() bool {
	return s == StatusPaidCash || s == StatusPaidTransfer
}

// Revenue is an income record with a settlement status.
type Revenue struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,2);not null"`
	Source      string          `gorm:"size:128;not null"`
	Description string          `gorm:"size:255"`
	Status      RevenueStatus   `gorm:"size:16;index;not null;default:PENDING"`
	Date        time.Time       `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:RESTRICT"`
}
