package models

import (
	"time"

	"github.com/envelope-zero/ledger/internal/types"
)

// BudgetAllocation holds the envelope figures of one category for one month.
//
// Available is always Assigned + Activity after any ledger operation.
type BudgetAllocation struct {
	DefaultModel
	CategoryID uint     `json:"categoryId" gorm:"uniqueIndex:allocation_category_month" example:"5"`
	Category   Category `json:"-"`
	Month      uint8    `json:"month" gorm:"uniqueIndex:allocation_category_month;check:allocation_month,month >= 1 AND month <= 12" example:"6"`
	Year       int      `json:"year" gorm:"uniqueIndex:allocation_category_month" example:"2024"`
	Assigned   int64    `json:"assigned" example:"5000"`
	Activity   int64    `json:"activity" example:"-2000"`
	Available  int64    `json:"available" example:"3000"`
}

// Period returns the month of the allocation.
func (a BudgetAllocation) Period() types.Month {
	return types.NewMonth(a.Year, time.Month(a.Month))
}

// Consistent reports whether Available equals Assigned + Activity.
func (a BudgetAllocation) Consistent() bool {
	return a.Available == a.Assigned+a.Activity
}
