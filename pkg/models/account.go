package models

import (
	"strings"

	"gorm.io/gorm"
)

// Account represents a place money is kept, e.g. a bank account.
//
// Balance is a cached sum of all transaction amounts for the account, in
// minor currency units. It is only written through the balance maintainer of
// the ledger.
type Account struct {
	DefaultModel
	Name              string `json:"name" gorm:"uniqueIndex:account_name" example:"Checking"`
	IsTrackingAccount bool   `json:"isTrackingAccount" example:"false"` // Excluded from budget totals
	Balance           int64  `json:"balance" example:"-2000"`           // Minor currency units
}

// BeforeSave trims whitespace from the name.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	return nil
}
