package models

import (
	"strings"

	"gorm.io/gorm"
)

// Payee is the counterparty of a transaction.
type Payee struct {
	DefaultModel
	Name string `json:"name" gorm:"uniqueIndex:payee_name" example:"Corner Store"`
}

// BeforeSave trims whitespace from the name.
func (p *Payee) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	return nil
}
