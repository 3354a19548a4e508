package models

import (
	"strings"

	"gorm.io/gorm"
)

const (
	// PoolCategoryID is the ID of the category that holds money not yet
	// assigned to any other category.
	PoolCategoryID uint = 1

	// PoolCategoryName is the name the pool category is created with.
	PoolCategoryName = "Inflow"
)

// Category is a budget envelope.
type Category struct {
	DefaultModel
	GroupID uint   `json:"groupId" example:"0"` // Display grouping only
	Name    string `json:"name" gorm:"uniqueIndex:category_name" example:"Groceries"`
	Order   uint   `json:"order" gorm:"column:display_order" example:"4"`
}

// IsPool reports whether the category is the unallocated inflow pool.
func (c Category) IsPool() bool {
	return c.ID == PoolCategoryID
}

// BeforeSave trims whitespace from the name.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}
