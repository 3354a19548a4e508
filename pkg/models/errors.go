package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred in the database during the operation")
	ErrResourceNotFound = errors.New("there is no")
	ErrInvalidReference = errors.New("a referenced resource does not exist")
	ErrResourceInUse    = errors.New("the resource is still referenced by other resources")

	ErrAccountNameNotUnique  = errors.New("the account name must be unique")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique")
	ErrPayeeNameNotUnique    = errors.New("the payee name must be unique")
	ErrAllocationNotUnique   = errors.New("there can only be one budget allocation per category and month")
)
