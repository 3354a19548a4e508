package ledger

import (
	"fmt"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/models"
)

// CategoryRef refers to either the pool or a regular category.
//
// The zero value refers to no category and is rejected by all operations.
type CategoryRef struct {
	id uint
}

// Pool is the category holding all money not assigned to another category.
var Pool = CategoryRef{id: models.PoolCategoryID}

// CategoryOf returns a reference to the category with the ID.
func CategoryOf(id uint) CategoryRef {
	return CategoryRef{id: id}
}

// ID returns the database ID of the category.
func (r CategoryRef) ID() uint {
	return r.id
}

// IsPool reports whether r refers to the pool.
func (r CategoryRef) IsPool() bool {
	return r.id == models.PoolCategoryID
}

func (r CategoryRef) String() string {
	if r.IsPool() {
		return "pool"
	}
	return fmt.Sprintf("category %d", r.id)
}

// Allocation is the result of Allocate. Source is only set for reassignments.
type Allocation struct {
	Target models.BudgetAllocation  `json:"target"`
	Source *models.BudgetAllocation `json:"source,omitempty"`
}

// Allocate applies an amount to the allocation of a category for a month.
//
// Without a source, amount is activity: it is added to both activity and
// available of the category.
//
// With a source, amount is the new absolute assigned value of the category.
// The change to assigned is also applied to available, and its negative is
// posted as activity on the source category for the same month.
func (l *Ledger) Allocate(category CategoryRef, month types.Month, amount int64, source *CategoryRef) (result Allocation, err error) {
	err = l.store.Atomic(func(s *Store) error {
		result, err = allocate(s, category, month, amount, source)
		return err
	})

	return
}

// Assign sets the assigned amount of the category for the month, funded from the pool.
func (l *Ledger) Assign(category CategoryRef, month types.Month, amount int64) (Allocation, error) {
	pool := Pool
	return l.Allocate(category, month, amount, &pool)
}

func allocate(s *Store, category CategoryRef, month types.Month, amount int64, source *CategoryRef) (Allocation, error) {
	if source == nil {
		target, err := postActivity(s, category, month, amount)
		return Allocation{Target: target}, err
	}

	if *source == category {
		return Allocation{}, validationError("%s cannot fund itself", category)
	}

	if err := checkCategory(s, *source); err != nil {
		return Allocation{}, err
	}

	target, delta, err := reassign(s, category, month, amount)
	if err != nil {
		return Allocation{}, err
	}

	funding, err := postActivity(s, *source, month, delta)
	if err != nil {
		return Allocation{}, err
	}

	return Allocation{Target: target, Source: &funding}, nil
}

// postActivity adds delta to activity and available of the allocation.
func postActivity(s *Store, category CategoryRef, month types.Month, delta int64) (models.BudgetAllocation, error) {
	allocation, err := findAllocation(s, category, month)
	if err != nil {
		return models.BudgetAllocation{}, err
	}

	allocation.Activity += delta
	allocation.Available += delta

	err = Upsert(s, &allocation)
	return allocation, err
}

// reassign sets the assigned amount of the allocation and returns the delta
// that needs to be posted to the funding category.
func reassign(s *Store, category CategoryRef, month types.Month, amount int64) (models.BudgetAllocation, int64, error) {
	allocation, err := findAllocation(s, category, month)
	if err != nil {
		return models.BudgetAllocation{}, 0, err
	}

	prior := allocation.Assigned
	allocation.Assigned = amount
	allocation.Available += amount - prior

	err = Upsert(s, &allocation)
	return allocation, prior - amount, err
}

// findAllocation returns the allocation of the category for the month. If
// there is none, a new unsaved allocation with all amounts at zero is returned.
func findAllocation(s *Store, category CategoryRef, month types.Month) (models.BudgetAllocation, error) {
	if month.IsZero() {
		return models.BudgetAllocation{}, validationError("the month must be set")
	}

	if err := checkCategory(s, category); err != nil {
		return models.BudgetAllocation{}, err
	}

	key := models.BudgetAllocation{
		CategoryID: category.ID(),
		Month:      uint8(month.Number()),
		Year:       month.Year(),
	}

	allocation, found, err := First(s, key)
	if err != nil || !found {
		return key, err
	}

	return allocation, nil
}

func checkCategory(s *Store, category CategoryRef) error {
	if category.ID() == 0 {
		return validationError("no category specified")
	}

	_, err := Get[models.Category](s, category.ID())
	return err
}
