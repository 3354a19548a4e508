package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/models"
)

// StartingBalanceMemo is the memo of the transaction that seeds the balance of a new account.
const StartingBalanceMemo = "Starting balance"

// Entry is a transaction to be posted.
type Entry struct {
	AccountID uint
	PayeeID   *uint        // Optional
	Category  *CategoryRef // Optional. Without a category, no allocation is touched.
	Memo      string
	Amount    int64 // Minor currency units, positive for inflows
	Cleared   bool
}

// Posting is the result of posting or removing a transaction.
type Posting struct {
	Transaction models.Transaction       `json:"transaction"`
	Account     models.Account           `json:"account"`
	Allocation  *models.BudgetAllocation `json:"allocation,omitempty"` // Only set if the transaction has a category
}

// Post posts the transaction described by the entry.
//
// The activity of the entry's category for the current month is updated,
// the transaction is stored and the account balance is adjusted.
func (l *Ledger) Post(e Entry) (p Posting, err error) {
	err = l.store.Atomic(func(s *Store) error {
		p, err = post(s, l.timestamp(), e)
		return err
	})

	return
}

// PostByName posts a transaction referencing account, payee and category by name.
//
// The account and the category must exist. A payee that does not exist yet is
// created. An empty payee name posts the transaction without a payee.
func (l *Ledger) PostByName(accountName, payeeName, categoryName, memo string, amount int64) (p Posting, err error) {
	accountName = strings.TrimSpace(accountName)
	categoryName = strings.TrimSpace(categoryName)
	payeeName = strings.TrimSpace(payeeName)

	if accountName == "" {
		return Posting{}, validationError("the account name must not be empty")
	}

	if categoryName == "" {
		return Posting{}, validationError("the category name must not be empty")
	}

	err = l.store.Atomic(func(s *Store) error {
		account, found, err := First(s, models.Account{Name: accountName})
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: there is no account named %q", ErrNotFound, accountName)
		}

		category, found, err := First(s, models.Category{Name: categoryName})
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: there is no category named %q", ErrNotFound, categoryName)
		}

		var payeeID *uint
		if payeeName != "" {
			payee, err := payeeNamed(s, payeeName)
			if err != nil {
				return err
			}
			payeeID = &payee.ID
		}

		ref := CategoryOf(category.ID)
		p, err = post(s, l.timestamp(), Entry{
			AccountID: account.ID,
			PayeeID:   payeeID,
			Category:  &ref,
			Memo:      memo,
			Amount:    amount,
		})
		return err
	})

	return
}

// Remove deletes a transaction and reverses its effect on the account
// balance and on the activity of its category.
func (l *Ledger) Remove(transactionID uint) (p Posting, err error) {
	err = l.store.Atomic(func(s *Store) error {
		transaction, err := Get[models.Transaction](s, transactionID)
		if err != nil {
			return err
		}

		if transaction.CategoryID != nil {
			allocation, err := postActivity(s, CategoryOf(*transaction.CategoryID), transaction.Period(), -transaction.Amount)
			if err != nil {
				return err
			}
			p.Allocation = &allocation
		}

		p.Account, err = adjustBalance(s, transaction.AccountID, -transaction.Amount)
		if err != nil {
			return err
		}

		p.Transaction = transaction
		return Delete[models.Transaction](s, transaction.ID)
	})

	return
}

// AddAccount creates an account.
//
// A non-zero initial balance is booked as a cleared transaction without
// payee and category so that it does not touch any allocation.
func (l *Ledger) AddAccount(name string, initialBalance int64, isTrackingAccount bool) (account models.Account, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Account{}, validationError("the account name must not be empty")
	}

	err = l.store.Atomic(func(s *Store) error {
		account = models.Account{
			Name:              name,
			IsTrackingAccount: isTrackingAccount,
		}

		err := Upsert(s, &account)
		if err != nil {
			return err
		}

		if initialBalance == 0 {
			return nil
		}

		p, err := post(s, l.timestamp(), Entry{
			AccountID: account.ID,
			Memo:      StartingBalanceMemo,
			Amount:    initialBalance,
			Cleared:   true,
		})
		account = p.Account
		return err
	})

	return
}

// AddCategory creates a category. It is sorted after all existing categories.
func (l *Ledger) AddCategory(name string) (category models.Category, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, validationError("the category name must not be empty")
	}

	err = l.store.Atomic(func(s *Store) error {
		categories, err := Find(s, models.Category{}, "display_order DESC")
		if err != nil {
			return err
		}

		category = models.Category{Name: name}
		if len(categories) > 0 {
			category.Order = categories[0].Order + 1
		}

		return Upsert(s, &category)
	})

	return
}

func post(s *Store, now time.Time, e Entry) (Posting, error) {
	var p Posting

	if e.AccountID == 0 {
		return p, validationError("no account specified")
	}

	// Fail early with a not found error for a missing account
	// instead of a constraint violation later
	if _, err := Get[models.Account](s, e.AccountID); err != nil {
		return p, err
	}

	if e.PayeeID != nil {
		if _, err := Get[models.Payee](s, *e.PayeeID); err != nil {
			return p, err
		}
	}

	var categoryID *uint
	if e.Category != nil {
		allocation, err := postActivity(s, *e.Category, types.MonthOf(now), e.Amount)
		if err != nil {
			return p, err
		}
		p.Allocation = &allocation

		id := e.Category.ID()
		categoryID = &id
	}

	p.Transaction = models.Transaction{
		Timestamp:  now,
		AccountID:  e.AccountID,
		PayeeID:    e.PayeeID,
		CategoryID: categoryID,
		Memo:       e.Memo,
		Amount:     e.Amount,
		Cleared:    e.Cleared,
	}

	err := Upsert(s, &p.Transaction)
	if err != nil {
		return p, err
	}

	p.Account, err = adjustBalance(s, e.AccountID, e.Amount)
	return p, err
}

func payeeNamed(s *Store, name string) (models.Payee, error) {
	payee, found, err := First(s, models.Payee{Name: name})
	if err != nil || found {
		return payee, err
	}

	payee = models.Payee{Name: name}
	err = Upsert(s, &payee)
	return payee, err
}
