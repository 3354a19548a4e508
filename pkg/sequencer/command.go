package sequencer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Command is a user action executed by the Sequencer.
type Command interface {
	// Kind is the name of the command used in logs and metrics.
	Kind() string

	// apply executes the command. It is only ever called from the goroutine
	// running the Sequencer.
	apply(s *Sequencer) error
}

// AddAccount creates an account with an optional starting balance.
type AddAccount struct {
	Name              string `json:"name" validate:"required,max=255" example:"Checking"`
	InitialBalance    int64  `json:"initialBalance" example:"10000"` // Minor currency units
	IsTrackingAccount bool   `json:"isTrackingAccount" example:"false"`
}

func (AddAccount) Kind() string { return "add_account" }

func (c AddAccount) apply(s *Sequencer) error {
	_, err := s.ledger.AddAccount(c.Name, c.InitialBalance, c.IsTrackingAccount)
	return err
}

// AddCategory creates a category sorted after all existing ones.
type AddCategory struct {
	Name string `json:"name" validate:"required,max=255" example:"Groceries"`
}

func (AddCategory) Kind() string { return "add_category" }

func (c AddCategory) apply(s *Sequencer) error {
	_, err := s.ledger.AddCategory(c.Name)
	return err
}

// PostTransaction posts a transaction in the current month.
type PostTransaction struct {
	AccountName  string `json:"account" validate:"required" example:"Checking"`
	PayeeName    string `json:"payee" example:"Store"`
	CategoryName string `json:"category" validate:"required" example:"Groceries"`
	Memo         string `json:"memo" example:"Weekly groceries"`
	Amount       int64  `json:"amount" example:"-2000"`
}

func (PostTransaction) Kind() string { return "post_transaction" }

func (c PostTransaction) apply(s *Sequencer) error {
	_, err := s.ledger.PostByName(c.AccountName, c.PayeeName, c.CategoryName, c.Memo, c.Amount)
	return err
}

// DeleteTransaction removes a transaction and reverses its effects.
type DeleteTransaction struct {
	TransactionID uint `json:"transactionId" validate:"required" example:"12"`
}

func (DeleteTransaction) Kind() string { return "delete_transaction" }

func (c DeleteTransaction) apply(s *Sequencer) error {
	_, err := s.ledger.Remove(c.TransactionID)
	return err
}

// SelectAccount limits the transactions in snapshots to one account.
// AccountID 0 selects all accounts.
type SelectAccount struct {
	AccountID uint `json:"accountId" example:"2"`
}

func (SelectAccount) Kind() string { return "select_account" }

func (c SelectAccount) apply(s *Sequencer) error {
	if c.AccountID != 0 {
		if _, err := ledger.Get[models.Account](s.ledger.Store(), c.AccountID); err != nil {
			return err
		}
	}

	s.selectedAccount = c.AccountID
	return nil
}

// ChangeViewedMonth sets the month shown in snapshots.
type ChangeViewedMonth struct {
	Month int `json:"month" validate:"min=1,max=12" example:"6"`
	Year  int `json:"year" validate:"min=1,max=9999" example:"2024"`
}

func (ChangeViewedMonth) Kind() string { return "change_viewed_month" }

func (c ChangeViewedMonth) apply(s *Sequencer) error {
	s.month = types.NewMonth(c.Year, time.Month(c.Month))
	return nil
}

// EditAssignment sets the amount assigned to a category for a month, funded
// from the pool. Amount is free-form currency text; text without a number
// assigns zero.
type EditAssignment struct {
	CategoryID uint   `json:"categoryId" validate:"required" example:"5"`
	Month      int    `json:"month" validate:"min=1,max=12" example:"6"`
	Year       int    `json:"year" validate:"min=1,max=9999" example:"2024"`
	Amount     string `json:"amount" example:"50.00"`
}

func (EditAssignment) Kind() string { return "edit_assignment" }

func (c EditAssignment) apply(s *Sequencer) error {
	amount, _ := ledger.ParseCurrency(c.Amount)
	_, err := s.ledger.Assign(ledger.CategoryOf(c.CategoryID), types.NewMonth(c.Year, time.Month(c.Month)), amount)
	return err
}

// ReconcileAccount overwrites the cached balance of an account with the sum
// of its transactions.
type ReconcileAccount struct {
	AccountID uint `json:"accountId" validate:"required" example:"2"`
}

func (ReconcileAccount) Kind() string { return "reconcile_account" }

func (c ReconcileAccount) apply(s *Sequencer) error {
	r, err := s.ledger.ReconcileBalance(c.AccountID)
	if err == nil && r.Drift != 0 {
		log.Warn().Uint("account", c.AccountID).Int64("drift", r.Drift).Msg("Balance reconciled")
	}
	return err
}

// Terminate stops the Sequencer after all commands submitted before it.
type Terminate struct{}

func (Terminate) Kind() string { return "terminate" }

func (Terminate) apply(*Sequencer) error { return nil }

// Validate checks the fields of a command. The returned error wraps
// ledger.ErrValidation.
func Validate(c Command) error {
	if c == nil {
		return fmt.Errorf("%w: no command", ledger.ErrValidation)
	}

	err := validate.Struct(c)

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		texts := make([]string, 0, len(fieldErrors))
		for _, e := range fieldErrors {
			texts = append(texts, validationErrorToText(e))
		}

		return fmt.Errorf("%w: %s", ledger.ErrValidation, strings.Join(texts, ", "))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrValidation, err)
	}

	return nil
}

func validationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}
