package models

import (
	"strings"
	"time"

	"github.com/envelope-zero/ledger/internal/types"
	"gorm.io/gorm"
)

// Transaction is a single posting against an account.
//
// Positive amounts are inflows, negative amounts are outflows. Month and Year
// are derived from the Timestamp on save.
type Transaction struct {
	DefaultModel
	Timestamp         time.Time `json:"timestamp" example:"2024-06-03T17:03:12Z"`
	Month             uint8     `json:"month" gorm:"index:transaction_period;check:transaction_month,month >= 1 AND month <= 12" example:"6"`
	Year              int       `json:"year" gorm:"index:transaction_period" example:"2024"`
	AccountID         uint      `json:"accountId" gorm:"not null" example:"2"`
	Account           Account   `json:"-"`
	PayeeID           *uint     `json:"payeeId" example:"7"`
	Payee             *Payee    `json:"-"`
	TransferAccountID *uint     `json:"transferAccountId"` // Reserved, never set by the ledger
	TransferAccount   *Account  `json:"-"`
	CategoryID        *uint     `json:"categoryId" example:"5"`
	Category          *Category `json:"-"`
	Memo              string    `json:"memo" example:"Weekly groceries"`
	Amount            int64     `json:"amount" example:"-2000"` // Amount in minor currency units
	Cleared           bool      `json:"cleared" example:"false"`
}

// Period returns the month the transaction is booked in.
func (t Transaction) Period() types.Month {
	return types.NewMonth(t.Year, time.Month(t.Month))
}

// AfterFind enforces UTC for all times.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Timestamp = t.Timestamp.In(time.UTC)
	return
}

// BeforeSave
//   - sets the timestamp to now if it is not set and converts it to UTC
//   - derives month and year from the timestamp
//   - ensures optional references are nil and not pointers to 0
//   - trims whitespace from the memo
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Memo = strings.TrimSpace(t.Memo)

	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	t.Timestamp = t.Timestamp.In(time.UTC)

	period := types.MonthOf(t.Timestamp)
	t.Month = uint8(period.Number())
	t.Year = period.Year()

	t.PayeeID = nilIfZero(t.PayeeID)
	t.CategoryID = nilIfZero(t.CategoryID)
	t.TransferAccountID = nilIfZero(t.TransferAccountID)

	return
}

func nilIfZero(id *uint) *uint {
	if id != nil && *id == 0 {
		return nil
	}
	return id
}
