// Package ledger implements posting of transactions and envelope allocation.
//
// Three invariants hold after every operation that returns without error:
//
//   - every budget allocation has Available == Assigned + Activity
//   - every account balance equals the sum of its transaction amounts
//   - reassigning money to a category moves exactly that amount out of the
//     funding category, usually the pool
//
// Every exported mutating method runs as one atomic unit: it either applies
// all its changes or none of them.
package ledger

import (
	"time"

	"github.com/envelope-zero/ledger/internal/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

// Ledger is the posting and allocation engine.
//
// A Ledger is not safe for concurrent writers. It is owned by exactly one
// goroutine, usually the command sequencer.
type Ledger struct {
	store   *Store
	now     func() time.Time
	printer *message.Printer
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the function used to timestamp transactions.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithLanguage sets the language used for formatted amounts in snapshots.
func WithLanguage(tag language.Tag) Option {
	return func(l *Ledger) {
		l.printer = message.NewPrinter(tag)
	}
}

// New returns a Ledger operating on the database.
func New(db *gorm.DB, opts ...Option) *Ledger {
	l := &Ledger{
		store:   NewStore(db),
		now:     time.Now,
		printer: message.NewPrinter(language.AmericanEnglish),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Store returns the store the ledger writes to.
func (l *Ledger) Store() *Store {
	return l.store
}

// CurrentMonth returns the month transactions are currently posted in.
func (l *Ledger) CurrentMonth() types.Month {
	return types.MonthOf(l.timestamp())
}

func (l *Ledger) timestamp() time.Time {
	return l.now().In(time.UTC)
}
