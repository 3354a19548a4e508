package ledger

import (
	"github.com/envelope-zero/ledger/pkg/models"
)

// Reconciliation is the result of comparing a cached account balance
// with the sum of the account's transactions.
type Reconciliation struct {
	Account models.Account `json:"account"`
	Drift   int64          `json:"drift"` // Cached balance minus the sum of transactions before reconciling
}

// AdjustBalance adds delta to the balance of the account.
//
// The balance is a cache of the sum of all transaction amounts. Callers
// outside of posting and removal almost never want this.
func (l *Ledger) AdjustBalance(accountID uint, delta int64) (account models.Account, err error) {
	err = l.store.Atomic(func(s *Store) error {
		account, err = adjustBalance(s, accountID, delta)
		return err
	})

	return
}

// RecomputeBalance returns the sum of all transaction amounts for the account.
func (l *Ledger) RecomputeBalance(accountID uint) (int64, error) {
	if _, err := Get[models.Account](l.store, accountID); err != nil {
		return 0, err
	}

	return l.store.SumTransactions(accountID)
}

// ReconcileBalance overwrites the cached balance of the account with the sum
// of its transactions and reports how far the cache had drifted.
func (l *Ledger) ReconcileBalance(accountID uint) (r Reconciliation, err error) {
	err = l.store.Atomic(func(s *Store) error {
		account, err := Get[models.Account](s, accountID)
		if err != nil {
			return err
		}

		sum, err := s.SumTransactions(accountID)
		if err != nil {
			return err
		}

		r.Drift = account.Balance - sum
		account.Balance = sum
		r.Account = account

		return Upsert(s, &r.Account)
	})

	return
}

func adjustBalance(s *Store, accountID uint, delta int64) (models.Account, error) {
	account, err := Get[models.Account](s, accountID)
	if err != nil {
		return models.Account{}, err
	}

	account.Balance += delta
	err = Upsert(s, &account)
	return account, err
}

// SumTransactions returns the sum of amounts of all transactions of the account.
func (s *Store) SumTransactions(accountID uint) (int64, error) {
	var sum int64
	err := s.db.Model(&models.Transaction{}).
		Where(&models.Transaction{AccountID: accountID}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error

	return sum, wrap(err)
}
