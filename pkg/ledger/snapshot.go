package ledger

import (
	"time"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/models"
	"golang.org/x/exp/slices"
)

// AccountView is an account with its formatted balance.
type AccountView struct {
	models.Account
	Display string `json:"display" example:"-20.00"`
}

// TransactionView is a transaction with the names of its references resolved.
type TransactionView struct {
	ID        uint      `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Account   string    `json:"account"`
	Payee     string    `json:"payee"`
	Category  string    `json:"category"`
	Memo      string    `json:"memo"`
	Amount    int64     `json:"amount"`
	Display   string    `json:"display"`
	Cleared   bool      `json:"cleared"`
}

// BudgetRow holds the allocation figures of one category for the viewed month.
// Categories without an allocation in the month have all figures at zero.
type BudgetRow struct {
	CategoryID uint   `json:"categoryId"`
	Name       string `json:"name"`
	Assigned   int64  `json:"assigned"`
	Activity   int64  `json:"activity"`
	Available  int64  `json:"available"`
}

// Snapshot is the state of the ledger as shown to the user.
type Snapshot struct {
	Accounts        []AccountView     `json:"accounts"`
	Categories      []models.Category `json:"categories"` // All categories except the pool
	Transactions    []TransactionView `json:"transactions"`
	SelectedAccount uint              `json:"selectedAccount"` // 0 for all accounts
	Month           types.Month       `json:"month"`
	Inflow          int64             `json:"inflow"` // Available amount of the pool for the month
	InflowDisplay   string            `json:"inflowDisplay"`
	Budget          []BudgetRow       `json:"budget"`
}

// Snapshot reads the state of the ledger for the month. Transactions are
// limited to the account with the ID unless it is 0.
func (l *Ledger) Snapshot(month types.Month, accountID uint) (Snapshot, error) {
	snapshot := Snapshot{
		SelectedAccount: accountID,
		Month:           month,
	}

	accounts, err := Find(l.store, models.Account{}, "id")
	if err != nil {
		return Snapshot{}, err
	}

	snapshot.Accounts = make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		snapshot.Accounts = append(snapshot.Accounts, AccountView{Account: a, Display: l.FormatCurrency(a.Balance)})
	}

	categories, err := Find(l.store, models.Category{}, "display_order, id")
	if err != nil {
		return Snapshot{}, err
	}

	snapshot.Categories = slices.DeleteFunc(categories, func(c models.Category) bool {
		return c.IsPool()
	})

	transactions, err := Find(l.store, models.Transaction{AccountID: accountID}, "timestamp DESC, id DESC", "Account", "Payee", "Category")
	if err != nil {
		return Snapshot{}, err
	}

	snapshot.Transactions = make([]TransactionView, 0, len(transactions))
	for _, t := range transactions {
		snapshot.Transactions = append(snapshot.Transactions, l.transactionView(t))
	}

	allocations, err := Find(l.store, models.BudgetAllocation{Month: uint8(month.Number()), Year: month.Year()}, "category_id")
	if err != nil {
		return Snapshot{}, err
	}

	snapshot.Budget = make([]BudgetRow, 0, len(snapshot.Categories))
	for _, c := range snapshot.Categories {
		row := BudgetRow{CategoryID: c.ID, Name: c.Name}

		if i := slices.IndexFunc(allocations, func(a models.BudgetAllocation) bool { return a.CategoryID == c.ID }); i >= 0 {
			row.Assigned = allocations[i].Assigned
			row.Activity = allocations[i].Activity
			row.Available = allocations[i].Available
		}

		snapshot.Budget = append(snapshot.Budget, row)
	}

	if i := slices.IndexFunc(allocations, func(a models.BudgetAllocation) bool { return a.CategoryID == models.PoolCategoryID }); i >= 0 {
		snapshot.Inflow = allocations[i].Available
	}
	snapshot.InflowDisplay = l.FormatCurrency(snapshot.Inflow)

	return snapshot, nil
}

func (l *Ledger) transactionView(t models.Transaction) TransactionView {
	view := TransactionView{
		ID:        t.ID,
		Timestamp: t.Timestamp,
		Account:   t.Account.Name,
		Memo:      t.Memo,
		Amount:    t.Amount,
		Display:   l.FormatCurrency(t.Amount),
		Cleared:   t.Cleared,
	}

	if t.Payee != nil {
		view.Payee = t.Payee.Name
	}

	if t.Category != nil {
		view.Category = t.Category.Name
	}

	return view
}
