package ledger_test

import (
	"time"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
)

func (suite *TestSuiteStandard) TestPostByName() {
	account := suite.createTestAccount("Checking", 0)
	category := suite.createTestCategory("Groceries")

	p, err := suite.ledger.PostByName("Checking", "Store", "Groceries", "", -2000)
	suite.Require().Nil(err)

	suite.Require().NotNil(p.Allocation)
	suite.Assert().Equal(category.ID, p.Allocation.CategoryID)
	suite.Assert().Equal(int64(0), p.Allocation.Assigned)
	suite.Assert().Equal(int64(-2000), p.Allocation.Activity)
	suite.Assert().Equal(int64(-2000), p.Allocation.Available)
	suite.Assert().Equal(uint8(6), p.Allocation.Month)
	suite.Assert().Equal(2024, p.Allocation.Year)

	suite.Assert().Equal(int64(-2000), p.Account.Balance)
	suite.Assert().Equal(int64(-2000), suite.account(account.ID).Balance)

	suite.Assert().True(suite.now.Equal(p.Transaction.Timestamp))
	suite.Require().NotNil(p.Transaction.PayeeID)
	payee, err := ledger.Get[models.Payee](suite.ledger.Store(), *p.Transaction.PayeeID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Store", payee.Name)

	suite.assertInvariants()
}

func (suite *TestSuiteStandard) TestPostByNameReusesPayee() {
	suite.createTestAccount("Checking", 0)
	suite.createTestCategory("Groceries")

	first, err := suite.ledger.PostByName("Checking", "Store", "Groceries", "", -2000)
	suite.Require().Nil(err)

	second, err := suite.ledger.PostByName(" Checking ", " Store", "Groceries ", "", -500)
	suite.Require().Nil(err)

	suite.Assert().Equal(*first.Transaction.PayeeID, *second.Transaction.PayeeID)

	payees, err := ledger.Find(suite.ledger.Store(), models.Payee{}, "id")
	suite.Require().Nil(err)
	suite.Assert().Len(payees, 1)
}

func (suite *TestSuiteStandard) TestPostByNameNoPayee() {
	suite.createTestAccount("Checking", 0)
	suite.createTestCategory("Groceries")

	p, err := suite.ledger.PostByName("Checking", "  ", "Groceries", "cash", -100)
	suite.Require().Nil(err)
	suite.Assert().Nil(p.Transaction.PayeeID)
}

func (suite *TestSuiteStandard) TestPostByNameErrors() {
	suite.createTestAccount("Checking", 0)
	suite.createTestCategory("Groceries")

	tests := []struct {
		name     string
		account  string
		category string
		err      error
	}{
		{"Empty account", "", "Groceries", ledger.ErrValidation},
		{"Empty category", "Checking", " ", ledger.ErrValidation},
		{"Unknown account", "Savings", "Groceries", ledger.ErrNotFound},
		{"Unknown category", "Checking", "Rent", ledger.ErrNotFound},
	}

	for _, tt := range tests {
		_, err := suite.ledger.PostByName(tt.account, "New Payee", tt.category, "", -100)
		suite.Assert().ErrorIs(err, tt.err, tt.name)
	}

	// No payee was created by the failed postings
	payees, err := ledger.Find(suite.ledger.Store(), models.Payee{}, "id")
	suite.Require().Nil(err)
	suite.Assert().Len(payees, 0)
}

// TestPostIsNotIdempotent verifies that posting the same entry twice
// applies it twice.
func (suite *TestSuiteStandard) TestPostIsNotIdempotent() {
	account := suite.createTestAccount("Checking", 0)
	category := suite.createTestCategory("Dining")
	ref := ledger.CategoryOf(category.ID)

	entry := ledger.Entry{AccountID: account.ID, Category: &ref, Amount: -1500}
	_, err := suite.ledger.Post(entry)
	suite.Require().Nil(err)
	p, err := suite.ledger.Post(entry)
	suite.Require().Nil(err)

	suite.Assert().Equal(int64(-3000), p.Account.Balance)
	suite.Assert().Equal(int64(-3000), p.Allocation.Activity)

	suite.assertInvariants()
}

func (suite *TestSuiteStandard) TestPostWithoutCategory() {
	account := suite.createTestAccount("Checking", 0)

	p, err := suite.ledger.Post(ledger.Entry{AccountID: account.ID, Amount: 999, Memo: "  Interest "})
	suite.Require().Nil(err)
	suite.Assert().Nil(p.Allocation)
	suite.Assert().Nil(p.Transaction.CategoryID)
	suite.Assert().Equal("Interest", p.Transaction.Memo)
	suite.Assert().Equal(int64(999), p.Account.Balance)

	allocations, err := ledger.Find(suite.ledger.Store(), models.BudgetAllocation{}, "id")
	suite.Require().Nil(err)
	suite.Assert().Len(allocations, 0)
}

func (suite *TestSuiteStandard) TestPostUsesCurrentMonth() {
	account := suite.createTestAccount("Checking", 0)
	category := suite.createTestCategory("Gifts")
	ref := ledger.CategoryOf(category.ID)

	// Late evening of June 30th in Berlin is already July in UTC
	berlin, err := time.LoadLocation("Europe/Berlin")
	suite.Require().Nil(err)
	suite.now = time.Date(2024, time.July, 1, 1, 30, 0, 0, berlin)

	p, err := suite.ledger.Post(ledger.Entry{AccountID: account.ID, Category: &ref, Amount: -100})
	suite.Require().Nil(err)

	suite.Assert().Equal(uint8(6), p.Allocation.Month)
	suite.Assert().Equal(uint8(6), p.Transaction.Month)
	suite.Assert().True(p.Transaction.Period().Equal(types.NewMonth(2024, time.June)))
}

func (suite *TestSuiteStandard) TestPostErrors() {
	account := suite.createTestAccount("Checking", 0)
	missingPayee := uint(42)
	missingCategory := ledger.CategoryOf(42)

	tests := []struct {
		name  string
		entry ledger.Entry
		err   error
	}{
		{"No account", ledger.Entry{Amount: 100}, ledger.ErrValidation},
		{"Unknown account", ledger.Entry{AccountID: 42, Amount: 100}, ledger.ErrNotFound},
		{"Unknown payee", ledger.Entry{AccountID: account.ID, PayeeID: &missingPayee, Amount: 100}, ledger.ErrNotFound},
		{"Unknown category", ledger.Entry{AccountID: account.ID, Category: &missingCategory, Amount: 100}, ledger.ErrNotFound},
		{"Empty category", ledger.Entry{AccountID: account.ID, Category: &ledger.CategoryRef{}, Amount: 100}, ledger.ErrValidation},
	}

	for _, tt := range tests {
		_, err := suite.ledger.Post(tt.entry)
		suite.Assert().ErrorIs(err, tt.err, tt.name)
	}

	suite.Assert().Equal(int64(0), suite.account(account.ID).Balance)
	suite.assertInvariants()
}

func (suite *TestSuiteStandard) TestRemove() {
	account := suite.createTestAccount("Checking", 0)
	category := suite.createTestCategory("Groceries")

	p, err := suite.ledger.PostByName("Checking", "Store", "Groceries", "", -2000)
	suite.Require().Nil(err)

	// Remove in a later month still reverses the activity in the month of the transaction
	suite.now = suite.now.AddDate(0, 2, 0)
	removed, err := suite.ledger.Remove(p.Transaction.ID)
	suite.Require().Nil(err)

	suite.Assert().Equal(p.Transaction.ID, removed.Transaction.ID)
	suite.Assert().Equal(int64(0), removed.Account.Balance)
	suite.Require().NotNil(removed.Allocation)
	suite.Assert().Equal(uint8(6), removed.Allocation.Month)
	suite.Assert().Equal(int64(0), removed.Allocation.Activity)
	suite.Assert().Equal(int64(0), suite.allocation(category.ID, june).Available)
	suite.Assert().Equal(int64(0), suite.account(account.ID).Balance)

	_, err = ledger.Get[models.Transaction](suite.ledger.Store(), p.Transaction.ID)
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)

	_, err = suite.ledger.Remove(p.Transaction.ID)
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)

	suite.assertInvariants()
}

func (suite *TestSuiteStandard) TestAddAccount() {
	account, err := suite.ledger.AddAccount("  Wallet ", 5000, true)
	suite.Require().Nil(err)
	suite.Assert().Equal("Wallet", account.Name)
	suite.Assert().True(account.IsTrackingAccount)
	suite.Assert().Equal(int64(5000), account.Balance)

	transactions, err := ledger.Find(suite.ledger.Store(), models.Transaction{AccountID: account.ID}, "id")
	suite.Require().Nil(err)
	suite.Require().Len(transactions, 1)
	suite.Assert().Equal(ledger.StartingBalanceMemo, transactions[0].Memo)
	suite.Assert().True(transactions[0].Cleared)
	suite.Assert().Nil(transactions[0].CategoryID)

	empty, err := suite.ledger.AddAccount("Empty", 0, false)
	suite.Require().Nil(err)
	transactions, err = ledger.Find(suite.ledger.Store(), models.Transaction{AccountID: empty.ID}, "id")
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 0)

	suite.assertInvariants()
}

func (suite *TestSuiteStandard) TestAddAccountErrors() {
	suite.createTestAccount("Checking", 100)

	_, err := suite.ledger.AddAccount(" ", 0, false)
	suite.Assert().ErrorIs(err, ledger.ErrValidation)

	_, err = suite.ledger.AddAccount("Checking", 100, false)
	suite.Assert().ErrorIs(err, ledger.ErrStore)
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)

	// The failed account did not leave a starting balance behind
	var count int64
	suite.Require().Nil(suite.db.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestAddCategory() {
	first := suite.createTestCategory("First")
	second := suite.createTestCategory("Second")

	suite.Assert().Equal(first.Order+1, second.Order)
	suite.Assert().Greater(first.Order, uint(0), "Categories are sorted after the pool")

	_, err := suite.ledger.AddCategory("")
	suite.Assert().ErrorIs(err, ledger.ErrValidation)

	_, err = suite.ledger.AddCategory("First")
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}
