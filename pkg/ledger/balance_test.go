package ledger_test

import (
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
)

func (suite *TestSuiteStandard) TestRecomputeBalance() {
	account := suite.createTestAccount("Checking", 10000)
	category := suite.createTestCategory("Groceries")
	ref := ledger.CategoryOf(category.ID)

	for _, amount := range []int64{-2000, -350, 1200} {
		_, err := suite.ledger.Post(ledger.Entry{AccountID: account.ID, Category: &ref, Amount: amount})
		suite.Require().Nil(err)
	}

	sum, err := suite.ledger.RecomputeBalance(account.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(8850), sum)
	suite.Assert().Equal(sum, suite.account(account.ID).Balance)
}

func (suite *TestSuiteStandard) TestRecomputeBalanceNoTransactions() {
	account := suite.createTestAccount("Checking", 0)

	sum, err := suite.ledger.RecomputeBalance(account.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(0), sum)

	_, err = suite.ledger.RecomputeBalance(account.ID + 1)
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)
}

func (suite *TestSuiteStandard) TestReconcileBalance() {
	account := suite.createTestAccount("Checking", 10000)

	// Make the cache drift
	drifted, err := suite.ledger.AdjustBalance(account.ID, 250)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(10250), drifted.Balance)

	r, err := suite.ledger.ReconcileBalance(account.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(250), r.Drift)
	suite.Assert().Equal(int64(10000), r.Account.Balance)
	suite.Assert().Equal(int64(10000), suite.account(account.ID).Balance)

	// Reconciling a consistent account changes nothing
	r, err = suite.ledger.ReconcileBalance(account.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(0), r.Drift)

	suite.assertInvariants()
}

func (suite *TestSuiteStandard) TestBalanceErrors() {
	_, err := suite.ledger.AdjustBalance(17, 100)
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = suite.ledger.ReconcileBalance(17)
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)

	suite.CloseDB()
	_, err = suite.ledger.RecomputeBalance(1)
	suite.Assert().ErrorIs(err, ledger.ErrStore)
}
