package ledger_test

import (
	"testing"
	"time"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestAssignFromPool() {
	account := suite.createTestAccount("Checking", 0)
	category := suite.createTestCategory("Groceries")
	suite.fundPool(account, 10000)

	pool := suite.allocation(models.PoolCategoryID, june)
	suite.Require().Equal(int64(10000), pool.Available)

	result, err := suite.ledger.Assign(ledger.CategoryOf(category.ID), june, 5000)
	suite.Require().Nil(err)

	suite.Assert().Equal(int64(5000), result.Target.Assigned)
	suite.Assert().Equal(int64(0), result.Target.Activity)
	suite.Assert().Equal(int64(5000), result.Target.Available)

	suite.Require().NotNil(result.Source)
	suite.Assert().Equal(pool.Activity-5000, result.Source.Activity)
	suite.Assert().Equal(int64(5000), result.Source.Available)

	// The stored rows match the result
	suite.Assert().Equal(result.Target.Available, suite.allocation(category.ID, june).Available)
	suite.Assert().Equal(result.Source.Available, suite.allocation(models.PoolCategoryID, june).Available)

	suite.assertInvariants()
}

func (suite *TestSuiteStandard) TestReassignExisting() {
	account := suite.createTestAccount("Checking", 0)
	category := suite.createTestCategory("Rent")
	suite.fundPool(account, 10000)

	_, err := suite.ledger.Assign(ledger.CategoryOf(category.ID), june, 5000)
	suite.Require().Nil(err)

	before := suite.allocation(category.ID, june)
	poolBefore := suite.allocation(models.PoolCategoryID, june)

	result, err := suite.ledger.Assign(ledger.CategoryOf(category.ID), june, 3000)
	suite.Require().Nil(err)

	suite.Assert().Equal(int64(3000), result.Target.Assigned)
	suite.Assert().Equal(before.Available-2000, result.Target.Available)
	suite.Assert().Equal(poolBefore.Available+2000, result.Source.Available)
	suite.Assert().Equal(poolBefore.Activity+2000, result.Source.Activity)
	suite.Assert().Equal(before.ID, result.Target.ID, "Reassignment must update the existing row")

	suite.assertInvariants()
}

// TestReassignConservesMoney verifies that the sum of available amounts does
// not change when money is moved between categories.
func (suite *TestSuiteStandard) TestReassignConservesMoney() {
	account := suite.createTestAccount("Checking", 0)
	a := suite.createTestCategory("A")
	b := suite.createTestCategory("B")
	suite.fundPool(account, 20000)

	total := func() int64 {
		var sum int64
		for _, id := range []uint{models.PoolCategoryID, a.ID, b.ID} {
			sum += suite.allocation(id, june).Available
		}
		return sum
	}

	start := total()

	_, err := suite.ledger.Assign(ledger.CategoryOf(a.ID), june, 7000)
	suite.Require().Nil(err)
	suite.Assert().Equal(start, total())

	source := ledger.CategoryOf(a.ID)
	result, err := suite.ledger.Allocate(ledger.CategoryOf(b.ID), june, 2500, &source)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(-2500), result.Source.Activity)
	suite.Assert().Equal(int64(4500), result.Source.Available)
	suite.Assert().Equal(start, total())

	suite.assertInvariants()
}

func (suite *TestSuiteStandard) TestAllocateActivity() {
	category := suite.createTestCategory("Savings")

	result, err := suite.ledger.Allocate(ledger.CategoryOf(category.ID), june, -1234, nil)
	suite.Require().Nil(err)
	suite.Assert().Nil(result.Source)
	suite.Assert().Equal(int64(0), result.Target.Assigned)
	suite.Assert().Equal(int64(-1234), result.Target.Activity)
	suite.Assert().Equal(int64(-1234), result.Target.Available)

	result, err = suite.ledger.Allocate(ledger.CategoryOf(category.ID), june, 234, nil)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(-1000), result.Target.Activity)
	suite.Assert().Equal(int64(-1000), result.Target.Available)

	suite.assertInvariants()
}

func (suite *TestSuiteStandard) TestAllocateMonthsAreIndependent() {
	category := suite.createTestCategory("Holidays")

	_, err := suite.ledger.Assign(ledger.CategoryOf(category.ID), june, 4000)
	suite.Require().Nil(err)

	july := june.AddDate(0, 1)
	result, err := suite.ledger.Assign(ledger.CategoryOf(category.ID), july, 1000)
	suite.Require().Nil(err)

	// Nothing carries over from June
	suite.Assert().Equal(int64(1000), result.Target.Available)
	suite.Assert().Equal(int64(4000), suite.allocation(category.ID, june).Available)
}

func (suite *TestSuiteStandard) TestAllocateErrors() {
	category := suite.createTestCategory("Fuel")
	self := ledger.CategoryOf(category.ID)
	missing := ledger.CategoryOf(999)

	tests := []struct {
		name     string
		category ledger.CategoryRef
		month    types.Month
		source   *ledger.CategoryRef
		err      error
	}{
		{"No category", ledger.CategoryRef{}, june, nil, ledger.ErrValidation},
		{"No month", self, types.Month{}, nil, ledger.ErrValidation},
		{"Self funding", self, june, &self, ledger.ErrValidation},
		{"Missing category", missing, june, nil, ledger.ErrNotFound},
		{"Missing source", self, june, &missing, ledger.ErrNotFound},
		{"Missing category with source", missing, june, &self, ledger.ErrNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := suite.ledger.Allocate(tt.category, tt.month, 1000, tt.source)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	// No failed allocation left a row behind
	allocations, err := ledger.Find(suite.ledger.Store(), models.BudgetAllocation{}, "id")
	suite.Require().Nil(err)
	suite.Assert().Len(allocations, 0)
}

func (suite *TestSuiteStandard) TestAllocateDBClosed() {
	category := suite.createTestCategory("Fuel")
	suite.CloseDB()

	_, err := suite.ledger.Assign(ledger.CategoryOf(category.ID), types.NewMonth(2024, time.May), 1000)
	suite.Assert().ErrorIs(err, ledger.ErrStore)
}

func (suite *TestSuiteStandard) TestCategoryRef() {
	suite.Assert().True(ledger.Pool.IsPool())
	suite.Assert().Equal(models.PoolCategoryID, ledger.Pool.ID())
	suite.Assert().Equal("pool", ledger.Pool.String())

	ref := ledger.CategoryOf(7)
	suite.Assert().False(ref.IsPool())
	suite.Assert().Equal("category 7", ref.String())
}
