package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/envelope-zero/ledger/pkg/controllers/v1"
	"github.com/envelope-zero/ledger/pkg/sequencer"
	"github.com/envelope-zero/ledger/test"
)

func (suite *TestSuiteStandard) TestGetSnapshot() {
	r := suite.request(http.MethodGet, "/v1/snapshot", nil, http.StatusOK)

	var response v1.SnapshotResponse
	test.DecodeResponse(suite.T(), r, &response)
	suite.Assert().Equal(uint64(1), response.Version)
	suite.Assert().Equal("2024-06", response.Data.Month.String())
}

func (suite *TestSuiteStandard) TestGetSnapshotAfter() {
	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = suite.sequencer.Submit(suite.T().Context(), sequencer.AddCategory{Name: "Rent"})
	}()

	r := suite.request(http.MethodGet, "/v1/snapshot?after=1", nil, http.StatusOK)

	var response v1.SnapshotResponse
	test.DecodeResponse(suite.T(), r, &response)
	suite.Assert().Equal(uint64(2), response.Version)
	suite.Require().Len(response.Data.Categories, 1)
	suite.Assert().Equal("Rent", response.Data.Categories[0].Name)
}

func (suite *TestSuiteStandard) TestGetSnapshotAfterInvalid() {
	suite.request(http.MethodGet, "/v1/snapshot?after=latest", nil, http.StatusBadRequest)
}
