package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/araf0216/eas-backend/internal/controllers/v1"
	"github.com/araf0216/eas-backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCreateFund() {
	t := suite.T()

	response := suite.createTestFund(v1.FundEditable{
		Name:    "Fund Alpha",
		Manager: "J. Doe",
		AUM:     decimal.NewFromInt(850_000_000),
	})

	require.Len(t, response.Data, 1)
	require.NotNil(t, response.Data[0].Data)

	fund := response.Data[0].Data
	assert.Equal(t, "Fund Alpha", fund.Name)
	assert.Equal(t, "$850.00M", fund.AUMDisplay)
	assert.Contains(t, fund.Links.Self, fmt.Sprintf("/v1/funds/%s", fund.ID))
}

func (suite *TestSuiteStandard) TestCreateFundDuplicateName() {
	t := suite.T()

	_ = suite.createTestFund(v1.FundEditable{Name: "Fund Alpha"})
	response := suite.createTestFund(v1.FundEditable{Name: "Fund Alpha"}, http.StatusBadRequest)

	require.Len(t, response.Data, 1)
	require.NotNil(t, response.Data[0].Error)
	assert.Equal(t, "the fund name must be unique", *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestCreateFundNegativeAUM() {
	response := suite.createTestFund(v1.FundEditable{AUM: decimal.NewFromInt(-1)}, http.StatusBadRequest)

	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestGetFunds() {
	t := suite.T()

	_ = suite.createTestFund(v1.FundEditable{Name: "Fund Alpha", Manager: "J. Doe"})
	_ = suite.createTestFund(v1.FundEditable{Name: "Fund Beta", Manager: "K. Smith"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All", "", 2},
		{"By name", "?name=Alpha", 1},
		{"By manager", "?manager=Smith", 1},
		{"Search", "?search=beta", 1},
		{"No match", "?name=Gamma", 0},
		{"Limit", "?limit=1", 1},
		{"Offset", "?offset=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/funds%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.FundListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/funds?limit=1", "")
	var response v1.FundListResponse
	test.DecodeResponse(t, &recorder, &response)

	require.NotNil(t, response.Pagination)
	assert.Equal(t, int64(2), response.Pagination.Total)
}

func (suite *TestSuiteStandard) TestGetFund() {
	t := suite.T()

	created := suite.createTestFund(v1.FundEditable{Name: "Fund Alpha"})
	id := created.Data[0].Data.ID

	recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/funds/%s", id), "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response v1.FundResponse
	test.DecodeResponse(t, &recorder, &response)
	require.NotNil(t, response.Data)
	assert.Equal(t, "Fund Alpha", response.Data.Name)
}

func (suite *TestSuiteStandard) TestGetFundNotFound() {
	t := suite.T()

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/funds/b3d54d79-c63a-4be0-bb0e-0e2d6ab7cfa0", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetFundInvalidUUID() {
	t := suite.T()

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/funds/not-a-uuid", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateFund() {
	t := suite.T()

	created := suite.createTestFund(v1.FundEditable{Name: "Fund Alpha", AUM: decimal.NewFromInt(100)})
	id := created.Data[0].Data.ID

	recorder := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/funds/%s", id), map[string]any{
		"aum": "250",
	})
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response v1.FundResponse
	test.DecodeResponse(t, &recorder, &response)
	require.NotNil(t, response.Data)

	// Only the AUM changed
	assert.Equal(t, "Fund Alpha", response.Data.Name)
	assert.True(t, response.Data.AUM.Equal(decimal.NewFromInt(250)), "AUM is %s", response.Data.AUM)
}

func (suite *TestSuiteStandard) TestDeleteFund() {
	t := suite.T()

	created := suite.createTestFund(v1.FundEditable{})
	id := created.Data[0].Data.ID

	recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/funds/%s", id), "")
	test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)

	recorder = test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/funds/%s", id), "")
	test.AssertHTTPStatus(t, &recorder, http.StatusNotFound)
}
