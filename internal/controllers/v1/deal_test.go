package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/araf0216/eas-backend/internal/controllers/v1"
	"github.com/araf0216/eas-backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCreateDeal() {
	t := suite.T()

	alpha := suite.createTestFund(v1.FundEditable{Name: "Fund Alpha"}).Data[0].Data
	beta := suite.createTestFund(v1.FundEditable{Name: "Fund Beta"}).Data[0].Data

	response := suite.createTestDeal(v1.DealEditable{
		Name:   "Project Neptune",
		Amount: decimal.NewFromInt(1_000_000_000),
		Funds: []v1.DealFundEditable{
			{FundID: alpha.ID, FundAmount: decimal.NewFromInt(600_000_000)},
			{FundID: beta.ID, FundAmount: decimal.NewFromInt(400_000_000)},
		},
	})

	require.Len(t, response.Data, 1)
	require.NotNil(t, response.Data[0].Data)

	deal := response.Data[0].Data
	assert.Equal(t, "Project Neptune", deal.Name)
	assert.Equal(t, "Active", string(deal.Status))
	assert.Equal(t, "$1.000B", deal.AmountDisplay)
	assert.True(t, deal.FundTotal.Equal(decimal.NewFromInt(1_000_000_000)))

	require.Len(t, deal.Funds, 2)
	assert.Equal(t, alpha.ID, deal.Funds[0].FundID)
	assert.Equal(t, beta.ID, deal.Funds[1].FundID)
}

func (suite *TestSuiteStandard) TestCreateDealUnknownFund() {
	t := suite.T()

	response := suite.createTestDeal(v1.DealEditable{
		Funds: []v1.DealFundEditable{
			{FundID: uuid.New(), FundAmount: decimal.NewFromInt(1)},
		},
	}, http.StatusBadRequest)

	require.Len(t, response.Data, 1)
	require.NotNil(t, response.Data[0].Error)
	assert.Equal(t, "a referenced resource does not exist", *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestGetDealOrderedFunds() {
	t := suite.T()

	zulu := suite.createTestFund(v1.FundEditable{Name: "Zulu Fund"}).Data[0].Data
	alpha := suite.createTestFund(v1.FundEditable{Name: "Alpha Fund"}).Data[0].Data

	created := suite.createTestDeal(v1.DealEditable{
		Funds: []v1.DealFundEditable{
			{FundID: zulu.ID, FundAmount: decimal.NewFromInt(600)},
			{FundID: alpha.ID, FundAmount: decimal.NewFromInt(400)},
		},
	})

	recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/deals/%s", created.Data[0].Data.ID), "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response v1.DealResponse
	test.DecodeResponse(t, &recorder, &response)
	require.NotNil(t, response.Data)

	// The submitted order survives, it is not sorted by fund name
	require.Len(t, response.Data.Funds, 2)
	assert.Equal(t, zulu.ID, response.Data.Funds[0].FundID)
	assert.Equal(t, alpha.ID, response.Data.Funds[1].FundID)
}

func (suite *TestSuiteStandard) TestUpdateDealReplacesFunds() {
	t := suite.T()

	alpha := suite.createTestFund(v1.FundEditable{Name: "Fund Alpha"}).Data[0].Data
	beta := suite.createTestFund(v1.FundEditable{Name: "Fund Beta"}).Data[0].Data

	created := suite.createTestDeal(v1.DealEditable{
		Funds: []v1.DealFundEditable{
			{FundID: alpha.ID, FundAmount: decimal.NewFromInt(600)},
		},
	})
	id := created.Data[0].Data.ID

	recorder := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/deals/%s", id), map[string]any{
		"funds": []map[string]any{
			{"fundId": beta.ID, "fundAmount": "400"},
		},
	})
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response v1.DealResponse
	test.DecodeResponse(t, &recorder, &response)
	require.NotNil(t, response.Data)

	require.Len(t, response.Data.Funds, 1)
	assert.Equal(t, beta.ID, response.Data.Funds[0].FundID)
	assert.True(t, response.Data.FundTotal.Equal(decimal.NewFromInt(400)))
}

func (suite *TestSuiteStandard) TestUpdateDealScalarFields() {
	t := suite.T()

	created := suite.createTestDeal(v1.DealEditable{Name: "Project Neptune"})
	id := created.Data[0].Data.ID

	recorder := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/deals/%s", id), map[string]any{
		"status": "Inactive",
	})
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response v1.DealResponse
	test.DecodeResponse(t, &recorder, &response)
	require.NotNil(t, response.Data)

	assert.Equal(t, "Project Neptune", response.Data.Name)
	assert.Equal(t, "Inactive", string(response.Data.Status))
}

func (suite *TestSuiteStandard) TestGetDealsFilter() {
	t := suite.T()

	_ = suite.createTestDeal(v1.DealEditable{Name: "Project Neptune"})
	_ = suite.createTestDeal(v1.DealEditable{Name: "Project Mars", Status: "Inactive"})

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/deals?status=Active", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response v1.DealListResponse
	test.DecodeResponse(t, &recorder, &response)
	require.Len(t, response.Data, 1)
	assert.Equal(t, "Project Neptune", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestDeleteDeal() {
	t := suite.T()

	created := suite.createTestDeal(v1.DealEditable{})
	id := created.Data[0].Data.ID

	recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/deals/%s", id), "")
	test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)

	recorder = test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/deals/%s", id), "")
	test.AssertHTTPStatus(t, &recorder, http.StatusNotFound)
}
