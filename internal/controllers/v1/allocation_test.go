package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/araf0216/eas-backend/internal/controllers/v1"
	"github.com/araf0216/eas-backend/internal/models"
	"github.com/araf0216/eas-backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) getTestAllocations(id string, expectedStatus ...int) v1.AllocationListResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusOK)
	}

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/invoices/%s/allocations", id), "")
	test.AssertHTTPStatus(suite.T(), &recorder, expectedStatus...)

	var response v1.AllocationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return response
}

func (suite *TestSuiteStandard) TestGetInvoiceAllocationsAUM() {
	t := suite.T()

	_ = suite.createTestFund(v1.FundEditable{Name: "Fund Alpha", AUM: decimal.NewFromInt(850_000_000)})
	_ = suite.createTestFund(v1.FundEditable{Name: "Fund Beta", AUM: decimal.NewFromInt(150_000_000)})

	created := suite.submitTestInvoice(v1.InvoiceEditable{Total: decimal.NewFromInt(1000)})
	response := suite.getTestAllocations(created.Data.ID.String())

	require.NotNil(t, response.Data)
	assert.Equal(t, v1.WeightingAUM, response.Data.Weighting)
	assert.Nil(t, response.Data.DealID)

	require.Len(t, response.Data.Rows, 2)

	alpha := response.Data.Rows[0]
	assert.Equal(t, "Fund Alpha", alpha.Name)
	assert.Equal(t, "$850.00M", alpha.BasisDisplay)
	assert.Equal(t, "85.000%", alpha.PercentageDisplay)
	assert.Equal(t, "$850.00", alpha.AmountDisplay)

	beta := response.Data.Rows[1]
	assert.Equal(t, "15.000%", beta.PercentageDisplay)
	assert.Equal(t, "$150.00", beta.AmountDisplay)

	assert.Equal(t, 2, response.Data.Summary.Count)
	assert.Equal(t, "$1,000.00", response.Data.Summary.TotalDisplay)
}

func (suite *TestSuiteStandard) TestGetInvoiceAllocationsDeal() {
	t := suite.T()

	// The nominal deal amount is deliberately off so the test proves the
	// committed fund amounts drive the weighting
	alpha := suite.createTestFund(v1.FundEditable{Name: "Fund Alpha", AUM: decimal.NewFromInt(850_000_000)}).Data[0].Data
	beta := suite.createTestFund(v1.FundEditable{Name: "Fund Beta", AUM: decimal.NewFromInt(150_000_000)}).Data[0].Data

	deal := suite.createTestDeal(v1.DealEditable{
		Amount: decimal.NewFromInt(2_000_000_000),
		Funds: []v1.DealFundEditable{
			{FundID: alpha.ID, FundAmount: decimal.NewFromInt(600_000_000)},
			{FundID: beta.ID, FundAmount: decimal.NewFromInt(400_000_000)},
		},
	}).Data[0].Data

	created := suite.submitTestInvoice(v1.InvoiceEditable{
		Total:        decimal.NewFromInt(1000),
		ActivityType: models.ActivityDealAllocation,
		DealID:       &deal.ID,
	})

	response := suite.getTestAllocations(created.Data.ID.String())

	require.NotNil(t, response.Data)
	assert.Equal(t, v1.WeightingDeal, response.Data.Weighting)
	require.NotNil(t, response.Data.DealID)
	assert.Equal(t, deal.ID, *response.Data.DealID)

	require.Len(t, response.Data.Rows, 2)
	assert.Equal(t, "60.000%", response.Data.Rows[0].PercentageDisplay)
	assert.Equal(t, "$600.00", response.Data.Rows[0].AmountDisplay)
	assert.Equal(t, "40.000%", response.Data.Rows[1].PercentageDisplay)
	assert.Equal(t, "$400.00", response.Data.Rows[1].AmountDisplay)
}

func (suite *TestSuiteStandard) TestGetInvoiceAllocationsNoFunds() {
	t := suite.T()

	created := suite.submitTestInvoice(v1.InvoiceEditable{})
	response := suite.getTestAllocations(created.Data.ID.String(), http.StatusBadRequest)

	require.NotNil(t, response.Error)
	assert.Equal(t, "there are no funds to allocate across", *response.Error)
}

func (suite *TestSuiteStandard) TestGetInvoiceAllocationsNotFound() {
	t := suite.T()

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/invoices/b3d54d79-c63a-4be0-bb0e-0e2d6ab7cfa0/allocations", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusNotFound)
}
