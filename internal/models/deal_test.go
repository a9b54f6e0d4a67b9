package models_test

import (
	"github.com/araf0216/eas-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestDealDefaultStatus() {
	t := suite.T()

	deal := suite.createTestDeal(models.Deal{})
	assert.Equal(t, models.DealStatusActive, deal.Status)
}

func (suite *TestSuiteStandard) TestDealStatusInvalid() {
	t := suite.T()

	err := models.DB.Create(&models.Deal{Name: "Project Neptune", Status: "Paused"}).Error
	assert.ErrorIs(t, err, models.ErrDealStatusInvalid)
}

func (suite *TestSuiteStandard) TestDealNameUnique() {
	t := suite.T()

	_ = suite.createTestDeal(models.Deal{Name: "Project Neptune"})

	err := models.DB.Create(&models.Deal{Name: "Project Neptune"}).Error
	assert.ErrorIs(t, err, models.ErrDealNameNotUnique)
}

func (suite *TestSuiteStandard) TestDealFundAmountInvalid() {
	t := suite.T()

	fund := suite.createTestFund(models.Fund{AUM: decimal.NewFromInt(1)})

	err := models.DB.Create(&models.Deal{
		Name: "Project Neptune",
		Funds: []models.DealFund{
			{FundID: fund.ID, FundAmount: decimal.Zero},
		},
	}).Error
	assert.ErrorIs(t, err, models.ErrDealFundAmountInvalid)
}

// TestDealOrderedFunds verifies that the weight entries keep the order they
// were submitted in, not the order the database returns them in.
func (suite *TestSuiteStandard) TestDealOrderedFunds() {
	t := suite.T()

	zulu := suite.createTestFund(models.Fund{Name: "Zulu Fund", AUM: decimal.NewFromInt(1)})
	alpha := suite.createTestFund(models.Fund{Name: "Alpha Fund", AUM: decimal.NewFromInt(1)})

	deal := suite.createTestDeal(models.Deal{
		Funds: []models.DealFund{
			{FundID: zulu.ID, FundAmount: decimal.NewFromInt(600), Position: 0},
			{FundID: alpha.ID, FundAmount: decimal.NewFromInt(400), Position: 1},
		},
	})

	var reloaded models.Deal
	require.NoError(t, models.OrderedFunds(models.DB).First(&reloaded, deal.ID).Error)
	require.Len(t, reloaded.Funds, 2)

	assert.Equal(t, zulu.ID, reloaded.Funds[0].FundID)
	assert.Equal(t, alpha.ID, reloaded.Funds[1].FundID)
}

func (suite *TestSuiteStandard) TestDealDeleteCascades() {
	t := suite.T()

	fund := suite.createTestFund(models.Fund{AUM: decimal.NewFromInt(1)})
	deal := suite.createTestDeal(models.Deal{
		Funds: []models.DealFund{
			{FundID: fund.ID, FundAmount: decimal.NewFromInt(1)},
		},
	})

	require.NoError(t, models.DB.Delete(&deal).Error)

	var count int64
	require.NoError(t, models.DB.Model(&models.DealFund{}).Where("deal_id = ?", deal.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
