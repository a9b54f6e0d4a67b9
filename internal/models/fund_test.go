package models_test

import (
	"github.com/araf0216/eas-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestFundTrimWhitespace() {
	t := suite.T()

	fund := suite.createTestFund(models.Fund{
		Name:    " Fund Alpha ",
		Manager: " J. Doe\t",
	})

	assert.Equal(t, "Fund Alpha", fund.Name)
	assert.Equal(t, "J. Doe", fund.Manager)
}

func (suite *TestSuiteStandard) TestFundNameUnique() {
	t := suite.T()

	_ = suite.createTestFund(models.Fund{Name: "Fund Alpha"})

	err := models.DB.Create(&models.Fund{Name: "Fund Alpha"}).Error
	assert.ErrorIs(t, err, models.ErrFundNameNotUnique)
}

func (suite *TestSuiteStandard) TestFundAUMNegative() {
	t := suite.T()

	err := models.DB.Create(&models.Fund{Name: "Fund Alpha", AUM: decimal.NewFromInt(-1)}).Error
	assert.ErrorIs(t, err, models.ErrFundAUMNegative)
}

func (suite *TestSuiteStandard) TestFundNotFound() {
	t := suite.T()

	err := models.DB.First(&models.Fund{}, "id = ?", "b3d54d79-c63a-4be0-bb0e-0e2d6ab7cfa0").Error
	require.ErrorIs(t, err, models.ErrResourceNotFound)
	assert.Contains(t, err.Error(), "fund")
}
