package models_test

import (
	"testing"

	"github.com/araf0216/eas-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestMatchRuleBeforeCreate() {
	_ = suite.createTestMatchRule(models.MatchRule{
		Match:  "Meridian*",
		DealID: suite.createTestDeal(models.Deal{}).ID,
	})
}

func (suite *TestSuiteStandard) TestMatchRuleCreateUnknownDeal() {
	t := suite.T()

	err := models.DB.Create(&models.MatchRule{Match: "Meridian*", DealID: uuid.New()}).Error
	assert.ErrorIs(t, err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestMatchRuleBeforeUpdate() {
	matchRule := suite.createTestMatchRule(models.MatchRule{
		Match:  "Meridian*",
		DealID: suite.createTestDeal(models.Deal{}).ID,
	})

	tests := []struct {
		name   string
		dealID uuid.UUID
		err    error
	}{
		{
			"Update deal",
			suite.createTestDeal(models.Deal{}).ID,
			nil,
		},
		{
			"Update deal to non-existing",
			uuid.New(),
			models.ErrResourceNotFound,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Model(&matchRule).Select("DealID").Updates(models.MatchRule{DealID: tt.dealID}).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
