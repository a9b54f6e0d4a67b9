package v1

import (
	"fmt"

	"github.com/araf0216/eas-backend/internal/currency"
	"github.com/araf0216/eas-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FundEditable represents all user configurable parameters
type FundEditable struct {
	Name    string          `json:"name" example:"Fund Alpha" default:""` // Name of the fund
	Manager string          `json:"manager" example:"J. Doe" default:""`  // Person managing the fund
	AUM     decimal.Decimal `json:"aum" example:"850000000" default:"0"`  // Assets under management
}

func (editable FundEditable) model() models.Fund {
	return models.Fund{
		Name:    editable.Name,
		Manager: editable.Manager,
		AUM:     editable.AUM,
	}
}

type FundLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/funds/3b1ea324-d438-4419-882a-2fc91d71772f"` // The fund itself
}

type Fund struct {
	models.DefaultModel
	FundEditable
	Links FundLinks `json:"links"`

	// These fields are computed
	AUMDisplay string `json:"aumDisplay" example:"$850.00M"` // The AUM, formatted for display
}

func newFund(c *gin.Context, model models.Fund) Fund {
	url := c.GetString(string(models.DBContextURL))

	return Fund{
		DefaultModel: model.DefaultModel,
		FundEditable: FundEditable{
			Name:    model.Name,
			Manager: model.Manager,
			AUM:     model.AUM,
		},
		Links: FundLinks{
			Self: fmt.Sprintf("%s/v1/funds/%s", url, model.ID),
		},
		AUMDisplay: currency.FormatAbbreviated(model.AUM),
	}
}

type FundListResponse struct {
	Data       []Fund      `json:"data"`                                                          // List of funds
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type FundCreateResponse struct {
	Data  []FundResponse `json:"data"`                                                          // List of the created funds or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (f *FundCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	f.Data = append(f.Data, FundResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type FundResponse struct {
	Data  *Fund   `json:"data"`                                                          // Data for the fund
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type FundQueryFilter struct {
	Name    string `form:"name" filterField:"false"`    // By name
	Manager string `form:"manager" filterField:"false"` // By manager
	Search  string `form:"search" filterField:"false"`  // By string in name or manager
	Offset  uint   `form:"offset" filterField:"false"`  // The offset of the first fund returned. Defaults to 0.
	Limit   int    `form:"limit" filterField:"false"`   // Maximum number of funds to return. Defaults to 50.
}

func (f FundQueryFilter) model() (models.Fund, error) {
	return models.Fund{}, nil
}
