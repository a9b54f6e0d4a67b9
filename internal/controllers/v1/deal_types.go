package v1

import (
	"fmt"

	"github.com/araf0216/eas-backend/internal/currency"
	"github.com/araf0216/eas-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealFundEditable is one weight entry of a deal as submitted by the user.
type DealFundEditable struct {
	FundID     uuid.UUID       `json:"fundId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the fund
	FundAmount decimal.Decimal `json:"fundAmount" example:"250000000"`                        // Amount of the deal committed by the fund
}

// DealEditable represents all user configurable parameters
type DealEditable struct {
	Name    string             `json:"name" example:"Project Neptune" default:""` // Name of the deal
	Manager string             `json:"manager" example:"J. Doe" default:""`       // Person managing the deal
	Amount  decimal.Decimal    `json:"amount" example:"500000000" default:"0"`    // Total deal size
	Status  models.DealStatus  `json:"status" example:"Active" default:"Active"`  // Status of the deal
	Funds   []DealFundEditable `json:"funds"`                                     // Weight entries of the deal
}

func (editable DealEditable) model() models.Deal {
	return models.Deal{
		Name:    editable.Name,
		Manager: editable.Manager,
		Amount:  editable.Amount,
		Status:  editable.Status,
		Funds:   editable.fundModels(uuid.Nil),
	}
}

// fundModels converts the weight entries, preserving their submitted order.
func (editable DealEditable) fundModels(dealID uuid.UUID) []models.DealFund {
	funds := make([]models.DealFund, 0, len(editable.Funds))
	for i, fund := range editable.Funds {
		funds = append(funds, models.DealFund{
			DealID:     dealID,
			FundID:     fund.FundID,
			FundAmount: fund.FundAmount,
			Position:   uint(i),
		})
	}

	return funds
}

type DealLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/deals/3b1ea324-d438-4419-882a-2fc91d71772f"`          // The deal itself
	Invoices string `json:"invoices" example:"https://example.com/api/v1/invoices?deal=3b1ea324-d438-4419-882a-2fc91d71772f"` // Invoices linked to this deal
}

type Deal struct {
	models.DefaultModel
	DealEditable
	Links DealLinks `json:"links"`

	// These fields are computed
	AmountDisplay    string          `json:"amountDisplay" example:"$500.00M"` // The deal size, formatted for display
	FundTotal        decimal.Decimal `json:"fundTotal" example:"500000000"`    // Sum of the committed fund amounts
	FundTotalDisplay string          `json:"fundTotalDisplay" example:"$500.00M"`
}

func newDeal(c *gin.Context, model models.Deal) Deal {
	url := c.GetString(string(models.DBContextURL))

	funds := make([]DealFundEditable, 0, len(model.Funds))
	fundTotal := decimal.Zero
	for _, fund := range model.Funds {
		funds = append(funds, DealFundEditable{
			FundID:     fund.FundID,
			FundAmount: fund.FundAmount,
		})
		fundTotal = fundTotal.Add(fund.FundAmount)
	}

	return Deal{
		DefaultModel: model.DefaultModel,
		DealEditable: DealEditable{
			Name:    model.Name,
			Manager: model.Manager,
			Amount:  model.Amount,
			Status:  model.Status,
			Funds:   funds,
		},
		Links: DealLinks{
			Self:     fmt.Sprintf("%s/v1/deals/%s", url, model.ID),
			Invoices: fmt.Sprintf("%s/v1/invoices?deal=%s", url, model.ID),
		},
		AmountDisplay:    currency.FormatAbbreviated(model.Amount),
		FundTotal:        fundTotal,
		FundTotalDisplay: currency.FormatAbbreviated(fundTotal),
	}
}

type DealListResponse struct {
	Data       []Deal      `json:"data"`                                                          // List of deals
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DealCreateResponse struct {
	Data  []DealResponse `json:"data"`                                                          // List of the created deals or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (d *DealCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	d.Data = append(d.Data, DealResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type DealResponse struct {
	Data  *Deal   `json:"data"`                                                          // Data for the deal
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DealQueryFilter struct {
	Name    string `form:"name" filterField:"false"`    // By name
	Manager string `form:"manager" filterField:"false"` // By manager
	Status  string `form:"status"`                      // By status
	Search  string `form:"search" filterField:"false"`  // By string in name or manager
	Offset  uint   `form:"offset" filterField:"false"`  // The offset of the first deal returned. Defaults to 0.
	Limit   int    `form:"limit" filterField:"false"`   // Maximum number of deals to return. Defaults to 50.
}

func (f DealQueryFilter) model() (models.Deal, error) {
	return models.Deal{
		Status: models.DealStatus(f.Status),
	}, nil
}
