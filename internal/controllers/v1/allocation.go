package v1

import (
	"net/http"

	"github.com/araf0216/eas-backend/internal/currency"
	"github.com/araf0216/eas-backend/internal/httputil"
	"github.com/araf0216/eas-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Weighting values for the allocation breakdown.
const (
	WeightingAUM  = "AUM"  // Across all funds, by share of summed AUM
	WeightingDeal = "Deal" // Across the linked deal's funds, by committed amount
)

// AllocationRow is one fund's share of the invoice total, with the amounts
// formatted for display.
type AllocationRow struct {
	models.FundAllocation
	BasisDisplay      string `json:"basisDisplay" example:"$850.00M"`     // The weight, formatted for display
	PercentageDisplay string `json:"percentageDisplay" example:"85.000%"` // The share, formatted for display
	AmountDisplay     string `json:"amountDisplay" example:"$850.00"`     // The allocated amount, formatted for display
}

func newAllocationRow(allocation models.FundAllocation) AllocationRow {
	return AllocationRow{
		FundAllocation:    allocation,
		BasisDisplay:      currency.FormatAbbreviated(allocation.Basis),
		PercentageDisplay: currency.FormatPercentage(allocation.Percentage),
		AmountDisplay:     currency.Format(allocation.Amount),
	}
}

type AllocationSummary struct {
	Count             int             `json:"count" example:"2"`                   // Number of rows
	BasisTotal        decimal.Decimal `json:"basisTotal" example:"1000000000"`     // Sum of the weights
	BasisTotalDisplay string          `json:"basisTotalDisplay" example:"$1.000B"` // Sum of the weights, formatted for display
	Total             decimal.Decimal `json:"total" example:"1000"`                // The distributed invoice total
	TotalDisplay      string          `json:"totalDisplay" example:"$1,000.00"`    // The invoice total, formatted for display
}

type AllocationList struct {
	Weighting string            `json:"weighting" example:"AUM"`                               // AUM when distributing across all funds, Deal for deal linked invoices
	DealID    *uuid.UUID        `json:"dealId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // The deal the weights come from, only for Deal weighting
	Rows      []AllocationRow   `json:"rows"`                                                  // One row per fund
	Summary   AllocationSummary `json:"summary"`                                               // Totals over all rows
}

type AllocationListResponse struct {
	Data  *AllocationList `json:"data"`                                                          // The allocation breakdown
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Invoices
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/invoices/{id}/allocations [options]
func OptionsInvoiceAllocations(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get allocations
// @Description	Returns the proportional distribution of the invoice total. Deal allocation invoices are distributed across the linked deal's funds by committed amount, all other invoices across all funds by AUM.
// @Tags			Invoices
// @Produce		json
// @Success		200	{object}	AllocationListResponse
// @Failure		400	{object}	AllocationListResponse
// @Failure		404	{object}	AllocationListResponse
// @Failure		500	{object}	AllocationListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/invoices/{id}/allocations [get]
func GetInvoiceAllocations(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &s,
		})
		return
	}

	var invoice models.Invoice
	err = models.DB.First(&invoice, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &s,
		})
		return
	}

	var data AllocationList
	var allocations []models.FundAllocation

	if invoice.ActivityType == models.ActivityDealAllocation && invoice.DealID != nil {
		var deal models.Deal
		err = models.OrderedFunds(models.DB).First(&deal, *invoice.DealID).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AllocationListResponse{
				Error: &s,
			})
			return
		}

		fundIDs := make([]uuid.UUID, 0, len(deal.Funds))
		for _, entry := range deal.Funds {
			fundIDs = append(fundIDs, entry.FundID)
		}

		var funds []models.Fund
		err = models.DB.Find(&funds, "id IN ?", fundIDs).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AllocationListResponse{
				Error: &s,
			})
			return
		}

		allocations, err = models.AllocateAcrossDeal(invoice.Total, deal, funds)
		data.Weighting = WeightingDeal
		data.DealID = invoice.DealID
	} else {
		var funds []models.Fund
		err = models.DB.Order("name ASC").Find(&funds).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AllocationListResponse{
				Error: &s,
			})
			return
		}

		allocations, err = models.AllocateAcrossFunds(invoice.Total, funds)
		data.Weighting = WeightingAUM
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &s,
		})
		return
	}

	basisTotal := decimal.Zero
	data.Rows = make([]AllocationRow, 0, len(allocations))
	for _, allocation := range allocations {
		data.Rows = append(data.Rows, newAllocationRow(allocation))
		basisTotal = basisTotal.Add(allocation.Basis)
	}

	data.Summary = AllocationSummary{
		Count:             len(data.Rows),
		BasisTotal:        basisTotal,
		BasisTotalDisplay: currency.FormatAbbreviated(basisTotal),
		Total:             invoice.Total,
		TotalDisplay:      currency.Format(invoice.Total),
	}

	c.JSON(http.StatusOK, AllocationListResponse{Data: &data})
}
