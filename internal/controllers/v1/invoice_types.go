package v1

import (
	"fmt"
	"time"

	"github.com/araf0216/eas-backend/internal/currency"
	"github.com/araf0216/eas-backend/internal/models"
	eas_uuid "github.com/araf0216/eas-backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceEditable represents all user configurable parameters
type InvoiceEditable struct {
	InvoiceNumber string              `json:"invoiceNumber" example:"INV-2024-0042" default:""`                   // Number printed on the invoice
	CompanyName   string              `json:"companyName" example:"Meridian Advisory LLC" default:""`             // Company that issued the invoice
	Total         decimal.Decimal     `json:"total" example:"1000" default:"0"`                                   // Total amount of the invoice
	ActivityType  models.ActivityType `json:"activityType" example:"Reimbursable"`                                // How the invoice will be handled
	ReceivedDate  time.Time           `json:"receivedDate" example:"2024-03-01T00:00:00Z"`                        // Date the invoice was received
	DueDate       time.Time           `json:"dueDate" example:"2024-03-31T00:00:00Z"`                             // Date the invoice is due
	DealID        *uuid.UUID          `json:"dealId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce" default:"null"` // ID of the linked deal, only for deal allocation invoices
}

func (editable InvoiceEditable) model() models.Invoice {
	return models.Invoice{
		InvoiceNumber: editable.InvoiceNumber,
		CompanyName:   editable.CompanyName,
		Total:         editable.Total,
		ActivityType:  editable.ActivityType,
		ReceivedDate:  editable.ReceivedDate,
		DueDate:       editable.DueDate,
		DealID:        editable.DealID,
	}
}

type InvoiceLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/invoices/3b1ea324-d438-4419-882a-2fc91d71772f"`                      // The invoice itself
	Review       string `json:"review" example:"https://example.com/api/v1/invoices/3b1ea324-d438-4419-882a-2fc91d71772f/review"`             // Review endpoint for the invoice
	ActivityType string `json:"activityType" example:"https://example.com/api/v1/invoices/3b1ea324-d438-4419-882a-2fc91d71772f/activity-type"` // Activity type endpoint for the invoice
	Allocations  string `json:"allocations" example:"https://example.com/api/v1/invoices/3b1ea324-d438-4419-882a-2fc91d71772f/allocations"`   // Allocation breakdown for the invoice
}

type Invoice struct {
	models.DefaultModel
	InvoiceEditable
	Status models.InvoiceStatus `json:"status" example:"Pending Approval"` // Position of the invoice in the approval workflow
	Links  InvoiceLinks         `json:"links"`

	// These fields are computed
	TotalDisplay string `json:"totalDisplay" example:"$1,000.00"` // The total, formatted for display
}

func newInvoice(c *gin.Context, model models.Invoice) Invoice {
	url := c.GetString(string(models.DBContextURL))

	return Invoice{
		DefaultModel: model.DefaultModel,
		InvoiceEditable: InvoiceEditable{
			InvoiceNumber: model.InvoiceNumber,
			CompanyName:   model.CompanyName,
			Total:         model.Total,
			ActivityType:  model.ActivityType,
			ReceivedDate:  model.ReceivedDate,
			DueDate:       model.DueDate,
			DealID:        model.DealID,
		},
		Status: model.Status,
		Links: InvoiceLinks{
			Self:         fmt.Sprintf("%s/v1/invoices/%s", url, model.ID),
			Review:       fmt.Sprintf("%s/v1/invoices/%s/review", url, model.ID),
			ActivityType: fmt.Sprintf("%s/v1/invoices/%s/activity-type", url, model.ID),
			Allocations:  fmt.Sprintf("%s/v1/invoices/%s/allocations", url, model.ID),
		},
		TotalDisplay: currency.Format(model.Total),
	}
}

type InvoiceListResponse struct {
	Data       []Invoice   `json:"data"`                                                          // List of invoices
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type InvoiceResponse struct {
	Data  *Invoice `json:"data"`                                                          // Data for the invoice
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// InvoiceCreateResponse is the response for an invoice submission. When the
// submission fails validation, every failure is returned in
// ValidationErrors so that the form can be fixed in one go.
type InvoiceCreateResponse struct {
	Data             *Invoice `json:"data"`                                                            // The created invoice
	Error            *string  `json:"error" example:"the invoice number is required"`                  // The error, if any occurred
	ValidationErrors []string `json:"validationErrors,omitempty" example:"the invoice total must be positive"` // All validation failures of the submission
}

// ReviewRequest is the decision on an invoice that is pending approval.
type ReviewRequest struct {
	Decision models.InvoiceStatus `json:"decision" example:"Approved"` // Approved or Rejected
}

// ActivityTypeRequest assigns the activity type of a reviewed invoice.
type ActivityTypeRequest struct {
	ActivityType models.ActivityType `json:"activityType" example:"Deal Allocation"`                // The activity type to assign
	DealID       *uuid.UUID          `json:"dealId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // Deal to link, required for deal allocation when no deal is linked yet
}

type InvoiceQueryFilter struct {
	Number       string       `form:"number" filterField:"false"`  // By invoice number
	Company      string       `form:"company" filterField:"false"` // By company name
	Status       string       `form:"status"`                      // By workflow status
	ActivityType string       `form:"activityType"`                // By activity type
	DealID       eas_uuid.UUID `form:"deal"`                        // By ID of the linked deal
	Search       string       `form:"search" filterField:"false"`  // By string in invoice number or company name
	Offset       uint         `form:"offset" filterField:"false"`  // The offset of the first invoice returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`   // Maximum number of invoices to return. Defaults to 50.
}

func (f InvoiceQueryFilter) model() (models.Invoice, error) {
	var dealID *uuid.UUID
	if f.DealID != eas_uuid.Nil {
		dealID = &f.DealID.UUID
	}

	return models.Invoice{
		Status:       models.InvoiceStatus(f.Status),
		ActivityType: models.ActivityType(f.ActivityType),
		DealID:       dealID,
	}, nil
}
