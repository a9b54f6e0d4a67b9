package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/araf0216/eas-backend/internal/httputil"
	"github.com/araf0216/eas-backend/internal/importer"
	"github.com/araf0216/eas-backend/internal/importer/parser/plaintext"
	"github.com/araf0216/eas-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
)

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// InvoicePreview is a submission form pre-filled from an uploaded document.
// Nothing is stored, the user completes the form and submits it.
type InvoicePreview struct {
	Invoice             InvoiceEditable `json:"invoice"`                                                    // The pre-filled submission
	MatchRuleID         *uuid.UUID      `json:"matchRuleId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // The match rule that linked the deal, if any
	DuplicateInvoiceIDs []uuid.UUID     `json:"duplicateInvoiceIds"`                                        // Invoices already carrying this number that block a submission
}

type ImportPreviewResponse struct {
	Data  *InvoicePreview `json:"data"`                                                          // The invoice preview
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// match links the preview to a deal via the first matching rule.
//
// Rules are passed in priority order, so the first hit wins. A match also
// presets the activity type since a deal link only makes sense for deal
// allocation invoices.
func match(preview *InvoicePreview, rules []models.MatchRule) {
	for _, rule := range rules {
		if glob.Glob(rule.Match, preview.Invoice.CompanyName) {
			dealID := rule.DealID
			ruleID := rule.ID

			preview.Invoice.DealID = &dealID
			preview.Invoice.ActivityType = models.ActivityDealAllocation
			preview.MatchRuleID = &ruleID
			return
		}
	}
}

// duplicateInvoices finds invoices that block a submission under the
// extracted number. Rejected invoices do not block, they are replaced.
func duplicateInvoices(preview *InvoicePreview) error {
	// When there are no resources, we want an empty list, not null
	preview.DuplicateInvoiceIDs = make([]uuid.UUID, 0)

	if strings.TrimSpace(preview.Invoice.InvoiceNumber) == "" {
		return nil
	}

	var duplicates []models.Invoice
	err := models.DB.
		Where("invoice_number = ? AND status != ?", strings.TrimSpace(preview.Invoice.InvoiceNumber), models.StatusRejected).
		Find(&duplicates).Error
	if err != nil {
		return err
	}

	for _, duplicate := range duplicates {
		preview.DuplicateInvoiceIDs = append(preview.DuplicateInvoiceIDs, duplicate.ID)
	}

	return nil
}

// RegisterImportRoutes registers the routes for imports.
func RegisterImportRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsImport)
		r.GET("", GetImport)

		r.OPTIONS("/invoice-preview", OptionsImportInvoicePreview)
		r.POST("/invoice-preview", ImportInvoicePreview)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
// @Tags			Import
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsGet(c)
}

type ImportResponse struct {
	Links ImportLinks `json:"links"` // Links for the import API
}

type ImportLinks struct {
	InvoicePreview string `json:"invoicePreview" example:"https://example.com/api/v1/import/invoice-preview"` // URL of the invoice preview endpoint
}

// @Summary		Import API overview
// @Description	Returns general information about the import API
// @Tags			Import
// @Success		200	{object}	ImportResponse
// @Router			/v1/import [get]
func GetImport(c *gin.Context) {
	c.JSON(http.StatusOK, ImportResponse{
		Links: ImportLinks{
			InvoicePreview: c.GetString(string(models.DBContextURL)) + "/v1/import/invoice-preview",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import/invoice-preview [options]
func OptionsImportInvoicePreview(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Invoice Import Preview
// @Description	Returns a pre-filled invoice submission after extracting an uploaded invoice document. The match rules are applied to the extracted company name to suggest a deal. Nothing is stored.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	ImportPreviewResponse
// @Failure		400		{object}	ImportPreviewResponse
// @Failure		500		{object}	ImportPreviewResponse
// @Param			file	formData	file	true	"File to import"
// @Router			/v1/import/invoice-preview [post]
func ImportInvoicePreview(c *gin.Context) {
	f, err := getUploadedFile(c, ".txt")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewResponse{
			Error: &s,
		})
		return
	}

	var parser importer.Parser = plaintext.Parser{}
	draft, err := parser.Parse(f)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportPreviewResponse{
			Error: &s,
		})
		return
	}

	preview := InvoicePreview{
		Invoice: InvoiceEditable{
			InvoiceNumber: draft.InvoiceNumber,
			CompanyName:   draft.CompanyName,
			Total:         draft.Total,
			ReceivedDate:  draft.ReceivedDate,
			DueDate:       draft.DueDate,
		},
	}

	var matchRules []models.MatchRule
	err = models.DB.
		Order("priority ASC").
		Find(&matchRules).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewResponse{
			Error: &s,
		})
		return
	}

	if preview.Invoice.CompanyName != "" {
		match(&preview, matchRules)
	}

	err = duplicateInvoices(&preview)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ImportPreviewResponse{Data: &preview})
}
