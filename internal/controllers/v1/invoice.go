package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/araf0216/eas-backend/internal/httputil"
	"github.com/araf0216/eas-backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterInvoiceRoutes registers the routes for invoices with
// the RouterGroup that is passed.
func RegisterInvoiceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsInvoiceList)
		r.GET("", GetInvoices)
		r.POST("", CreateInvoice)
	}

	// Invoice with ID
	{
		r.OPTIONS("/:id", OptionsInvoiceDetail)
		r.GET("/:id", GetInvoice)

		r.OPTIONS("/:id/review", OptionsInvoiceReview)
		r.POST("/:id/review", ReviewInvoice)

		r.OPTIONS("/:id/activity-type", OptionsInvoiceActivityType)
		r.POST("/:id/activity-type", SetInvoiceActivityType)

		r.OPTIONS("/:id/allocations", OptionsInvoiceAllocations)
		r.GET("/:id/allocations", GetInvoiceAllocations)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Invoices
// @Success		204
// @Router			/v1/invoices [options]
func OptionsInvoiceList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Invoices
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/invoices/{id} [options]
func OptionsInvoiceDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Invoice{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Invoices
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/invoices/{id}/review [options]
func OptionsInvoiceReview(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Invoices
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/invoices/{id}/activity-type [options]
func OptionsInvoiceActivityType(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Submit invoice
// @Description	Submits a new invoice for approval. All validation failures are collected and returned together. A submission carrying the number of a rejected invoice replaces that invoice.
// @Tags			Invoices
// @Accept			json
// @Produce		json
// @Success		201		{object}	InvoiceCreateResponse
// @Failure		400		{object}	InvoiceCreateResponse
// @Failure		500		{object}	InvoiceCreateResponse
// @Param			invoice	body		InvoiceEditable	true	"Invoice"
// @Router			/v1/invoices [post]
func CreateInvoice(c *gin.Context) {
	var editable InvoiceEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceCreateResponse{
			Error: &e,
		})
		return
	}

	invoice, err := models.SubmitInvoice(models.DB, editable.model())
	if err != nil {
		var validationErrs models.ValidationErrors
		if errors.As(err, &validationErrs) {
			e := err.Error()
			c.JSON(http.StatusBadRequest, InvoiceCreateResponse{
				Error:            &e,
				ValidationErrors: validationErrs,
			})
			return
		}

		e := err.Error()
		c.JSON(status(err), InvoiceCreateResponse{
			Error: &e,
		})
		return
	}

	data := newInvoice(c, invoice)
	c.JSON(http.StatusCreated, InvoiceCreateResponse{Data: &data})
}

// @Summary		Get invoices
// @Description	Returns a list of invoices
// @Tags			Invoices
// @Produce		json
// @Success		200	{object}	InvoiceListResponse
// @Failure		400	{object}	InvoiceListResponse
// @Failure		500	{object}	InvoiceListResponse
// @Router			/v1/invoices [get]
// @Param			number			query	string	false	"Filter by invoice number"
// @Param			company			query	string	false	"Filter by company name"
// @Param			status			query	string	false	"Filter by workflow status"
// @Param			activityType	query	string	false	"Filter by activity type"
// @Param			deal			query	string	false	"Filter by linked deal ID"
// @Param			search			query	string	false	"Search for this text in invoice number and company name"
// @Param			offset			query	uint	false	"The offset of the first invoice returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of invoices to return. Defaults to 50."
func GetInvoices(c *gin.Context) {
	var filter InvoiceQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvoiceListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("received_date DESC, invoice_number ASC").
		Where(&filterModel, queryFields...)

	if filter.Number != "" {
		q = q.Where("invoice_number LIKE ?", fmt.Sprintf("%%%s%%", filter.Number))
	} else if slices.Contains(setFields, "Number") {
		q = q.Where("invoice_number = ''")
	}

	if filter.Company != "" {
		q = q.Where("company_name LIKE ?", fmt.Sprintf("%%%s%%", filter.Company))
	} else if slices.Contains(setFields, "Company") {
		q = q.Where("company_name = ''")
	}

	if filter.Search != "" {
		q = q.Where(
			models.DB.Where("company_name LIKE ?", fmt.Sprintf("%%%s%%", filter.Search)).Or(
				models.DB.Where("invoice_number LIKE ?", fmt.Sprintf("%%%s%%", filter.Search)),
			),
		)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 invoices and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var invoices []models.Invoice
	err = q.Find(&invoices).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvoiceListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Invoice, 0)
	for _, invoice := range invoices {
		data = append(data, newInvoice(c, invoice))
	}

	c.JSON(http.StatusOK, InvoiceListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get invoice
// @Description	Returns a specific invoice
// @Tags			Invoices
// @Produce		json
// @Success		200	{object}	InvoiceResponse
// @Failure		400	{object}	InvoiceResponse
// @Failure		404	{object}	InvoiceResponse
// @Failure		500	{object}	InvoiceResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/invoices/{id} [get]
func GetInvoice(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvoiceResponse{
			Error: &s,
		})
		return
	}

	var invoice models.Invoice
	err = models.DB.First(&invoice, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvoiceResponse{
			Error: &s,
		})
		return
	}

	data := newInvoice(c, invoice)
	c.JSON(http.StatusOK, InvoiceResponse{Data: &data})
}

// @Summary		Review invoice
// @Description	Approves or rejects an invoice that is pending approval
// @Tags			Invoices
// @Accept			json
// @Produce		json
// @Success		200		{object}	InvoiceResponse
// @Failure		400		{object}	InvoiceResponse
// @Failure		404		{object}	InvoiceResponse
// @Failure		500		{object}	InvoiceResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			review	body		ReviewRequest	true	"Decision"
// @Router			/v1/invoices/{id}/review [post]
func ReviewInvoice(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvoiceResponse{
			Error: &s,
		})
		return
	}

	var invoice models.Invoice
	err = models.DB.First(&invoice, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvoiceResponse{
			Error: &s,
		})
		return
	}

	var review ReviewRequest
	err = httputil.BindData(c, &review)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvoiceResponse{
			Error: &s,
		})
		return
	}

	err = invoice.Review(models.DB, review.Decision)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvoiceResponse{
			Error: &s,
		})
		return
	}

	data := newInvoice(c, invoice)
	c.JSON(http.StatusOK, InvoiceResponse{Data: &data})
}

// @Summary		Set activity type
// @Description	Assigns the activity type of a reviewed invoice. Any activity type other than Pending completes the invoice, Pending resets it back to Approved.
// @Tags			Invoices
// @Accept			json
// @Produce		json
// @Success		200			{object}	InvoiceResponse
// @Failure		400			{object}	InvoiceResponse
// @Failure		404			{object}	InvoiceResponse
// @Failure		500			{object}	InvoiceResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			activity	body		ActivityTypeRequest	true	"Activity type"
// @Router			/v1/invoices/{id}/activity-type [post]
func SetInvoiceActivityType(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvoiceResponse{
			Error: &s,
		})
		return
	}

	var invoice models.Invoice
	err = models.DB.First(&invoice, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvoiceResponse{
			Error: &s,
		})
		return
	}

	var request ActivityTypeRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvoiceResponse{
			Error: &s,
		})
		return
	}

	err = invoice.SetActivityType(models.DB, request.ActivityType, request.DealID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvoiceResponse{
			Error: &s,
		})
		return
	}

	data := newInvoice(c, invoice)
	c.JSON(http.StatusOK, InvoiceResponse{Data: &data})
}
