package v1

import (
	"net/http"

	"github.com/araf0216/eas-backend/internal/httputil"
	"github.com/araf0216/eas-backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterDealRoutes registers the routes for deals with
// the RouterGroup that is passed.
func RegisterDealRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDealList)
		r.GET("", GetDeals)
		r.POST("", CreateDeals)
	}

	// Deal with ID
	{
		r.OPTIONS("/:id", OptionsDealDetail)
		r.GET("/:id", GetDeal)
		r.PATCH("/:id", UpdateDeal)
		r.DELETE("/:id", DeleteDeal)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Deals
// @Success		204
// @Router			/v1/deals [options]
func OptionsDealList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Deals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/deals/{id} [options]
func OptionsDealDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Deal{})
}

// @Summary		Create deals
// @Description	Creates new deals with their weight entries
// @Tags			Deals
// @Produce		json
// @Success		201		{object}	DealCreateResponse
// @Failure		400		{object}	DealCreateResponse
// @Failure		404		{object}	DealCreateResponse
// @Failure		500		{object}	DealCreateResponse
// @Param			deals	body		[]DealEditable	true	"Deals"
// @Router			/v1/deals [post]
func CreateDeals(c *gin.Context) {
	var editables []DealEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DealCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := DealCreateResponse{}

	for _, editable := range editables {
		deal := editable.model()

		err = models.DB.Create(&deal).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newDeal(c, deal)
		r.Data = append(r.Data, DealResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get deals
// @Description	Returns a list of deals
// @Tags			Deals
// @Produce		json
// @Success		200	{object}	DealListResponse
// @Failure		400	{object}	DealListResponse
// @Failure		500	{object}	DealListResponse
// @Router			/v1/deals [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			manager	query	string	false	"Filter by manager"
// @Param			status	query	string	false	"Filter by status"
// @Param			search	query	string	false	"Search for this text in name and manager"
// @Param			offset	query	uint	false	"The offset of the first deal returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of deals to return. Defaults to 50."
func GetDeals(c *gin.Context) {
	var filter DealQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DealListResponse{
			Error: &s,
		})
		return
	}

	q := models.OrderedFunds(models.DB).
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Manager, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 deals and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var deals []models.Deal
	err = q.Find(&deals).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DealListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DealListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Deal, 0)
	for _, deal := range deals {
		data = append(data, newDeal(c, deal))
	}

	c.JSON(http.StatusOK, DealListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get deal
// @Description	Returns a specific deal
// @Tags			Deals
// @Produce		json
// @Success		200	{object}	DealResponse
// @Failure		400	{object}	DealResponse
// @Failure		404	{object}	DealResponse
// @Failure		500	{object}	DealResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/deals/{id} [get]
func GetDeal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DealResponse{
			Error: &s,
		})
		return
	}

	var deal models.Deal
	err = models.OrderedFunds(models.DB).First(&deal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DealResponse{
			Error: &s,
		})
		return
	}

	data := newDeal(c, deal)
	c.JSON(http.StatusOK, DealResponse{Data: &data})
}

// @Summary		Update deal
// @Description	Update an existing deal. Only values to be updated need to be specified. When the weight entries are specified, the existing ones are replaced with the submitted list.
// @Tags			Deals
// @Accept			json
// @Produce		json
// @Success		200		{object}	DealResponse
// @Failure		400		{object}	DealResponse
// @Failure		404		{object}	DealResponse
// @Failure		500		{object}	DealResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			deal	body		DealEditable	true	"Deal"
// @Router			/v1/deals/{id} [patch]
func UpdateDeal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DealResponse{
			Error: &s,
		})
		return
	}

	var deal models.Deal
	err = models.DB.First(&deal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DealResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, DealEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DealResponse{
			Error: &s,
		})
		return
	}

	var data DealEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DealResponse{
			Error: &s,
		})
		return
	}

	// The weight entries are replaced as a whole, not updated in place, so
	// they are handled separately from the scalar fields.
	replaceFunds := false
	scalarFields := make([]any, 0, len(updateFields))
	for _, field := range updateFields {
		if field == "Funds" {
			replaceFunds = true
			continue
		}
		scalarFields = append(scalarFields, field)
	}

	if len(scalarFields) > 0 {
		err = models.DB.Model(&deal).Select("", scalarFields...).Updates(data.model()).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DealResponse{
				Error: &s,
			})
			return
		}
	}

	if replaceFunds {
		err = models.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("deal_id = ?", deal.ID).Delete(&models.DealFund{}).Error; err != nil {
				return err
			}

			funds := data.fundModels(deal.ID)
			if len(funds) == 0 {
				return nil
			}

			return tx.Create(&funds).Error
		})
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DealResponse{
				Error: &s,
			})
			return
		}
	}

	err = models.OrderedFunds(models.DB).First(&deal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DealResponse{
			Error: &s,
		})
		return
	}

	r := newDeal(c, deal)
	c.JSON(http.StatusOK, DealResponse{Data: &r})
}

// @Summary		Delete deal
// @Description	Deletes a deal and its weight entries
// @Tags			Deals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/deals/{id} [delete]
func DeleteDeal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var deal models.Deal
	err = models.DB.First(&deal, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&deal).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}
