package v1

import (
	"net/http"

	"github.com/araf0216/eas-backend/internal/httputil"
	"github.com/araf0216/eas-backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterFundRoutes registers the routes for funds with
// the RouterGroup that is passed.
func RegisterFundRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsFundList)
		r.GET("", GetFunds)
		r.POST("", CreateFunds)
	}

	// Fund with ID
	{
		r.OPTIONS("/:id", OptionsFundDetail)
		r.GET("/:id", GetFund)
		r.PATCH("/:id", UpdateFund)
		r.DELETE("/:id", DeleteFund)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Funds
// @Success		204
// @Router			/v1/funds [options]
func OptionsFundList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Funds
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/funds/{id} [options]
func OptionsFundDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Fund{})
}

// @Summary		Create funds
// @Description	Creates new funds
// @Tags			Funds
// @Produce		json
// @Success		201		{object}	FundCreateResponse
// @Failure		400		{object}	FundCreateResponse
// @Failure		500		{object}	FundCreateResponse
// @Param			funds	body		[]FundEditable	true	"Funds"
// @Router			/v1/funds [post]
func CreateFunds(c *gin.Context) {
	var editables []FundEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FundCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := FundCreateResponse{}

	for _, editable := range editables {
		fund := editable.model()

		err = models.DB.Create(&fund).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newFund(c, fund)
		r.Data = append(r.Data, FundResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get funds
// @Description	Returns a list of funds
// @Tags			Funds
// @Produce		json
// @Success		200	{object}	FundListResponse
// @Failure		400	{object}	FundListResponse
// @Failure		500	{object}	FundListResponse
// @Router			/v1/funds [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			manager	query	string	false	"Filter by manager"
// @Param			search	query	string	false	"Search for this text in name and manager"
// @Param			offset	query	uint	false	"The offset of the first fund returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of funds to return. Defaults to 50."
func GetFunds(c *gin.Context) {
	var filter FundQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Manager, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 funds and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var funds []models.Fund
	err = q.Find(&funds).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FundListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Fund, 0)
	for _, fund := range funds {
		data = append(data, newFund(c, fund))
	}

	c.JSON(http.StatusOK, FundListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get fund
// @Description	Returns a specific fund
// @Tags			Funds
// @Produce		json
// @Success		200	{object}	FundResponse
// @Failure		400	{object}	FundResponse
// @Failure		404	{object}	FundResponse
// @Failure		500	{object}	FundResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/funds/{id} [get]
func GetFund(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundResponse{
			Error: &s,
		})
		return
	}

	var fund models.Fund
	err = models.DB.First(&fund, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundResponse{
			Error: &s,
		})
		return
	}

	data := newFund(c, fund)
	c.JSON(http.StatusOK, FundResponse{Data: &data})
}

// @Summary		Update fund
// @Description	Update an existing fund. Only values to be updated need to be specified.
// @Tags			Funds
// @Accept			json
// @Produce		json
// @Success		200		{object}	FundResponse
// @Failure		400		{object}	FundResponse
// @Failure		404		{object}	FundResponse
// @Failure		500		{object}	FundResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			fund	body		FundEditable	true	"Fund"
// @Router			/v1/funds/{id} [patch]
func UpdateFund(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundResponse{
			Error: &s,
		})
		return
	}

	var fund models.Fund
	err = models.DB.First(&fund, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, FundEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundResponse{
			Error: &s,
		})
		return
	}

	var data FundEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&fund).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundResponse{
			Error: &s,
		})
		return
	}

	r := newFund(c, fund)
	c.JSON(http.StatusOK, FundResponse{Data: &r})
}

// @Summary		Delete fund
// @Description	Deletes a fund
// @Tags			Funds
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/funds/{id} [delete]
func DeleteFund(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var fund models.Fund
	err = models.DB.First(&fund, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&fund).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}
