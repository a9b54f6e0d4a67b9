package v1

import (
	"net/http"

	"github.com/araf0216/eas-backend/internal/httputil"
	"github.com/araf0216/eas-backend/internal/models"
	"github.com/gin-gonic/gin"
)

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Funds      string `json:"funds" example:"https://example.com/api/v1/funds"`           // URL of fund list endpoint
	Deals      string `json:"deals" example:"https://example.com/api/v1/deals"`           // URL of deal list endpoint
	Invoices   string `json:"invoices" example:"https://example.com/api/v1/invoices"`     // URL of invoice list endpoint
	MatchRules string `json:"matchRules" example:"https://example.com/api/v1/match-rules"` // URL of match rule list endpoint
	Import     string `json:"import" example:"https://example.com/api/v1/import"`         // URL of import list endpoint
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Funds:      url + "/v1/funds",
			Deals:      url + "/v1/deals",
			Invoices:   url + "/v1/invoices",
			MatchRules: url + "/v1/match-rules",
			Import:     url + "/v1/import",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
