package v1

import (
	"fmt"

	"github.com/araf0216/eas-backend/internal/models"
	eas_uuid "github.com/araf0216/eas-backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MatchRuleEditable represents all user configurable parameters
type MatchRuleEditable struct {
	Priority uint      `json:"priority" example:"1"`                                  // The priority of the match rule
	Match    string    `json:"match" example:"Meridian*"`                             // The company name to match, supports * as wildcard
	DealID   uuid.UUID `json:"dealId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // The deal this rule matches to
}

func (editable MatchRuleEditable) model() models.MatchRule {
	return models.MatchRule{
		Priority: editable.Priority,
		Match:    editable.Match,
		DealID:   editable.DealID,
	}
}

type MatchRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/match-rules/3b1ea324-d438-4419-882a-2fc91d71772f"` // The match rule itself
}

type MatchRule struct {
	models.DefaultModel
	MatchRuleEditable
	Links MatchRuleLinks `json:"links"`
}

func newMatchRule(c *gin.Context, model models.MatchRule) MatchRule {
	url := c.GetString(string(models.DBContextURL))

	return MatchRule{
		DefaultModel: model.DefaultModel,
		MatchRuleEditable: MatchRuleEditable{
			Priority: model.Priority,
			Match:    model.Match,
			DealID:   model.DealID,
		},
		Links: MatchRuleLinks{
			Self: fmt.Sprintf("%s/v1/match-rules/%s", url, model.ID),
		},
	}
}

type MatchRuleListResponse struct {
	Data       []MatchRule `json:"data"`                                                          // List of match rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MatchRuleCreateResponse struct {
	Data  []MatchRuleResponse `json:"data"`                                                          // List of the created match rules or their respective error
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MatchRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchRuleResponse struct {
	Data  *MatchRule `json:"data"`                                                          // Data for the match rule
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MatchRuleQueryFilter struct {
	Priority uint         `form:"priority"`                   // By priority
	Match    string       `form:"match" filterField:"false"`  // By match
	DealID   eas_uuid.UUID `form:"deal"`                       // By ID of the deal the rule matches to
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first match rule returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of match rules to return. Defaults to 50.
}

func (f MatchRuleQueryFilter) model() (models.MatchRule, error) {
	return models.MatchRule{
		Priority: f.Priority,
		DealID:   f.DealID.UUID,
	}, nil
}
