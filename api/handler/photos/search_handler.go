package photos

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arvane/photodex/api/common"
	"github.com/arvane/photodex/database/models"
)

type searchRequest struct {
	Query string `json:"query"`
}

type semanticSearchRequest struct {
	Query       string   `json:"query"`
	Limit       *int     `json:"limit"`
	MaxDistance *float32 `json:"max_distance"`
}

type searchResponse struct {
	Query  string         `json:"query"`
	Tags   []string       `json:"tags"`
	Photos []models.Photo `json:"photos"`
}

// SearchImages handles POST /images/search, the plain tag-only path.
func (h *Handler) SearchImages(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.searchService.TagSearch(c.Request.Context(), req.Query)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, searchResponse{
		Query:  result.Query,
		Tags:   result.Tags,
		Photos: result.Photos,
	})
}

// SemanticSearchImages handles POST /images/semantic-search, the hybrid
// cascade. The tags field is null unless the tag fallback ran and
// succeeded.
func (h *Handler) SemanticSearchImages(c *gin.Context) {
	var req semanticSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.searchService.SemanticSearch(c.Request.Context(), req.Query, req.Limit, req.MaxDistance)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, searchResponse{
		Query:  result.Query,
		Tags:   result.Tags,
		Photos: result.Photos,
	})
}
