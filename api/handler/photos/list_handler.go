package photos

import (
	"github.com/gin-gonic/gin"

	"github.com/arvane/photodex/api/common"
	"github.com/arvane/photodex/utils/tags"
)

// ListImages handles GET /images. An omitted or empty tags parameter
// lists every photo, newest first.
func (h *Handler) ListImages(c *gin.Context) {
	filter := tags.Parse(c.Query("tags"))

	photos, err := h.searchService.List(c.Request.Context(), filter)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, gin.H{"photos": photos})
}
