package photos

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arvane/photodex/api/common"
	photoSvc "github.com/arvane/photodex/internal/services/photo"
)

type uploadRequest struct {
	FileName    string `json:"file_name"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// UploadImage handles POST /images.
func (h *Handler) UploadImage(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	photo, err := h.uploadService.Upload(c.Request.Context(), photoSvc.UploadInput{
		FileName:    req.FileName,
		ImageBase64: req.ImageBase64,
		MimeType:    req.MimeType,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, gin.H{"photo": photo})
}
