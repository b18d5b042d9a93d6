package common

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arvane/photodex/internal/apperr"
)

type Response struct {
	Status string      `json:"status"`
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data,omitempty"`
}

func Respond(c *gin.Context, httpStatus int, status string, message string, data interface{}) {
	c.JSON(httpStatus, Response{
		Status: status,
		Msg:    message,
		Data:   data,
	})
}

// RespondSuccess sends a success response with data.
func RespondSuccess(c *gin.Context, data interface{}) {
	Respond(c, http.StatusOK, "success", "", data)
}

// RespondError sends an error response with message.
func RespondError(c *gin.Context, httpStatus int, message string) {
	Respond(c, httpStatus, "error", message, nil)
}

// RespondErrorAbort sends an error response and aborts the chain.
func RespondErrorAbort(c *gin.Context, httpStatus int, message string) {
	c.Abort()
	RespondError(c, httpStatus, message)
}

// RespondAppError maps the error taxonomy onto the HTTP contract:
// validation failures are the caller's fault, everything else is a 500.
func RespondAppError(c *gin.Context, err error) {
	if apperr.IsValidation(err) {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	RespondError(c, http.StatusInternalServerError, err.Error())
}
