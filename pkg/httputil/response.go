package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tallerpro/booking-api/pkg/apperror"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError converts an error to the wire envelope. Unknown error
// types become an opaque 500 so transport details never leak.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperror.From(err)

	resp := Response{
		Status:  "error",
		Code:    string(appErr.Code),
		Message: appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		resp.Fields = appErr.Fields
	}

	c.Error(err)
	c.JSON(appErr.HTTPStatus(), resp)
}

// RespondWithMessage sends a success envelope with a message only.
func RespondWithMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Status:  "success",
		Message: message,
	})
}
