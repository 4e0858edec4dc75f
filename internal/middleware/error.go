package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tallerpro/booking-api/pkg/apperror"
	"github.com/tallerpro/booking-api/pkg/httputil"
)

// ErrorHandler logs collected errors and writes the error envelope when
// a handler aborted without responding.
func ErrorHandler(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		rid := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			logger.Error().
				Err(e.Err).
				Str("request_id", rid).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("request error")
		}

		if !c.Writer.Written() {
			httputil.RespondWithError(c, apperror.From(c.Errors.Last().Err))
		}
	}
}
