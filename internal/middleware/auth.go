package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tallerpro/booking-api/internal/service/audit"
	authsvc "github.com/tallerpro/booking-api/internal/service/auth"
	"github.com/tallerpro/booking-api/pkg/apperror"
	"github.com/tallerpro/booking-api/pkg/httputil"
)

const ContextUserEmail = "user_email"

// Verifier validates a session token. Satisfied by the auth service.
type Verifier interface {
	Verify(token string) (*authsvc.Claims, error)
}

// RequireSession guards the admin routes. The verified user is tagged
// onto the context as the audit actor.
func RequireSession(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httputil.RespondWithError(c, apperror.Unauthorized("missing bearer token"))
			c.Abort()
			return
		}

		claims, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			httputil.RespondWithError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserEmail, claims.Email)
		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), claims.Email))
		c.Next()
	}
}
