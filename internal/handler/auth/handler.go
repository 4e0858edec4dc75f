package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tallerpro/booking-api/internal/model"
	"github.com/tallerpro/booking-api/internal/service/auth"
	"github.com/tallerpro/booking-api/pkg/apperror"
	"github.com/tallerpro/booking-api/pkg/httputil"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.ValidationField("body", "malformed JSON payload"))
		return
	}

	session, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, session)
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.ValidationField("body", "malformed JSON payload"))
		return
	}

	session, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, session)
}
