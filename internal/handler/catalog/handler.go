package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tallerpro/booking-api/internal/service/catalog"
	"github.com/tallerpro/booking-api/pkg/apperror"
	"github.com/tallerpro/booking-api/pkg/httputil"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

// Marcas handles GET /marcas.
func (h *Handler) Marcas(c *gin.Context) {
	marcas, err := h.service.Marcas(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, marcas)
}

// Modelos handles GET /modelos/:marcaId.
func (h *Handler) Modelos(c *gin.Context) {
	marcaID, err := strconv.ParseInt(c.Param("marcaId"), 10, 64)
	if err != nil || marcaID <= 0 {
		httputil.RespondWithError(c, apperror.ValidationField("marcaId", "brand id must be a positive integer"))
		return
	}

	modelos, err := h.service.Modelos(c.Request.Context(), marcaID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, modelos)
}

// Servicios handles GET /servicios, the fixed service catalog.
func (h *Handler) Servicios(c *gin.Context) {
	httputil.RespondWithSuccess(c, http.StatusOK, h.service.TiposServicio())
}

// Locales handles GET /locales.
func (h *Handler) Locales(c *gin.Context) {
	httputil.RespondWithSuccess(c, http.StatusOK, h.service.Locales())
}
