package booking

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tallerpro/booking-api/internal/model"
	"github.com/tallerpro/booking-api/pkg/apperror"
	"github.com/tallerpro/booking-api/pkg/httputil"
)

// Orchestrator is the booking service surface the HTTP layer needs.
type Orchestrator interface {
	SubmitNewAppointment(ctx context.Context, req *model.CrearCitaRequest) (*model.Cita, error)
	FindAppointment(ctx context.Context, req *model.BuscarCitaRequest) (*model.Cita, error)
	RescheduleAppointment(ctx context.Context, id int64, req *model.ReagendarCitaRequest) (*model.Cita, error)
	CancelAppointment(ctx context.Context, id int64, confirmed bool) (*model.Cita, error)
}

// Resolver is the identity lookup surface.
type Resolver interface {
	Resolve(ctx context.Context, tipoDocumento, numero string) (*model.Persona, error)
}

type Handler struct {
	service  Orchestrator
	identity Resolver
}

func NewHandler(service Orchestrator, identity Resolver) *Handler {
	return &Handler{service: service, identity: identity}
}

// Crear handles POST /citas.
func (h *Handler) Crear(c *gin.Context) {
	var req model.CrearCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.ValidationField("body", "malformed JSON payload"))
		return
	}

	cita, err := h.service.SubmitNewAppointment(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, cita)
}

// Buscar handles POST /citas/buscar.
func (h *Handler) Buscar(c *gin.Context) {
	var req model.BuscarCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.ValidationField("body", "malformed JSON payload"))
		return
	}

	cita, err := h.service.FindAppointment(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, cita)
}

// Reagendar handles PUT /citas/:id/reagendar.
func (h *Handler) Reagendar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.ReagendarCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.ValidationField("body", "malformed JSON payload"))
		return
	}

	cita, err := h.service.RescheduleAppointment(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, cita)
}

// Anular handles PATCH /citas/:id/anular. Confirmation travels as the
// confirmada query flag; without it no upstream call happens.
func (h *Handler) Anular(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	confirmed := c.Query("confirmada") == "true"

	cita, err := h.service.CancelAppointment(c.Request.Context(), id, confirmed)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, cita)
}

// Identidad handles GET /identidad/:numero, the DNI autofill lookup.
func (h *Handler) Identidad(c *gin.Context) {
	persona, err := h.identity.Resolve(c.Request.Context(), model.DocumentoDNI, c.Param("numero"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, persona)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondWithError(c, apperror.ValidationField("id", "appointment id must be a positive integer"))
		return 0, false
	}
	return id, true
}
