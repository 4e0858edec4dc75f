package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tallerpro/booking-api/internal/model"
	"github.com/tallerpro/booking-api/internal/service/audit"
	"github.com/tallerpro/booking-api/internal/service/report"
	"github.com/tallerpro/booking-api/pkg/apperror"
	"github.com/tallerpro/booking-api/pkg/httputil"
)

// Lister reads live appointments for the dashboard.
type Lister interface {
	ListAppointments(ctx context.Context) ([]model.Cita, error)
	GetAppointment(ctx context.Context, id int64) (*model.Cita, error)
}

// Reporter builds the dashboard summary.
type Reporter interface {
	Resumen(ctx context.Context, desde, hasta string) (*report.Summary, error)
}

// AuditReader lists recent audit entries. Nil when the audit database
// is disabled.
type AuditReader interface {
	List(ctx context.Context, limit int) ([]audit.Entry, error)
}

type Handler struct {
	citas    Lister
	reporter Reporter
	trail    AuditReader
}

func NewHandler(citas Lister, reporter Reporter, trail AuditReader) *Handler {
	return &Handler{citas: citas, reporter: reporter, trail: trail}
}

// ListCitas handles GET /admin/citas.
func (h *Handler) ListCitas(c *gin.Context) {
	citas, err := h.citas.ListAppointments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, citas)
}

// GetCita handles GET /admin/citas/:id.
func (h *Handler) GetCita(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondWithError(c, apperror.ValidationField("id", "appointment id must be a positive integer"))
		return
	}

	cita, err := h.citas.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, cita)
}

// Resumen handles GET /admin/reportes/resumen?desde=...&hasta=...
func (h *Handler) Resumen(c *gin.Context) {
	summary, err := h.reporter.Resumen(c.Request.Context(), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, summary)
}

// Auditoria handles GET /admin/auditoria?limit=N.
func (h *Handler) Auditoria(c *gin.Context) {
	if h.trail == nil {
		httputil.RespondWithSuccess(c, http.StatusOK, []audit.Entry{})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := h.trail.List(c.Request.Context(), limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, entries)
}
