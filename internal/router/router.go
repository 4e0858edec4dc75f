package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tallerpro/booking-api/config"
	"github.com/tallerpro/booking-api/internal/handler"
	adminHandler "github.com/tallerpro/booking-api/internal/handler/admin"
	authHandler "github.com/tallerpro/booking-api/internal/handler/auth"
	bookingHandler "github.com/tallerpro/booking-api/internal/handler/booking"
	catalogHandler "github.com/tallerpro/booking-api/internal/handler/catalog"
	"github.com/tallerpro/booking-api/internal/middleware"
)

// Router assembles the HTTP surface: the public booking API, the catalog
// proxy and the session-guarded admin group.
type Router struct {
	engine   *gin.Engine
	bookingH *bookingHandler.Handler
	catalogH *catalogHandler.Handler
	authH    *authHandler.Handler
	adminH   *adminHandler.Handler
	verifier middleware.Verifier
	cfg      *config.Config
}

func NewRouter(
	cfg *config.Config,
	logger zerolog.Logger,
	bookingH *bookingHandler.Handler,
	catalogH *catalogHandler.Handler,
	authH *authHandler.Handler,
	adminH *adminHandler.Handler,
	verifier middleware.Verifier,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.ErrorHandler(logger),
		middleware.Metrics(),
		middleware.Timeout(30*time.Second),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	engine.Use(rateLimiter.RateLimit())

	return &Router{
		engine:   engine,
		bookingH: bookingH,
		catalogH: catalogH,
		authH:    authH,
		adminH:   adminH,
		verifier: verifier,
		cfg:      cfg,
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Setup() {
	r.engine.GET("/health", handler.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	api.POST("/citas", r.bookingH.Crear)
	api.POST("/citas/buscar", r.bookingH.Buscar)
	api.PUT("/citas/:id/reagendar", r.bookingH.Reagendar)
	api.PATCH("/citas/:id/anular", r.bookingH.Anular)
	api.GET("/identidad/:numero", r.bookingH.Identidad)

	catalogTTL := int(r.cfg.CatalogCacheTTL / time.Second)
	catalog := api.Group("", middleware.CatalogCache(catalogTTL))
	catalog.GET("/marcas", r.catalogH.Marcas)
	catalog.GET("/modelos/:marcaId", r.catalogH.Modelos)
	catalog.GET("/servicios", r.catalogH.Servicios)
	catalog.GET("/locales", r.catalogH.Locales)

	api.POST("/auth/login", r.authH.Login)
	api.POST("/auth/register", r.authH.Register)

	admin := api.Group("/admin", middleware.RequireSession(r.verifier))
	admin.GET("/citas", r.adminH.ListCitas)
	admin.GET("/citas/:id", r.adminH.GetCita)
	admin.GET("/reportes/resumen", r.adminH.Resumen)
	admin.GET("/auditoria", r.adminH.Auditoria)
}
