package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/tallerpro/booking-api/internal/model"
	"github.com/tallerpro/booking-api/pkg/apperror"
)

// API is the external catalog service. Satisfied by upstream.CatalogClient.
type API interface {
	Marcas(ctx context.Context) ([]model.Marca, error)
	Modelos(ctx context.Context, marcaID int64) ([]model.Modelo, error)
}

// Service proxies the brand/model catalog with a TTL cache and owns the
// fixed service-type and location enumerations.
type Service struct {
	client API
	cache  *cache.Cache
}

func NewService(client API, ttl time.Duration) *Service {
	return &Service{
		client: client,
		cache:  cache.New(ttl, 2*ttl),
	}
}

func (s *Service) Marcas(ctx context.Context) ([]model.Marca, error) {
	if cached, ok := s.cache.Get("marcas"); ok {
		return cached.([]model.Marca), nil
	}

	marcas, err := s.client.Marcas(ctx)
	if err != nil {
		return nil, apperror.Unavailable(err)
	}

	s.cache.SetDefault("marcas", marcas)
	return marcas, nil
}

func (s *Service) Modelos(ctx context.Context, marcaID int64) ([]model.Modelo, error) {
	key := fmt.Sprintf("modelos:%d", marcaID)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.Modelo), nil
	}

	modelos, err := s.client.Modelos(ctx, marcaID)
	if err != nil {
		return nil, apperror.Unavailable(err)
	}

	s.cache.SetDefault(key, modelos)
	return modelos, nil
}

// TiposServicio is the fixed service catalog of the booking form.
func (s *Service) TiposServicio() []model.TipoServicio {
	return []model.TipoServicio{
		{Valor: "preventivo", Nombre: "Preventivo"},
		{Valor: "correctivo", Nombre: "Correctivo"},
		{Valor: "carroceria", Nombre: "Carrocería y Pintura"},
		{Valor: "repuestos", Nombre: "Repuestos y Accesorios"},
	}
}

// Locales lists the workshop locations offered for booking.
func (s *Service) Locales() []model.Local {
	return []model.Local{
		{ID: "lima-victoria", Nombre: "Av. Aviación 1003, La Victoria (Lima)"},
	}
}
