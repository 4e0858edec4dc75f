package identity

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/tallerpro/booking-api/internal/model"
	"github.com/tallerpro/booking-api/pkg/apperror"
)

// Lookuper is the external identity API. Satisfied by
// upstream.IdentityClient.
type Lookuper interface {
	Lookup(ctx context.Context, numero string) (*model.Persona, error)
}

const dniLength = 8

// Service resolves DNI numbers to legal names. The lookup fires only for
// documentType DNI at exactly 8 digits; everything else is rejected
// locally so no stale or partial lookups ever happen.
type Service struct {
	client Lookuper
	cache  *cache.Cache
	logger zerolog.Logger
}

func NewService(client Lookuper, ttl time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger.With().Str("service", "identity").Logger(),
	}
}

// Resolve returns the legal name for a DNI. Failures map to the
// identity-lookup category: the booking flow continues with manual entry.
func (s *Service) Resolve(ctx context.Context, tipoDocumento, numero string) (*model.Persona, error) {
	if tipoDocumento != model.DocumentoDNI {
		return nil, apperror.ValidationField("tipoDocumento", "identity lookup is only available for DNI")
	}
	if len(numero) != dniLength || !allDigits(numero) {
		return nil, apperror.ValidationField("numeroDocumento", "DNI must be exactly 8 digits")
	}

	if cached, ok := s.cache.Get(numero); ok {
		return cached.(*model.Persona), nil
	}

	persona, err := s.client.Lookup(ctx, numero)
	if err != nil {
		s.logger.Warn().Err(err).Str("dni", numero).Msg("identity lookup failed")
		return nil, apperror.IdentityLookup(err)
	}

	s.cache.SetDefault(numero, persona)
	return persona, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
