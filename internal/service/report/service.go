package report

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tallerpro/booking-api/internal/model"
	"github.com/tallerpro/booking-api/internal/upstream"
	"github.com/tallerpro/booking-api/pkg/apperror"
)

// Lister is the read slice of the Appointment Service the report needs.
type Lister interface {
	List(ctx context.Context) ([]model.Cita, error)
}

// Summary aggregates the admin dashboard counters. All numbers are
// computed from the live appointment list; nothing is stored locally.
type Summary struct {
	Total     int            `json:"total"`
	PorEstado map[string]int `json:"porEstado"`
	PorTipo   map[string]int `json:"porTipoServicio"`
	PorLocal  map[string]int `json:"porLocal"`
	PorDia    []DiaCount     `json:"porDia"`
	Desde     string         `json:"desde,omitempty"`
	Hasta     string         `json:"hasta,omitempty"`
	Filtradas int            `json:"filtradas"`
}

// DiaCount is one day's appointment count, sorted ascending by date.
type DiaCount struct {
	Fecha string `json:"fecha"`
	Total int    `json:"total"`
}

type Service struct {
	citas  Lister
	logger zerolog.Logger
}

func NewService(citas Lister, logger zerolog.Logger) *Service {
	return &Service{
		citas:  citas,
		logger: logger.With().Str("service", "report").Logger(),
	}
}

// Resumen builds the dashboard summary. Empty desde/hasta means an open
// bound; dates compare lexically because they are ISO formatted.
func (s *Service) Resumen(ctx context.Context, desde, hasta string) (*Summary, error) {
	citas, err := s.citas.List(ctx)
	if err != nil {
		var upErr *upstream.Error
		if errors.As(err, &upErr) && upErr.IsServerError() {
			return nil, apperror.Unavailable(err)
		}
		return nil, apperror.Internal(err)
	}

	summary := &Summary{
		Total:     len(citas),
		PorEstado: make(map[string]int),
		PorTipo:   make(map[string]int),
		PorLocal:  make(map[string]int),
		Desde:     desde,
		Hasta:     hasta,
	}

	porDia := make(map[string]int)
	for _, cita := range citas {
		if desde != "" && cita.FechaCita < desde {
			continue
		}
		if hasta != "" && cita.FechaCita > hasta {
			continue
		}
		summary.Filtradas++
		summary.PorEstado[string(cita.Estado)]++
		summary.PorTipo[cita.TipoServicio]++
		summary.PorLocal[cita.LocalAtencion]++
		porDia[cita.FechaCita]++
	}

	summary.PorDia = make([]DiaCount, 0, len(porDia))
	for fecha, total := range porDia {
		summary.PorDia = append(summary.PorDia, DiaCount{Fecha: fecha, Total: total})
	}
	sort.Slice(summary.PorDia, func(i, j int) bool {
		return summary.PorDia[i].Fecha < summary.PorDia[j].Fecha
	})

	return summary, nil
}
