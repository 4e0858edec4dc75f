package report

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallerpro/booking-api/internal/model"
	"github.com/tallerpro/booking-api/internal/upstream"
	"github.com/tallerpro/booking-api/pkg/apperror"
)

type fakeLister struct {
	citas []model.Cita
	err   error
}

func (f *fakeLister) List(context.Context) ([]model.Cita, error) {
	return f.citas, f.err
}

func sampleCitas() []model.Cita {
	return []model.Cita{
		{FechaCita: "2026-09-01", Estado: model.EstadoProgramada, TipoServicio: "preventivo", LocalAtencion: "Surquillo"},
		{FechaCita: "2026-09-01", Estado: model.EstadoCancelada, TipoServicio: "correctivo", LocalAtencion: "Surquillo"},
		{FechaCita: "2026-09-03", Estado: model.EstadoProgramada, TipoServicio: "preventivo", LocalAtencion: "Ate"},
		{FechaCita: "2026-09-10", Estado: model.EstadoCompletada, TipoServicio: "repuestos", LocalAtencion: "Ate"},
	}
}

func TestResumenAggregates(t *testing.T) {
	svc := NewService(&fakeLister{citas: sampleCitas()}, zerolog.Nop())

	summary, err := svc.Resumen(context.Background(), "", "")

	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 4, summary.Filtradas)
	assert.Equal(t, 2, summary.PorEstado["PROGRAMADA"])
	assert.Equal(t, 1, summary.PorEstado["CANCELADA"])
	assert.Equal(t, 2, summary.PorTipo["preventivo"])
	assert.Equal(t, 2, summary.PorLocal["Ate"])
	require.Len(t, summary.PorDia, 3)
	assert.Equal(t, DiaCount{Fecha: "2026-09-01", Total: 2}, summary.PorDia[0])
	assert.Equal(t, DiaCount{Fecha: "2026-09-10", Total: 1}, summary.PorDia[2])
}

func TestResumenDateRange(t *testing.T) {
	svc := NewService(&fakeLister{citas: sampleCitas()}, zerolog.Nop())

	summary, err := svc.Resumen(context.Background(), "2026-09-02", "2026-09-09")

	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 1, summary.Filtradas)
	assert.Equal(t, 1, summary.PorEstado["PROGRAMADA"])
	assert.Empty(t, summary.PorEstado["CANCELADA"])
	require.Len(t, summary.PorDia, 1)
	assert.Equal(t, "2026-09-03", summary.PorDia[0].Fecha)
}

func TestResumenUpstreamDown(t *testing.T) {
	svc := NewService(&fakeLister{err: &upstream.Error{Service: "appointments", StatusCode: 503, Message: "maintenance"}}, zerolog.Nop())

	_, err := svc.Resumen(context.Background(), "", "")

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeServiceUnavailable))
}
