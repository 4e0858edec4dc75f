package booking

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

type fakeCitas struct {
	crearCalls     int
	buscarCalls    int
	getCalls       int
	reagendarCalls int
	anularCalls    int

	lastCrear     *model.CrearCitaRequest
	lastReagendar *model.ReagendarCitaRequest

	crearResp    *model.Cita
	crearErr     error
	buscarResp   *model.Cita
	buscarErr    error
	getResps     []*model.Cita
	getErr       error
	reagendarErr error
	anularErr    error
}

func (f *fakeCitas) Crear(_ context.Context, req *model.CrearCitaRequest) (*model.Cita, error) {
	f.crearCalls++
	f.lastCrear = req
	return f.crearResp, f.crearErr
}

func (f *fakeCitas) Buscar(_ context.Context, _ *model.BuscarCitaRequest) (*model.Cita, error) {
	f.buscarCalls++
	return f.buscarResp, f.buscarErr
}

func (f *fakeCitas) Get(_ context.Context, _ int64) (*model.Cita, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if len(f.getResps) == 0 {
		return nil, &upstream.Error{Service: "appointments", StatusCode: 404, Message: "cita no encontrada"}
	}
	cita := f.getResps[0]
	f.getResps = f.getResps[1:]
	return cita, nil
}

func (f *fakeCitas) Reagendar(_ context.Context, _ int64, req *model.ReagendarCitaRequest) (*model.Cita, error) {
	f.reagendarCalls++
	f.lastReagendar = req
	if f.reagendarErr != nil {
		return nil, f.reagendarErr
	}
	// Deliberately returns a stale echo: callers must refetch instead.
	return &model.Cita{ID: 42, FechaCita: "1999-01-01", HoraCita: "00:00:00"}, nil
}

func (f *fakeCitas) Anular(_ context.Context, _ int64) error {
	f.anularCalls++
	return f.anularErr
}

func (f *fakeCitas) List(_ context.Context) ([]model.Cita, error) {
	return nil, nil
}

func (f *fakeCitas) networkCalls() int {
	return f.crearCalls + f.buscarCalls + f.getCalls + f.reagendarCalls + f.anularCalls
}

type fakeGuard struct {
	reserved bool
	releases int
}

func (g *fakeGuard) Reserve(context.Context, string) (bool, error) { return g.reserved, nil }
func (g *fakeGuard) Release(context.Context, string)               { g.releases++ }

type fakeMailer struct {
	confirmations int
	notices       int
	lastTo        string
}

func (m *fakeMailer) SendConfirmation(_ context.Context, to string, _ *model.Cita) error {
	m.confirmations++
	m.lastTo = to
	return nil
}

func (m *fakeMailer) SendRescheduleNotice(_ context.Context, to string, _ *model.Cita) error {
	m.notices++
	m.lastTo = to
	return nil
}

type auditCall struct {
	operation string
	outcome   string
}

type fakeAuditor struct {
	calls []auditCall
}

func (a *fakeAuditor) Record(_ context.Context, operation, outcome string, _ *int64, _ string) {
	a.calls = append(a.calls, auditCall{operation: operation, outcome: outcome})
}

func newTestService(citas *fakeCitas) (*Service, *fakeGuard, *fakeMailer, *fakeAuditor) {
	guard := &fakeGuard{reserved: true}
	mailer := &fakeMailer{}
	auditor := &fakeAuditor{}
	return NewService(citas, guard, auditor, mailer, zerolog.Nop()), guard, mailer, auditor
}

func strptr(s string) *string { return &s }

func validCrear() *model.CrearCitaRequest {
	return &model.CrearCitaRequest{
		TipoDocumento:   model.DocumentoDNI,
		NumeroDocumento: "45678912",
		Nombre:          "María",
		Apellido:        "Quispe Huamán",
		Correo:          "maria@example.com",
		Celular:         "987654321",
		AceptaTerminos:  true,
		TipoVehiculo:    "auto",
		Placa:           strptr("abc-123"),
		MarcaID:         3,
		ModeloID:        17,
		Anio:            2019,
		Fecha:           "2026-09-15",
		Hora:            "10:30",
		TipoServicio:    "preventivo",
		Local:           "Surquillo",
	}
}

func TestSubmitInvalidDocumentMakesNoNetworkCall(t *testing.T) {
	citas := &fakeCitas{}
	svc, _, mailer, auditor := newTestService(citas)

	req := validCrear()
	req.NumeroDocumento = "4567891" // 7 digits

	_, err := svc.SubmitNewAppointment(context.Background(), req)

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
	appErr := apperror.From(err)
	assert.Contains(t, appErr.Fields, "numeroDocumento")
	assert.Equal(t, 0, citas.networkCalls())
	assert.Equal(t, 0, mailer.confirmations)
	require.Len(t, auditor.calls, 1)
	assert.Equal(t, auditCall{operation: "submit", outcome: "VALIDATION_ERROR"}, auditor.calls[0])
}

func TestSubmitNormalizesPayloadAndSendsConfirmation(t *testing.T) {
	stored := &model.Cita{
		ID:            42,
		Cliente:       &model.Cliente{Correo: "maria@example.com"},
		FechaCita:     "2026-09-15",
		HoraCita:      "10:30:00",
		Estado:        model.EstadoProgramada,
		TipoServicio:  "preventivo",
		LocalAtencion: "Surquillo",
	}
	citas := &fakeCitas{crearResp: stored}
	svc, _, mailer, auditor := newTestService(citas)

	cita, err := svc.SubmitNewAppointment(context.Background(), validCrear())

	require.NoError(t, err)
	assert.Equal(t, int64(42), cita.ID)
	require.NotNil(t, citas.lastCrear.Placa)
	assert.Equal(t, "ABC-123", *citas.lastCrear.Placa)
	assert.Equal(t, "10:30:00", citas.lastCrear.Hora)
	assert.Equal(t, 1, mailer.confirmations)
	assert.Equal(t, "maria@example.com", mailer.lastTo)
	require.Len(t, auditor.calls, 1)
	assert.Equal(t, "success", auditor.calls[0].outcome)
}

func TestSubmitSinPlacaDropsPlate(t *testing.T) {
	citas := &fakeCitas{crearResp: &model.Cita{ID: 7}}
	svc, _, _, _ := newTestService(citas)

	req := validCrear()
	req.Placa = nil
	req.SinPlaca = true

	_, err := svc.SubmitNewAppointment(context.Background(), req)

	require.NoError(t, err)
	assert.Nil(t, citas.lastCrear.Placa)
}

func TestSubmitDuplicateReservation(t *testing.T) {
	citas := &fakeCitas{}
	svc, guard, _, _ := newTestService(citas)
	guard.reserved = false

	_, err := svc.SubmitNewAppointment(context.Background(), validCrear())

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeDuplicateSubmission))
	assert.Equal(t, 0, citas.crearCalls)
}

func TestSubmitRejectedKeepsUpstreamMessage(t *testing.T) {
	citas := &fakeCitas{crearErr: &upstream.Error{
		Service:    "appointments",
		StatusCode: 400,
		Message:    "ya existe una cita activa para este vehículo",
	}}
	svc, guard, mailer, _ := newTestService(citas)

	_, err := svc.SubmitNewAppointment(context.Background(), validCrear())

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeSubmissionRejected))
	assert.Equal(t, "ya existe una cita activa para este vehículo", apperror.From(err).Message)
	assert.Equal(t, 1, guard.releases)
	assert.Equal(t, 0, mailer.confirmations)
}

func TestSubmitUpstreamDown(t *testing.T) {
	citas := &fakeCitas{crearErr: &upstream.Error{Service: "appointments", Message: "connection refused"}}
	svc, _, _, _ := newTestService(citas)

	_, err := svc.SubmitNewAppointment(context.Background(), validCrear())

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeServiceUnavailable))
}

func TestFindNotFoundIsRecoverableNoMatch(t *testing.T) {
	citas := &fakeCitas{buscarErr: &upstream.Error{Service: "appointments", StatusCode: 404, Message: "sin resultados"}}
	svc, _, _, _ := newTestService(citas)

	_, err := svc.FindAppointment(context.Background(), &model.BuscarCitaRequest{
		TipoDocumento:   model.DocumentoDNI,
		NumeroDocumento: "45678912",
		Placa:           strptr("ABC-123"),
	})

	require.Error(t, err)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.CodeAppointmentNotFound, appErr.Code)
	assert.Equal(t, 404, appErr.HTTPStatus())
	assert.Equal(t, "no appointment matches those details, verify and retry", appErr.Message)
}

func TestFindOtherClientErrorIsNoMatch(t *testing.T) {
	citas := &fakeCitas{buscarErr: &upstream.Error{Service: "appointments", StatusCode: 400, Message: "solicitud inválida"}}
	svc, _, _, _ := newTestService(citas)

	_, err := svc.FindAppointment(context.Background(), &model.BuscarCitaRequest{
		TipoDocumento:   model.DocumentoDNI,
		NumeroDocumento: "45678912",
		SinPlaca:        true,
	})

	require.Error(t, err)
	assert.Equal(t, apperror.CodeNoMatch, apperror.From(err).Code)
}

func TestFindValidatesBeforeNetwork(t *testing.T) {
	citas := &fakeCitas{}
	svc, _, _, _ := newTestService(citas)

	_, err := svc.FindAppointment(context.Background(), &model.BuscarCitaRequest{
		TipoDocumento:   model.DocumentoDNI,
		NumeroDocumento: "45678912",
		Placa:           strptr("ABC-123"),
		SinPlaca:        true, // both set
	})

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
	assert.Equal(t, 0, citas.networkCalls())
}

func TestRescheduleReturnsRefetchedRecord(t *testing.T) {
	citas := &fakeCitas{getResps: []*model.Cita{
		{ID: 42, Estado: model.EstadoProgramada, FechaCita: "2026-09-15", HoraCita: "10:30:00"},
		{ID: 42, Estado: model.EstadoProgramada, FechaCita: "2026-09-20", HoraCita: "15:00:00",
			Cliente: &model.Cliente{Correo: "maria@example.com"}},
	}}
	svc, _, mailer, _ := newTestService(citas)

	cita, err := svc.RescheduleAppointment(context.Background(), 42, &model.ReagendarCitaRequest{
		Fecha: "2026-09-20",
		Hora:  "15:00",
	})

	require.NoError(t, err)
	// The fake's Reagendar echoes a bogus record; the result must come
	// from the second Get.
	assert.Equal(t, "2026-09-20", cita.FechaCita)
	assert.Equal(t, "15:00:00", cita.HoraCita)
	assert.Equal(t, 2, citas.getCalls)
	assert.Equal(t, 1, citas.reagendarCalls)
	assert.Equal(t, "15:00:00", citas.lastReagendar.Hora)
	assert.Equal(t, 1, mailer.notices)
}

func TestRescheduleRefetchMismatchIsStale(t *testing.T) {
	citas := &fakeCitas{getResps: []*model.Cita{
		{ID: 42, Estado: model.EstadoProgramada},
		{ID: 42, Estado: model.EstadoProgramada, FechaCita: "2026-09-15", HoraCita: "10:30:00"},
	}}
	svc, _, mailer, _ := newTestService(citas)

	_, err := svc.RescheduleAppointment(context.Background(), 42, &model.ReagendarCitaRequest{
		Fecha: "2026-09-20",
		Hora:  "15:00",
	})

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeStaleState))
	assert.Equal(t, 0, mailer.notices)
}

func TestRescheduleRejectsNonScheduled(t *testing.T) {
	citas := &fakeCitas{getResps: []*model.Cita{
		{ID: 42, Estado: model.EstadoCancelada},
	}}
	svc, _, _, _ := newTestService(citas)

	_, err := svc.RescheduleAppointment(context.Background(), 42, &model.ReagendarCitaRequest{
		Fecha: "2026-09-20",
		Hora:  "15:00",
	})

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeStaleState))
	assert.Equal(t, 0, citas.reagendarCalls)
}

func TestRescheduleSlotConflictIsStale(t *testing.T) {
	citas := &fakeCitas{
		getResps:     []*model.Cita{{ID: 42, Estado: model.EstadoProgramada}},
		reagendarErr: &upstream.Error{Service: "appointments", StatusCode: 409, Message: "el horario ya no está disponible"},
	}
	svc, _, _, _ := newTestService(citas)

	_, err := svc.RescheduleAppointment(context.Background(), 42, &model.ReagendarCitaRequest{
		Fecha: "2026-09-20",
		Hora:  "15:00",
	})

	require.Error(t, err)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.CodeStaleState, appErr.Code)
	assert.Equal(t, "el horario ya no está disponible", appErr.Message)
}

func TestCancelWithoutConfirmationMakesNoNetworkCall(t *testing.T) {
	citas := &fakeCitas{}
	svc, _, _, auditor := newTestService(citas)

	_, err := svc.CancelAppointment(context.Background(), 42, false)

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
	assert.Contains(t, apperror.From(err).Fields, "confirmada")
	assert.Equal(t, 0, citas.networkCalls())
	require.Len(t, auditor.calls, 1)
	assert.Equal(t, "cancel", auditor.calls[0].operation)
}

func TestCancelConfirmedRefetchesFinalState(t *testing.T) {
	citas := &fakeCitas{getResps: []*model.Cita{
		{ID: 42, Estado: model.EstadoProgramada},
		{ID: 42, Estado: model.EstadoCancelada},
	}}
	svc, _, _, auditor := newTestService(citas)

	cita, err := svc.CancelAppointment(context.Background(), 42, true)

	require.NoError(t, err)
	assert.Equal(t, model.EstadoCancelada, cita.Estado)
	assert.Equal(t, 1, citas.anularCalls)
	assert.Equal(t, 2, citas.getCalls)
	require.Len(t, auditor.calls, 1)
	assert.Equal(t, "success", auditor.calls[0].outcome)
}

func TestCancelRefetchStillScheduledIsStale(t *testing.T) {
	citas := &fakeCitas{getResps: []*model.Cita{
		{ID: 42, Estado: model.EstadoProgramada},
		{ID: 42, Estado: model.EstadoProgramada},
	}}
	svc, _, _, _ := newTestService(citas)

	_, err := svc.CancelAppointment(context.Background(), 42, true)

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeStaleState))
}

func TestCancelAlreadyCancelled(t *testing.T) {
	citas := &fakeCitas{getResps: []*model.Cita{
		{ID: 42, Estado: model.EstadoCancelada},
	}}
	svc, _, _, _ := newTestService(citas)

	_, err := svc.CancelAppointment(context.Background(), 42, true)

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeStaleState))
	assert.Equal(t, 0, citas.anularCalls)
}
