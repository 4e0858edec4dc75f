package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tallerpro/booking-api/internal/email"
	"github.com/tallerpro/booking-api/internal/flow"
	"github.com/tallerpro/booking-api/internal/model"
	"github.com/tallerpro/booking-api/internal/service/audit"
	"github.com/tallerpro/booking-api/internal/upstream"
	"github.com/tallerpro/booking-api/internal/validation"
	"github.com/tallerpro/booking-api/pkg/apperror"
	"github.com/tallerpro/booking-api/pkg/metrics"
)

// AppointmentsAPI is the slice of the Appointment Service the
// orchestrator needs. Satisfied by upstream.AppointmentsClient.
type AppointmentsAPI interface {
	Crear(ctx context.Context, req *model.CrearCitaRequest) (*model.Cita, error)
	Buscar(ctx context.Context, req *model.BuscarCitaRequest) (*model.Cita, error)
	Get(ctx context.Context, id int64) (*model.Cita, error)
	Reagendar(ctx context.Context, id int64, req *model.ReagendarCitaRequest) (*model.Cita, error)
	Anular(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Cita, error)
}

// Service orchestrates the appointment lifecycle against the Appointment
// Service. It owns the ordering rules: local validation always runs
// before any network call, every successful mutation is followed by a
// refetch, and the refetched record is what callers get back.
type Service struct {
	citas   AppointmentsAPI
	guard   Guard
	auditor audit.Recorder
	mailer  email.Sender
	logger  zerolog.Logger
}

func NewService(citas AppointmentsAPI, guard Guard, auditor audit.Recorder, mailer email.Sender, logger zerolog.Logger) *Service {
	if guard == nil {
		guard = NopGuard{}
	}
	if auditor == nil {
		auditor = audit.NopRecorder{}
	}
	if mailer == nil {
		mailer = email.Nop{}
	}
	return &Service{
		citas:   citas,
		guard:   guard,
		auditor: auditor,
		mailer:  mailer,
		logger:  logger.With().Str("service", "booking").Logger(),
	}
}

// SubmitNewAppointment validates, reserves the submission slot and
// creates the appointment. The returned record is the one the
// Appointment Service stored, server-assigned id included.
func (s *Service) SubmitNewAppointment(ctx context.Context, req *model.CrearCitaRequest) (*model.Cita, error) {
	f := flow.New(flow.StateDraft)

	if err := validation.Validate(req); err != nil {
		s.finish(ctx, f, "submit", nil, err)
		return nil, err
	}
	normalizeCrear(req)

	key := submissionKey(req)
	reserved, err := s.guard.Reserve(ctx, key)
	if err != nil {
		s.finish(ctx, f, "submit", nil, apperror.Internal(err))
		return nil, apperror.Internal(err)
	}
	if !reserved {
		dup := apperror.DuplicateSubmission()
		s.finish(ctx, f, "submit", nil, dup)
		return nil, dup
	}

	_ = f.Transition(flow.StateSubmitting)

	cita, err := s.citas.Crear(ctx, req)
	if err != nil {
		s.guard.Release(ctx, key)
		appErr := mapSubmitError(err)
		s.finish(ctx, f, "submit", nil, appErr)
		return nil, appErr
	}

	_ = f.Transition(flow.StateScheduled)
	s.finish(ctx, f, "submit", &cita.ID, nil)

	if to := clienteCorreo(cita, req.Correo); to != "" {
		if err := s.mailer.SendConfirmation(ctx, to, cita); err != nil {
			s.logger.Warn().Err(err).Int64("cita_id", cita.ID).Msg("confirmation email failed")
		}
	}
	return cita, nil
}

// FindAppointment resolves document + vehicle to the matching
// appointment. A 404 and any other 4xx both read as "no match" to the
// operator; only the internal code differs.
func (s *Service) FindAppointment(ctx context.Context, req *model.BuscarCitaRequest) (*model.Cita, error) {
	f := flow.New(flow.StateScheduled)

	if err := validation.Validate(req); err != nil {
		s.finish(ctx, f, "search", nil, err)
		return nil, err
	}
	normalizeBuscar(req)

	_ = f.Transition(flow.StateSearching)

	cita, err := s.citas.Buscar(ctx, req)
	if err != nil {
		appErr := mapSearchError(err)
		s.finish(ctx, f, "search", nil, appErr)
		return nil, appErr
	}

	_ = f.Transition(flow.StateFound)
	s.finish(ctx, f, "search", &cita.ID, nil)
	return cita, nil
}

// RescheduleAppointment moves a scheduled appointment to a new slot,
// then refetches it. The refetched record is authoritative: if it does
// not show the requested slot, the local view was stale.
func (s *Service) RescheduleAppointment(ctx context.Context, id int64, req *model.ReagendarCitaRequest) (*model.Cita, error) {
	f := flow.New(flow.StateFound)

	if err := validation.Validate(req); err != nil {
		s.finish(ctx, f, "reschedule", &id, err)
		return nil, err
	}
	req.Hora = normalizeHora(req.Hora)

	current, err := s.citas.Get(ctx, id)
	if err != nil {
		appErr := mapLookupError(err)
		s.finish(ctx, f, "reschedule", &id, appErr)
		return nil, appErr
	}
	if current.Estado != model.EstadoProgramada {
		appErr := apperror.StaleState(fmt.Sprintf("appointment is %s, only scheduled appointments can be rescheduled", current.Estado))
		s.finish(ctx, f, "reschedule", &id, appErr)
		return nil, appErr
	}

	_ = f.Transition(flow.StateRescheduling)

	if _, err := s.citas.Reagendar(ctx, id, req); err != nil {
		appErr := mapMutateError(err)
		s.finish(ctx, f, "reschedule", &id, appErr)
		return nil, appErr
	}

	refetched, err := s.citas.Get(ctx, id)
	if err != nil {
		// The slot may have moved; without the refetch we cannot show it.
		appErr := apperror.StaleState("the change was submitted but could not be verified, please refresh")
		s.finish(ctx, f, "reschedule", &id, appErr)
		return nil, appErr
	}
	if refetched.FechaCita != req.Fecha || normalizeHora(refetched.HoraCita) != req.Hora {
		appErr := apperror.StaleState("")
		s.finish(ctx, f, "reschedule", &id, appErr)
		return nil, appErr
	}

	_ = f.Transition(flow.StateScheduled)
	s.finish(ctx, f, "reschedule", &id, nil)

	if to := clienteCorreo(refetched, ""); to != "" {
		if err := s.mailer.SendRescheduleNotice(ctx, to, refetched); err != nil {
			s.logger.Warn().Err(err).Int64("cita_id", id).Msg("reschedule email failed")
		}
	}
	return refetched, nil
}

// CancelAppointment cancels a scheduled appointment. Without explicit
// confirmation no network call is made at all.
func (s *Service) CancelAppointment(ctx context.Context, id int64, confirmed bool) (*model.Cita, error) {
	f := flow.New(flow.StateFound)

	if !confirmed {
		err := apperror.ValidationField("confirmada", "cancellation requires explicit confirmation")
		s.finish(ctx, f, "cancel", &id, err)
		return nil, err
	}

	current, err := s.citas.Get(ctx, id)
	if err != nil {
		appErr := mapLookupError(err)
		s.finish(ctx, f, "cancel", &id, appErr)
		return nil, appErr
	}
	if current.Estado != model.EstadoProgramada {
		appErr := apperror.StaleState(fmt.Sprintf("appointment is %s, only scheduled appointments can be cancelled", current.Estado))
		s.finish(ctx, f, "cancel", &id, appErr)
		return nil, appErr
	}

	_ = f.Transition(flow.StateCancelling)

	if err := s.citas.Anular(ctx, id); err != nil {
		appErr := mapMutateError(err)
		s.finish(ctx, f, "cancel", &id, appErr)
		return nil, appErr
	}

	refetched, err := s.citas.Get(ctx, id)
	if err != nil {
		appErr := apperror.StaleState("the cancellation was submitted but could not be verified, please refresh")
		s.finish(ctx, f, "cancel", &id, appErr)
		return nil, appErr
	}
	if refetched.Estado != model.EstadoCancelada {
		appErr := apperror.StaleState("")
		s.finish(ctx, f, "cancel", &id, appErr)
		return nil, appErr
	}

	_ = f.Transition(flow.StateCancelled)
	s.finish(ctx, f, "cancel", &id, nil)
	return refetched, nil
}

// GetAppointment refetches one appointment by id.
func (s *Service) GetAppointment(ctx context.Context, id int64) (*model.Cita, error) {
	cita, err := s.citas.Get(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return cita, nil
}

// ListAppointments returns every appointment, for the admin dashboard.
func (s *Service) ListAppointments(ctx context.Context) ([]model.Cita, error) {
	citas, err := s.citas.List(ctx)
	if err != nil {
		var upErr *upstream.Error
		if errors.As(err, &upErr) && upErr.IsServerError() {
			return nil, apperror.Unavailable(err)
		}
		return nil, apperror.Internal(err)
	}
	return citas, nil
}

// finish records the terminal flow state of one operation in metrics,
// the audit trail and the log. On error the flow is moved into its
// failure state first.
func (s *Service) finish(ctx context.Context, f *flow.Flow, operation string, citaID *int64, opErr error) {
	outcome := "success"
	detail := ""
	if opErr != nil {
		f.Fail()
		appErr := apperror.From(opErr)
		outcome = string(appErr.Code)
		detail = appErr.Message
	}

	metrics.BookingOperations.WithLabelValues(operation, outcome).Inc()
	s.auditor.Record(ctx, operation, outcome, citaID, detail)

	evt := s.logger.Info()
	if opErr != nil {
		evt = s.logger.Warn().Err(opErr)
	}
	evt.Str("operation", operation).
		Str("outcome", outcome).
		Str("flow_state", string(f.State())).
		Msg("booking operation finished")
}

// normalizeCrear canonicalizes the payload after validation: plates
// uppercase, the no-plate flag wins over any plate text, times carry
// seconds the way the Appointment Service stores them.
func normalizeCrear(req *model.CrearCitaRequest) {
	if req.SinPlaca {
		req.Placa = nil
	} else if req.Placa != nil {
		p := strings.ToUpper(strings.TrimSpace(*req.Placa))
		req.Placa = &p
	}
	req.Hora = normalizeHora(req.Hora)
	req.NumeroDocumento = strings.TrimSpace(req.NumeroDocumento)
}

func normalizeBuscar(req *model.BuscarCitaRequest) {
	if req.SinPlaca {
		req.Placa = nil
	} else if req.Placa != nil {
		p := strings.ToUpper(strings.TrimSpace(*req.Placa))
		req.Placa = &p
	}
	req.NumeroDocumento = strings.TrimSpace(req.NumeroDocumento)
}

// normalizeHora pads HH:MM to HH:MM:SS so slot comparisons against the
// stored record never fail on the seconds component.
func normalizeHora(hora string) string {
	if len(hora) == 5 {
		return hora + ":00"
	}
	return hora
}

func submissionKey(req *model.CrearCitaRequest) string {
	placa := "sin-placa"
	if req.Placa != nil {
		placa = *req.Placa
	}
	return fmt.Sprintf("booking:submit:%s:%s:%s:%s:%s",
		req.TipoDocumento, req.NumeroDocumento, placa, req.Fecha, req.Hora)
}

// clienteCorreo picks the address to notify: the stored record's client
// when present, otherwise the fallback from the request.
func clienteCorreo(cita *model.Cita, fallback string) string {
	if cita.Cliente != nil && cita.Cliente.Correo != "" {
		return cita.Cliente.Correo
	}
	return fallback
}

func mapSubmitError(err error) *apperror.AppError {
	var upErr *upstream.Error
	if !errors.As(err, &upErr) {
		return apperror.Internal(err)
	}
	switch {
	case upErr.IsServerError():
		return apperror.Unavailable(err)
	case upErr.IsConflict():
		return apperror.StaleState(upErr.Message)
	default:
		// Show the backend's own rejection reason verbatim.
		return apperror.SubmissionRejected(upErr.Message, err)
	}
}

func mapSearchError(err error) *apperror.AppError {
	var upErr *upstream.Error
	if !errors.As(err, &upErr) {
		return apperror.Internal(err)
	}
	switch {
	case upErr.IsServerError():
		return apperror.Unavailable(err)
	case upErr.IsNotFound():
		return apperror.NoMatch(apperror.CodeAppointmentNotFound)
	default:
		return apperror.NoMatch(apperror.CodeNoMatch)
	}
}

func mapLookupError(err error) *apperror.AppError {
	var upErr *upstream.Error
	if !errors.As(err, &upErr) {
		return apperror.Internal(err)
	}
	switch {
	case upErr.IsServerError():
		return apperror.Unavailable(err)
	case upErr.IsNotFound():
		return apperror.NoMatch(apperror.CodeAppointmentNotFound)
	default:
		return apperror.Internal(err)
	}
}

func mapMutateError(err error) *apperror.AppError {
	var upErr *upstream.Error
	if !errors.As(err, &upErr) {
		return apperror.Internal(err)
	}
	switch {
	case upErr.IsServerError():
		return apperror.Unavailable(err)
	case upErr.IsConflict():
		return apperror.StaleState(upErr.Message)
	case upErr.IsNotFound():
		return apperror.NoMatch(apperror.CodeAppointmentNotFound)
	default:
		return apperror.SubmissionRejected(upErr.Message, err)
	}
}
