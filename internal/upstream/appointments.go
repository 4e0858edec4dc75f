package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tallerpro/booking-api/internal/model"
)

// AppointmentsClient talks to the Appointment Service, the system of
// record for availability, conflicts and persistence.
type AppointmentsClient struct {
	c *client
}

func NewAppointmentsClient(baseURL string, timeout time.Duration) *AppointmentsClient {
	return &AppointmentsClient{c: newClient("appointments", baseURL, timeout)}
}

// Crear submits a new appointment and returns the stored record,
// including the server-assigned id.
func (a *AppointmentsClient) Crear(ctx context.Context, req *model.CrearCitaRequest) (*model.Cita, error) {
	var cita model.Cita
	if err := a.c.do(ctx, "crear", http.MethodPost, "/citas", req, &cita); err != nil {
		return nil, err
	}
	return &cita, nil
}

// Buscar looks up the single appointment matching document + vehicle.
func (a *AppointmentsClient) Buscar(ctx context.Context, req *model.BuscarCitaRequest) (*model.Cita, error) {
	var cita model.Cita
	if err := a.c.do(ctx, "buscar", http.MethodPost, "/citas/buscar", req, &cita); err != nil {
		return nil, err
	}
	return &cita, nil
}

// Get refetches one appointment by id. Used after every mutating call:
// the refetched record, not the request payload, is the source of truth.
func (a *AppointmentsClient) Get(ctx context.Context, id int64) (*model.Cita, error) {
	var cita model.Cita
	if err := a.c.do(ctx, "get", http.MethodGet, fmt.Sprintf("/citas/%d", id), nil, &cita); err != nil {
		return nil, err
	}
	return &cita, nil
}

// Reagendar moves the appointment to a new slot.
func (a *AppointmentsClient) Reagendar(ctx context.Context, id int64, req *model.ReagendarCitaRequest) (*model.Cita, error) {
	var cita model.Cita
	if err := a.c.do(ctx, "reagendar", http.MethodPut, fmt.Sprintf("/citas/%d/reagendar", id), req, &cita); err != nil {
		return nil, err
	}
	return &cita, nil
}

// Anular cancels the appointment. The response body may be empty or the
// updated record; either way the caller refetches.
func (a *AppointmentsClient) Anular(ctx context.Context, id int64) error {
	return a.c.do(ctx, "anular", http.MethodPatch, fmt.Sprintf("/citas/%d/anular", id), nil, nil)
}

// List returns all appointments for the admin dashboard.
func (a *AppointmentsClient) List(ctx context.Context) ([]model.Cita, error) {
	var citas []model.Cita
	if err := a.c.do(ctx, "list", http.MethodGet, "/citas", nil, &citas); err != nil {
		return nil, err
	}
	return citas, nil
}
