package model

// Estado is the server-owned appointment status. The client never sets it
// directly, only the anular/reagendar operations move it.
type Estado string

const (
	EstadoProgramada Estado = "PROGRAMADA"
	EstadoCompletada Estado = "COMPLETADA"
	EstadoCancelada  Estado = "CANCELADA"
)

// Document types accepted by the booking flow.
const (
	DocumentoDNI       = "DNI"
	DocumentoCE        = "CE"
	DocumentoPasaporte = "PASAPORTE"
)

// Cliente is the client record nested under an appointment.
type Cliente struct {
	ID              int64  `json:"id,omitempty"`
	TipoDocumento   string `json:"tipoDocumento"`
	NumeroDocumento string `json:"numeroDocumento"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Correo          string `json:"correo"`
	Celular         string `json:"celular"`
}

// DetalleVehiculo is the vehicle detail nested under an appointment.
// A nil Placa means the no-plate flag was set at booking time.
type DetalleVehiculo struct {
	TipoVehiculo string  `json:"tipoVehiculo"`
	Placa        *string `json:"placa"`
	MarcaID      int64   `json:"marcaId"`
	ModeloID     int64   `json:"modeloId"`
	Anio         int     `json:"anio"`
	Version      *string `json:"version,omitempty"`
}

// Cita is the appointment record as the Appointment Service returns it.
// ID is server-assigned and absent until creation succeeds.
type Cita struct {
	ID              int64            `json:"id"`
	Cliente         *Cliente         `json:"cliente,omitempty"`
	DetalleVehiculo *DetalleVehiculo `json:"detalleVehiculo,omitempty"`
	Placa           *string          `json:"placa"`
	FechaCita       string           `json:"fechaCita"`
	HoraCita        string           `json:"horaCita"`
	TipoServicio    string           `json:"tipoServicio"`
	LocalAtencion   string           `json:"localAtencion"`
	Estado          Estado           `json:"estado,omitempty"`
	FechaRegistro   string           `json:"fechaRegistro,omitempty"`
}

// CrearCitaRequest is the create payload: client + vehicle + schedule +
// service, exactly as the booking form collects it.
type CrearCitaRequest struct {
	TipoDocumento   string  `json:"tipoDocumento" validate:"required,oneof=DNI CE PASAPORTE"`
	NumeroDocumento string  `json:"numeroDocumento" validate:"required"`
	Nombre          string  `json:"nombre" validate:"required"`
	Apellido        string  `json:"apellido" validate:"required"`
	Correo          string  `json:"correo" validate:"required,email"`
	Celular         string  `json:"celular" validate:"required,celular"`
	AceptaTerminos  bool    `json:"aceptaTerminos" validate:"eq=true"`
	AceptaNovedades bool    `json:"aceptaNovedades"`
	TipoVehiculo    string  `json:"tipoVehiculo" validate:"required,oneof=auto camion"`
	Placa           *string `json:"placa"`
	SinPlaca        bool    `json:"sinPlaca"`
	MarcaID         int64   `json:"marcaId" validate:"required"`
	ModeloID        int64   `json:"modeloId" validate:"required"`
	Anio            int     `json:"anio" validate:"required,min=1990"`
	Version         *string `json:"version,omitempty"`
	Fecha           string  `json:"fecha" validate:"required,fecha"`
	Hora            string  `json:"hora" validate:"required,hora"`
	TipoServicio    string  `json:"tipoServicio" validate:"required,oneof=preventivo correctivo carroceria repuestos"`
	Local           string  `json:"local" validate:"required"`
}

// BuscarCitaRequest identifies an appointment by document and vehicle.
// Exactly one of plate / no-plate flag must hold.
type BuscarCitaRequest struct {
	TipoDocumento   string  `json:"tipoDocumento" validate:"required,oneof=DNI CE PASAPORTE"`
	NumeroDocumento string  `json:"numeroDocumento" validate:"required"`
	Placa           *string `json:"placa"`
	SinPlaca        bool    `json:"sinPlaca"`
}

// ReagendarCitaRequest moves an existing appointment to a new slot.
type ReagendarCitaRequest struct {
	Fecha string `json:"fecha" validate:"required,fecha"`
	Hora  string `json:"hora" validate:"required,hora"`
}
