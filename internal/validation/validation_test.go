package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallerpro/booking-api/internal/model"
)

func strptr(s string) *string { return &s }

func validCrearRequest() model.CrearCitaRequest {
	return model.CrearCitaRequest{
		TipoDocumento:   model.DocumentoDNI,
		NumeroDocumento: "12345678",
		Nombre:          "Maria",
		Apellido:        "Quispe Huaman",
		Correo:          "maria@example.com",
		Celular:         "987654321",
		AceptaTerminos:  true,
		TipoVehiculo:    "auto",
		Placa:           strptr("ABC-123"),
		MarcaID:         1,
		ModeloID:        3,
		Anio:            2022,
		Fecha:           "2025-10-21",
		Hora:            "08:20:00",
		TipoServicio:    "preventivo",
		Local:           "Av. Aviación 1003, La Victoria (Lima)",
	}
}

func TestDocumentNumberValid(t *testing.T) {
	tests := []struct {
		tipo   string
		numero string
		ok     bool
	}{
		{model.DocumentoDNI, "12345678", true},
		{model.DocumentoDNI, "1234567", false},
		{model.DocumentoDNI, "123456789", false},
		{model.DocumentoDNI, "1234567a", false},
		{model.DocumentoCE, "123456789", true},
		{model.DocumentoCE, "ABC123456789", true},
		{model.DocumentoCE, "12345678", false},
		{model.DocumentoCE, "1234567890123", false},
		{model.DocumentoPasaporte, "AB1234", true},
		{model.DocumentoPasaporte, "AB123", false},
		{model.DocumentoPasaporte, "ABCDEF1234567", false},
		{"CARNET", "12345678", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, DocumentNumberValid(tt.tipo, tt.numero),
			"%s %s", tt.tipo, tt.numero)
	}
}

func TestValidateCrearCita(t *testing.T) {
	assert.Nil(t, Validate(validCrearRequest()))
}

func TestValidateCrearCitaShortDNI(t *testing.T) {
	req := validCrearRequest()
	req.NumeroDocumento = "1234567"

	err := Validate(req)
	require.NotNil(t, err)
	assert.Contains(t, err.Fields, "numeroDocumento")
}

func TestValidateCrearCitaPhone(t *testing.T) {
	req := validCrearRequest()
	req.Celular = "12345678"

	err := Validate(req)
	require.NotNil(t, err)
	assert.Contains(t, err.Fields, "celular")
}

func TestValidateCrearCitaTermsNotAccepted(t *testing.T) {
	req := validCrearRequest()
	req.AceptaTerminos = false

	err := Validate(req)
	require.NotNil(t, err)
	assert.Contains(t, err.Fields, "aceptaTerminos")
}

func TestValidateCrearCitaNewsletterOptional(t *testing.T) {
	req := validCrearRequest()
	req.AceptaNovedades = false
	assert.Nil(t, Validate(req))

	req.AceptaNovedades = true
	assert.Nil(t, Validate(req))
}

func TestValidatePlacaExclusivity(t *testing.T) {
	// No plate and no flag.
	req := validCrearRequest()
	req.Placa = nil
	req.SinPlaca = false
	err := Validate(req)
	require.NotNil(t, err)
	assert.Contains(t, err.Fields, "placa")

	// Both plate and flag.
	req = validCrearRequest()
	req.SinPlaca = true
	err = Validate(req)
	require.NotNil(t, err)
	assert.Contains(t, err.Fields, "placa")

	// Flag only is fine.
	req = validCrearRequest()
	req.Placa = nil
	req.SinPlaca = true
	assert.Nil(t, Validate(req))
}

func TestValidateBuscarCita(t *testing.T) {
	assert.Nil(t, Validate(model.BuscarCitaRequest{
		TipoDocumento:   model.DocumentoDNI,
		NumeroDocumento: "12345678",
		Placa:           strptr("ABC-123"),
	}))

	err := Validate(model.BuscarCitaRequest{
		TipoDocumento:   model.DocumentoDNI,
		NumeroDocumento: "12345678",
	})
	require.NotNil(t, err)
	assert.Contains(t, err.Fields, "placa")
}

func TestValidateHoraFormats(t *testing.T) {
	req := validCrearRequest()
	for _, hora := range []string{"07:00", "07:20:00", "23:59"} {
		req.Hora = hora
		assert.Nil(t, Validate(req), hora)
	}
	for _, hora := range []string{"24:00", "7:00", "07:60", ""} {
		req.Hora = hora
		assert.NotNil(t, Validate(req), hora)
	}
}
