package validation

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tallerpro/booking-api/internal/model"
	"github.com/tallerpro/booking-api/pkg/apperror"
)

// Document number rules per document type. These are fixed-format rules,
// validated locally before any network call.
var (
	dniRe       = regexp.MustCompile(`^[0-9]{8}$`)
	ceRe        = regexp.MustCompile(`^[A-Za-z0-9]{9,12}$`)
	pasaporteRe = regexp.MustCompile(`^[A-Za-z0-9]{6,12}$`)

	celularRe = regexp.MustCompile(`^[0-9]{9}$`)
	placaRe   = regexp.MustCompile(`^[A-Z0-9]{2,3}-?[A-Z0-9]{3,4}$`)
	horaRe    = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report json field names so errors land next to the right control.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("celular", func(fl validator.FieldLevel) bool {
		return celularRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("hora", func(fl validator.FieldLevel) bool {
		return horaRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	v.RegisterStructValidation(crearCitaStructLevel, model.CrearCitaRequest{})
	v.RegisterStructValidation(buscarCitaStructLevel, model.BuscarCitaRequest{})

	return v
}

// DocumentNumberValid applies the fixed per-type format rule.
func DocumentNumberValid(tipo, numero string) bool {
	switch tipo {
	case model.DocumentoDNI:
		return dniRe.MatchString(numero)
	case model.DocumentoCE:
		return ceRe.MatchString(numero)
	case model.DocumentoPasaporte:
		return pasaporteRe.MatchString(numero)
	default:
		return false
	}
}

// PlacaValid checks the normalized (uppercased) plate format.
func PlacaValid(placa string) bool {
	return placaRe.MatchString(strings.ToUpper(placa))
}

func crearCitaStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(model.CrearCitaRequest)

	if !DocumentNumberValid(req.TipoDocumento, req.NumeroDocumento) {
		sl.ReportError(req.NumeroDocumento, "numeroDocumento", "NumeroDocumento", "docnum", "")
	}
	validatePlacaFlag(sl, req.Placa, req.SinPlaca)
}

func buscarCitaStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(model.BuscarCitaRequest)

	if !DocumentNumberValid(req.TipoDocumento, req.NumeroDocumento) {
		sl.ReportError(req.NumeroDocumento, "numeroDocumento", "NumeroDocumento", "docnum", "")
	}
	validatePlacaFlag(sl, req.Placa, req.SinPlaca)
}

// Exactly one of {plate present, no-plate flag} must hold.
func validatePlacaFlag(sl validator.StructLevel, placa *string, sinPlaca bool) {
	has := placa != nil && strings.TrimSpace(*placa) != ""
	switch {
	case has && sinPlaca:
		sl.ReportError(placa, "placa", "Placa", "placa_excl", "")
	case !has && !sinPlaca:
		sl.ReportError(placa, "placa", "Placa", "placa_req", "")
	case has && !PlacaValid(*placa):
		sl.ReportError(placa, "placa", "Placa", "placa", "")
	}
}

// Validate runs the registered rules and maps failures to a field->message
// validation error, or nil when the value passes.
func Validate(s interface{}) *apperror.AppError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.ValidationField("request", err.Error())
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return apperror.Validation(fields)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "celular":
		return "phone must be exactly 9 digits"
	case "hora":
		return "time must be HH:MM or HH:MM:SS"
	case "fecha":
		return "date must be YYYY-MM-DD"
	case "docnum":
		return "document number does not match the selected document type"
	case "placa":
		return "plate format is invalid"
	case "placa_req":
		return "plate is required unless the no-plate flag is set"
	case "placa_excl":
		return "plate and the no-plate flag are mutually exclusive"
	case "eq":
		return "terms must be accepted"
	case "oneof":
		return "value is not one of the allowed options"
	case "min":
		return "value is below the allowed minimum"
	default:
		return "invalid value"
	}
}
