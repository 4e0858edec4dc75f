package model

// Persona is a legal name resolved from a national ID lookup.
type Persona struct {
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellidoPaterno"`
	ApellidoMaterno string `json:"apellidoMaterno"`
}

// Apellido joins the paternal and maternal surnames the way the booking
// form shows them.
func (p *Persona) Apellido() string {
	switch {
	case p.ApellidoPaterno == "":
		return p.ApellidoMaterno
	case p.ApellidoMaterno == "":
		return p.ApellidoPaterno
	default:
		return p.ApellidoPaterno + " " + p.ApellidoMaterno
	}
}
