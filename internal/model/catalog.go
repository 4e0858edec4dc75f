package model

// Marca is a vehicle brand from the catalog service.
type Marca struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// Modelo is a vehicle model, always scoped to a brand.
type Modelo struct {
	ID      int64  `json:"id"`
	Nombre  string `json:"nombre"`
	MarcaID int64  `json:"marcaId,omitempty"`
}

// TipoServicio is one value of the fixed service catalog.
type TipoServicio struct {
	Valor  string `json:"valor"`
	Nombre string `json:"nombre"`
}

// Local is a workshop location offered for booking.
type Local struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}
