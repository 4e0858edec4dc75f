package model

// LoginRequest carries admin dashboard credentials, proxied to the
// backend auth context.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Usuario is the backend's view of an admin user.
type Usuario struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

// SessionToken is what this service hands the dashboard after a
// successful proxy login.
type SessionToken struct {
	Token   string   `json:"token"`
	Usuario *Usuario `json:"user,omitempty"`
}
