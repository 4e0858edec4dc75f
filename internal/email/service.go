package email

import (
	"context"

	"github.com/tallerpro/booking-api/internal/model"
)

// Sender delivers booking confirmations. Delivery is best-effort: a
// failed mail is logged by the caller and never fails the booking.
type Sender interface {
	SendConfirmation(ctx context.Context, to string, cita *model.Cita) error
	SendRescheduleNotice(ctx context.Context, to string, cita *model.Cita) error
}
