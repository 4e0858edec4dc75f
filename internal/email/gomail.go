package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/tallerpro/booking-api/config"
	"github.com/tallerpro/booking-api/internal/model"
)

type gomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender builds the SMTP-backed sender. When SMTP is disabled in
// config, use Nop instead.
func NewGomailSender(cfg config.SMTPConfig) Sender {
	return &gomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *gomailSender) SendConfirmation(_ context.Context, to string, cita *model.Cita) error {
	subject := fmt.Sprintf("Cita confirmada · %s %s", cita.FechaCita, cita.HoraCita)
	body := fmt.Sprintf(
		"Tu cita de servicio %s quedó registrada para el %s a las %s en %s.\n\nCódigo de cita: %d",
		cita.TipoServicio, cita.FechaCita, cita.HoraCita, cita.LocalAtencion, cita.ID,
	)
	return s.send(to, subject, body)
}

func (s *gomailSender) SendRescheduleNotice(_ context.Context, to string, cita *model.Cita) error {
	subject := fmt.Sprintf("Cita reagendada · %s %s", cita.FechaCita, cita.HoraCita)
	body := fmt.Sprintf(
		"Tu cita fue reagendada para el %s a las %s en %s.\n\nCódigo de cita: %d",
		cita.FechaCita, cita.HoraCita, cita.LocalAtencion, cita.ID,
	)
	return s.send(to, subject, body)
}

func (s *gomailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// Nop discards all mail. Used when SMTP is not configured.
type Nop struct{}

func (Nop) SendConfirmation(context.Context, string, *model.Cita) error { return nil }

func (Nop) SendRescheduleNotice(context.Context, string, *model.Cita) error { return nil }
