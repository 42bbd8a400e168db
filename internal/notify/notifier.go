// Package notify sends customer-facing emails through SendGrid.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/soleraspa/booking-service/internal/domain"
)

// Logger is the logging interface consumed by the notifier.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// EmailNotifier sends booking confirmations via SendGrid.
type EmailNotifier struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       Logger
}

func NewEmailNotifier(apiKey, fromEmail, fromName string, log Logger) *EmailNotifier {
	if fromName == "" {
		fromName = "Solera Spa"
	}
	return &EmailNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

// SendDepositConfirmation emails the customer after their deposit is
// recorded.
func (n *EmailNotifier) SendDepositConfirmation(ctx context.Context, booking *domain.Booking) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(booking.CustomerName, booking.CustomerEmail)

	subject := fmt.Sprintf("Reserva confirmada - %s", booking.BookingDate.Format(domain.DateFormat))
	body := depositConfirmationBody(booking)

	message := mail.NewSingleEmail(from, subject, to, body, body)

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("notify: sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	n.log.Info("notify: deposit confirmation sent to %s for booking id=%d", booking.CustomerEmail, booking.ID)
	return nil
}

func depositConfirmationBody(b *domain.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hola %s,\n\n", b.CustomerName)
	fmt.Fprintf(&sb, "Hemos recibido tu depósito. Tu cita está confirmada para el %s a las %s.\n\n",
		b.BookingDate.Format(domain.DateFormat), b.StartTime)
	sb.WriteString("Servicios:\n")
	for _, a := range b.Assignments {
		fmt.Fprintf(&sb, "  - %s con %s (%.2f EUR)\n", a.ServiceName, a.ProviderName, a.ServicePrice)
	}
	fmt.Fprintf(&sb, "\nDepósito pagado: %.2f EUR\nPendiente el día de la cita: %.2f EUR\n",
		b.Payment.DepositAmount, b.Payment.RemainingAmount)
	fmt.Fprintf(&sb, "\nReferencia: %s\n\nGracias por tu reserva.\n", b.Reference)
	return sb.String()
}

// NoopNotifier is used when notifications are disabled.
type NoopNotifier struct {
	log Logger
}

func NewNoopNotifier(log Logger) *NoopNotifier {
	return &NoopNotifier{log: log}
}

// SendDepositConfirmation logs and drops the notification.
func (n *NoopNotifier) SendDepositConfirmation(_ context.Context, booking *domain.Booking) error {
	n.log.Info("notify: notifications disabled, skipping confirmation for booking id=%d", booking.ID)
	return nil
}
