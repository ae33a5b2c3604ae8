// Package smtp sends interview booking confirmation emails over SMTP
// with STARTTLS.
package smtp

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
)

// Ensure Notifier implements the interface.
var _ driven.Notifier = (*Notifier)(nil)

// DefaultPort is the standard SMTP submission port.
const DefaultPort = 587

// Config holds SMTP connection settings.
type Config struct {
	// Host is the SMTP server hostname (required).
	Host string

	// Port is the SMTP server port (default: 587).
	Port int

	// Sender is the authenticated sender address (required).
	Sender string

	// Password is the sender's password.
	Password string

	// Recipient overrides where confirmations are delivered. When
	// empty, confirmations go to the booked candidate's address.
	Recipient string
}

// Notifier sends booking confirmations via an SMTP server.
type Notifier struct {
	cfg Config
}

// NewNotifier creates an SMTP notifier.
func NewNotifier(cfg Config) (*Notifier, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: smtp host is required", domain.ErrInvalidInput)
	}
	if cfg.Sender == "" {
		return nil, fmt.Errorf("%w: smtp sender is required", domain.ErrInvalidInput)
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	return &Notifier{cfg: cfg}, nil
}

// SendBookingConfirmation emails a confirmation for the booking. The
// send runs in a goroutine bounded by the context so a slow SMTP
// server cannot stall the caller past its deadline.
func (n *Notifier) SendBookingConfirmation(ctx context.Context, booking domain.Booking) error {
	recipient := n.cfg.Recipient
	if recipient == "" {
		recipient = booking.Email
	}

	msg := buildMessage(n.cfg.Sender, recipient, booking)
	addr := net.JoinHostPort(n.cfg.Host, fmt.Sprintf("%d", n.cfg.Port))
	auth := smtp.PlainAuth("", n.cfg.Sender, n.cfg.Password, n.cfg.Host)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, n.cfg.Sender, []string{recipient}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp: send booking confirmation: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp: send booking confirmation: %w", ctx.Err())
	}
}

// buildMessage renders the confirmation email as an RFC 5322 message.
func buildMessage(sender, recipient string, booking domain.Booking) []byte {
	var b strings.Builder
	b.WriteString("From: " + sender + "\r\n")
	b.WriteString("To: " + recipient + "\r\n")
	b.WriteString("Subject: Interview Confirmation\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("Dear " + booking.FullName + ",\r\n\r\n")
	b.WriteString("This is a confirmation that your interview has been successfully booked.\r\n\r\n")
	b.WriteString("Details:\r\n")
	b.WriteString("Date: " + booking.Date + "\r\n")
	b.WriteString("Time: " + booking.Time + "\r\n\r\n")
	b.WriteString("We look forward to speaking with you.\r\n\r\n")
	b.WriteString("Best regards,\r\nDocent\r\n")
	return []byte(b.String())
}
