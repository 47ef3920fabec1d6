package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"

	"rental-booking-backend/internal/config"
	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/logger"
	"rental-booking-backend/internal/utils"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService builds the SendGrid-backed notification sender. An empty
// API key disables sending; every method becomes a logged no-op so local
// environments work without credentials.
func NewEmailService(cfg config.EmailConfig) EmailService {
	return &emailService{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.From,
		fromName:  cfg.FromName,
	}
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, name string, b *domain.Booking) error {
	subject := fmt.Sprintf("Booking %s confirmed", b.BookingNumber)
	plain := fmt.Sprintf(
		"Dear %s,\n\nYour booking %s is confirmed. Items will be handed over on %s and are due back on %s.\n",
		name, b.BookingNumber,
		b.RentalStartDate.Format(utils.DateFormat),
		b.RentalEndDate.Format(utils.DateFormat))
	html := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your booking <strong>%s</strong> is confirmed.</p><p>Pickup: %s<br>Return due: %s</p>",
		name, b.BookingNumber,
		b.RentalStartDate.Format(utils.DateFormat),
		b.RentalEndDate.Format(utils.DateFormat))
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, name string, b *domain.Booking) error {
	subject := fmt.Sprintf("Return reminder for booking %s", b.BookingNumber)
	plain := fmt.Sprintf(
		"Dear %s,\n\nItems from booking %s were due back on %s. Please arrange their return.\n",
		name, b.BookingNumber, b.RentalEndDate.Format(utils.DateFormat))
	html := fmt.Sprintf(
		"<p>Dear %s,</p><p>Items from booking <strong>%s</strong> were due back on %s. Please arrange their return.</p>",
		name, b.BookingNumber, b.RentalEndDate.Format(utils.DateFormat))
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *emailService) SendDepositRefundNotice(ctx context.Context, email, name string, b *domain.Booking, amount decimal.Decimal) error {
	subject := fmt.Sprintf("Deposit refund for booking %s", b.BookingNumber)
	plain := fmt.Sprintf(
		"Dear %s,\n\nA caution deposit refund of %s has been recorded for booking %s.\n",
		name, amount.StringFixed(2), b.BookingNumber)
	html := fmt.Sprintf(
		"<p>Dear %s,</p><p>A caution deposit refund of <strong>%s</strong> has been recorded for booking <strong>%s</strong>.</p>",
		name, amount.StringFixed(2), b.BookingNumber)
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plain, html string) error {
	if s.apiKey == "" {
		logger.Debug("email sending disabled, skipping", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plain, html)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
