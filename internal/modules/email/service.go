package email

import (
	"context"
	"fmt"

	"boardinghouse/internal/mailer"
)

// Service composes the application's notification emails on top of an
// injected mailer. It owns no transport state of its own.
type Service struct {
	mailer   mailer.Service
	fromAddr string
	fromName string
}

func NewService(m mailer.Service, fromAddr, fromName string) *Service {
	return &Service{
		mailer:   m,
		fromAddr: fromAddr,
		fromName: fromName,
	}
}

func (s *Service) send(ctx context.Context, to, subject, text, html string) error {
	return s.mailer.Send(ctx, mailer.Email{
		From:     s.fromAddr,
		FromName: s.fromName,
		To:       []string{to},
		Subject:  subject,
		TextBody: text,
		HTMLBody: html,
	})
}

func (s *Service) SendWelcome(ctx context.Context, to, name, role string) error {
	roleText := "tenant"
	if role == "landlord" {
		roleText = "landlord"
	}
	subject := "Welcome to Boarding House System"
	text := fmt.Sprintf(
		"Hello %s,\n\nYour %s account at Boarding House System has been created successfully.\n\nBest regards,\nBoarding House System Team\n",
		name, roleText,
	)
	html := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Welcome to Boarding House System!</h2>
  <p>Hello <strong>%s</strong>,</p>
  <p>Your <strong>%s</strong> account has been created successfully.</p>
  <p>Best regards,<br>Boarding House System Team</p>
</div>`, name, roleText,
	)
	return s.send(ctx, to, subject, text, html)
}

func (s *Service) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	subject := "Reset your password"
	text := fmt.Sprintf(
		"Hello %s,\n\nYou requested a password reset. Open the link below to choose a new password:\n\n%s\n\nThe link expires in 10 minutes. If you did not request a reset, ignore this email.\n",
		name, resetURL,
	)
	html := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Reset your password</h2>
  <p>Hello <strong>%s</strong>,</p>
  <p>You requested a password reset. Click the button below to choose a new password:</p>
  <p style="text-align: center;"><a href="%s" style="background-color: #4CAF50; color: white; padding: 12px 20px; text-decoration: none; border-radius: 4px;">Reset password</a></p>
  <p>The link expires in <strong>10 minutes</strong>. If you did not request a reset, ignore this email.</p>
</div>`, name, resetURL,
	)
	return s.send(ctx, to, subject, text, html)
}

func (s *Service) SendBillIssued(ctx context.Context, to, name, roomNumber string, periodMonth, periodYear int, totalAmount int64) error {
	subject := fmt.Sprintf("New bill for room %s (%02d/%d)", roomNumber, periodMonth, periodYear)
	text := fmt.Sprintf(
		"Hello %s,\n\nA new bill for room %s, period %02d/%d, has been issued.\nTotal amount: %d VND.\n\nPlease pay before the due date.\n",
		name, roomNumber, periodMonth, periodYear, totalAmount,
	)
	html := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>New bill issued</h2>
  <p>Hello <strong>%s</strong>,</p>
  <p>A new bill for room <strong>%s</strong>, period <strong>%02d/%d</strong>, has been issued.</p>
  <p>Total amount: <strong>%d VND</strong></p>
  <p>Please pay before the due date.</p>
</div>`, name, roomNumber, periodMonth, periodYear, totalAmount,
	)
	return s.send(ctx, to, subject, text, html)
}

func (s *Service) SendPaymentReceipt(ctx context.Context, to, name, transactionCode string, totalAmount int64) error {
	subject := "Payment received"
	text := fmt.Sprintf(
		"Hello %s,\n\nWe received your payment of %d VND.\nTransaction: %s\n\nThank you.\n",
		name, totalAmount, transactionCode,
	)
	html := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Payment received</h2>
  <p>Hello <strong>%s</strong>,</p>
  <p>We received your payment of <strong>%d VND</strong>.</p>
  <p>Transaction: <code>%s</code></p>
  <p>Thank you.</p>
</div>`, name, totalAmount, transactionCode,
	)
	return s.send(ctx, to, subject, text, html)
}
