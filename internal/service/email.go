package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"bilio-backend/internal/domain"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendPurchaseReceipt(ctx context.Context, toEmail, toName string, pkg *domain.CreditPackage, newBalance int) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)

	subject := fmt.Sprintf("Kvitto: %s", pkg.Name)
	plainText := fmt.Sprintf(
		"Hej %s,\n\nTack för ditt köp av %s (%d krediter) för %d,%02d kr.\nDitt nya saldo är %d krediter.\n\nHälsningar,\nBilio",
		toName, pkg.Name, pkg.Credits, pkg.PriceSEK/100, pkg.PriceSEK%100, newBalance)
	htmlContent := fmt.Sprintf(
		"<p>Hej %s,</p><p>Tack för ditt köp av <strong>%s</strong> (%d krediter) för %d,%02d kr.</p><p>Ditt nya saldo är <strong>%d krediter</strong>.</p><p>Hälsningar,<br>Bilio</p>",
		toName, pkg.Name, pkg.Credits, pkg.PriceSEK/100, pkg.PriceSEK%100, newBalance)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	return nil
}
