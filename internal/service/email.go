package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
)

// sendGridEmailService implements EmailService on SendGrid's v3 mail API
type sendGridEmailService struct {
	apiKey     string
	fromEmail  string
	fromName   string
	alertEmail string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName, alertEmail string) EmailService {
	return &sendGridEmailService{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		alertEmail: alertEmail,
	}
}

func (s *sendGridEmailService) send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

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

func (s *sendGridEmailService) SendCheckOutReceipt(ctx context.Context, email, name, confirmationCode string, total decimal.Decimal) error {
	subject := fmt.Sprintf("Your rental %s has started", confirmationCode)
	plainText := fmt.Sprintf("Hi %s, your rental %s is underway. Estimated total: $%s. Drive safe!",
		name, confirmationCode, total.StringFixed(2))
	htmlContent := fmt.Sprintf(`
		<html>
		<body>
			<p>Hi %s,</p>
			<p>Your rental <strong>%s</strong> is underway.</p>
			<p>Estimated total: <strong>$%s</strong></p>
			<p>Drive safe!</p>
		</body>
		</html>`, name, confirmationCode, total.StringFixed(2))
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendCheckInReceipt(ctx context.Context, email, name, confirmationCode string, total decimal.Decimal) error {
	subject := fmt.Sprintf("Receipt for rental %s", confirmationCode)
	plainText := fmt.Sprintf("Hi %s, thanks for returning the vehicle. Final total for rental %s: $%s.",
		name, confirmationCode, total.StringFixed(2))
	htmlContent := fmt.Sprintf(`
		<html>
		<body>
			<p>Hi %s,</p>
			<p>Thanks for returning the vehicle.</p>
			<p>Final total for rental <strong>%s</strong>: <strong>$%s</strong></p>
		</body>
		</html>`, name, confirmationCode, total.StringFixed(2))
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendOverdueNotice(ctx context.Context, email, name, confirmationCode string, dueBack time.Time) error {
	subject := fmt.Sprintf("Your rental %s is overdue", confirmationCode)
	plainText := fmt.Sprintf("Hi %s, your rental %s was due back at %s. Please return the vehicle and check in as soon as possible.",
		name, confirmationCode, dueBack.Format(time.RFC1123))
	htmlContent := fmt.Sprintf(`
		<html>
		<body>
			<p>Hi %s,</p>
			<p>Your rental <strong>%s</strong> was due back at %s.</p>
			<p>Please return the vehicle and check in as soon as possible.</p>
		</body>
		</html>`, name, confirmationCode, dueBack.Format(time.RFC1123))
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendRewardSummary(ctx context.Context, email, name string, usedHours decimal.Decimal) error {
	subject := "Your weekly reward hours summary"
	plainText := fmt.Sprintf("Hi %s, you redeemed %s free hours last week. Your allowance has reset for the new week.",
		name, usedHours.String())
	htmlContent := fmt.Sprintf(`
		<html>
		<body>
			<p>Hi %s,</p>
			<p>You redeemed <strong>%s</strong> free hours last week.</p>
			<p>Your allowance has reset for the new week.</p>
		</body>
		</html>`, name, usedHours.String())
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendBillingAlert(ctx context.Context, subject, detail string) error {
	plainText := fmt.Sprintf("Billing discrepancy requiring reconciliation:\n\n%s", detail)
	htmlContent := fmt.Sprintf(`
		<html>
		<body>
			<p><strong>Billing discrepancy requiring reconciliation</strong></p>
			<p>%s</p>
		</body>
		</html>`, detail)
	return s.send(ctx, s.alertEmail, "Billing Operations", "[BILLING ALERT] "+subject, plainText, htmlContent)
}
