package utils

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"food-delivery-api/models"
)

// EmailService sends transactional mail through SendGrid. A nil service
// (no API key configured) disables sending; every method is nil-safe.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService returns an EmailService for the given API key, or nil when
// the key is empty.
func NewEmailService(apiKey, sender string) *EmailService {
	if apiKey == "" {
		return nil
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

// SendOrderConfirmation mails the user a summary of the order just placed.
func (es *EmailService) SendOrderConfirmation(toEmail, name string, order models.Order) error {
	if es == nil {
		return nil
	}

	subject := "Order Confirmation"
	content := fmt.Sprintf(
		"Dear %s,\n\nYour order (ID: %s) has been placed successfully.\n\nTotal Amount: $%.2f\nDelivery Address: %s\n\nThank you for ordering with us!\n",
		name, order.ID.Hex(), order.TotalAmount, order.Address,
	)

	message := mail.NewSingleEmail(mail.NewEmail("", es.sender), subject, mail.NewEmail(name, toEmail), content, "")
	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send email: sendgrid returned %d", resp.StatusCode)
	}
	return nil
}
