package services

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/atelierline/storefront-api/models"
)

// Mailer notifies the shop inbox when a contact message arrives. With no API
// key configured it is a no-op.
type Mailer struct {
	APIKey string
	From   string
	To     string
}

func NewMailer(apiKey, from, to string) *Mailer {
	return &Mailer{APIKey: apiKey, From: from, To: to}
}

// NotifyContactMessage sends a plain-text copy of the message to the shop
// inbox.
func (m *Mailer) NotifyContactMessage(msg models.ContactMessage) error {
	if m.APIKey == "" || m.To == "" {
		return nil
	}

	subject := "New contact message: " + msg.Subject
	body := fmt.Sprintf("From: %s <%s>\nPhone: %s\n\n%s", msg.Name, msg.Email, msg.Phone, msg.Message)

	message := mail.NewSingleEmail(
		mail.NewEmail("Atelier Line", m.From),
		subject,
		mail.NewEmail("", m.To),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	resp, err := sendgrid.NewSendClient(m.APIKey).Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		log.Printf("sendgrid error status=%d body=%s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid send failed: status=%d", resp.StatusCode)
	}
	return nil
}
