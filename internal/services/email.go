package services

import (
	"context"
	"fmt"
	"log"

	"eventpro/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendEventConfirmation sends the organizer a confirmation for a newly created
// event using the "event_confirmation" template.
func (s *emailService) SendEventConfirmation(ctx context.Context, data *domain.EventConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("event confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render event_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send event confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Event confirmation sent to %s", data.Email)
	return nil
}
