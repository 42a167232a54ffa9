package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventConfirmationEmailData holds data for the event creation confirmation email
// sent to the organizer's contact address.
type EventConfirmationEmailData struct {
	Email      string
	Organizer  string
	EventTitle string
	EventDate  string
	EventTime  string
	Location   string
	PriceLabel string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventConfirmation(ctx context.Context, data *EventConfirmationEmailData) error
}
