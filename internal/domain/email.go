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

// GridProofEmailData holds data for the grid proof email.
type GridProofEmailData struct {
	Email      string
	Convention string
	Generated  string
	Slices     []string
	// GridHTML is the rendered HTML grid, inlined into the message body.
	GridHTML string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendGridProof(ctx context.Context, data *GridProofEmailData) error
}
