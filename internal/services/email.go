package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"conguide/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendGridProof sends the rendered HTML grid using the "grid_proof" template.
func (s *emailService) SendGridProof(ctx context.Context, data *domain.GridProofEmailData) error {
	if data == nil {
		return fmt.Errorf("grid proof data is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	subject, htmlBody, textBody, err := s.renderer.Render("grid_proof", data)
	if err != nil {
		return fmt.Errorf("failed to render grid_proof template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send grid proof to %s: %w", data.Email, err)
	}
	s.logger.Info("grid proof sent", "to", data.Email, "slices", len(data.Slices))
	return nil
}

// BuildGridProof collects the HTML grid tables into proof mail data. The
// caller fills in the recipient.
func BuildGridProof(ctx context.Context, grid domain.GridService, convention, generated string) (*domain.GridProofEmailData, error) {
	fragments, err := grid.Fragments(ctx, domain.FormatHTML)
	if err != nil {
		return nil, fmt.Errorf("render html grid: %w", err)
	}
	data := &domain.GridProofEmailData{Convention: convention, Generated: generated}
	var b strings.Builder
	for _, f := range fragments {
		data.Slices = append(data.Slices, f.Slice.Name)
		b.WriteString(f.Markup)
	}
	data.GridHTML = b.String()
	return data, nil
}
