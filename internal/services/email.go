package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventpass/internal/domain"
)

type emailService struct {
	logger   *slog.Logger
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(logger *slog.Logger, mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{logger: logger, mailer: mailer, renderer: renderer}
}

// SendRegistrationConfirmation sends the attendee their badge and check-in links using the "registration" template.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if data == nil {
		return fmt.Errorf("registration email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("registration", data)
	if err != nil {
		return fmt.Errorf("failed to render registration template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration email: %w", err)
	}
	s.logger.InfoContext(ctx, "registration email sent", "to", data.Email)
	return nil
}
