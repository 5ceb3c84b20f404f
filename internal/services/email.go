package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventura/internal/domain"
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

// SendEventReminder sends the interest reminder using the "event_reminder" template.
func (s *emailService) SendEventReminder(ctx context.Context, data *domain.EventReminderEmailData) error {
	if data == nil {
		return fmt.Errorf("event reminder data is nil")
	}
	if data.Email == "" {
		return fmt.Errorf("%w: recipient has no email", domain.ErrInvalidInput)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(domain.EventReminderTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", domain.EventReminderTemplate, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send event reminder: %w", err)
	}
	s.logger.InfoContext(ctx, "event reminder sent", "to", data.Email, "event_id", data.EventID, "days_left", data.DaysLeft)
	return nil
}
