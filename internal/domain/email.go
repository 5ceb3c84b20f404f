package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventReminderTemplate is the template used for interest reminders.
const EventReminderTemplate = "event_reminder"

// EventReminderEmailData holds data for the event reminder email.
type EventReminderEmailData struct {
	Email              string
	Name               string
	EventID            int64
	EventTitle         string
	EventDate          string // formatted in the reminder time zone
	Location           string
	DaysLeft           int
	IsSevenDayReminder bool
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventReminder(ctx context.Context, data *EventReminderEmailData) error
}
