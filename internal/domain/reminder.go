package domain

import (
	"context"
	"time"
)

// Clock supplies the current instant. Tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

// ReminderNotice is one reminder the scheduler attempted to dispatch.
type ReminderNotice struct {
	EventID  int64  `json:"event_id"`
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	DaysLeft int    `json:"days_left"`
	Err      error  `json:"-"`
}

// ReminderRunReport summarises one scheduler run.
// swagger:model ReminderRunReport
type ReminderRunReport struct {
	StartedAt      time.Time         `json:"started_at"`
	EventsScanned  int               `json:"events_scanned"`
	EventsEligible int               `json:"events_eligible"`
	Sent           int               `json:"sent"`
	Skipped        int               `json:"skipped"`
	Failed         int               `json:"failed"`
	Notices        []*ReminderNotice `json:"notices"`
}

// ReminderService runs the interest reminder job.
type ReminderService interface {
	// Run scans upcoming active events and emails interested users whose event
	// is exactly seven or one calendar days away. Only a failure to load events
	// is returned; individual dispatch failures are recorded in the report.
	Run(ctx context.Context) (*ReminderRunReport, error)
}
