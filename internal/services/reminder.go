package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"eventura/internal/domain"
)

// Days before an event on which interested users are reminded.
const (
	weekReminderDays = 7
	dayReminderDays  = 1
)

const reminderDateLayout = "Mon, 02 Jan 2006 15:04 MST"

// ReminderOptions tunes the reminder job.
type ReminderOptions struct {
	// Location defines calendar days for eligibility and the date shown in emails. Defaults to time.Local.
	Location *time.Location
	// Concurrency bounds parallel sends. Defaults to 1.
	Concurrency int
	// SendTimeout bounds a single send; zero means no per-send timeout.
	SendTimeout time.Duration
}

type reminderService struct {
	eventRepo    domain.EventRepository
	emailService domain.EmailService
	clock        domain.Clock
	logger       *slog.Logger
	opts         ReminderOptions
}

// NewReminderService creates the interest reminder job. It keeps no state between runs.
func NewReminderService(
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	clock domain.Clock,
	logger *slog.Logger,
	opts ReminderOptions,
) domain.ReminderService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &reminderService{
		eventRepo:    eventRepo,
		emailService: emailService,
		clock:        clock,
		logger:       logger,
		opts:         opts,
	}
}

type reminderJob struct {
	notice *domain.ReminderNotice
	data   *domain.EventReminderEmailData
}

// Run performs one scan-and-dispatch pass. Nothing records that a reminder
// went out, so a second run on the same day sends the same reminders again.
func (s *reminderService) Run(ctx context.Context) (*domain.ReminderRunReport, error) {
	now := s.clock.Now()
	report := &domain.ReminderRunReport{StartedAt: now, Notices: []*domain.ReminderNotice{}}

	upcoming, err := s.eventRepo.ListUpcomingActive(ctx, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "reminder run aborted: cannot load upcoming events", "err", err)
		return nil, fmt.Errorf("load upcoming events: %w", err)
	}
	report.EventsScanned = len(upcoming)

	today := now.In(s.opts.Location)
	var jobs []reminderJob
	for _, ue := range upcoming {
		eventDate := ue.Event.Date.In(s.opts.Location)
		daysLeft, ok := ReminderDaysLeft(today, eventDate)
		if !ok {
			continue
		}
		report.EventsEligible++
		for _, u := range ue.Interested {
			email := strings.TrimSpace(u.Email)
			if email == "" {
				report.Skipped++
				s.logger.DebugContext(ctx, "reminder skipped: no email on file", "event_id", ue.Event.ID, "user_id", u.UserID)
				continue
			}
			notice := &domain.ReminderNotice{EventID: ue.Event.ID, UserID: u.UserID, Email: email, DaysLeft: daysLeft}
			report.Notices = append(report.Notices, notice)
			jobs = append(jobs, reminderJob{
				notice: notice,
				data: &domain.EventReminderEmailData{
					Email:              email,
					Name:               u.Name,
					EventID:            ue.Event.ID,
					EventTitle:         ue.Event.Title,
					EventDate:          eventDate.Format(reminderDateLayout),
					Location:           ue.Event.Location,
					DaysLeft:           daysLeft,
					IsSevenDayReminder: daysLeft == weekReminderDays,
				},
			})
		}
	}

	// Workers never return an error so one failed send cannot cancel the others.
	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for _, job := range jobs {
		g.Go(func() error {
			s.dispatch(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	for _, n := range report.Notices {
		if n.Err != nil {
			report.Failed++
		} else {
			report.Sent++
		}
	}
	s.logger.InfoContext(ctx, "reminder run finished",
		"events_scanned", report.EventsScanned,
		"events_eligible", report.EventsEligible,
		"sent", report.Sent,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report, nil
}

func (s *reminderService) dispatch(ctx context.Context, job reminderJob) {
	if s.opts.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.SendTimeout)
		defer cancel()
	}
	if err := s.emailService.SendEventReminder(ctx, job.data); err != nil {
		job.notice.Err = err
		s.logger.WarnContext(ctx, "reminder dispatch failed",
			"event_id", job.notice.EventID,
			"user_id", job.notice.UserID,
			"days_left", job.notice.DaysLeft,
			"err", err,
		)
	}
}

// ReminderDaysLeft reports whether today is exactly seven or one calendar days
// before eventDate, ignoring time of day. Both values must share a location.
func ReminderDaysLeft(today, eventDate time.Time) (int, bool) {
	switch {
	case sameDay(today, eventDate.AddDate(0, 0, -weekReminderDays)):
		return weekReminderDays, true
	case sameDay(today, eventDate.AddDate(0, 0, -dayReminderDays)):
		return dayReminderDays, true
	}
	return 0, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
