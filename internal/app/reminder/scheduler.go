// Package reminder nudges users who have not logged water for a while.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/vega9999/HydroHero/internal/domain"
)

const (
	DefaultInterval  = time.Hour
	DefaultThreshold = 3 * time.Hour

	title = "Hydration Reminder"
)

// StateReader is the read side of the tracker.
type StateReader interface {
	Snapshot(ctx context.Context, userID string) (domain.State, error)
	Now() time.Time
}

type Scheduler struct {
	states    StateReader
	activity  domain.ActivityRepository
	notifier  domain.Notifier
	interval  time.Duration
	threshold time.Duration
	log       walog.Logger
}

func NewScheduler(states StateReader, activity domain.ActivityRepository, notifier domain.Notifier, interval, threshold time.Duration, log walog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if log == nil {
		log = walog.Noop
	}
	return &Scheduler{
		states:    states,
		activity:  activity,
		notifier:  notifier,
		interval:  interval,
		threshold: threshold,
		log:       log,
	}
}

// Run checks every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	c := cron.New()
	c.Schedule(cron.Every(s.interval), cron.FuncJob(func() {
		s.Check(ctx)
	}))
	c.Start()
	s.log.Infof("Reminders scheduled every %s", s.interval)

	<-ctx.Done()
	<-c.Stop().Done()
}

// Check sends a reminder to every user whose last intake is older than the
// threshold and who has not reached today's goal. It returns the number of
// reminders sent. Failures are logged and skipped.
func (s *Scheduler) Check(ctx context.Context) int {
	users, err := s.activity.ListActiveUsers(ctx)
	if err != nil {
		s.log.Debugf("Failed to list users for reminders: %v", err)
		return 0
	}

	now := s.states.Now()
	sent := 0
	for _, userID := range users {
		if ctx.Err() != nil {
			break
		}
		n, ok := s.reminderFor(ctx, userID, now)
		if !ok {
			continue
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.log.Debugf("Failed to remind %s: %v", userID, err)
			continue
		}
		sent++
	}
	return sent
}

func (s *Scheduler) reminderFor(ctx context.Context, userID string, now time.Time) (domain.Notification, bool) {
	last, ok, err := s.activity.LastIntakeAt(ctx, userID)
	if err != nil {
		s.log.Debugf("Failed to read last intake of %s: %v", userID, err)
		return domain.Notification{}, false
	}
	if !ok || now.Sub(last) <= s.threshold {
		return domain.Notification{}, false
	}

	state, err := s.states.Snapshot(ctx, userID)
	if err != nil {
		s.log.Debugf("Failed to load state of %s: %v", userID, err)
		return domain.Notification{}, false
	}
	if state.CurrentIntake >= state.DailyGoal {
		return domain.Notification{}, false
	}

	return domain.Notification{
		Channel:   domain.ReminderChannel,
		Recipient: userID,
		Title:     title,
		Body: fmt.Sprintf("Don't forget to drink water! You still need %d ml to reach your daily goal.",
			state.DailyGoal-state.CurrentIntake),
	}, true
}
