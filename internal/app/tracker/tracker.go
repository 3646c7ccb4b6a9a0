// Package tracker holds the derived hydration state of every user.
//
// State is rebuilt from storage on every relevant change and published as an
// immutable snapshot. All writes go through one lock, so readers such as the
// reminder scheduler never see a half-built state.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/vega9999/HydroHero/internal/domain"
)

type Config struct {
	// Location decides where a calendar day starts and ends.
	Location         *time.Location
	DefaultDailyGoal int
	ClampProgress    bool
	Now              func() time.Time
}

type Tracker struct {
	intakes  domain.IntakeRepository
	profiles domain.ProfileRepository
	cfg      Config
	log      walog.Logger

	writeMu sync.Mutex
	mu      sync.RWMutex
	states  map[string]domain.State

	unsubscribe func()
}

func New(intakes domain.IntakeRepository, profiles domain.ProfileRepository, cfg Config, log walog.Logger) *Tracker {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.DefaultDailyGoal <= 0 {
		cfg.DefaultDailyGoal = domain.DefaultDailyGoal
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = walog.Noop
	}
	return &Tracker{
		intakes:  intakes,
		profiles: profiles,
		cfg:      cfg,
		log:      log,
		states:   make(map[string]domain.State),
	}
}

// Start subscribes to intake changes. Close undoes it.
func (t *Tracker) Start() {
	if t.unsubscribe != nil {
		return
	}
	t.unsubscribe = t.intakes.Subscribe(t.onIntake)
}

func (t *Tracker) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

func (t *Tracker) Now() time.Time {
	return t.cfg.Now().In(t.cfg.Location)
}

// Today is the current calendar date in the configured location.
func (t *Tracker) Today() time.Time {
	return domain.DateOf(t.Now())
}

// Snapshot returns the published state of userID, loading it on first use
// and rebuilding it once the day has rolled over.
func (t *Tracker) Snapshot(ctx context.Context, userID string) (domain.State, error) {
	t.mu.RLock()
	s, ok := t.states[userID]
	t.mu.RUnlock()

	if ok && s.Today.Equal(t.Today()) {
		return s, nil
	}
	return t.Refresh(ctx, userID)
}

// Refresh rebuilds the state of userID from storage.
func (t *Tracker) Refresh(ctx context.Context, userID string) (domain.State, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	return t.refreshLocked(ctx, userID)
}

// Update applies fn to the current state of userID and publishes the result.
// fn must not block or touch storage.
func (t *Tracker) Update(ctx context.Context, userID string, fn func(domain.State) domain.State) (domain.State, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	t.mu.RLock()
	s, ok := t.states[userID]
	t.mu.RUnlock()

	if !ok || !s.Today.Equal(t.Today()) {
		var err error
		if s, err = t.refreshLocked(ctx, userID); err != nil {
			return domain.State{}, err
		}
	}

	next := fn(s)
	t.publish(userID, next)
	return next, nil
}

func (t *Tracker) refreshLocked(ctx context.Context, userID string) (domain.State, error) {
	records, err := t.intakes.GetHistory(ctx, userID)
	if err != nil {
		return domain.State{}, fmt.Errorf("load intake history: %w", err)
	}
	profile, err := t.profiles.LoadProfile(ctx, userID)
	if err != nil {
		return domain.State{}, fmt.Errorf("load profile: %w", err)
	}
	goal, err := t.profiles.LoadDailyGoal(ctx, userID, t.cfg.DefaultDailyGoal)
	if err != nil {
		return domain.State{}, fmt.Errorf("load daily goal: %w", err)
	}

	t.mu.RLock()
	prev := t.states[userID]
	t.mu.RUnlock()

	next := domain.Derive(prev, domain.DeriveInput{
		UserID:        userID,
		Today:         t.Today(),
		Records:       records,
		DailyGoal:     goal,
		Profile:       profile,
		ClampProgress: t.cfg.ClampProgress,
	})
	t.publish(userID, next)
	return next, nil
}

func (t *Tracker) publish(userID string, s domain.State) {
	t.mu.Lock()
	t.states[userID] = s
	t.mu.Unlock()
}

func (t *Tracker) onIntake(ctx context.Context, record domain.IntakeRecord) {
	t.mu.RLock()
	s, ok := t.states[record.UserID]
	t.mu.RUnlock()

	today := t.Today()
	if ok && s.Today.Equal(today) && domain.DateOf(record.Date).Equal(today) && s.CurrentIntake == record.Amount {
		return
	}

	if _, err := t.Refresh(ctx, record.UserID); err != nil {
		t.log.Warnf("Failed to refresh state for %s: %v", record.UserID, err)
	}
}
