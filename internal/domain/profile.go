package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
)

// DefaultDailyGoal is used until the user sets or computes a goal.
const DefaultDailyGoal = 2000

// UserProfile is persisted as a single JSON snapshot per user.
type UserProfile struct {
	WeightKg      float64       `json:"weightKg"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Location      string        `json:"location"`
	DailyGoal     *int          `json:"dailyGoal,omitempty"`
}

func DefaultProfile() UserProfile {
	return UserProfile{
		WeightKg:      70,
		Age:           30,
		Gender:        GenderOther,
		ActivityLevel: ActivityModerate,
	}
}

// DecodeProfile parses a stored snapshot. Empty or malformed data yields the
// default profile.
func DecodeProfile(raw string) UserProfile {
	if strings.TrimSpace(raw) == "" {
		return DefaultProfile()
	}
	var p UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return DefaultProfile()
	}
	return p
}

func EncodeProfile(p UserProfile) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}
	return string(data), nil
}

// Limits accepted from user input.
const (
	MaxWeightKg     = 500.0
	MaxAge          = 150
	MaxDailyGoal    = 20000
	MaxIntakeAmount = 10000
)

func (p UserProfile) Validate() error {
	// Written so that NaN fails too.
	if !(p.WeightKg > 0 && p.WeightKg <= MaxWeightKg) {
		return fmt.Errorf("%w: weight must be between 0 and %.0f kg", ErrInvalidProfile, MaxWeightKg)
	}
	if p.Age <= 0 || p.Age > MaxAge {
		return fmt.Errorf("%w: age must be between 1 and %d", ErrInvalidProfile, MaxAge)
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return fmt.Errorf("%w: gender must be male, female or other", ErrInvalidProfile)
	}
	switch p.ActivityLevel {
	case ActivitySedentary, ActivityModerate, ActivityActive:
	default:
		return fmt.Errorf("%w: activity must be sedentary, moderate or active", ErrInvalidProfile)
	}
	if p.DailyGoal != nil && (*p.DailyGoal <= 0 || *p.DailyGoal > MaxDailyGoal) {
		return fmt.Errorf("%w: goal override must be between 1 and %d ml", ErrInvalidProfile, MaxDailyGoal)
	}
	return nil
}

// ProfileUpdate holds the fields a user changed; nil fields keep their value.
type ProfileUpdate struct {
	WeightKg      *float64
	Age           *int
	Gender        *string
	ActivityLevel *string
	Location      *string
	DailyGoal     *int
	// ClearDailyGoal drops the override so the goal is computed again.
	ClearDailyGoal bool
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.WeightKg == nil && u.Age == nil && u.Gender == nil &&
		u.ActivityLevel == nil && u.Location == nil && u.DailyGoal == nil && !u.ClearDailyGoal
}

// Apply returns a copy of p with the update merged in.
func (u ProfileUpdate) Apply(p UserProfile) UserProfile {
	if u.WeightKg != nil {
		p.WeightKg = *u.WeightKg
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Gender != nil {
		p.Gender = Gender(strings.ToLower(strings.TrimSpace(*u.Gender)))
	}
	if u.ActivityLevel != nil {
		p.ActivityLevel = ActivityLevel(strings.ToLower(strings.TrimSpace(*u.ActivityLevel)))
	}
	if u.Location != nil {
		p.Location = strings.TrimSpace(*u.Location)
	}
	if u.ClearDailyGoal {
		p.DailyGoal = nil
	} else if u.DailyGoal != nil {
		goal := *u.DailyGoal
		p.DailyGoal = &goal
	}
	return p
}

type ProfileRepository interface {
	LoadProfile(ctx context.Context, userID string) (UserProfile, error)
	SaveProfile(ctx context.Context, userID string, profile UserProfile) error
	LoadDailyGoal(ctx context.Context, userID string, fallback int) (int, error)
	SaveDailyGoal(ctx context.Context, userID string, goal int) error
}

// ActivityRepository tracks when each user last logged water.
type ActivityRepository interface {
	LastIntakeAt(ctx context.Context, userID string) (time.Time, bool, error)
	TouchLastIntake(ctx context.Context, userID string, at time.Time) error
	ListActiveUsers(ctx context.Context) ([]string, error)
}
