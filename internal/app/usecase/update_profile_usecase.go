package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vega9999/HydroHero/internal/app/tracker"
	"github.com/vega9999/HydroHero/internal/domain"
)

type UpdateProfileUsecase struct {
	profiles domain.ProfileRepository
	tracker  *tracker.Tracker
	adjust   domain.LocationAdjuster
	text     *Formatter
}

func NewUpdateProfileUsecase(profiles domain.ProfileRepository, tr *tracker.Tracker, adjust domain.LocationAdjuster, f *Formatter) *UpdateProfileUsecase {
	if adjust == nil {
		adjust = domain.KeywordLocationAdjustment
	}
	return &UpdateProfileUsecase{profiles: profiles, tracker: tr, adjust: adjust, text: formatterOrDefault(f)}
}

// Execute merges update into the stored profile, then recomputes the daily
// goal and overwrites the stored one. An empty update only shows the profile.
func (uc *UpdateProfileUsecase) Execute(ctx context.Context, userID string, update domain.ProfileUpdate) (string, error) {
	if update.IsEmpty() {
		s, err := uc.tracker.Snapshot(ctx, userID)
		if err != nil {
			return "", err
		}
		return uc.render("👤 Your profile", s.Profile, s.DailyGoal), nil
	}

	current, err := uc.profiles.LoadProfile(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	}
	updated := update.Apply(current)
	if err := updated.Validate(); err != nil {
		return "", err
	}

	goal := domain.GoalForProfile(updated, uc.adjust)
	if goal <= 0 || goal > domain.MaxDailyGoal {
		return "", fmt.Errorf("%w: computed goal %d ml is out of range", domain.ErrInvalidProfile, goal)
	}

	if err := uc.profiles.SaveProfile(ctx, userID, updated); err != nil {
		return "", fmt.Errorf("save profile: %w", err)
	}
	if err := uc.profiles.SaveDailyGoal(ctx, userID, goal); err != nil {
		return "", fmt.Errorf("save daily goal: %w", err)
	}

	s, err := uc.tracker.Refresh(ctx, userID)
	if err != nil {
		return "", err
	}
	return uc.render("✅ Profile updated", s.Profile, s.DailyGoal), nil
}

func (uc *UpdateProfileUsecase) render(title string, p domain.UserProfile, goal int) string {
	location := p.Location
	if location == "" {
		location = "-"
	}
	sb := strings.Builder{}
	sb.WriteString(title + "\n")
	sb.WriteString(uc.text.Sprintf("Weight: %.1f kg\n", p.WeightKg))
	sb.WriteString(fmt.Sprintf("Age: %d\n", p.Age))
	sb.WriteString(fmt.Sprintf("Gender: %s\n", p.Gender))
	sb.WriteString(fmt.Sprintf("Activity: %s\n", p.ActivityLevel))
	sb.WriteString(fmt.Sprintf("Location: %s\n", location))
	sb.WriteString(fmt.Sprintf("Daily goal: %s", uc.text.ML(goal)))
	if p.DailyGoal != nil {
		sb.WriteString(" (fixed)")
	}
	return sb.String()
}

// ParseProfileUpdate reads "key=value" pairs. Words without "=" continue the
// previous value, so "location=sahara desert" keeps both words. "goal=auto"
// drops a fixed goal.
func ParseProfileUpdate(args []string) (domain.ProfileUpdate, error) {
	var update domain.ProfileUpdate
	values := map[string]string{}
	var order []string
	last := ""

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			if last == "" {
				return update, fmt.Errorf("%w: expected key=value, got %q", domain.ErrInvalidProfile, arg)
			}
			values[last] += " " + arg
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = value
		last = key
	}

	for _, key := range order {
		value := strings.TrimSpace(values[key])
		switch key {
		case "weight", "weightkg":
			w, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
				return update, fmt.Errorf("%w: weight %q is not a number", domain.ErrInvalidProfile, value)
			}
			update.WeightKg = &w
		case "age":
			a, err := strconv.Atoi(value)
			if err != nil {
				return update, fmt.Errorf("%w: age %q is not a whole number", domain.ErrInvalidProfile, value)
			}
			update.Age = &a
		case "gender":
			update.Gender = &value
		case "activity", "activitylevel":
			update.ActivityLevel = &value
		case "location":
			update.Location = &value
		case "goal", "dailygoal":
			if strings.EqualFold(value, "auto") {
				update.ClearDailyGoal = true
				continue
			}
			g, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(value), "ml"))
			if err != nil {
				return update, fmt.Errorf("%w: goal %q is not a whole number (or auto)", domain.ErrInvalidProfile, value)
			}
			update.DailyGoal = &g
		default:
			return update, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidProfile, key)
		}
	}
	return update, nil
}
