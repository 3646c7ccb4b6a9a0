package domain

import (
	"math"
	"strings"
)

// HydrationFactor is the baseline millilitres per kilogram of body weight.
const HydrationFactor = 35.0

// LocationAdjuster returns a millilitre adjustment for a free-text location.
// It stands in for a weather lookup.
type LocationAdjuster func(location string) int

// KeywordLocationAdjustment matches climate keywords in the location text.
// The first matching keyword wins.
func KeywordLocationAdjustment(location string) int {
	loc := strings.ToLower(location)
	switch {
	case strings.Contains(loc, "desert"):
		return 500
	case strings.Contains(loc, "tropical"):
		return 400
	case strings.Contains(loc, "arctic"):
		return -100
	default:
		return 0
	}
}

func ActivityAdjustment(level ActivityLevel) int {
	switch level {
	case ActivityModerate:
		return 250
	case ActivityActive:
		return 500
	default:
		return 0
	}
}

// CalculateDailyGoal computes the recommended intake in millilitres.
func CalculateDailyGoal(p UserProfile, adjust LocationAdjuster) int {
	if adjust == nil {
		adjust = KeywordLocationAdjustment
	}
	baseline := p.WeightKg * HydrationFactor
	total := baseline + float64(ActivityAdjustment(p.ActivityLevel)) + float64(adjust(p.Location))
	return int(math.Round(total))
}

// GoalForProfile honours an explicit override before falling back to the
// computed goal.
func GoalForProfile(p UserProfile, adjust LocationAdjuster) int {
	if p.DailyGoal != nil && *p.DailyGoal > 0 {
		return *p.DailyGoal
	}
	return CalculateDailyGoal(p, adjust)
}
