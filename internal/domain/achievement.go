package domain

import "slices"

type Badge string

const (
	BadgeDailyGoal     Badge = "Daily Goal Achieved"
	BadgeWeekStreak    Badge = "Week Streak"
	BadgeLongestStreak Badge = "Longest Streak"
	BadgeTotalIntake   Badge = "1000 Intake"
)

const (
	weekStreakEntries   = 7
	longestStreakTarget = 5
	totalIntakeTarget   = 1000
)

type AchievementInput struct {
	CurrentIntake int
	DailyGoal     int
	// History is iterated in its given order; see LongestStreak.
	History []IntakeRecord
}

// EvaluateAchievements returns earned plus any newly unlocked badges. Badges
// already earned are kept even when their rule no longer holds.
func EvaluateAchievements(earned []Badge, in AchievementInput) []Badge {
	out := slices.Clone(earned)
	grant := func(b Badge) {
		if !slices.Contains(out, b) {
			out = append(out, b)
		}
	}

	if in.DailyGoal > 0 && in.CurrentIntake >= in.DailyGoal {
		grant(BadgeDailyGoal)
	}

	// Distinct dates, not consecutive ones.
	dates := make(map[string]struct{}, len(in.History))
	total := 0
	for _, r := range in.History {
		dates[DateOf(r.Date).Format(DateLayout)] = struct{}{}
		total += r.Amount
	}
	if len(dates) >= weekStreakEntries {
		grant(BadgeWeekStreak)
	}

	if LongestStreak(in.History) >= longestStreakTarget {
		grant(BadgeLongestStreak)
	}

	if total >= totalIntakeTarget {
		grant(BadgeTotalIntake)
	}

	return out
}

// LongestStreak is the longest run of adjacent history entries with a
// positive amount. Adjacency follows slice order, not calendar order.
func LongestStreak(history []IntakeRecord) int {
	longest, current := 0, 0
	for _, r := range history {
		if r.Amount > 0 {
			current++
			longest = max(longest, current)
		} else {
			current = 0
		}
	}
	return longest
}
