package domain

import "time"

// TrailingDays is the size of the trailing window shown as the weekly view.
const TrailingDays = 7

type Aggregates struct {
	CurrentIntake int
	// DailyIntakes holds each date of the trailing window that has a record.
	DailyIntakes map[time.Time]int
	// WeeklyTotals is keyed by the Monday starting each ISO week.
	WeeklyTotals map[time.Time]int
	// MonthlyTotals is keyed by the first day of the month and only covers
	// records older than the trailing window.
	MonthlyTotals map[time.Time]int
}

// Aggregate rolls up records relative to today. Records dated after today
// are ignored.
func Aggregate(records []IntakeRecord, today time.Time) Aggregates {
	today = DateOf(today)
	windowStart := today.AddDate(0, 0, -(TrailingDays - 1))

	agg := Aggregates{
		DailyIntakes:  make(map[time.Time]int),
		WeeklyTotals:  make(map[time.Time]int),
		MonthlyTotals: make(map[time.Time]int),
	}

	for _, r := range records {
		d := DateOf(r.Date)
		if d.After(today) {
			continue
		}
		if d.Equal(today) {
			agg.CurrentIntake += r.Amount
		}
		if d.Before(windowStart) {
			agg.MonthlyTotals[MonthStart(d)] += r.Amount
			continue
		}
		agg.DailyIntakes[d] += r.Amount
		agg.WeeklyTotals[WeekStart(d)] += r.Amount
	}

	return agg
}

// ProgressPercent is 100 × current / goal. A goal of zero or less reports 0.
// With clamp set the result never exceeds 100.
func ProgressPercent(current, goal int, clamp bool) float64 {
	if goal <= 0 {
		return 0
	}
	p := 100 * float64(current) / float64(goal)
	if p < 0 {
		p = 0
	}
	if clamp && p > 100 {
		p = 100
	}
	return p
}
