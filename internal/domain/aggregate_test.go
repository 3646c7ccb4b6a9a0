package domain_test

import (
	"testing"
	"time"

	"github.com/vega9999/HydroHero/internal/domain"
)

// =============================================================================
// AGGREGATION TESTS
// =============================================================================
//
// Rules:
// 1. CurrentIntake = today's record amount, 0 when missing
// 2. Records in [today-6, today] are summed per Monday-aligned week
// 3. Older records are summed per first-of-month
// 4. Progress = 100 × current / goal, 0 when goal <= 0
//
// =============================================================================

func day(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func rec(date string, amount int) domain.IntakeRecord {
	return domain.IntakeRecord{UserID: "user1", Date: day(date), Amount: amount}
}

func TestWeekStart_MondayAligned(t *testing.T) {
	cases := map[string]string{
		"2026-10-12": "2026-10-12", // Monday
		"2026-10-14": "2026-10-12", // Wednesday
		"2026-10-18": "2026-10-12", // Sunday
		"2026-10-19": "2026-10-19",
		"2026-03-01": "2026-02-23", // crosses a month
	}
	for in, want := range cases {
		got := domain.WeekStart(day(in))
		if !got.Equal(day(want)) {
			t.Errorf("WeekStart(%s): expected %s, got %s", in, want, got.Format(domain.DateLayout))
		}
	}
}

func TestDateOf_DropsClockAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	t1 := time.Date(2026, 10, 18, 23, 30, 0, 0, loc)
	got := domain.DateOf(t1)
	if !got.Equal(day("2026-10-18")) {
		t.Errorf("Expected 2026-10-18, got %s", got)
	}
}

func TestAggregate_Empty(t *testing.T) {
	agg := domain.Aggregate(nil, day("2026-10-18"))
	if agg.CurrentIntake != 0 {
		t.Errorf("Expected CurrentIntake=0, got %d", agg.CurrentIntake)
	}
	if len(agg.WeeklyTotals) != 0 || len(agg.MonthlyTotals) != 0 || len(agg.DailyIntakes) != 0 {
		t.Errorf("Expected empty rollups, got %+v", agg)
	}
}

func TestAggregate_CurrentIntake(t *testing.T) {
	records := []domain.IntakeRecord{rec("2026-10-17", 1200), rec("2026-10-18", 700)}
	agg := domain.Aggregate(records, day("2026-10-18"))
	if agg.CurrentIntake != 700 {
		t.Errorf("Expected CurrentIntake=700, got %d", agg.CurrentIntake)
	}
}

func TestAggregate_WeeklyPartition(t *testing.T) {
	// Today is Sunday 2026-10-18, window is Mon 10-12 .. Sun 10-18: one week.
	// Today Wednesday 2026-10-21 gives window Thu 10-15 .. Wed 10-21: two weeks.
	records := []domain.IntakeRecord{
		rec("2026-10-14", 100), // outside window for 10-21
		rec("2026-10-15", 200),
		rec("2026-10-17", 300),
		rec("2026-10-18", 400),
		rec("2026-10-19", 500),
		rec("2026-10-21", 600),
	}

	agg := domain.Aggregate(records, day("2026-10-21"))

	if got := agg.WeeklyTotals[day("2026-10-12")]; got != 900 {
		t.Errorf("Week of 10-12: expected 900, got %d", got)
	}
	if got := agg.WeeklyTotals[day("2026-10-19")]; got != 1100 {
		t.Errorf("Week of 10-19: expected 1100, got %d", got)
	}
	if len(agg.WeeklyTotals) != 2 {
		t.Errorf("Expected 2 weeks, got %d", len(agg.WeeklyTotals))
	}

	weekSum := 0
	for _, v := range agg.WeeklyTotals {
		weekSum += v
	}
	daySum := 0
	for _, v := range agg.DailyIntakes {
		daySum += v
	}
	if weekSum != daySum {
		t.Errorf("Weeks must partition the window: weeks=%d days=%d", weekSum, daySum)
	}

	if got := agg.MonthlyTotals[day("2026-10-01")]; got != 100 {
		t.Errorf("October (outside window): expected 100, got %d", got)
	}
}

func TestAggregate_MonthlyExcludesWindow(t *testing.T) {
	records := []domain.IntakeRecord{
		rec("2026-08-30", 1000),
		rec("2026-09-02", 1500),
		rec("2026-09-28", 500),
		rec("2026-10-01", 800),
		rec("2026-10-11", 900), // today-7
		rec("2026-10-12", 300), // today-6, in window
	}
	agg := domain.Aggregate(records, day("2026-10-18"))

	expect := map[string]int{"2026-08-01": 1000, "2026-09-01": 2000, "2026-10-01": 1700}
	for month, want := range expect {
		if got := agg.MonthlyTotals[day(month)]; got != want {
			t.Errorf("Month %s: expected %d, got %d", month, want, got)
		}
	}
	if len(agg.MonthlyTotals) != len(expect) {
		t.Errorf("Expected %d months, got %d", len(expect), len(agg.MonthlyTotals))
	}
	if got := agg.DailyIntakes[day("2026-10-12")]; got != 300 {
		t.Errorf("Day 10-12 should be in the trailing window, got %d", got)
	}
}

func TestAggregate_IgnoresFutureRecords(t *testing.T) {
	records := []domain.IntakeRecord{rec("2026-10-19", 999)}
	agg := domain.Aggregate(records, day("2026-10-18"))
	if len(agg.WeeklyTotals) != 0 || len(agg.MonthlyTotals) != 0 || agg.CurrentIntake != 0 {
		t.Errorf("Future records must be ignored, got %+v", agg)
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name    string
		current int
		goal    int
		clamp   bool
		want    float64
	}{
		{"exact goal", 2000, 2000, false, 100},
		{"half", 1000, 2000, false, 50},
		{"over goal unclamped", 3000, 2000, false, 150},
		{"over goal clamped", 3000, 2000, true, 100},
		{"zero goal", 500, 0, false, 0},
		{"negative goal", 500, -10, false, 0},
		{"nothing drunk", 0, 2000, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ProgressPercent(tt.current, tt.goal, tt.clamp)
			if got != tt.want {
				t.Errorf("Expected %.2f, got %.2f", tt.want, got)
			}
			if again := domain.ProgressPercent(tt.current, tt.goal, tt.clamp); again != got {
				t.Errorf("Progress must be idempotent: %.2f vs %.2f", got, again)
			}
		})
	}
}
