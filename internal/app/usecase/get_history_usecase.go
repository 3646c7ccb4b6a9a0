package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/vega9999/HydroHero/internal/app/tracker"
	"github.com/vega9999/HydroHero/internal/domain"
)

// MaxRangeDays bounds the "#history <days>" listing.
const MaxRangeDays = 90

type GetHistoryUsecase struct {
	intakes domain.IntakeRepository
	tracker *tracker.Tracker
	text    *Formatter
}

func NewGetHistoryUsecase(intakes domain.IntakeRepository, tr *tracker.Tracker, f *Formatter) *GetHistoryUsecase {
	return &GetHistoryUsecase{intakes: intakes, tracker: tr, text: formatterOrDefault(f)}
}

func (uc *GetHistoryUsecase) Execute(ctx context.Context, userID string) (string, error) {
	s, err := uc.tracker.Snapshot(ctx, userID)
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	sb.WriteString("📊 Hydration history\n\n")

	sb.WriteString("Last 7 days:\n")
	for i := domain.TrailingDays - 1; i >= 0; i-- {
		d := s.Today.AddDate(0, 0, -i)
		amount := s.DailyIntakes[d]
		mark := ""
		if s.DailyGoal > 0 && amount >= s.DailyGoal {
			mark = " ✅"
		}
		sb.WriteString(uc.text.Sprintf("%s: %s%s\n", d.Format("Mon 02 Jan"), uc.text.ML(amount), mark))
	}

	sb.WriteString("\nWeekly totals:\n")
	for _, week := range sortedKeys(s.WeeklyTotals) {
		sb.WriteString(uc.text.Sprintf("Week of %s: %s\n", week.Format("02 Jan"), uc.text.ML(s.WeeklyTotals[week])))
	}

	if len(s.MonthlyTotals) > 0 {
		sb.WriteString("\nMonthly totals (before this week):\n")
		for _, month := range sortedKeys(s.MonthlyTotals) {
			sb.WriteString(uc.text.Sprintf("%s: %s\n", month.Format("Jan 2006"), uc.text.ML(s.MonthlyTotals[month])))
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// Range lists the recorded days of the last n days, newest first, with
// their total.
func (uc *GetHistoryUsecase) Range(ctx context.Context, userID string, days int) (string, error) {
	if days < 1 || days > MaxRangeDays {
		return uc.text.Sprintf("Pick between 1 and %d days, e.g. #history 30", MaxRangeDays), nil
	}

	today := uc.tracker.Today()
	start := today.AddDate(0, 0, -(days - 1))
	records, err := uc.intakes.GetIntakesBetween(ctx, userID, start, today)
	if err != nil {
		return "", fmt.Errorf("load intakes: %w", err)
	}
	if len(records) == 0 {
		return uc.text.Sprintf("No water logged in the last %d days.", days), nil
	}

	total := 0
	sb := strings.Builder{}
	sb.WriteString(uc.text.Sprintf("📊 Last %d days\n", days))
	for _, r := range records {
		total += r.Amount
		sb.WriteString(uc.text.Sprintf("%s: %s\n", r.Date.Format("Mon 02 Jan"), uc.text.ML(r.Amount)))
	}
	sb.WriteString(uc.text.Sprintf("Total: %s over %d day(s)", uc.text.ML(total), len(records)))
	return sb.String(), nil
}

func sortedKeys(m map[time.Time]int) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b time.Time) int { return a.Compare(b) })
	return keys
}
