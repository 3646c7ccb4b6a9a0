package usecase

import (
	"context"
	"strings"

	"github.com/vega9999/HydroHero/internal/app/tracker"
	"github.com/vega9999/HydroHero/internal/domain"
)

type GetStatusUsecase struct {
	tracker *tracker.Tracker
	text    *Formatter
}

func NewGetStatusUsecase(tr *tracker.Tracker, f *Formatter) *GetStatusUsecase {
	return &GetStatusUsecase{tracker: tr, text: formatterOrDefault(f)}
}

func (uc *GetStatusUsecase) Execute(ctx context.Context, userID string) (string, error) {
	s, err := uc.tracker.Snapshot(ctx, userID)
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	sb.WriteString(uc.text.Sprintf("💧 Today (%s)\n", s.Today.Format("Mon 02 Jan 2006")))
	sb.WriteString(uc.text.Sprintf("%s / %s (%s)\n", uc.text.ML(s.CurrentIntake), uc.text.ML(s.DailyGoal), uc.text.Percent(s.ProgressPercent)))
	if remaining := s.Remaining(); remaining > 0 {
		sb.WriteString(uc.text.Sprintf("%s to go.\n", uc.text.ML(remaining)))
	}
	sb.WriteString(domain.Recommendation(s.CurrentIntake, s.DailyGoal))
	return sb.String(), nil
}
