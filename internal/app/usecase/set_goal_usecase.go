package usecase

import (
	"context"
	"fmt"

	"github.com/vega9999/HydroHero/internal/app/tracker"
	"github.com/vega9999/HydroHero/internal/domain"
)

type SetDailyGoalUsecase struct {
	profiles domain.ProfileRepository
	tracker  *tracker.Tracker
	text     *Formatter
}

func NewSetDailyGoalUsecase(profiles domain.ProfileRepository, tr *tracker.Tracker, f *Formatter) *SetDailyGoalUsecase {
	return &SetDailyGoalUsecase{profiles: profiles, tracker: tr, text: formatterOrDefault(f)}
}

func (uc *SetDailyGoalUsecase) Execute(ctx context.Context, userID string, goal int) (string, error) {
	if goal <= 0 || goal > domain.MaxDailyGoal {
		return "", fmt.Errorf("%w: must be between 1 and %d ml", domain.ErrInvalidGoal, domain.MaxDailyGoal)
	}
	if err := uc.profiles.SaveDailyGoal(ctx, userID, goal); err != nil {
		return "", fmt.Errorf("save daily goal: %w", err)
	}

	s, err := uc.tracker.Refresh(ctx, userID)
	if err != nil {
		return "", err
	}
	return uc.text.Sprintf("🎯 Daily goal set to %s. Progress: %s", uc.text.ML(s.DailyGoal), uc.text.Percent(s.ProgressPercent)), nil
}
