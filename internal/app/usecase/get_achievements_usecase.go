package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/vega9999/HydroHero/internal/app/tracker"
	"github.com/vega9999/HydroHero/internal/domain"
)

var allBadges = []domain.Badge{
	domain.BadgeDailyGoal,
	domain.BadgeWeekStreak,
	domain.BadgeLongestStreak,
	domain.BadgeTotalIntake,
}

type GetAchievementsUsecase struct {
	tracker *tracker.Tracker
}

func NewGetAchievementsUsecase(tr *tracker.Tracker) *GetAchievementsUsecase {
	return &GetAchievementsUsecase{tracker: tr}
}

func (uc *GetAchievementsUsecase) Execute(ctx context.Context, userID string) (string, error) {
	s, err := uc.tracker.Snapshot(ctx, userID)
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("🏆 Achievements (%d/%d)\n", len(s.Achievements), len(allBadges)))
	for _, b := range allBadges {
		if s.HasBadge(b) {
			sb.WriteString(fmt.Sprintf("✅ %s\n", b))
		} else {
			sb.WriteString(fmt.Sprintf("🔒 %s\n", b))
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
