package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/vega9999/HydroHero/internal/app/tracker"
	"github.com/vega9999/HydroHero/internal/domain"
)

type AddWaterUsecase struct {
	intakes  domain.IntakeRepository
	activity domain.ActivityRepository
	tracker  *tracker.Tracker
	text     *Formatter

	// Serializes the read-modify-write of today's running total.
	mu sync.Mutex
}

func NewAddWaterUsecase(intakes domain.IntakeRepository, activity domain.ActivityRepository, tr *tracker.Tracker, f *Formatter) *AddWaterUsecase {
	return &AddWaterUsecase{
		intakes:  intakes,
		activity: activity,
		tracker:  tr,
		text:     formatterOrDefault(f),
	}
}

func (uc *AddWaterUsecase) Execute(ctx context.Context, userID string, amount int) (string, error) {
	if amount < 0 || amount > domain.MaxIntakeAmount {
		return "", fmt.Errorf("%w: must be between 0 and %d ml", domain.ErrInvalidAmount, domain.MaxIntakeAmount)
	}

	before, err := uc.tracker.Snapshot(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := uc.addToToday(ctx, userID, amount); err != nil {
		return "", err
	}

	after, err := uc.tracker.Snapshot(ctx, userID)
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	sb.WriteString(uc.text.Sprintf("💧 Added %s. Today: %s / %s (%s)",
		uc.text.ML(amount), uc.text.ML(after.CurrentIntake), uc.text.ML(after.DailyGoal), uc.text.Percent(after.ProgressPercent)))
	for _, b := range after.Achievements {
		if !before.HasBadge(b) {
			sb.WriteString(fmt.Sprintf("\n🏆 New badge: %s", b))
		}
	}
	return sb.String(), nil
}

func (uc *AddWaterUsecase) addToToday(ctx context.Context, userID string, amount int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	today := uc.tracker.Today()
	record, err := uc.intakes.GetIntake(ctx, userID, today)
	if err != nil {
		return fmt.Errorf("get today's intake: %w", err)
	}
	if record == nil {
		record = &domain.IntakeRecord{UserID: userID, Date: today}
	}
	record.Amount += amount

	if err := uc.intakes.UpsertIntake(ctx, record); err != nil {
		return fmt.Errorf("save intake: %w", err)
	}
	if err := uc.activity.TouchLastIntake(ctx, userID, uc.tracker.Now()); err != nil {
		return fmt.Errorf("save last intake time: %w", err)
	}
	return nil
}
