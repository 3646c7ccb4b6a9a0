package usecase

import (
	"context"
	"fmt"

	"github.com/vega9999/HydroHero/internal/domain"
)

type SetReminderUsecase struct {
	permissions domain.PermissionRepository
}

func NewSetReminderUsecase(permissions domain.PermissionRepository) *SetReminderUsecase {
	return &SetReminderUsecase{permissions: permissions}
}

func (uc *SetReminderUsecase) Execute(ctx context.Context, userID string, enabled bool) (string, error) {
	if err := uc.permissions.SetPermission(ctx, userID, domain.ReminderChannel, enabled); err != nil {
		return "", fmt.Errorf("save reminder permission: %w", err)
	}
	if enabled {
		return "🔔 Reminders on. I'll nudge you when you haven't had water in a while.", nil
	}
	return "🔕 Reminders off.", nil
}
