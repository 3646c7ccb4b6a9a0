package domain

import "context"

// ReminderChannel is the notification channel for hydration reminders.
const ReminderChannel = "HYDRO_HERO_CHANNEL"

type Notification struct {
	Channel   string
	Recipient string
	Title     string
	Body      string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// PermissionRepository stores per-user opt-in for notification channels.
type PermissionRepository interface {
	HasPermission(ctx context.Context, userID, channel string) (bool, error)
	SetPermission(ctx context.Context, userID, channel string, allowed bool) error
}
