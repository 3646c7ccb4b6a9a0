package domain

import (
	"context"
	"time"
)

// IntakeRecord is the total water a user drank on one calendar date.
type IntakeRecord struct {
	UserID string    `json:"user_id" db:"user_id"`
	Date   time.Time `json:"date" db:"date"`
	Amount int       `json:"amount" db:"amount"`
}

// IntakeListener is called after a record has been written.
type IntakeListener func(ctx context.Context, record IntakeRecord)

type IntakeRepository interface {
	GetIntake(ctx context.Context, userID string, date time.Time) (*IntakeRecord, error)
	// GetIntakesBetween returns records in [start, end], newest date first.
	GetIntakesBetween(ctx context.Context, userID string, start, end time.Time) ([]IntakeRecord, error)
	// GetHistory returns every record of the user in insertion order.
	GetHistory(ctx context.Context, userID string) ([]IntakeRecord, error)
	UpsertIntake(ctx context.Context, record *IntakeRecord) error
	Subscribe(listener IntakeListener) (unsubscribe func())
}
