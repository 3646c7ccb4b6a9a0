package domain

import (
	"context"
	"time"
)

// GuestName is the display name given to users who skip registration.
const GuestName = "Guest"

type Account struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AuthResult never carries an error value: failures are reported through
// Success and a message meant for the user.
type AuthResult struct {
	DisplayName string
	Success     bool
	Error       string
}

type AccountRepository interface {
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	CreateAccount(ctx context.Context, account *Account) error
}

// IdentityRepository binds a chat user to the display name they logged in with.
type IdentityRepository interface {
	DisplayName(ctx context.Context, userID string) (string, error)
	SetDisplayName(ctx context.Context, userID, name string) error
}
