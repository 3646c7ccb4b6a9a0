package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/vega9999/HydroHero/internal/domain"
)

// Preference keys. Each user has at most one value per key.
const (
	KeyProfile      = "PROFILE_JSON"
	KeyDailyGoal    = "DAILY_GOAL"
	KeyLastIntakeAt = "LAST_INTAKE_TIMESTAMP"
	KeyDisplayName  = "DISPLAY_NAME"
	keyNotifyPrefix = "NOTIFY_"
)

// PreferenceRepository is a flat per-user key-value store. It backs the
// profile, goal, activity, permission and identity repositories.
type PreferenceRepository struct {
	db *sql.DB
}

func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) Get(ctx context.Context, userID, key string) (string, bool, error) {
	query := `SELECT value FROM preferences WHERE user_id = ? AND key = ?`
	var value string
	err := r.db.QueryRowContext(ctx, query, userID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *PreferenceRepository) Set(ctx context.Context, userID, key, value string) error {
	query := `
		INSERT INTO preferences (user_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, key) DO UPDATE SET
			value = excluded.value
	`
	_, err := r.db.ExecContext(ctx, query, userID, key, value)
	return err
}

// LoadProfile never fails on bad data: a missing or malformed snapshot
// yields the default profile.
func (r *PreferenceRepository) LoadProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	raw, _, err := r.Get(ctx, userID, KeyProfile)
	if err != nil {
		return domain.DefaultProfile(), err
	}
	return domain.DecodeProfile(raw), nil
}

func (r *PreferenceRepository) SaveProfile(ctx context.Context, userID string, profile domain.UserProfile) error {
	raw, err := domain.EncodeProfile(profile)
	if err != nil {
		return err
	}
	return r.Set(ctx, userID, KeyProfile, raw)
}

func (r *PreferenceRepository) LoadDailyGoal(ctx context.Context, userID string, fallback int) (int, error) {
	raw, ok, err := r.Get(ctx, userID, KeyDailyGoal)
	if err != nil || !ok {
		return fallback, err
	}
	goal, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback, nil
	}
	return goal, nil
}

func (r *PreferenceRepository) SaveDailyGoal(ctx context.Context, userID string, goal int) error {
	return r.Set(ctx, userID, KeyDailyGoal, strconv.Itoa(goal))
}

func (r *PreferenceRepository) LastIntakeAt(ctx context.Context, userID string) (time.Time, bool, error) {
	raw, ok, err := r.Get(ctx, userID, KeyLastIntakeAt)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, nil
	}
	return at, true, nil
}

func (r *PreferenceRepository) TouchLastIntake(ctx context.Context, userID string, at time.Time) error {
	return r.Set(ctx, userID, KeyLastIntakeAt, at.UTC().Format(time.RFC3339Nano))
}

// ListActiveUsers returns users that have logged water at least once.
func (r *PreferenceRepository) ListActiveUsers(ctx context.Context) ([]string, error) {
	query := `SELECT user_id FROM preferences WHERE key = ? ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, query, KeyLastIntakeAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		users = append(users, userID)
	}
	return users, rows.Err()
}

// HasPermission defaults to allowed until the user opts out.
func (r *PreferenceRepository) HasPermission(ctx context.Context, userID, channel string) (bool, error) {
	raw, ok, err := r.Get(ctx, userID, keyNotifyPrefix+channel)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	allowed, err := strconv.ParseBool(raw)
	if err != nil {
		return true, nil
	}
	return allowed, nil
}

func (r *PreferenceRepository) SetPermission(ctx context.Context, userID, channel string, allowed bool) error {
	return r.Set(ctx, userID, keyNotifyPrefix+channel, strconv.FormatBool(allowed))
}

func (r *PreferenceRepository) DisplayName(ctx context.Context, userID string) (string, error) {
	name, _, err := r.Get(ctx, userID, KeyDisplayName)
	return name, err
}

func (r *PreferenceRepository) SetDisplayName(ctx context.Context, userID, name string) error {
	return r.Set(ctx, userID, KeyDisplayName, name)
}

func (r *PreferenceRepository) InitTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS preferences (
			user_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (user_id, key)
		);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}
