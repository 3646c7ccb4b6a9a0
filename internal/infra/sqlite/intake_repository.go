package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/vega9999/HydroHero/internal/domain"
)

type IntakeRepository struct {
	db *sql.DB

	mu        sync.RWMutex
	listeners map[int]domain.IntakeListener
	nextID    int
}

func NewIntakeRepository(db *sql.DB) *IntakeRepository {
	return &IntakeRepository{
		db:        db,
		listeners: make(map[int]domain.IntakeListener),
	}
}

func (r *IntakeRepository) GetIntake(ctx context.Context, userID string, date time.Time) (*domain.IntakeRecord, error) {
	query := `SELECT user_id, date, amount FROM water_intakes WHERE user_id = ? AND date = ?`
	row := r.db.QueryRowContext(ctx, query, userID, domain.DateOf(date).Format(domain.DateLayout))

	record, err := scanIntake(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *IntakeRepository) GetIntakesBetween(ctx context.Context, userID string, start, end time.Time) ([]domain.IntakeRecord, error) {
	query := `SELECT user_id, date, amount FROM water_intakes WHERE user_id = ? AND date BETWEEN ? AND ? ORDER BY date DESC`
	return r.queryIntakes(ctx, query, userID,
		domain.DateOf(start).Format(domain.DateLayout),
		domain.DateOf(end).Format(domain.DateLayout))
}

func (r *IntakeRepository) GetHistory(ctx context.Context, userID string) ([]domain.IntakeRecord, error) {
	// rowid keeps insertion order; an upsert on an existing date keeps its row.
	query := `SELECT user_id, date, amount FROM water_intakes WHERE user_id = ? ORDER BY rowid`
	return r.queryIntakes(ctx, query, userID)
}

func (r *IntakeRepository) UpsertIntake(ctx context.Context, record *domain.IntakeRecord) error {
	if record.Amount < 0 {
		return fmt.Errorf("%w: must not be negative", domain.ErrInvalidAmount)
	}
	query := `
		INSERT INTO water_intakes (user_id, date, amount, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			amount = excluded.amount,
			updated_at = excluded.updated_at
	`
	record.Date = domain.DateOf(record.Date)
	_, err := r.db.ExecContext(ctx, query, record.UserID, record.Date.Format(domain.DateLayout), record.Amount, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	r.publish(ctx, *record)
	return nil
}

// Subscribe registers listener for every successful upsert. The returned
// function removes it and is safe to call more than once.
func (r *IntakeRepository) Subscribe(listener domain.IntakeListener) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = listener
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.listeners, id)
			r.mu.Unlock()
		})
	}
}

func (r *IntakeRepository) publish(ctx context.Context, record domain.IntakeRecord) {
	r.mu.RLock()
	listeners := make([]domain.IntakeListener, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.mu.RUnlock()

	for _, l := range listeners {
		l(ctx, record)
	}
}

func (r *IntakeRepository) queryIntakes(ctx context.Context, query string, args ...any) ([]domain.IntakeRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.IntakeRecord
	for rows.Next() {
		record, err := scanIntake(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIntake(s scanner) (*domain.IntakeRecord, error) {
	var record domain.IntakeRecord
	var date string
	if err := s.Scan(&record.UserID, &date, &record.Amount); err != nil {
		return nil, err
	}

	var err error
	record.Date, err = time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *IntakeRepository) InitTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS water_intakes (
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			amount INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT,
			PRIMARY KEY (user_id, date)
		);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}
