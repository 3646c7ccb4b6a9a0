package usecase_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vega9999/HydroHero/internal/app/tracker"
	"github.com/vega9999/HydroHero/internal/infra/sqlite"
)

type env struct {
	tracker  *tracker.Tracker
	intakes  *sqlite.IntakeRepository
	prefs    *sqlite.PreferenceRepository
	accounts *sqlite.AccountRepository
	now      time.Time
}

func setupEnv(t *testing.T) *env {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	e := &env{
		intakes:  sqlite.NewIntakeRepository(db),
		prefs:    sqlite.NewPreferenceRepository(db),
		accounts: sqlite.NewAccountRepository(db),
		now:      time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC),
	}
	if err := e.intakes.InitTable(ctx); err != nil {
		t.Fatalf("Failed to init intakes: %v", err)
	}
	if err := e.prefs.InitTable(ctx); err != nil {
		t.Fatalf("Failed to init preferences: %v", err)
	}
	if err := e.accounts.InitTable(ctx); err != nil {
		t.Fatalf("Failed to init accounts: %v", err)
	}

	e.tracker = tracker.New(e.intakes, e.prefs, tracker.Config{
		Location: time.UTC,
		Now:      func() time.Time { return e.now },
	}, nil)
	e.tracker.Start()
	t.Cleanup(e.tracker.Close)
	return e
}
