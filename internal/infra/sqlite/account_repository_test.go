package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vega9999/HydroHero/internal/domain"
	"github.com/vega9999/HydroHero/internal/infra/sqlite"
)

func setupAccountRepo(t *testing.T) *sqlite.AccountRepository {
	t.Helper()

	repo := sqlite.NewAccountRepository(openTestDB(t))
	if err := repo.InitTable(context.Background()); err != nil {
		t.Fatalf("Failed to initialize table: %v", err)
	}
	return repo
}

func TestAccountRepository_CreateAndGet(t *testing.T) {
	repo := setupAccountRepo(t)
	ctx := context.Background()

	account := &domain.Account{Email: " Alice@Example.com ", DisplayName: "Alice", PasswordHash: "hash"}
	if err := repo.CreateAccount(ctx, account); err != nil {
		t.Fatalf("Failed to create: %v", err)
	}
	if account.ID == "" {
		t.Error("Expected an ID to be assigned")
	}

	got, err := repo.GetAccountByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if got == nil {
		t.Fatal("Expected account to be found")
	}
	if got.ID != account.ID || got.DisplayName != "Alice" || got.PasswordHash != "hash" {
		t.Errorf("Unexpected account: %+v", got)
	}
}

func TestAccountRepository_GetMissing(t *testing.T) {
	repo := setupAccountRepo(t)

	got, err := repo.GetAccountByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil, got %+v", got)
	}
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	repo := setupAccountRepo(t)
	ctx := context.Background()

	if err := repo.CreateAccount(ctx, &domain.Account{Email: "bob@example.com", DisplayName: "Bob", PasswordHash: "x"}); err != nil {
		t.Fatalf("Failed to create: %v", err)
	}
	err := repo.CreateAccount(ctx, &domain.Account{Email: "BOB@example.com", DisplayName: "Bobby", PasswordHash: "y"})
	if !errors.Is(err, domain.ErrAccountExists) {
		t.Errorf("Expected ErrAccountExists, got %v", err)
	}
}
