package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"musichub/internal/models"
	"musichub/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func newAccount(displayName, email string) *models.Account {
	return &models.Account{
		DisplayName:  displayName,
		EmailAddress: email,
		SecretHash:   "$2a$10$fakehash",
	}
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAccountRepository(db)
		account := newAccount("alice123", "a@x.com")

		if err := repo.Create(ctx, account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}

		if account.ID == "" {
			t.Error("account ID should be set after creation")
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAccountRepository(db)
		if err := repo.Create(ctx, newAccount("alice123", "a@x.com")); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}

		err := repo.Create(ctx, newAccount("bob456", "a@x.com"))
		if !errors.Is(err, shared.ErrDuplicateAccount) {
			t.Errorf("expected duplicate account error, got %v", err)
		}
	})

	t.Run("DuplicateDisplayName", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAccountRepository(db)
		if err := repo.Create(ctx, newAccount("alice123", "a@x.com")); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}

		err := repo.Create(ctx, newAccount("alice123", "b@x.com"))
		if !errors.Is(err, shared.ErrDuplicateAccount) {
			t.Errorf("expected duplicate account error, got %v", err)
		}
	})

	t.Run("GetByEmail", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAccountRepository(db)
		account := newAccount("alice123", "a@x.com")
		if err := repo.Create(ctx, account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}

		retrieved, err := repo.GetByEmail(ctx, "A@X.com")
		if err != nil {
			t.Fatalf("failed to get account by email: %v", err)
		}
		if retrieved.ID != account.ID {
			t.Errorf("expected ID %s, got %s", account.ID, retrieved.ID)
		}

		if _, err := repo.GetByEmail(ctx, "nobody@x.com"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAccountRepository(db)
		account := newAccount("alice123", "a@x.com")
		if err := repo.Create(ctx, account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}

		retrieved, err := repo.Get(ctx, account.ID)
		if err != nil {
			t.Fatalf("failed to get account: %v", err)
		}
		if retrieved.DisplayName != "alice123" {
			t.Errorf("expected display name alice123, got %s", retrieved.DisplayName)
		}
	})
}

func TestTrackRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CountEmpty", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		count, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("failed to count tracks: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 tracks, got %d", count)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		if _, err := repo.Get(ctx, "missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
		if _, err := repo.GetBySpotifyID(ctx, "missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})
}
