package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"musichub/internal/models"
	"musichub/internal/repositories"
	"musichub/internal/shared"
)

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

func TestCredentialStore(t *testing.T) {
	ctx := context.Background()

	t.Run("RegisterAndVerify", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewCredentialStore(repositories.NewAccountRepository(db))

		account, err := store.Register(ctx, "alice123", "A@X.com", "secret1")
		if err != nil {
			t.Fatalf("failed to register: %v", err)
		}
		if account.EmailAddress != "a@x.com" {
			t.Errorf("expected normalized email, got %q", account.EmailAddress)
		}
		if account.SecretHash == "secret1" || account.SecretHash == "" {
			t.Error("secret must be stored as a hash")
		}

		verified, err := store.Verify(ctx, "a@x.com", "secret1")
		if err != nil {
			t.Fatalf("failed to verify: %v", err)
		}
		if verified.ID != account.ID {
			t.Errorf("expected account %s, got %s", account.ID, verified.ID)
		}
	})

	t.Run("ShortSecret", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewCredentialStore(repositories.NewAccountRepository(db))
		if _, err := store.Register(ctx, "alice123", "a@x.com", "short"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected invalid input error, got %v", err)
		}
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewCredentialStore(repositories.NewAccountRepository(db))
		if _, err := store.Register(ctx, "alice123", "a@x.com", "secret1"); err != nil {
			t.Fatalf("failed to register: %v", err)
		}

		if _, err := store.Register(ctx, "bob456", "a@x.com", "secret2"); !errors.Is(err, shared.ErrDuplicateAccount) {
			t.Errorf("expected duplicate account error, got %v", err)
		}
	})

	t.Run("BadCredentialsIndistinguishable", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewCredentialStore(repositories.NewAccountRepository(db))
		if _, err := store.Register(ctx, "alice123", "a@x.com", "secret1"); err != nil {
			t.Fatalf("failed to register: %v", err)
		}

		// Unknown email and wrong secret must produce the same error.
		_, unknownErr := store.Verify(ctx, "nobody@x.com", "secret1")
		_, wrongErr := store.Verify(ctx, "a@x.com", "wrong-secret")

		if !errors.Is(unknownErr, shared.ErrInvalidCredentials) {
			t.Errorf("expected invalid credentials for unknown email, got %v", unknownErr)
		}
		if !errors.Is(wrongErr, shared.ErrInvalidCredentials) {
			t.Errorf("expected invalid credentials for wrong secret, got %v", wrongErr)
		}
	})
}

func TestIssuer(t *testing.T) {
	account := &models.Account{
		ID:           "acct-1",
		DisplayName:  "alice123",
		EmailAddress: "a@x.com",
	}

	t.Run("IssueAndVerify", func(t *testing.T) {
		issuer := NewIssuer("test-secret")

		signed, expiration, err := issuer.Issue(account)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}
		if remaining := time.Until(expiration); remaining < 23*time.Hour || remaining > 25*time.Hour {
			t.Errorf("unexpected expiration window: %v", remaining)
		}

		claims, err := issuer.Verify(signed)
		if err != nil {
			t.Fatalf("failed to verify token: %v", err)
		}
		if claims.AccountID != "acct-1" {
			t.Errorf("expected account id acct-1, got %q", claims.AccountID)
		}
		if claims.DisplayName != "alice123" || claims.EmailAddress != "a@x.com" {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})

	t.Run("WrongKey", func(t *testing.T) {
		signed, _, err := NewIssuer("test-secret").Issue(account)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}

		if _, err := NewIssuer("other-secret").Verify(signed); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected not authenticated error, got %v", err)
		}
	})

	t.Run("Tampered", func(t *testing.T) {
		issuer := NewIssuer("test-secret")
		signed, _, err := issuer.Issue(account)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}

		parts := strings.Split(signed, ".")
		if len(parts) != 3 {
			t.Fatalf("expected a three-part token, got %d parts", len(parts))
		}
		tampered := parts[0] + ".eyJ1c2VySWQiOiJtYWxsb3J5In0." + parts[2]

		if _, err := issuer.Verify(tampered); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected not authenticated error, got %v", err)
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		if _, err := NewIssuer("test-secret").Verify("not-a-token"); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected not authenticated error, got %v", err)
		}
	})
}
