package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"musichub/internal/models"
	"musichub/internal/shared"
)

// AccountRepository handles [models.Account] persistence.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new [AccountRepository] with the given database connection
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account with a generated id. The email must already be
// normalized and the secret hashed by the caller. Returns
// [shared.ErrDuplicateAccount] when the email or display name is taken.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM accounts WHERE email = ? OR display_name = ?)",
		account.EmailAddress, account.DisplayName,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for existing account: %w", err)
	}
	if exists {
		return shared.ErrDuplicateAccount
	}

	now := time.Now().UTC()
	account.ID = shared.GenerateID()
	account.CreatedAt = now
	account.UpdatedAt = now

	query := `
		INSERT INTO accounts (id, display_name, email, secret_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		account.ID, account.DisplayName, account.EmailAddress, account.SecretHash,
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	return nil
}

// Get retrieves an account by id.
func (r *AccountRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	return r.getWhere(ctx, "id = ?", id)
}

// GetByEmail retrieves an account by its normalized email address. The display
// name is not a login key.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getWhere(ctx, "email = ?", models.NormalizeEmail(email))
}

func (r *AccountRepository) getWhere(ctx context.Context, clause string, arg any) (*models.Account, error) {
	query := `
		SELECT id, display_name, email, secret_hash, created_at, updated_at
		FROM accounts
		WHERE ` + clause

	var account models.Account
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID, &account.DisplayName, &account.EmailAddress, &account.SecretHash,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	return &account, nil
}
