package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"musichub/internal/models"
	"musichub/internal/repositories"
	"musichub/internal/shared"
)

// hashCost is the bcrypt cost factor applied to account secrets.
const hashCost = 10

// CredentialStore registers accounts and verifies sign-in attempts against
// stored bcrypt hashes.
type CredentialStore struct {
	accounts *repositories.AccountRepository
}

// NewCredentialStore creates a [CredentialStore] backed by the given account repository.
func NewCredentialStore(accounts *repositories.AccountRepository) *CredentialStore {
	return &CredentialStore{accounts: accounts}
}

// Register creates a new account with a hashed secret. The email is normalized
// to lowercase before storage. Returns [shared.ErrDuplicateAccount] when the
// email or display name is already taken.
func (s *CredentialStore) Register(ctx context.Context, displayName, email, secret string) (*models.Account, error) {
	if err := models.ValidateSecret(secret); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash secret: %w", err)
	}

	account := &models.Account{
		DisplayName:  displayName,
		EmailAddress: models.NormalizeEmail(email),
		SecretHash:   string(hash),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Verify checks an email/secret pair. Unknown email and wrong secret both
// return [shared.ErrInvalidCredentials]; the comparison against the stored
// hash is constant time.
func (s *CredentialStore) Verify(ctx context.Context, email, secret string) (*models.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.SecretHash), []byte(secret)) != nil {
		return nil, shared.ErrInvalidCredentials
	}

	return account, nil
}
