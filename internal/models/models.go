package models

import (
	"fmt"
	"strings"
	"time"

	"musichub/internal/shared"
)

const (
	minDisplayNameLen = 3
	minSecretLen      = 6
)

// Account represents a registered identity. The secret is stored as a bcrypt
// hash and never serialized.
type Account struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"displayName"`
	EmailAddress string    `json:"emailAddress"`
	SecretHash   string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicAccount is the account shape returned by the auth endpoints.
type PublicAccount struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// Public returns the client-facing view of the account.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:           a.ID,
		DisplayName:  a.DisplayName,
		EmailAddress: a.EmailAddress,
	}
}

// Validate checks the account's invariants: display name length and a
// minimally plausible email address. The secret length is validated before
// hashing, not here, because only the hash is retained.
func (a *Account) Validate() error {
	if len(strings.TrimSpace(a.DisplayName)) < minDisplayNameLen {
		return fmt.Errorf("%w: display name must be at least %d characters", shared.ErrInvalidInput, minDisplayNameLen)
	}
	if !strings.Contains(a.EmailAddress, "@") {
		return fmt.Errorf("%w: email address is invalid", shared.ErrInvalidInput)
	}
	if a.EmailAddress != NormalizeEmail(a.EmailAddress) {
		return fmt.Errorf("%w: email address must be normalized", shared.ErrInvalidInput)
	}
	if a.SecretHash == "" {
		return fmt.Errorf("%w: secret hash is missing", shared.ErrInvalidInput)
	}
	return nil
}

// ValidateSecret checks the plaintext secret before it is hashed.
func ValidateSecret(secret string) error {
	if len(secret) < minSecretLen {
		return fmt.Errorf("%w: secret must be at least %d characters", shared.ErrInvalidInput, minSecretLen)
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Collection represents a named, owned, ordered grouping of track references.
// Tracks are resolved inline when the collection is read.
type Collection struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner"`
	Tracks      []*Track  `json:"tracks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks the collection's invariants. Title and description are free
// text and may be empty; only the owner reference is required.
func (c *Collection) Validate() error {
	if c.OwnerID == "" {
		return fmt.Errorf("%w: collection owner is required", shared.ErrInvalidInput)
	}
	return nil
}

// Track represents a catalog-sourced record, deduplicated globally by Spotify
// track id.
type Track struct {
	ID             string    `json:"id"`
	SpotifyTrackID string    `json:"spotifyTrackId"`
	TrackName      string    `json:"trackName"`
	Performer      string    `json:"performer"`
	RecordTitle    string    `json:"recordTitle"`
	CoverImage     string    `json:"coverImage"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TrackDescriptor is the catalog search result shape. It doubles as the
// payload for adding a track to a collection.
type TrackDescriptor struct {
	SpotifyTrackID string `json:"spotifyTrackId"`
	TrackName      string `json:"trackName"`
	Performer      string `json:"performer"`
	RecordTitle    string `json:"recordTitle"`
	CoverImage     string `json:"coverImage,omitempty"`
	Duration       int    `json:"duration,omitempty"`
	PreviewURL     string `json:"previewUrl,omitempty"`
}

// Validate checks that the descriptor carries the fields required to create a
// track record. Cover image, duration, and preview link are optional.
func (d *TrackDescriptor) Validate() error {
	if d.SpotifyTrackID == "" {
		return fmt.Errorf("%w: spotify track id is required", shared.ErrInvalidInput)
	}
	if d.TrackName == "" || d.Performer == "" || d.RecordTitle == "" {
		return fmt.Errorf("%w: track name, performer, and record title are required", shared.ErrInvalidInput)
	}
	return nil
}
