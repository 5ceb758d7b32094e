package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"musichub/internal/models"
	"musichub/internal/shared"
)

// TrackRepository handles [models.Track] persistence. Tracks are deduplicated
// globally by Spotify track id and are never deleted when removed from a
// collection.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new [TrackRepository] with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Get retrieves a track by id.
func (r *TrackRepository) Get(ctx context.Context, id string) (*models.Track, error) {
	return r.getWhere(ctx, "id = ?", id)
}

// GetBySpotifyID retrieves a track by its external catalog identifier.
func (r *TrackRepository) GetBySpotifyID(ctx context.Context, spotifyTrackID string) (*models.Track, error) {
	return r.getWhere(ctx, "spotify_track_id = ?", spotifyTrackID)
}

// Count returns the total number of track records in the store.
func (r *TrackRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tracks").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}

func (r *TrackRepository) getWhere(ctx context.Context, clause string, arg any) (*models.Track, error) {
	query := `
		SELECT id, spotify_track_id, track_name, performer, record_title, cover_image, created_at, updated_at
		FROM tracks
		WHERE ` + clause

	var track models.Track
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&track.ID, &track.SpotifyTrackID, &track.TrackName, &track.Performer,
		&track.RecordTitle, &track.CoverImage, &track.CreatedAt, &track.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query track: %w", err)
	}

	return &track, nil
}

// resolveTrackTx returns the id of the track with the descriptor's Spotify
// track id, inserting a new record when none exists. Runs inside the caller's
// transaction so the resolve and the membership append commit together.
func resolveTrackTx(ctx context.Context, tx *sql.Tx, descriptor *models.TrackDescriptor) (string, error) {
	if err := descriptor.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	id := shared.GenerateID()

	_, err := tx.ExecContext(ctx, `
		INSERT INTO tracks (id, spotify_track_id, track_name, performer, record_title, cover_image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(spotify_track_id) DO NOTHING
	`, id, descriptor.SpotifyTrackID, descriptor.TrackName, descriptor.Performer,
		descriptor.RecordTitle, descriptor.CoverImage, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert track: %w", err)
	}

	var trackID string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM tracks WHERE spotify_track_id = ?", descriptor.SpotifyTrackID,
	).Scan(&trackID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve track: %w", err)
	}

	return trackID, nil
}
