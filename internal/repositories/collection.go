package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"musichub/internal/models"
	"musichub/internal/shared"
)

// CollectionRepository handles [models.Collection] persistence. Every
// operation is scoped by owner id; cross-owner access yields
// [shared.ErrNotFound].
type CollectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository creates a new [CollectionRepository] with the given database connection
func NewCollectionRepository(db *sql.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// List retrieves all collections owned by the given account, newest first,
// with tracks resolved inline.
func (r *CollectionRepository) List(ctx context.Context, ownerID string) ([]*models.Collection, error) {
	query := `
		SELECT id, title, description, owner_id, created_at, updated_at
		FROM collections
		WHERE owner_id = ?
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	defer rows.Close()

	collections := []*models.Collection{}
	for rows.Next() {
		var c models.Collection
		err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, c := range collections {
		if c.Tracks, err = r.loadTracks(ctx, c.ID); err != nil {
			return nil, err
		}
	}

	return collections, nil
}

// Get retrieves a single collection owned by the given account, with tracks
// resolved inline. A collection owned by another account is reported as
// [shared.ErrNotFound], not as a permission failure.
func (r *CollectionRepository) Get(ctx context.Context, ownerID, collectionID string) (*models.Collection, error) {
	query := `
		SELECT id, title, description, owner_id, created_at, updated_at
		FROM collections
		WHERE id = ? AND owner_id = ?
	`

	var c models.Collection
	err := r.db.QueryRowContext(ctx, query, collectionID, ownerID).Scan(
		&c.ID, &c.Title, &c.Description, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	if c.Tracks, err = r.loadTracks(ctx, c.ID); err != nil {
		return nil, err
	}

	return &c, nil
}

// Create inserts a new collection for the given owner.
func (r *CollectionRepository) Create(ctx context.Context, ownerID, title, description string) (*models.Collection, error) {
	now := time.Now().UTC()
	c := &models.Collection{
		ID:          shared.GenerateID(),
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		Tracks:      []*models.Track{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO collections (id, title, description, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.Title, c.Description, c.OwnerID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert collection: %w", err)
	}

	return c, nil
}

// Update modifies the title and description of an owned collection.
func (r *CollectionRepository) Update(ctx context.Context, ownerID, collectionID, title, description string) (*models.Collection, error) {
	query := `
		UPDATE collections
		SET title = ?, description = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, title, description, time.Now().UTC(), collectionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, shared.ErrNotFound
	}

	return r.Get(ctx, ownerID, collectionID)
}

// Delete removes an owned collection and its membership rows. Track records
// are left untouched.
func (r *CollectionRepository) Delete(ctx context.Context, ownerID, collectionID string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM collections WHERE id = ? AND owner_id = ?", collectionID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return shared.ErrNotFound
	}

	return nil
}

// AddTrack resolves or creates the track described by the descriptor and
// appends it to the collection. The resolve, the membership check, and the
// append run in one transaction, so concurrent adds of the same track cannot
// double-append. Returns [shared.ErrTrackAlreadyAdded] when the track is
// already in the collection.
func (r *CollectionRepository) AddTrack(ctx context.Context, ownerID, collectionID string, descriptor *models.TrackDescriptor) (*models.Collection, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM collections WHERE id = ? AND owner_id = ?)",
		collectionID, ownerID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	trackID, err := resolveTrackTx(ctx, tx, descriptor)
	if err != nil {
		return nil, err
	}

	var present bool
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM collection_tracks WHERE collection_id = ? AND track_id = ?)",
		collectionID, trackID,
	).Scan(&present)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if present {
		return nil, shared.ErrTrackAlreadyAdded
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO collection_tracks (collection_id, track_id, position)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1 FROM collection_tracks WHERE collection_id = ?
	`, collectionID, trackID, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to append track: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return r.Get(ctx, ownerID, collectionID)
}

// RemoveTrack unlinks a track reference from an owned collection. The track
// record itself is preserved. Removing a track that is not in the collection
// is a no-op, not an error.
func (r *CollectionRepository) RemoveTrack(ctx context.Context, ownerID, collectionID, trackID string) (*models.Collection, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM collections WHERE id = ? AND owner_id = ?)",
		collectionID, ownerID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	_, err = r.db.ExecContext(ctx,
		"DELETE FROM collection_tracks WHERE collection_id = ? AND track_id = ?",
		collectionID, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove track: %w", err)
	}

	return r.Get(ctx, ownerID, collectionID)
}

// loadTracks resolves a collection's track references in list order.
func (r *CollectionRepository) loadTracks(ctx context.Context, collectionID string) ([]*models.Track, error) {
	query := `
		SELECT t.id, t.spotify_track_id, t.track_name, t.performer, t.record_title, t.cover_image, t.created_at, t.updated_at
		FROM tracks t
		JOIN collection_tracks ct ON ct.track_id = t.id
		WHERE ct.collection_id = ?
		ORDER BY ct.position
	`

	rows, err := r.db.QueryContext(ctx, query, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection tracks: %w", err)
	}
	defer rows.Close()

	tracks := []*models.Track{}
	for rows.Next() {
		var t models.Track
		err := rows.Scan(&t.ID, &t.SpotifyTrackID, &t.TrackName, &t.Performer,
			&t.RecordTitle, &t.CoverImage, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}
