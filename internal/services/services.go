// package services defines the Catalog interface for external music catalog lookups
package services

import (
	"context"

	"musichub/internal/models"
)

// Catalog defines the interface for the external music catalog. Results are
// never persisted by the gateway itself; tracks enter the store only through
// explicit add-track actions.
type Catalog interface {
	// Search queries the catalog for tracks matching the query string.
	Search(ctx context.Context, query string, limit int) ([]models.TrackDescriptor, error)

	// Track retrieves a single track descriptor by catalog id.
	Track(ctx context.Context, trackID string) (*models.TrackDescriptor, error)

	// NewReleases retrieves recently released records as track descriptors.
	NewReleases(ctx context.Context, limit int) ([]models.TrackDescriptor, error)

	// Name returns the name of the catalog service (e.g., "Spotify")
	Name() string
}
