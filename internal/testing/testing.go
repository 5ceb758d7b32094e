// package testing contains shared testing utilities
package testing

import (
	"context"
	"fmt"
	"net/http"

	"musichub/internal/models"
	"musichub/internal/shared"
)

// MockCatalog is a test double for [services.Catalog]. Results and Err can be
// set per test; calls are counted.
type MockCatalog struct {
	Results []models.TrackDescriptor
	Err     error
	Calls   int
}

func (m *MockCatalog) Search(ctx context.Context, query string, limit int) ([]models.TrackDescriptor, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

func (m *MockCatalog) Track(ctx context.Context, trackID string) (*models.TrackDescriptor, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Results {
		if m.Results[i].SpotifyTrackID == trackID {
			return &m.Results[i], nil
		}
	}
	return nil, fmt.Errorf("%w: track %s", shared.ErrSearchUnavailable, trackID)
}

func (m *MockCatalog) NewReleases(ctx context.Context, limit int) ([]models.TrackDescriptor, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
