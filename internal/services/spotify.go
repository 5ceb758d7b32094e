// Spotify implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"musichub/internal/models"
	"musichub/internal/shared"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	ReleaseDate string          `json:"release_date"`
	Images      []SpotifyImage  `json:"images"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	PreviewURL string          `json:"preview_url"`
}

type spotifySearchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
	} `json:"tracks"`
}

type spotifyNewReleasesResponse struct {
	Albums struct {
		Items []SpotifyAlbum `json:"items"`
	} `json:"albums"`
}

// SpotifyCatalog implements [Catalog] using the Spotify Web API with the
// client credentials grant. A fresh application token is obtained for every
// call rather than cached for its validity window, so the first call after
// startup behaves the same as any other.
type SpotifyCatalog struct {
	clientID     string
	clientSecret string
	tokenURL     string
	baseURL      string
	httpClient   *http.Client
}

// NewSpotifyCatalog creates a new Spotify catalog gateway with the given
// application credentials.
func NewSpotifyCatalog(clientID, clientSecret string) *SpotifyCatalog {
	return &SpotifyCatalog{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     spotifyTokenURL,
		baseURL:      spotifyBaseURL,
		httpClient:   http.DefaultClient,
	}
}

func (s *SpotifyCatalog) Name() string {
	return "Spotify"
}

// token performs a client credentials grant and returns a short-lived
// application token.
func (s *SpotifyCatalog) token(ctx context.Context) (*oauth2.Token, error) {
	conf := &clientcredentials.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		TokenURL:     s.tokenURL,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := conf.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to obtain access token: %v", shared.ErrSearchUnavailable, err)
	}

	return token, nil
}

// doRequest obtains a service credential, performs a GET against the Spotify
// API, and decodes the JSON response into result.
func (s *SpotifyCatalog) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	token, err := s.token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", shared.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify API error: status %d", shared.ErrSearchUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrSearchUnavailable, err)
	}

	return nil
}

// Search queries the catalog for tracks matching the query string. The limit
// defaults to 10 and is capped at 50.
func (s *SpotifyCatalog) Search(ctx context.Context, query string, limit int) ([]models.TrackDescriptor, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}
	limit = clampLimit(limit)

	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=%d&offset=0", url.QueryEscape(query), limit)

	var response spotifySearchResponse
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	descriptors := make([]models.TrackDescriptor, 0, len(response.Tracks.Items))
	for _, track := range response.Tracks.Items {
		descriptors = append(descriptors, mapTrack(track))
	}

	return descriptors, nil
}

// Track retrieves a single track descriptor by catalog id.
func (s *SpotifyCatalog) Track(ctx context.Context, trackID string) (*models.TrackDescriptor, error) {
	var track SpotifyTrack
	if err := s.doRequest(ctx, "/tracks/"+url.PathEscape(trackID), &track); err != nil {
		return nil, err
	}

	descriptor := mapTrack(track)
	return &descriptor, nil
}

// NewReleases retrieves recently released records, mapped to track descriptors
// the same way the search endpoint maps albums.
func (s *SpotifyCatalog) NewReleases(ctx context.Context, limit int) ([]models.TrackDescriptor, error) {
	limit = clampLimit(limit)

	endpoint := fmt.Sprintf("/browse/new-releases?limit=%d&country=US", limit)

	var response spotifyNewReleasesResponse
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	descriptors := make([]models.TrackDescriptor, 0, len(response.Albums.Items))
	for _, album := range response.Albums.Items {
		descriptors = append(descriptors, models.TrackDescriptor{
			SpotifyTrackID: album.ID,
			TrackName:      album.Name,
			Performer:      artistNames(album.Artists),
			RecordTitle:    album.Name,
			CoverImage:     firstImage(album.Images),
		})
	}

	return descriptors, nil
}

func mapTrack(track SpotifyTrack) models.TrackDescriptor {
	return models.TrackDescriptor{
		SpotifyTrackID: track.ID,
		TrackName:      track.Name,
		Performer:      artistNames(track.Artists),
		RecordTitle:    track.Album.Name,
		CoverImage:     firstImage(track.Album.Images),
		Duration:       track.DurationMS,
		PreviewURL:     track.PreviewURL,
	}
}

func artistNames(artists []SpotifyArtist) string {
	names := make([]string, 0, len(artists))
	for _, artist := range artists {
		names = append(names, artist.Name)
	}
	return strings.Join(names, ", ")
}

func firstImage(images []SpotifyImage) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}
