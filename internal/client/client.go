// Package client provides the typed API client used by the CLI commands.
//
// The browser application's ambient session provider becomes an explicit
// [Session] here: commands load it from disk, hand it to [New], and every
// request attaches the bearer token from it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"musichub/internal/models"
	"musichub/internal/shared"
)

// Client calls the music hub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// New creates a [Client] for the given base URL. The session may be nil for
// unauthenticated calls (signup, signin, health).
func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		session:    session,
	}
}

// AuthResult is the response of the signup and signin endpoints.
type AuthResult struct {
	Message     string               `json:"message"`
	AccessToken string               `json:"accessToken"`
	UserAccount models.PublicAccount `json:"userAccount"`
}

type apiMessage struct {
	Message string `json:"message"`
}

// do performs a JSON request against the API and decodes the response into
// result. Non-2xx responses are mapped back onto the shared error taxonomy so
// callers can branch the same way server-side code does.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg apiMessage
		json.NewDecoder(resp.Body).Decode(&msg)

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", shared.ErrNotAuthenticated, msg.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", shared.ErrNotFound, msg.Message)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", shared.ErrInvalidInput, msg.Message)
		default:
			return fmt.Errorf("server error (status %d): %s", resp.StatusCode, msg.Message)
		}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

// Signup creates a new account and returns its session token.
func (c *Client) Signup(ctx context.Context, displayName, email, secret string) (*AuthResult, error) {
	payload := map[string]string{
		"displayName":  displayName,
		"emailAddress": email,
		"secretKey":    secret,
	}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Signin verifies credentials and returns a fresh session token.
func (c *Client) Signin(ctx context.Context, email, secret string) (*AuthResult, error) {
	payload := map[string]string{
		"emailAddress": email,
		"secretKey":    secret,
	}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Collections lists the signed-in account's collections, newest first.
func (c *Client) Collections(ctx context.Context) ([]*models.Collection, error) {
	var collections []*models.Collection
	if err := c.do(ctx, http.MethodGet, "/api/collections", nil, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

// Collection retrieves a single owned collection with its tracks.
func (c *Client) Collection(ctx context.Context, id string) (*models.Collection, error) {
	var collection models.Collection
	if err := c.do(ctx, http.MethodGet, "/api/collections/"+url.PathEscape(id), nil, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// CreateCollection creates a new collection.
func (c *Client) CreateCollection(ctx context.Context, title, description string) (*models.Collection, error) {
	payload := map[string]string{"title": title, "description": description}

	var collection models.Collection
	if err := c.do(ctx, http.MethodPost, "/api/collections", payload, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// UpdateCollection edits a collection's title and description.
func (c *Client) UpdateCollection(ctx context.Context, id, title, description string) (*models.Collection, error) {
	payload := map[string]string{"title": title, "description": description}

	var collection models.Collection
	if err := c.do(ctx, http.MethodPut, "/api/collections/"+url.PathEscape(id), payload, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// DeleteCollection deletes an owned collection. Its tracks remain in the
// track store.
func (c *Client) DeleteCollection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/collections/"+url.PathEscape(id), nil, nil)
}

// AddTrack adds a catalog track to a collection.
func (c *Client) AddTrack(ctx context.Context, collectionID string, descriptor *models.TrackDescriptor) (*models.Collection, error) {
	var collection models.Collection
	path := "/api/collections/" + url.PathEscape(collectionID) + "/tracks"
	if err := c.do(ctx, http.MethodPost, path, descriptor, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// RemoveTrack unlinks a track from a collection.
func (c *Client) RemoveTrack(ctx context.Context, collectionID, trackID string) (*models.Collection, error) {
	var collection models.Collection
	path := "/api/collections/" + url.PathEscape(collectionID) + "/tracks/" + url.PathEscape(trackID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// Search queries the external catalog through the API.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.TrackDescriptor, error) {
	params := url.Values{"q": {query}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var results []models.TrackDescriptor
	if err := c.do(ctx, http.MethodGet, "/api/search?"+params.Encode(), nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// NewReleases retrieves recently released records from the catalog.
func (c *Client) NewReleases(ctx context.Context, limit int) ([]models.TrackDescriptor, error) {
	path := "/api/search/new-releases"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var results []models.TrackDescriptor
	if err := c.do(ctx, http.MethodGet, path, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Track retrieves a single catalog track descriptor by id.
func (c *Client) Track(ctx context.Context, id string) (*models.TrackDescriptor, error) {
	var descriptor models.TrackDescriptor
	if err := c.do(ctx, http.MethodGet, "/api/tracks/"+url.PathEscape(id), nil, &descriptor); err != nil {
		return nil, err
	}
	return &descriptor, nil
}
