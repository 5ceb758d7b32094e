package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musichub/internal/auth"
	"musichub/internal/models"
	"musichub/internal/repositories"
	"musichub/internal/shared"
	mocks "musichub/internal/testing"
)

type testEnv struct {
	handler http.Handler
	catalog *mocks.MockCatalog
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, shared.RunMigrations(db))

	accounts := repositories.NewAccountRepository(db)
	catalog := &mocks.MockCatalog{}

	srv := New(Options{
		Credentials: auth.NewCredentialStore(accounts),
		Issuer:      auth.NewIssuer("test-secret"),
		Collections: repositories.NewCollectionRepository(db),
		Catalog:     catalog,
	})

	return &testEnv{handler: srv.Handler(), catalog: catalog}
}

// do performs a JSON request against the router and decodes the response body
// into out when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	if out != nil {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func (e *testEnv) signup(t *testing.T, displayName, email, secret string) authResponse {
	t.Helper()

	var resp authResponse
	rec := e.do(t, http.MethodPost, "/api/auth/signup", "", signupRequest{
		DisplayName:  displayName,
		EmailAddress: email,
		SecretKey:    secret,
	}, &resp)
	require.Equal(t, http.StatusCreated, rec.Code)
	return resp
}

func descriptor(id string) models.TrackDescriptor {
	return models.TrackDescriptor{
		SpotifyTrackID: id,
		TrackName:      "Song " + id,
		Performer:      "Artist",
		RecordTitle:    "Album",
	}
}

func TestHealth(t *testing.T) {
	env := newTestServer(t)

	var resp messageResponse
	rec := env.do(t, http.MethodGet, "/api/health", "", nil, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Server is running", resp.Message)
}

func TestSignup(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestServer(t)

		resp := env.signup(t, "alice123", "a@x.com", "secret1")
		assert.Equal(t, "Account created successfully", resp.Message)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "alice123", resp.UserAccount.DisplayName)
		assert.Equal(t, "a@x.com", resp.UserAccount.EmailAddress)
		assert.NotEmpty(t, resp.UserAccount.ID)
	})

	t.Run("Duplicate", func(t *testing.T) {
		env := newTestServer(t)
		env.signup(t, "alice123", "a@x.com", "secret1")

		var resp messageResponse
		rec := env.do(t, http.MethodPost, "/api/auth/signup", "", signupRequest{
			DisplayName:  "bob456",
			EmailAddress: "a@x.com",
			SecretKey:    "secret2",
		}, &resp)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Account already exists", resp.Message)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		env := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ShortSecret", func(t *testing.T) {
		env := newTestServer(t)

		rec := env.do(t, http.MethodPost, "/api/auth/signup", "", signupRequest{
			DisplayName:  "alice123",
			EmailAddress: "a@x.com",
			SecretKey:    "short",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSignin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestServer(t)
		env.signup(t, "alice123", "a@x.com", "secret1")

		var resp authResponse
		rec := env.do(t, http.MethodPost, "/api/auth/signin", "", signinRequest{
			EmailAddress: "A@X.com",
			SecretKey:    "secret1",
		}, &resp)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Sign in successful", resp.Message)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		env := newTestServer(t)
		env.signup(t, "alice123", "a@x.com", "secret1")

		var resp messageResponse
		rec := env.do(t, http.MethodPost, "/api/auth/signin", "", signinRequest{
			EmailAddress: "a@x.com",
			SecretKey:    "wrong-secret",
		}, &resp)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid credentials", resp.Message)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		env := newTestServer(t)

		var resp messageResponse
		rec := env.do(t, http.MethodPost, "/api/auth/signin", "", signinRequest{
			EmailAddress: "nobody@x.com",
			SecretKey:    "secret1",
		}, &resp)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid credentials", resp.Message)
	})
}

func TestAuthorization(t *testing.T) {
	env := newTestServer(t)

	t.Run("MissingToken", func(t *testing.T) {
		var resp messageResponse
		rec := env.do(t, http.MethodGet, "/api/collections", "", nil, &resp)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Access token required", resp.Message)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		var resp messageResponse
		rec := env.do(t, http.MethodGet, "/api/collections", "not-a-token", nil, &resp)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid access token", resp.Message)
	})

	t.Run("ForeignKeyToken", func(t *testing.T) {
		foreign := auth.NewIssuer("other-secret")
		token, _, err := foreign.Issue(&models.Account{ID: "acct-1", DisplayName: "x", EmailAddress: "x@x.com"})
		require.NoError(t, err)

		rec := env.do(t, http.MethodGet, "/api/collections", token, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCollections(t *testing.T) {
	t.Run("CreateListGet", func(t *testing.T) {
		env := newTestServer(t)
		session := env.signup(t, "alice123", "a@x.com", "secret1")

		var created models.Collection
		rec := env.do(t, http.MethodPost, "/api/collections", session.AccessToken,
			collectionRequest{Title: "Road Trip", Description: "long drives"}, &created)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Road Trip", created.Title)
		assert.Equal(t, session.UserAccount.ID, created.OwnerID)
		assert.Empty(t, created.Tracks)

		var listed []models.Collection
		rec = env.do(t, http.MethodGet, "/api/collections", session.AccessToken, nil, &listed)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, listed, 1)
		assert.Equal(t, created.ID, listed[0].ID)

		var fetched models.Collection
		rec = env.do(t, http.MethodGet, "/api/collections/"+created.ID, session.AccessToken, nil, &fetched)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "long drives", fetched.Description)
	})

	t.Run("Update", func(t *testing.T) {
		env := newTestServer(t)
		session := env.signup(t, "alice123", "a@x.com", "secret1")

		var created models.Collection
		env.do(t, http.MethodPost, "/api/collections", session.AccessToken,
			collectionRequest{Title: "Old"}, &created)

		var updated models.Collection
		rec := env.do(t, http.MethodPut, "/api/collections/"+created.ID, session.AccessToken,
			collectionRequest{Title: "New", Description: "renamed"}, &updated)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, "renamed", updated.Description)
	})

	t.Run("Delete", func(t *testing.T) {
		env := newTestServer(t)
		session := env.signup(t, "alice123", "a@x.com", "secret1")

		var created models.Collection
		env.do(t, http.MethodPost, "/api/collections", session.AccessToken,
			collectionRequest{Title: "Doomed"}, &created)

		var resp messageResponse
		rec := env.do(t, http.MethodDelete, "/api/collections/"+created.ID, session.AccessToken, nil, &resp)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Collection deleted successfully", resp.Message)

		rec = env.do(t, http.MethodGet, "/api/collections/"+created.ID, session.AccessToken, nil, &resp)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Collection not found", resp.Message)
	})

	t.Run("OwnerScoping", func(t *testing.T) {
		env := newTestServer(t)
		alice := env.signup(t, "alice123", "a@x.com", "secret1")
		mallory := env.signup(t, "mallory1", "m@x.com", "secret2")

		var created models.Collection
		env.do(t, http.MethodPost, "/api/collections", alice.AccessToken,
			collectionRequest{Title: "Private"}, &created)

		rec := env.do(t, http.MethodGet, "/api/collections/"+created.ID, mallory.AccessToken, nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.do(t, http.MethodDelete, "/api/collections/"+created.ID, mallory.AccessToken, nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var listed []models.Collection
		env.do(t, http.MethodGet, "/api/collections", mallory.AccessToken, nil, &listed)
		assert.Empty(t, listed)
	})
}

func TestCollectionTracks(t *testing.T) {
	env := newTestServer(t)
	session := env.signup(t, "alice123", "a@x.com", "secret1")

	var collection models.Collection
	rec := env.do(t, http.MethodPost, "/api/collections", session.AccessToken,
		collectionRequest{Title: "Road Trip"}, &collection)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/collections/%s/tracks", collection.ID),
		session.AccessToken, descriptor("t1"), &collection)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, collection.Tracks, 1)
	assert.Equal(t, "t1", collection.Tracks[0].SpotifyTrackID)

	var resp messageResponse
	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/collections/%s/tracks", collection.ID),
		session.AccessToken, descriptor("t1"), &resp)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Track already in collection", resp.Message)

	trackID := collection.Tracks[0].ID
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/collections/%s/tracks/%s", collection.ID, trackID),
		session.AccessToken, nil, &collection)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, collection.Tracks)

	rec = env.do(t, http.MethodPost, "/api/collections/missing/tracks",
		session.AccessToken, descriptor("t2"), &resp)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestServer(t)
		session := env.signup(t, "alice123", "a@x.com", "secret1")
		env.catalog.Results = []models.TrackDescriptor{descriptor("t1"), descriptor("t2")}

		var results []models.TrackDescriptor
		rec := env.do(t, http.MethodGet, "/api/search?q=song&limit=2", session.AccessToken, nil, &results)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, results, 2)
		assert.Equal(t, 1, env.catalog.Calls)
	})

	t.Run("MissingQuery", func(t *testing.T) {
		env := newTestServer(t)
		session := env.signup(t, "alice123", "a@x.com", "secret1")

		var resp messageResponse
		rec := env.do(t, http.MethodGet, "/api/search", session.AccessToken, nil, &resp)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Search query is required", resp.Message)
		assert.Zero(t, env.catalog.Calls)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		env := newTestServer(t)
		session := env.signup(t, "alice123", "a@x.com", "secret1")
		env.catalog.Err = shared.ErrSearchUnavailable

		var resp messageResponse
		rec := env.do(t, http.MethodGet, "/api/search?q=song", session.AccessToken, nil, &resp)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to search tracks", resp.Message)
	})

	t.Run("NewReleases", func(t *testing.T) {
		env := newTestServer(t)
		session := env.signup(t, "alice123", "a@x.com", "secret1")
		env.catalog.Results = []models.TrackDescriptor{descriptor("al1")}

		var results []models.TrackDescriptor
		rec := env.do(t, http.MethodGet, "/api/search/new-releases", session.AccessToken, nil, &results)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, results, 1)
	})

	t.Run("TrackLookup", func(t *testing.T) {
		env := newTestServer(t)
		session := env.signup(t, "alice123", "a@x.com", "secret1")
		env.catalog.Results = []models.TrackDescriptor{descriptor("t1")}

		var result models.TrackDescriptor
		rec := env.do(t, http.MethodGet, "/api/tracks/t1", session.AccessToken, nil, &result)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "t1", result.SpotifyTrackID)
	})
}

func TestCORS(t *testing.T) {
	env := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/collections", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

// TestSessionLifecycle walks the full account journey end to end: sign up,
// build a collection, curate tracks, and tear it all down.
func TestSessionLifecycle(t *testing.T) {
	env := newTestServer(t)

	session := env.signup(t, "alice123", "a@x.com", "secret1")
	token := session.AccessToken

	var collection models.Collection
	rec := env.do(t, http.MethodPost, "/api/collections", token,
		collectionRequest{Title: "Road Trip"}, &collection)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/collections/%s/tracks", collection.ID),
		token, descriptor("t1"), &collection)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, collection.Tracks, 1)

	var resp messageResponse
	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/collections/%s/tracks", collection.ID),
		token, descriptor("t1"), &resp)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete,
		fmt.Sprintf("/api/collections/%s/tracks/%s", collection.ID, collection.Tracks[0].ID),
		token, nil, &collection)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, collection.Tracks)

	rec = env.do(t, http.MethodDelete, "/api/collections/"+collection.ID, token, nil, &resp)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/collections/"+collection.ID, token, nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
