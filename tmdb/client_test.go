package tmdb

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	c := NewClient("test-key", 5*time.Second)
	c.BaseURL = serverURL
	return c
}

func TestPopularMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`{"page": 2, "results": [{"id": 550, "title": "Fight Club"}, {"id": 603, "title": "The Matrix"}], "total_pages": 500}`))
	}))
	defer server.Close()

	movies, err := newTestClient(server.URL).PopularMovies(2)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, int64(550), movies[0].ID)
	assert.Equal(t, "The Matrix", movies[1].Title)
}

func TestTopRatedMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/top_rated", r.URL.Path)
		w.Write([]byte(`{"page": 1, "results": [{"id": 278, "title": "The Shawshank Redemption"}], "total_pages": 100}`))
	}))
	defer server.Close()

	movies, err := newTestClient(server.URL).TopRatedMovies(1)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, int64(278), movies[0].ID)
}

func TestDiscoverByYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "1999", r.URL.Query().Get("primary_release_year"))
		assert.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))
		w.Write([]byte(`{"page": 1, "results": [{"id": 550, "title": "Fight Club"}], "total_pages": 42}`))
	}))
	defer server.Close()

	movies, totalPages, err := newTestClient(server.URL).DiscoverByYear(1999, 1)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, 42, totalPages)
}

func TestMovieDetailsRequestsEmbeddedCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/550", r.URL.Path)
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
		w.Write([]byte(`{"id": 550, "title": "Fight Club", "genres": [{"id": 18, "name": "Drama"}], "credits": {"cast": [{"id": 819, "name": "Edward Norton", "character": "The Narrator"}]}}`))
	}))
	defer server.Close()

	raw, err := newTestClient(server.URL).MovieDetails(550)
	require.NoError(t, err)
	assert.Equal(t, int64(550), raw.ID)
	require.Len(t, raw.Genres, 1)
	require.Len(t, raw.Credits.Cast, 1)
	assert.Equal(t, "Edward Norton", raw.Credits.Cast[0].Name)
}

func TestNon2xxStatusIsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).MovieDetails(999999999)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrKindStatus, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestMalformedPayloadIsDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "not a number"`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).MovieDetails(550)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrKindDecode, apiErr.Kind)
}

func TestUnreachableServerIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	_, err := newTestClient(server.URL).PopularMovies(1)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrKindTransport, apiErr.Kind)
}
