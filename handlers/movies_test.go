package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/camden-git/movieetlbackend/database"
	"github.com/camden-git/movieetlbackend/repository"
	"github.com/camden-git/movieetlbackend/tmdb"
)

func newTestRouter(t *testing.T) (*chi.Mux, *gorm.DB) {
	t.Helper()
	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))

	movieHandler := &MovieHandler{Repo: repository.NewMovieRepository(db)}

	r := chi.NewRouter()
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/", movieHandler.ListMovies)
		r.Get("/{movie_id}", movieHandler.GetMovie)
	})
	return r, db
}

func seedMovie(t *testing.T, db *gorm.DB, id int64, title string) {
	t.Helper()
	character := "Lead"
	repo := repository.NewMovieRepository(db)
	require.NoError(t, repo.Upsert(&tmdb.NormalizedMovie{
		MovieID: id,
		Title:   title,
		Genres:  []tmdb.GenreRef{{ID: 18, Name: "Drama"}},
		Cast:    []tmdb.CastRef{{ID: 10, Name: "Alice", Character: &character, Order: 0}},
	}))
}

func TestGetMovie(t *testing.T) {
	router, db := newTestRouter(t)
	seedMovie(t, db, 550, "Fight Club")

	req := httptest.NewRequest(http.MethodGet, "/api/movies/550", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MovieDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Fight Club", resp.Title)
	require.Len(t, resp.Genres, 1)
	require.Len(t, resp.Cast, 1)
	assert.Equal(t, "Alice", resp.Cast[0].Name)
}

func TestGetMovieNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/movies/999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMovieInvalidID(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/movies/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMovies(t *testing.T) {
	router, db := newTestRouter(t)
	seedMovie(t, db, 1, "One")
	seedMovie(t, db, 2, "Two")

	req := httptest.NewRequest(http.MethodGet, "/api/movies?page=1&page_size=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Page    int               `json:"page"`
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Page)
	assert.Len(t, resp.Results, 2)
}
