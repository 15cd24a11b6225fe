package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/camden-git/movieetlbackend/models"
	"github.com/camden-git/movieetlbackend/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type MovieHandler struct {
	Repo repository.MovieRepositoryInterface
}

// MovieDetailResponse is a movie row together with its related collections.
type MovieDetailResponse struct {
	models.Movie
	Genres    []models.Genre             `json:"genres"`
	Companies []models.ProductionCompany `json:"production_companies"`
	Cast      []repository.CastCredit    `json:"cast"`
}

// ListMovies serves a popularity-sorted page of movies
func (mh *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	page := parsePositiveInt(r.URL.Query().Get("page"), 1)
	pageSize := parsePositiveInt(r.URL.Query().Get("page_size"), defaultPageSize)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	movies, err := mh.Repo.ListByPopularity(pageSize, (page-1)*pageSize)
	if err != nil {
		log.Printf("Error listing movies: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve movies"})
		return
	}
	if movies == nil {
		movies = []models.Movie{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"page":      page,
		"page_size": pageSize,
		"results":   movies,
	})
}

// GetMovie serves one movie with its genres, companies and billed cast
func (mh *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "movie_id")
	movieID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid movie ID format"})
		return
	}

	movie, err := mh.Repo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Movie not found"})
			return
		}
		log.Printf("Error fetching movie %d: %v", movieID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve movie"})
		return
	}

	resp := MovieDetailResponse{Movie: *movie}

	if resp.Genres, err = mh.Repo.GenresForMovie(movieID); err != nil {
		log.Printf("Error fetching genres for movie %d: %v", movieID, err)
	}
	if resp.Companies, err = mh.Repo.CompaniesForMovie(movieID); err != nil {
		log.Printf("Error fetching companies for movie %d: %v", movieID, err)
	}
	if resp.Cast, err = mh.Repo.CastForMovie(movieID); err != nil {
		log.Printf("Error fetching cast for movie %d: %v", movieID, err)
	}

	if resp.Genres == nil {
		resp.Genres = []models.Genre{}
	}
	if resp.Companies == nil {
		resp.Companies = []models.ProductionCompany{}
	}
	if resp.Cast == nil {
		resp.Cast = []repository.CastCredit{}
	}

	writeJSON(w, http.StatusOK, resp)
}

func parsePositiveInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil || val <= 0 {
		return defaultVal
	}
	return val
}
