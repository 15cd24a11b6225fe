package repository

import (
	"github.com/camden-git/movieetlbackend/models"
	"github.com/camden-git/movieetlbackend/tmdb"
)

// MovieRepositoryInterface defines the methods for movie data operations
type MovieRepositoryInterface interface {
	Exists(movieID int64) (bool, error)
	Upsert(n *tmdb.NormalizedMovie) error
	GetByID(movieID int64) (*models.Movie, error)
	ListByPopularity(limit, offset int) ([]models.Movie, error)
	GenresForMovie(movieID int64) ([]models.Genre, error)
	CompaniesForMovie(movieID int64) ([]models.ProductionCompany, error)
	CastForMovie(movieID int64) ([]CastCredit, error)
	TableCounts() (TableCounts, error)
}

// RunRepositoryInterface defines the methods for pipeline run bookkeeping
type RunRepositoryInterface interface {
	Create(run *models.PipelineRun) error
	Finish(id string, processed, failed int, elapsedSeconds float64) error
	Latest() (*models.PipelineRun, error)
}
