package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/movieetlbackend/models"
	"github.com/camden-git/movieetlbackend/tmdb"
)

// MovieRepository handles database operations for the movie schema
type MovieRepository struct {
	DB *gorm.DB
}

// NewMovieRepository creates a new instance of MovieRepository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{DB: db}
}

// Exists reports whether a movie row has already been persisted for the id.
// The dispatcher uses this as its idempotent skip check before doing any
// network work.
func (r *MovieRepository) Exists(movieID int64) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Movie{}).Where("movie_id = ?", movieID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check existence of movie %d: %w", movieID, err)
	}
	return count > 0, nil
}

// Upsert writes one normalized movie and its full relational subgraph in a
// single transaction: the movie row replaces any prior row for the same id,
// reference entities (genres, companies, cast members) are first-writer-wins,
// and every entity row is staged before its association row. Any failure
// rolls the whole movie back.
func (r *MovieRepository) Upsert(n *tmdb.NormalizedMovie) error {
	if n == nil {
		return errors.New("cannot upsert nil normalized movie")
	}

	movie := models.Movie{
		MovieID:          n.MovieID,
		Title:            n.Title,
		OriginalTitle:    n.OriginalTitle,
		Overview:         n.Overview,
		ReleaseDate:      n.ReleaseDate,
		Budget:           n.Budget,
		Revenue:          n.Revenue,
		Runtime:          n.Runtime,
		Popularity:       n.Popularity,
		VoteAverage:      n.VoteAverage,
		VoteCount:        n.VoteCount,
		PosterPath:       n.PosterPath,
		BackdropPath:     n.BackdropPath,
		Status:           n.Status,
		OriginalLanguage: n.OriginalLanguage,
		Tagline:          n.Tagline,
		ImdbID:           n.ImdbID,
		CreatedAt:        time.Now().Format(time.RFC3339),
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		// last-write-wins for the movie row itself
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&movie).Error; err != nil {
			return fmt.Errorf("failed to upsert movie %d: %w", n.MovieID, err)
		}

		for _, g := range n.Genres {
			genre := models.Genre{GenreID: g.ID, Name: g.Name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&genre).Error; err != nil {
				return fmt.Errorf("failed to upsert genre %d for movie %d: %w", g.ID, n.MovieID, err)
			}

			link := models.MovieGenre{MovieID: n.MovieID, GenreID: g.ID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link genre %d to movie %d: %w", g.ID, n.MovieID, err)
			}
		}

		for _, pc := range n.Companies {
			company := models.ProductionCompany{CompanyID: pc.ID, Name: pc.Name, OriginCountry: pc.OriginCountry}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&company).Error; err != nil {
				return fmt.Errorf("failed to upsert company %d for movie %d: %w", pc.ID, n.MovieID, err)
			}

			link := models.MovieProductionCompany{MovieID: n.MovieID, CompanyID: pc.ID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link company %d to movie %d: %w", pc.ID, n.MovieID, err)
			}
		}

		for _, cm := range n.Cast {
			member := models.CastMember{CastID: cm.ID, Name: cm.Name, Gender: cm.Gender, ProfilePath: cm.ProfilePath}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
				return fmt.Errorf("failed to upsert cast member %d for movie %d: %w", cm.ID, n.MovieID, err)
			}

			link := models.MovieCast{
				MovieID:       n.MovieID,
				CastID:        cm.ID,
				Character:     cm.Character,
				OrderPosition: cm.Order,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link cast member %d to movie %d: %w", cm.ID, n.MovieID, err)
			}
		}

		return nil
	})
}

// GetByID retrieves one movie row by its TMDB id
func (r *MovieRepository) GetByID(movieID int64) (*models.Movie, error) {
	var movie models.Movie
	err := r.DB.Where("movie_id = ?", movieID).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get movie %d: %w", movieID, err)
	}
	return &movie, nil
}

// ListByPopularity retrieves a page of movies, most popular first
func (r *MovieRepository) ListByPopularity(limit, offset int) ([]models.Movie, error) {
	var movies []models.Movie
	err := r.DB.Order("popularity DESC").Limit(limit).Offset(offset).Find(&movies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// GenresForMovie retrieves the genres linked to one movie
func (r *MovieRepository) GenresForMovie(movieID int64) ([]models.Genre, error) {
	var genres []models.Genre
	err := r.DB.
		Joins("JOIN movie_genres mg ON mg.genre_id = genres.genre_id").
		Where("mg.movie_id = ?", movieID).
		Order("genres.name").
		Find(&genres).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get genres for movie %d: %w", movieID, err)
	}
	return genres, nil
}

// CompaniesForMovie retrieves the production companies linked to one movie
func (r *MovieRepository) CompaniesForMovie(movieID int64) ([]models.ProductionCompany, error) {
	var companies []models.ProductionCompany
	err := r.DB.
		Joins("JOIN movie_production_companies mpc ON mpc.company_id = production_companies.company_id").
		Where("mpc.movie_id = ?", movieID).
		Order("production_companies.name").
		Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get companies for movie %d: %w", movieID, err)
	}
	return companies, nil
}

// CastCredit is one cast member together with their per-movie credit fields.
type CastCredit struct {
	CastID        int64   `json:"cast_id"`
	Name          string  `json:"name"`
	Gender        *int    `json:"gender,omitempty"`
	ProfilePath   *string `json:"profile_path,omitempty"`
	Character     *string `json:"character,omitempty"`
	OrderPosition int     `json:"order_position"`
}

// CastForMovie retrieves the billed cast of one movie in billing order
func (r *MovieRepository) CastForMovie(movieID int64) ([]CastCredit, error) {
	var credits []CastCredit
	err := r.DB.Model(&models.MovieCast{}).
		Select("movie_cast.cast_id, cast_members.name, cast_members.gender, cast_members.profile_path, movie_cast.character, movie_cast.order_position").
		Joins("JOIN cast_members ON cast_members.cast_id = movie_cast.cast_id").
		Where("movie_cast.movie_id = ?", movieID).
		Order("movie_cast.order_position").
		Scan(&credits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cast for movie %d: %w", movieID, err)
	}
	return credits, nil
}

// TableCounts summarises how many rows each entity table holds.
type TableCounts struct {
	Movies    int64 `json:"movies"`
	Genres    int64 `json:"genres"`
	Companies int64 `json:"production_companies"`
	Cast      int64 `json:"cast_members"`
}

// TableCounts counts the rows in each entity table
func (r *MovieRepository) TableCounts() (TableCounts, error) {
	var counts TableCounts
	if err := r.DB.Model(&models.Movie{}).Count(&counts.Movies).Error; err != nil {
		return counts, fmt.Errorf("failed to count movies: %w", err)
	}
	if err := r.DB.Model(&models.Genre{}).Count(&counts.Genres).Error; err != nil {
		return counts, fmt.Errorf("failed to count genres: %w", err)
	}
	if err := r.DB.Model(&models.ProductionCompany{}).Count(&counts.Companies).Error; err != nil {
		return counts, fmt.Errorf("failed to count production companies: %w", err)
	}
	if err := r.DB.Model(&models.CastMember{}).Count(&counts.Cast).Error; err != nil {
		return counts, fmt.Errorf("failed to count cast members: %w", err)
	}
	return counts, nil
}
