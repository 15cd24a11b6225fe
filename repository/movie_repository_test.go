package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/camden-git/movieetlbackend/database"
	"github.com/camden-git/movieetlbackend/models"
	"github.com/camden-git/movieetlbackend/tmdb"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))
	return db
}

func strPtr(s string) *string { return &s }

func testMovie(id int64, title string) *tmdb.NormalizedMovie {
	return &tmdb.NormalizedMovie{
		MovieID: id,
		Title:   title,
		Genres: []tmdb.GenreRef{
			{ID: 18, Name: "Drama"},
		},
		Companies: []tmdb.CompanyRef{
			{ID: 508, Name: "Regency Enterprises", OriginCountry: strPtr("US")},
		},
		Cast: []tmdb.CastRef{
			{ID: 819, Name: "Edward Norton", Character: strPtr("The Narrator"), Order: 0},
			{ID: 287, Name: "Brad Pitt", Character: strPtr("Tyler Durden"), Order: 1},
		},
	}
}

func TestExists(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))

	exists, err := repo.Exists(550)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Upsert(testMovie(550, "Fight Club")))

	exists, err = repo.Exists(550)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUpsertWritesFullSubgraph(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(testMovie(550, "Fight Club")))

	movie, err := repo.GetByID(550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.NotEmpty(t, movie.CreatedAt)

	genres, err := repo.GenresForMovie(550)
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Drama", genres[0].Name)

	companies, err := repo.CompaniesForMovie(550)
	require.NoError(t, err)
	require.Len(t, companies, 1)

	credits, err := repo.CastForMovie(550)
	require.NoError(t, err)
	require.Len(t, credits, 2)
	assert.Equal(t, "Edward Norton", credits[0].Name)
	assert.Equal(t, 0, credits[0].OrderPosition)
	assert.Equal(t, 1, credits[1].OrderPosition)
}

func TestUpsertMovieRowIsLastWriteWins(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))

	first := testMovie(550, "Fight Club")
	first.Tagline = strPtr("Mischief. Mayhem. Soap.")
	require.NoError(t, repo.Upsert(first))

	second := testMovie(550, "Fight Club (Remastered)")
	require.NoError(t, repo.Upsert(second))

	movie, err := repo.GetByID(550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club (Remastered)", movie.Title)

	// only one row for the id
	counts, err := repo.TableCounts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Movies)
}

func TestUpsertReferenceEntitiesAreFirstWriterWins(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	require.NoError(t, repo.Upsert(testMovie(550, "Fight Club")))

	other := testMovie(551, "Other Movie")
	other.Genres = []tmdb.GenreRef{{ID: 18, Name: "DRAMA (renamed upstream)"}}
	require.NoError(t, repo.Upsert(other))

	var genre models.Genre
	require.NoError(t, db.Where("genre_id = ?", 18).First(&genre).Error)
	assert.Equal(t, "Drama", genre.Name, "later writes with the same id are no-ops")
}

func TestUpsertRollsBackAtomically(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	// simulate a storage failure partway through the transaction, after the
	// movie row but before the cast association rows are staged
	err := db.Callback().Create().Before("gorm:create").Register("fail_movie_cast", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.MovieCast); ok {
			tx.AddError(errors.New("simulated storage failure"))
		}
	})
	require.NoError(t, err)

	upsertErr := repo.Upsert(testMovie(550, "Fight Club"))
	require.Error(t, upsertErr)

	// no trace of the movie across any table
	exists, err := repo.Exists(550)
	require.NoError(t, err)
	assert.False(t, exists)

	var genreLinks, companyLinks, castLinks int64
	require.NoError(t, db.Model(&models.MovieGenre{}).Where("movie_id = ?", 550).Count(&genreLinks).Error)
	require.NoError(t, db.Model(&models.MovieProductionCompany{}).Where("movie_id = ?", 550).Count(&companyLinks).Error)
	require.NoError(t, db.Model(&models.MovieCast{}).Where("movie_id = ?", 550).Count(&castLinks).Error)
	assert.Zero(t, genreLinks)
	assert.Zero(t, companyLinks)
	assert.Zero(t, castLinks)

	var genres int64
	require.NoError(t, db.Model(&models.Genre{}).Count(&genres).Error)
	assert.Zero(t, genres, "reference rows staged before the failure roll back too")
}

func TestUpsertNilIsRejected(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	assert.Error(t, repo.Upsert(nil))
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))

	_, err := repo.GetByID(12345)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListByPopularity(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))

	low := testMovie(1, "Low")
	lowPop := 5.0
	low.Popularity = &lowPop
	require.NoError(t, repo.Upsert(low))

	high := testMovie(2, "High")
	highPop := 95.0
	high.Popularity = &highPop
	require.NoError(t, repo.Upsert(high))

	movies, err := repo.ListByPopularity(10, 0)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "High", movies[0].Title)
	assert.Equal(t, "Low", movies[1].Title)
}
