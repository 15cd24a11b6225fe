package analysis

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/camden-git/movieetlbackend/database"
	"github.com/camden-git/movieetlbackend/repository"
	"github.com/camden-git/movieetlbackend/tmdb"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func seededAnalyzer(t *testing.T) (*Analyzer, *gorm.DB) {
	t.Helper()
	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))

	repo := repository.NewMovieRepository(db)

	movies := []*tmdb.NormalizedMovie{
		{
			MovieID:     1,
			Title:       "First",
			ReleaseDate: strPtr("2020-01-10"),
			Budget:      f64Ptr(10_000_000),
			Revenue:     f64Ptr(30_000_000),
			Popularity:  f64Ptr(50),
			VoteAverage: f64Ptr(7.5),
			Genres: []tmdb.GenreRef{
				{ID: 18, Name: "Drama"},
				{ID: 28, Name: "Action"},
			},
			Companies: []tmdb.CompanyRef{{ID: 100, Name: "StudioX"}},
			Cast: []tmdb.CastRef{
				{ID: 10, Name: "Alice", Order: 0},
				{ID: 20, Name: "Bob", Order: 1},
			},
		},
		{
			MovieID:     2,
			Title:       "Second",
			ReleaseDate: strPtr("2020-07-22"),
			Budget:      f64Ptr(20_000_000),
			Revenue:     f64Ptr(40_000_000),
			Popularity:  f64Ptr(60),
			VoteAverage: f64Ptr(6.5),
			Genres:      []tmdb.GenreRef{{ID: 18, Name: "Drama"}},
			Companies:   []tmdb.CompanyRef{{ID: 100, Name: "StudioX"}},
			Cast: []tmdb.CastRef{
				{ID: 10, Name: "Alice", Order: 0},
				{ID: 20, Name: "Bob", Order: 1},
			},
		},
	}
	for _, m := range movies {
		require.NoError(t, repo.Upsert(m))
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	return NewAnalyzer(sqlDB), db
}

func TestGenreTrends(t *testing.T) {
	a, _ := seededAnalyzer(t)

	result, err := a.GenreTrends()
	require.NoError(t, err)
	assert.Equal(t, []string{"genre", "year", "movie_count", "avg_popularity", "avg_rating"}, result.Columns)

	var found bool
	for _, row := range result.Rows {
		if row[0] == "Drama" && row[1] == "2020" {
			found = true
			assert.EqualValues(t, 2, row[2])
		}
	}
	assert.True(t, found, "expected a Drama/2020 aggregate row")
}

func TestFinancialTrends(t *testing.T) {
	a, _ := seededAnalyzer(t)

	result, err := a.FinancialTrends()
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, "2020", row[0])
	assert.EqualValues(t, 2, row[4])
}

func TestCastNetworkFindsRepeatCollaborations(t *testing.T) {
	a, _ := seededAnalyzer(t)

	result, err := a.CastNetwork()
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, "Alice", row[0])
	assert.Equal(t, "Bob", row[1])
	assert.EqualValues(t, 2, row[2])
}

func TestGenreCorrelations(t *testing.T) {
	a, _ := seededAnalyzer(t)

	result, err := a.GenreCorrelations()
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.EqualValues(t, 1, result.Rows[0][2], "Drama and Action co-occur on one movie")
}

func TestByNameUnknownAnalysis(t *testing.T) {
	a, _ := seededAnalyzer(t)
	_, err := a.ByName("nope")
	assert.Error(t, err)
}

func TestRunAllAndExportCSV(t *testing.T) {
	a, _ := seededAnalyzer(t)

	results := a.RunAll()
	require.Len(t, results, len(Names()))

	dir := filepath.Join(t.TempDir(), "analysis_results")
	require.NoError(t, ExportCSV(dir, results))

	for _, name := range Names() {
		path := filepath.Join(dir, name+".csv")
		f, err := os.Open(path)
		require.NoError(t, err, "expected one CSV per analysis")

		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err)
		require.NotEmpty(t, records, "CSV must carry at least a header row")
	}

	// spot-check one export's header
	f, err := os.Open(filepath.Join(dir, "genre_trends.csv"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"genre", "year", "movie_count", "avg_popularity", "avg_rating"}, records[0])
}
