package analysis

import (
	"database/sql"
	"fmt"
	"log"
	"sort"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Result is one analysis as a tabular result set: a name, column headers and
// value rows. It is what gets exported to CSV and served over the API.
type Result struct {
	Name    string          `json:"name"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// Analyzer runs the aggregate reporting queries over the relational schema.
type Analyzer struct {
	DB *sql.DB
}

// NewAnalyzer creates an Analyzer over a raw database handle.
func NewAnalyzer(db *sql.DB) *Analyzer {
	return &Analyzer{DB: db}
}

// Names lists the available analyses in export order.
func Names() []string {
	return []string{
		"genre_trends",
		"studio_performance",
		"budget_efficiency",
		"cast_network",
		"genre_correlations",
		"financial_trends",
	}
}

// ByName runs a single analysis by its export name.
func (a *Analyzer) ByName(name string) (*Result, error) {
	switch name {
	case "genre_trends":
		return a.GenreTrends()
	case "studio_performance":
		return a.StudioPerformance()
	case "budget_efficiency":
		return a.BudgetEfficiency()
	case "cast_network":
		return a.CastNetwork()
	case "genre_correlations":
		return a.GenreCorrelations()
	case "financial_trends":
		return a.FinancialTrends()
	default:
		return nil, fmt.Errorf("unknown analysis: %s", name)
	}
}

// RunAll runs every analysis, logging and skipping any that fail so one bad
// query never blocks the rest of the report.
func (a *Analyzer) RunAll() []*Result {
	var results []*Result
	for _, name := range Names() {
		log.Printf("Running %s analysis...", name)
		res, err := a.ByName(name)
		if err != nil {
			log.Printf("Error running %s analysis: %v", name, err)
			continue
		}
		results = append(results, res)
	}
	return results
}

// GenreTrends reports per-genre movie counts and average popularity/rating
// by release year.
func (a *Analyzer) GenreTrends() (*Result, error) {
	qb := psql.Select(
		"g.name AS genre",
		"strftime('%Y', m.release_date) AS year",
		"COUNT(*) AS movie_count",
		"AVG(m.popularity) AS avg_popularity",
		"AVG(m.vote_average) AS avg_rating",
	).
		From("genres g").
		Join("movie_genres mg ON g.genre_id = mg.genre_id").
		Join("movies m ON mg.movie_id = m.movie_id").
		Where("m.release_date IS NOT NULL").
		GroupBy("g.name", "year").
		OrderBy("g.name", "year")

	return a.runQuery("genre_trends", qb)
}

// StudioPerformance ranks production companies with at least five financed
// movies by risk-adjusted return on budget.
func (a *Analyzer) StudioPerformance() (*Result, error) {
	qb := psql.Select(
		"pc.name AS studio",
		"COUNT(DISTINCT m.movie_id) AS movie_count",
		"AVG(m.revenue) AS avg_revenue",
		"AVG(m.budget) AS avg_budget",
		"AVG(CASE WHEN m.budget > 0 THEN m.revenue / m.budget ELSE NULL END) AS profit_ratio",
		"COUNT(DISTINCT g.genre_id) * 1.0 / (SELECT COUNT(*) FROM genres) AS genre_diversity",
	).
		From("production_companies pc").
		Join("movie_production_companies mpc ON pc.company_id = mpc.company_id").
		Join("movies m ON mpc.movie_id = m.movie_id").
		LeftJoin("movie_genres mg ON m.movie_id = mg.movie_id").
		LeftJoin("genres g ON mg.genre_id = g.genre_id").
		Where("m.budget > 0 AND m.revenue > 0").
		GroupBy("pc.name").
		Having("movie_count >= 5").
		OrderBy("profit_ratio DESC")

	result, err := a.runQuery("studio_performance", qb)
	if err != nil {
		return nil, err
	}

	// the original analysis assigns a flat risk figure per studio and ranks
	// by profit ratio divided by it
	const studioRisk = 0.5
	result.Columns = append(result.Columns, "risk", "risk_adjusted_return")
	for i, row := range result.Rows {
		var rar interface{}
		if ratio, ok := toFloat(row[4]); ok {
			rar = ratio / studioRisk
		}
		result.Rows[i] = append(row, studioRisk, rar)
	}
	sort.SliceStable(result.Rows, func(i, j int) bool {
		left, leftOK := toFloat(result.Rows[i][7])
		right, rightOK := toFloat(result.Rows[j][7])
		if leftOK != rightOK {
			return leftOK
		}
		return left > right
	})

	return result, nil
}

// BudgetEfficiency lists revenue-to-budget efficiency per genre for movies
// with a meaningful budget.
func (a *Analyzer) BudgetEfficiency() (*Result, error) {
	qb := psql.Select(
		"g.name AS genre",
		"m.budget / 1000000 AS budget_millions",
		"m.revenue / 1000000 AS revenue_millions",
		"CASE WHEN m.budget > 0 THEN m.revenue / m.budget ELSE NULL END AS efficiency",
	).
		From("movies m").
		Join("movie_genres mg ON m.movie_id = mg.movie_id").
		Join("genres g ON mg.genre_id = g.genre_id").
		Where("m.budget > 1000000 AND m.revenue > 0").
		OrderBy("g.name", "m.budget")

	return a.runQuery("budget_efficiency", qb)
}

// CastNetwork reports the highest-grossing repeat actor collaborations.
func (a *Analyzer) CastNetwork() (*Result, error) {
	qb := psql.Select(
		"c1.name AS actor1",
		"c2.name AS actor2",
		"cp.collaboration_count",
		"AVG(m.revenue) AS avg_revenue",
	).
		Prefix(`WITH cast_pairs AS (
			SELECT
				mc1.cast_id AS cast_id1,
				mc2.cast_id AS cast_id2,
				COUNT(DISTINCT mc1.movie_id) AS collaboration_count
			FROM movie_cast mc1
			JOIN movie_cast mc2 ON mc1.movie_id = mc2.movie_id AND mc1.cast_id < mc2.cast_id
			GROUP BY cast_id1, cast_id2
			HAVING collaboration_count >= 2
		)`).
		From("cast_pairs cp").
		Join("cast_members c1 ON cp.cast_id1 = c1.cast_id").
		Join("cast_members c2 ON cp.cast_id2 = c2.cast_id").
		Join("movie_cast mc1 ON cp.cast_id1 = mc1.cast_id").
		Join("movie_cast mc2 ON cp.cast_id2 = mc2.cast_id AND mc1.movie_id = mc2.movie_id").
		Join("movies m ON mc1.movie_id = m.movie_id").
		Where("m.revenue > 0").
		GroupBy("actor1", "actor2").
		OrderBy("avg_revenue DESC").
		Limit(100)

	return a.runQuery("cast_network", qb)
}

// GenreCorrelations reports which genres co-occur on the same movies and how
// those pairings perform.
func (a *Analyzer) GenreCorrelations() (*Result, error) {
	qb := psql.Select(
		"g1.name AS genre1",
		"g2.name AS genre2",
		"gp.co_occurrence",
		"AVG(m.revenue) AS avg_revenue",
		"AVG(m.vote_average) AS avg_rating",
	).
		Prefix(`WITH genre_pairs AS (
			SELECT
				mg1.genre_id AS genre_id1,
				mg2.genre_id AS genre_id2,
				COUNT(DISTINCT mg1.movie_id) AS co_occurrence
			FROM movie_genres mg1
			JOIN movie_genres mg2 ON mg1.movie_id = mg2.movie_id AND mg1.genre_id < mg2.genre_id
			GROUP BY genre_id1, genre_id2
		)`).
		From("genre_pairs gp").
		Join("genres g1 ON gp.genre_id1 = g1.genre_id").
		Join("genres g2 ON gp.genre_id2 = g2.genre_id").
		Join("movie_genres mg1 ON gp.genre_id1 = mg1.genre_id").
		Join("movie_genres mg2 ON gp.genre_id2 = mg2.genre_id AND mg1.movie_id = mg2.movie_id").
		Join("movies m ON mg1.movie_id = m.movie_id").
		Where("m.revenue > 0").
		GroupBy("genre1", "genre2").
		OrderBy("co_occurrence DESC")

	return a.runQuery("genre_correlations", qb)
}

// FinancialTrends reports average budget, revenue and return on investment
// by release year.
func (a *Analyzer) FinancialTrends() (*Result, error) {
	qb := psql.Select(
		"strftime('%Y', m.release_date) AS year",
		"AVG(m.budget) AS avg_budget",
		"AVG(m.revenue) AS avg_revenue",
		"AVG(CASE WHEN m.budget > 0 THEN m.revenue / m.budget ELSE NULL END) AS avg_roi",
		"COUNT(*) AS movie_count",
	).
		From("movies m").
		Where("m.release_date IS NOT NULL AND m.budget > 0 AND m.revenue > 0").
		GroupBy("year").
		OrderBy("year")

	return a.runQuery("financial_trends", qb)
}

// runQuery executes one built query and packs it into a generic Result.
func (a *Analyzer) runQuery(name string, qb sq.SelectBuilder) (*Result, error) {
	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for %s: %w", name, err)
	}

	rows, err := a.DB.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run %s query: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s columns: %w", name, err)
	}

	result := &Result{Name: name, Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		scanTargets := make([]interface{}, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", name, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", name, err)
	}

	return result, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
