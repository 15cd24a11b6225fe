package models

// Movie represents one movie record pulled from TMDB.
// It corresponds to the 'movies' table. The primary key is the TMDB movie id;
// ids are never generated locally. A re-fetch fully overwrites the row.
type Movie struct {
	MovieID int64  `gorm:"primaryKey" json:"movie_id"`
	Title   string `gorm:"not null" json:"title"`

	OriginalTitle    *string  `gorm:"" json:"original_title,omitempty"`
	Overview         *string  `gorm:"" json:"overview,omitempty"`
	ReleaseDate      *string  `gorm:"index" json:"release_date,omitempty"` // YYYY-MM-DD as returned by the API
	Budget           *float64 `gorm:"index" json:"budget,omitempty"`
	Revenue          *float64 `gorm:"index" json:"revenue,omitempty"`
	Runtime          *int     `gorm:"" json:"runtime,omitempty"` // minutes
	Popularity       *float64 `gorm:"index" json:"popularity,omitempty"`
	VoteAverage      *float64 `gorm:"" json:"vote_average,omitempty"`
	VoteCount        *int     `gorm:"" json:"vote_count,omitempty"`
	PosterPath       *string  `gorm:"" json:"poster_path,omitempty"`
	BackdropPath     *string  `gorm:"" json:"backdrop_path,omitempty"`
	Status           *string  `gorm:"" json:"status,omitempty"`
	OriginalLanguage *string  `gorm:"" json:"original_language,omitempty"`
	Tagline          *string  `gorm:"" json:"tagline,omitempty"`
	ImdbID           *string  `gorm:"" json:"imdb_id,omitempty"`

	// ingestion timestamp, RFC 3339
	CreatedAt string `gorm:"not null" json:"created_at"`
}

// TableName explicitly sets the table name for GORM.
func (Movie) TableName() string {
	return "movies"
}
