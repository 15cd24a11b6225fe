package models

// MovieGenre links a movie to one of its genres.
type MovieGenre struct {
	MovieID int64 `gorm:"primaryKey" json:"movie_id"`
	GenreID int64 `gorm:"primaryKey" json:"genre_id"`
}

func (MovieGenre) TableName() string {
	return "movie_genres"
}

// MovieProductionCompany links a movie to one of its production companies.
type MovieProductionCompany struct {
	MovieID   int64 `gorm:"primaryKey" json:"movie_id"`
	CompanyID int64 `gorm:"primaryKey" json:"company_id"`
}

func (MovieProductionCompany) TableName() string {
	return "movie_production_companies"
}

// MovieCast links a movie to a cast member with the character played and the
// zero-based billing position as returned by the API.
type MovieCast struct {
	MovieID       int64   `gorm:"primaryKey" json:"movie_id"`
	CastID        int64   `gorm:"primaryKey" json:"cast_id"`
	Character     *string `gorm:"" json:"character,omitempty"`
	OrderPosition int     `gorm:"not null" json:"order_position"`
}

func (MovieCast) TableName() string {
	return "movie_cast"
}
