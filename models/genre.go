package models

// Genre is a TMDB genre reference row. Genres are shared across movies and are
// written with ignore-on-conflict semantics: the first writer wins.
type Genre struct {
	GenreID int64  `gorm:"primaryKey" json:"genre_id"`
	Name    string `gorm:"not null" json:"name"`
}

// TableName explicitly sets the table name for GORM.
func (Genre) TableName() string {
	return "genres"
}
