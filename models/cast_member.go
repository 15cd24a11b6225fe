package models

// CastMember is a TMDB person reference row, written with ignore-on-conflict
// semantics like Genre.
type CastMember struct {
	CastID      int64   `gorm:"primaryKey" json:"cast_id"`
	Name        string  `gorm:"not null" json:"name"`
	Gender      *int    `gorm:"" json:"gender,omitempty"` // TMDB gender code
	ProfilePath *string `gorm:"" json:"profile_path,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (CastMember) TableName() string {
	return "cast_members"
}
