package models

// ProductionCompany is a TMDB production company reference row, written with
// ignore-on-conflict semantics like Genre.
type ProductionCompany struct {
	CompanyID     int64   `gorm:"primaryKey" json:"company_id"`
	Name          string  `gorm:"not null" json:"name"`
	OriginCountry *string `gorm:"" json:"origin_country,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (ProductionCompany) TableName() string {
	return "production_companies"
}
