package tmdb

import "log"

// MaxCastMembers caps how many credits cast entries are kept per movie, in
// the order the API returns them (billing order).
const MaxCastMembers = 15

// NormalizedMovie is the flat relational shape derived from a RawMovie,
// ready for the upsert writer.
type NormalizedMovie struct {
	MovieID          int64
	Title            string
	OriginalTitle    *string
	Overview         *string
	ReleaseDate      *string
	Budget           *float64
	Revenue          *float64
	Runtime          *int
	Popularity       *float64
	VoteAverage      *float64
	VoteCount        *int
	PosterPath       *string
	BackdropPath     *string
	Status           *string
	OriginalLanguage *string
	Tagline          *string
	ImdbID           *string

	Genres    []GenreRef
	Companies []CompanyRef
	Cast      []CastRef
}

// GenreRef is one genre referenced by a normalized movie.
type GenreRef struct {
	ID   int64
	Name string
}

// CompanyRef is one production company referenced by a normalized movie.
type CompanyRef struct {
	ID            int64
	Name          string
	OriginCountry *string
}

// CastRef is one cast credit referenced by a normalized movie. Order is the
// zero-based billing position.
type CastRef struct {
	ID          int64
	Name        string
	Gender      *int
	ProfilePath *string
	Character   *string
	Order       int
}

// Normalize flattens a raw detail payload into a NormalizedMovie. It returns
// nil if the input is nil or lacks a usable id or title; the caller counts
// that as a failed identifier for the pass.
func Normalize(raw *RawMovie) *NormalizedMovie {
	if raw == nil {
		return nil
	}
	if raw.ID == 0 || raw.Title == "" {
		log.Printf("normalize: discarding payload with missing id/title (id=%d)", raw.ID)
		return nil
	}

	n := &NormalizedMovie{
		MovieID:          raw.ID,
		Title:            raw.Title,
		OriginalTitle:    optString(raw.OriginalTitle),
		Overview:         optString(raw.Overview),
		ReleaseDate:      optString(raw.ReleaseDate),
		Budget:           float64Ptr(raw.Budget),
		Revenue:          float64Ptr(raw.Revenue),
		Runtime:          raw.Runtime,
		Popularity:       float64Ptr(raw.Popularity),
		VoteAverage:      float64Ptr(raw.VoteAverage),
		VoteCount:        intPtr(raw.VoteCount),
		PosterPath:       raw.PosterPath,
		BackdropPath:     raw.BackdropPath,
		Status:           optString(raw.Status),
		OriginalLanguage: optString(raw.OriginalLanguage),
		Tagline:          optString(raw.Tagline),
		ImdbID:           raw.ImdbID,
	}

	for _, g := range raw.Genres {
		n.Genres = append(n.Genres, GenreRef{ID: g.ID, Name: g.Name})
	}

	for _, pc := range raw.Companies {
		n.Companies = append(n.Companies, CompanyRef{
			ID:            pc.ID,
			Name:          pc.Name,
			OriginCountry: optString(pc.OriginCountry),
		})
	}

	cast := raw.Credits.Cast
	if len(cast) > MaxCastMembers {
		cast = cast[:MaxCastMembers]
	}
	for i, cm := range cast {
		n.Cast = append(n.Cast, CastRef{
			ID:          cm.ID,
			Name:        cm.Name,
			Gender:      cm.Gender,
			ProfilePath: cm.ProfilePath,
			Character:   optString(cm.Character),
			Order:       i,
		})
	}

	return n
}

// optString maps the API's empty strings to NULL columns.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}
