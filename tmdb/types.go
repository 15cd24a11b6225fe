package tmdb

// MovieSummary is one entry of a paginated listing response. Listings only
// contribute ids to the collector; the full record comes from MovieDetails.
type MovieSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// listResponse is the common envelope of the paginated listing endpoints.
type listResponse struct {
	Page       int            `json:"page"`
	Results    []MovieSummary `json:"results"`
	TotalPages int            `json:"total_pages"`
}

// RawGenre mirrors a genre entry of the detail payload.
type RawGenre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RawCompany mirrors a production company entry of the detail payload.
type RawCompany struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	OriginCountry string `json:"origin_country"`
}

// RawCastMember mirrors one credits cast entry of the detail payload.
type RawCastMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Gender      *int    `json:"gender"`
	ProfilePath *string `json:"profile_path"`
	Character   string  `json:"character"`
}

// RawCredits mirrors the embedded credits sub-object requested via
// append_to_response=credits.
type RawCredits struct {
	Cast []RawCastMember `json:"cast"`
}

// RawMovie is the unmodified detail payload for one movie.
type RawMovie struct {
	ID               int64        `json:"id"`
	Title            string       `json:"title"`
	OriginalTitle    string       `json:"original_title"`
	Overview         string       `json:"overview"`
	ReleaseDate      string       `json:"release_date"`
	Budget           float64      `json:"budget"`
	Revenue          float64      `json:"revenue"`
	Runtime          *int         `json:"runtime"`
	Popularity       float64      `json:"popularity"`
	VoteAverage      float64      `json:"vote_average"`
	VoteCount        int          `json:"vote_count"`
	PosterPath       *string      `json:"poster_path"`
	BackdropPath     *string      `json:"backdrop_path"`
	Status           string       `json:"status"`
	OriginalLanguage string       `json:"original_language"`
	Tagline          string       `json:"tagline"`
	ImdbID           *string      `json:"imdb_id"`
	Genres           []RawGenre   `json:"genres"`
	Companies        []RawCompany `json:"production_companies"`
	Credits          RawCredits   `json:"credits"`
}
