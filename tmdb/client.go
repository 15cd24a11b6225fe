package tmdb

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

// Client handles all TMDB API interactions. It is safe for concurrent use;
// each call issues one independent request.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new TMDB API client with the given credential and
// per-request timeout.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// get issues one GET request against the API and decodes the JSON body into
// result. The api_key parameter is always added. All failures come back as
// *APIError with the kind set.
func (c *Client) get(endpoint string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.APIKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.BaseURL, endpoint, params.Encode())

	resp, err := c.HTTPClient.Get(reqURL)
	if err != nil {
		return &APIError{Kind: ErrKindTransport, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Kind: ErrKindStatus, Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: ErrKindDecode, Endpoint: endpoint, Err: err}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &APIError{Kind: ErrKindDecode, Endpoint: endpoint, Err: err}
	}

	return nil
}

// PopularMovies fetches one page of the popularity-ranked listing.
// Pages are 1-indexed.
func (c *Client) PopularMovies(page int) ([]MovieSummary, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var resp listResponse
	if err := c.get("/movie/popular", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// TopRatedMovies fetches one page of the rating-ranked listing.
func (c *Client) TopRatedMovies(page int) ([]MovieSummary, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var resp listResponse
	if err := c.get("/movie/top_rated", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// DiscoverByYear fetches one page of movies with the given primary release
// year, most popular first. It also returns the listing's total page count so
// the caller can decide how deep to sweep.
func (c *Client) DiscoverByYear(year, page int) ([]MovieSummary, int, error) {
	params := url.Values{}
	params.Set("primary_release_year", strconv.Itoa(year))
	params.Set("page", strconv.Itoa(page))
	params.Set("sort_by", "popularity.desc")

	var resp listResponse
	if err := c.get("/discover/movie", params, &resp); err != nil {
		return nil, 1, err
	}
	totalPages := resp.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	return resp.Results, totalPages, nil
}

// MovieDetails fetches the full detail record for one movie, with the credits
// sub-object embedded in the same response.
func (c *Client) MovieDetails(movieID int64) (*RawMovie, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits")

	var raw RawMovie
	if err := c.get(fmt.Sprintf("/movie/%d", movieID), params, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}
