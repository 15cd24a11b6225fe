package collector

import (
	"log"
	"time"

	"github.com/camden-git/movieetlbackend/cache"
	"github.com/camden-git/movieetlbackend/tmdb"
)

const (
	maxRankedPages   = 20
	discoverFromYear = 2024
	discoverToYear   = 1970
	maxDiscoverPages = 5
)

// MovieLister is the subset of the TMDB client the collector consumes.
type MovieLister interface {
	PopularMovies(page int) ([]tmdb.MovieSummary, error)
	TopRatedMovies(page int) ([]tmdb.MovieSummary, error)
	DiscoverByYear(year, page int) ([]tmdb.MovieSummary, int, error)
}

// Collector grows the working movie id set toward a target count by walking
// the popularity-ranked listing, the rating-ranked listing, and finally a
// by-year discovery sweep. It is the sole mutator of the id set; consumers
// get a read-only snapshot via IDs.
type Collector struct {
	API       MovieLister
	Cache     *cache.IDCache
	PageDelay time.Duration

	ids cache.IDSet
}

// New creates a Collector seeded from the persisted id cache.
func New(api MovieLister, idCache *cache.IDCache, pageDelay time.Duration) *Collector {
	return &Collector{
		API:       api,
		Cache:     idCache,
		PageDelay: pageDelay,
		ids:       idCache.Load(),
	}
}

// IDs returns a snapshot of the collected ids, sorted ascending.
func (c *Collector) IDs() []int64 {
	return c.ids.Values()
}

// Len returns how many distinct ids have been collected so far.
func (c *Collector) Len() int {
	return len(c.ids)
}

// Collect extends the id set until it holds at least target distinct ids or
// every strategy is exhausted, then persists the full set once. Individual
// page failures are logged and contribute zero ids; collection moves on.
func (c *Collector) Collect(target int) {
	log.Printf("Collecting movie IDs to reach target of %d", target)

	if len(c.ids) >= target {
		log.Printf("Already have %d movie IDs in cache", len(c.ids))
		return
	}

	c.collectPopular(target)
	c.collectTopRated(target)
	c.collectDiscover(target)

	c.Cache.Save(c.ids)
}

func (c *Collector) collectPopular(target int) {
	for page := 1; page <= maxRankedPages; page++ {
		if len(c.ids) >= target {
			return
		}

		movies, err := c.API.PopularMovies(page)
		if err != nil {
			log.Printf("Error fetching popular movies page %d: %v", page, err)
		}
		for _, m := range movies {
			c.ids.Add(m.ID)
		}

		log.Printf("Collected %d movie IDs after popular movies page %d", len(c.ids), page)
		c.pause()
	}
}

func (c *Collector) collectTopRated(target int) {
	for page := 1; page <= maxRankedPages; page++ {
		if len(c.ids) >= target {
			return
		}

		movies, err := c.API.TopRatedMovies(page)
		if err != nil {
			log.Printf("Error fetching top rated movies page %d: %v", page, err)
		}
		for _, m := range movies {
			c.ids.Add(m.ID)
		}

		log.Printf("Collected %d movie IDs after top rated movies page %d", len(c.ids), page)
		c.pause()
	}
}

func (c *Collector) collectDiscover(target int) {
	for year := discoverFromYear; year >= discoverToYear; year-- {
		if len(c.ids) >= target {
			return
		}

		movies, totalPages, err := c.API.DiscoverByYear(year, 1)
		if err != nil {
			log.Printf("Error discovering movies for year %d, page 1: %v", year, err)
		}
		for _, m := range movies {
			c.ids.Add(m.ID)
		}
		c.pause()

		pagesToFetch := totalPages
		if pagesToFetch > maxDiscoverPages {
			pagesToFetch = maxDiscoverPages
		}
		for page := 2; page <= pagesToFetch; page++ {
			if len(c.ids) >= target {
				return
			}

			movies, _, err := c.API.DiscoverByYear(year, page)
			if err != nil {
				log.Printf("Error discovering movies for year %d, page %d: %v", year, page, err)
			}
			for _, m := range movies {
				c.ids.Add(m.ID)
			}

			log.Printf("Collected %d movie IDs after year %d, page %d", len(c.ids), year, page)
			c.pause()
		}
	}
}

// pause applies the fixed inter-page delay that keeps the collector inside
// the API's rate limits.
func (c *Collector) pause() {
	if c.PageDelay > 0 {
		time.Sleep(c.PageDelay)
	}
}
