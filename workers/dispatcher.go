package workers

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/camden-git/movieetlbackend/models"
	"github.com/camden-git/movieetlbackend/tmdb"
)

// MovieFetcher is the subset of the TMDB client the dispatcher consumes.
type MovieFetcher interface {
	MovieDetails(movieID int64) (*tmdb.RawMovie, error)
}

// MovieStore is the subset of the movie repository the dispatcher consumes.
type MovieStore interface {
	Exists(movieID int64) (bool, error)
	Upsert(n *tmdb.NormalizedMovie) error
}

// RunRecorder persists run summaries; may be nil to disable bookkeeping.
type RunRecorder interface {
	Create(run *models.PipelineRun) error
	Finish(id string, processed, failed int, elapsedSeconds float64) error
}

// Summary is the aggregate outcome of one dispatcher pass.
type Summary struct {
	RunID     string
	Processed int
	Failed    int
	Elapsed   time.Duration
}

// Dispatcher applies fetch -> normalize -> upsert to a batch of movie ids
// across a bounded pool of workers. The id slice is read-only input; the
// dispatcher never mutates it. Workers share the repository's connection
// pool, so each per-movie transaction runs on its own connection and the
// store's WAL mode serializes the commits.
type Dispatcher struct {
	Client     MovieFetcher
	Store      MovieStore
	Runs       RunRecorder
	NumWorkers int
}

// NewDispatcher creates a dispatcher with the given pool size.
func NewDispatcher(client MovieFetcher, store MovieStore, runs RunRecorder, numWorkers int) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return &Dispatcher{
		Client:     client,
		Store:      store,
		Runs:       runs,
		NumWorkers: numWorkers,
	}
}

// Run processes every id in the batch and returns the aggregate counts.
// All ids are enqueued eagerly; results are counted in completion order. A
// single movie's failure only increments the failure counter and never
// affects sibling workers.
func (d *Dispatcher) Run(movieIDs []int64) Summary {
	start := time.Now()
	runID := uuid.NewString()
	log.Printf("Starting to process %d movies with %d workers (run %s)", len(movieIDs), d.NumWorkers, runID)

	if d.Runs != nil {
		run := &models.PipelineRun{
			ID:          runID,
			StartedAt:   start.Unix(),
			TargetCount: len(movieIDs),
			NumWorkers:  d.NumWorkers,
		}
		if err := d.Runs.Create(run); err != nil {
			log.Printf("Error recording pipeline run %s: %v", runID, err)
		}
	}

	jobs := make(chan int64, len(movieIDs))
	results := make(chan bool, len(movieIDs))

	var wg sync.WaitGroup
	wg.Add(d.NumWorkers)
	for i := 0; i < d.NumWorkers; i++ {
		go d.worker(i, jobs, results, &wg)
	}

	for _, id := range movieIDs {
		jobs <- id
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	summary := Summary{RunID: runID}
	for ok := range results {
		if ok {
			summary.Processed++
		} else {
			summary.Failed++
		}
	}
	summary.Elapsed = time.Since(start)

	avgPerMovie := time.Duration(0)
	if len(movieIDs) > 0 {
		avgPerMovie = summary.Elapsed / time.Duration(len(movieIDs))
	}
	log.Printf("ETL pipeline completed in %.2f seconds", summary.Elapsed.Seconds())
	log.Printf("Successfully processed: %d movies", summary.Processed)
	log.Printf("Failed to process: %d movies", summary.Failed)
	log.Printf("Average time per movie: %s", avgPerMovie)

	if d.Runs != nil {
		if err := d.Runs.Finish(runID, summary.Processed, summary.Failed, summary.Elapsed.Seconds()); err != nil {
			log.Printf("Error finishing pipeline run %s: %v", runID, err)
		}
	}

	return summary
}

func (d *Dispatcher) worker(id int, jobs <-chan int64, results chan<- bool, wg *sync.WaitGroup) {
	defer wg.Done()
	for movieID := range jobs {
		results <- d.processMovie(id, movieID)
	}
}

// processMovie runs one id through the skip check and the three pipeline
// stages. Every failure path returns false; nothing panics past this point.
func (d *Dispatcher) processMovie(workerID int, movieID int64) bool {
	exists, err := d.Store.Exists(movieID)
	if err != nil {
		log.Printf("Worker %d: error checking existence of movie %d: %v", workerID, movieID, err)
		return false
	}
	if exists {
		// already persisted by a previous run; counts as success with no
		// network work
		return true
	}

	raw, err := d.Client.MovieDetails(movieID)
	if err != nil {
		log.Printf("Worker %d: failed to fetch movie %d: %v", workerID, movieID, err)
		return false
	}

	normalized := tmdb.Normalize(raw)
	if normalized == nil {
		log.Printf("Worker %d: failed to normalize movie %d", workerID, movieID)
		return false
	}

	if err := d.Store.Upsert(normalized); err != nil {
		log.Printf("Worker %d: failed to store movie %d: %v", workerID, movieID, err)
		return false
	}

	return true
}
