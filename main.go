package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/camden-git/movieetlbackend/analysis"
	"github.com/camden-git/movieetlbackend/cache"
	"github.com/camden-git/movieetlbackend/collector"
	"github.com/camden-git/movieetlbackend/config"
	"github.com/camden-git/movieetlbackend/database"
	"github.com/camden-git/movieetlbackend/handlers"
	"github.com/camden-git/movieetlbackend/repository"
	"github.com/camden-git/movieetlbackend/tmdb"
	"github.com/camden-git/movieetlbackend/workers"
)

func main() {
	mode := flag.String("mode", "pipeline", "run mode: pipeline, analyze or serve")
	flag.Parse()

	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.AnalysisDir, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		if p == "." || p == "" {
			continue
		}
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	log.Printf("Using database: %s", cfg.DatabasePath)

	switch *mode {
	case "pipeline":
		runPipeline(cfg, db)
		runAnalysis(cfg, db)
	case "analyze":
		runAnalysis(cfg, db)
	case "serve":
		serve(cfg, db)
	default:
		log.Fatalf("FATAL: Unknown mode %q (expected pipeline, analyze or serve)", *mode)
	}
}

func runPipeline(cfg config.Config, db *gorm.DB) {
	client := tmdb.NewClient(cfg.APIKey, cfg.HTTPTimeout)
	idCache := cache.NewIDCache(cfg.IDCachePath)

	coll := collector.New(client, idCache, cfg.PageDelay)
	coll.Collect(cfg.TargetMovieCount)

	movieIDs := coll.IDs()
	if len(movieIDs) > cfg.TargetMovieCount {
		movieIDs = movieIDs[:cfg.TargetMovieCount]
	}

	movieRepo := repository.NewMovieRepository(db)
	runRepo := repository.NewRunRepository(db)
	dispatcher := workers.NewDispatcher(client, movieRepo, runRepo, cfg.NumFetchWorkers)
	dispatcher.Run(movieIDs)
}

func runAnalysis(cfg config.Config, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting raw database handle for analysis: %v", err)
		return
	}

	analyzer := analysis.NewAnalyzer(sqlDB)
	results := analyzer.RunAll()
	if err := analysis.ExportCSV(cfg.AnalysisDir, results); err != nil {
		log.Printf("Error exporting analysis results: %v", err)
	}
}

func serve(cfg config.Config, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to get raw database handle: %v", err)
	}

	movieRepo := repository.NewMovieRepository(db)
	runRepo := repository.NewRunRepository(db)

	movieHandler := &handlers.MovieHandler{Repo: movieRepo}
	statsHandler := &handlers.StatsHandler{Repo: movieRepo, Runs: runRepo}
	analysisHandler := &handlers.AnalysisHandler{Analyzer: analysis.NewAnalyzer(sqlDB)}

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", movieHandler.ListMovies)
			r.Get("/{movie_id}", movieHandler.GetMovie)
		})
		r.Get("/stats", statsHandler.GetStats)
		r.Route("/analyses", func(r chi.Router) {
			r.Get("/", analysisHandler.ListAnalyses)
			r.Get("/{name}", analysisHandler.GetAnalysis)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
