package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	defaultDatabasePath     = "movie_database.db"
	defaultIDCachePath      = "movie_ids_cache.json"
	defaultAnalysisDir      = "analysis_results"
	defaultTargetMovieCount = 10000
	defaultNumFetchWorkers  = 5
	defaultPageDelayMs      = 250
	defaultHTTPTimeoutSecs  = 15
)

type Config struct {
	// TMDB API credential; startup fails without it
	APIKey string

	// database path
	DatabasePath string

	// persisted movie id cache
	IDCachePath string

	// directory for exported analysis CSVs
	AnalysisDir string

	// pipeline settings
	TargetMovieCount int
	NumFetchWorkers  int

	// delay between paginated listing requests
	PageDelay time.Duration

	// per-request timeout for the TMDB client
	HTTPTimeout time.Duration
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	apiKey := os.Getenv("TMDB_API_KEY")
	if apiKey == "" {
		return Config{}, fmt.Errorf("TMDB_API_KEY not found in environment variables")
	}

	dbPath := getEnvOrDefault("DATABASE_PATH", defaultDatabasePath)

	cachePath := getEnvOrDefault("ID_CACHE_PATH", defaultIDCachePath)

	analysisDir := getEnvOrDefault("ANALYSIS_DIR", defaultAnalysisDir)
	absAnalysisDir, err := filepath.Abs(analysisDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for analysis directory '%s': %w", analysisDir, err)
	}

	targetCount := getEnvIntOrDefault("TARGET_MOVIE_COUNT", defaultTargetMovieCount)
	numWorkers := getEnvIntOrDefault("NUM_FETCH_WORKERS", defaultNumFetchWorkers)
	pageDelayMs := getEnvIntOrDefault("PAGE_DELAY_MS", defaultPageDelayMs)
	httpTimeoutSecs := getEnvIntOrDefault("HTTP_TIMEOUT_SECONDS", defaultHTTPTimeoutSecs)

	cfg := Config{
		APIKey:           apiKey,
		DatabasePath:     dbPath,
		IDCachePath:      cachePath,
		AnalysisDir:      absAnalysisDir,
		TargetMovieCount: targetCount,
		NumFetchWorkers:  numWorkers,
		PageDelay:        time.Duration(pageDelayMs) * time.Millisecond,
		HTTPTimeout:      time.Duration(httpTimeoutSecs) * time.Second,
	}

	return cfg, nil
}
