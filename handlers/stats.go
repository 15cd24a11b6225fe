package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/camden-git/movieetlbackend/analysis"
	"github.com/camden-git/movieetlbackend/repository"
)

type StatsHandler struct {
	Repo repository.MovieRepositoryInterface
	Runs repository.RunRepositoryInterface
}

// GetStats serves row counts per table and the latest pipeline run summary
func (sh *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	counts, err := sh.Repo.TableCounts()
	if err != nil {
		log.Printf("Error counting tables: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve stats"})
		return
	}

	resp := map[string]interface{}{"counts": counts}

	latest, err := sh.Runs.Latest()
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error fetching latest pipeline run: %v", err)
		}
	} else {
		resp["latest_run"] = latest
	}

	writeJSON(w, http.StatusOK, resp)
}

type AnalysisHandler struct {
	Analyzer *analysis.Analyzer
}

// ListAnalyses serves the names of the available analyses
func (ah *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"analyses": analysis.Names()})
}

// GetAnalysis runs one named analysis and serves its tabular result
func (ah *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	known := false
	for _, n := range analysis.Names() {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Unknown analysis"})
		return
	}

	result, err := ah.Analyzer.ByName(name)
	if err != nil {
		log.Printf("Error running %s analysis: %v", name, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to run analysis"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}
