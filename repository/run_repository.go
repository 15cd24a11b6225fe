package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/camden-git/movieetlbackend/models"
)

// RunRepository handles database operations for pipeline run summaries
type RunRepository struct {
	DB *gorm.DB
}

// NewRunRepository creates a new instance of RunRepository
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{DB: db}
}

// Create inserts a new pipeline run record
func (r *RunRepository) Create(run *models.PipelineRun) error {
	if err := r.DB.Create(run).Error; err != nil {
		return fmt.Errorf("failed to create pipeline run %s: %w", run.ID, err)
	}
	return nil
}

// Finish records the outcome of a pipeline run
func (r *RunRepository) Finish(id string, processed, failed int, elapsedSeconds float64) error {
	now := time.Now().Unix()
	updates := map[string]interface{}{
		"processed":       processed,
		"failed":          failed,
		"elapsed_seconds": elapsedSeconds,
		"finished_at":     now,
	}

	result := r.DB.Model(&models.PipelineRun{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to finish pipeline run %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Latest retrieves the most recently started pipeline run, if any
func (r *RunRepository) Latest() (*models.PipelineRun, error) {
	var run models.PipelineRun
	err := r.DB.Order("started_at DESC").First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get latest pipeline run: %w", err)
	}
	return &run, nil
}
