package models

// PipelineRun records the summary of one dispatcher pass: how many movies were
// processed, how many failed, and how long the pass took.
type PipelineRun struct {
	ID          string `gorm:"primaryKey" json:"id"` // UUID, generated at submission time
	StartedAt   int64  `gorm:"not null" json:"started_at"`
	FinishedAt  *int64 `gorm:"" json:"finished_at,omitempty"`
	TargetCount int    `gorm:"not null" json:"target_count"`
	NumWorkers  int    `gorm:"not null" json:"num_workers"`

	Processed      int      `gorm:"not null;default:0" json:"processed"`
	Failed         int      `gorm:"not null;default:0" json:"failed"`
	ElapsedSeconds *float64 `gorm:"" json:"elapsed_seconds,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (PipelineRun) TableName() string {
	return "pipeline_runs"
}
