// internal/core/ports/progress.go
package ports

import (
	"context"
	"errors"
	"time"
)

// ErrJobNotFound is returned when a progress record has expired or was
// never written.
var ErrJobNotFound = errors.New("import job not found")

// JobState tracks an import job through its lifecycle.
type JobState string

const (
	JobQueued    JobState = "queued"
	JobRunning   JobState = "running"
	JobCompleted JobState = "completed"
	JobFailed    JobState = "failed"
)

// ImportProgress is the per-job counters surfaced to the admin UI while
// a CSV/XLSX/PDF import runs.
type ImportProgress struct {
	JobID     string    `json:"job_id"`
	State     JobState  `json:"state"`
	Source    string    `json:"source"`
	Total     int64     `json:"total"`
	Imported  int64     `json:"imported"`
	Failed    int64     `json:"failed"`
	Error     string    `json:"error,omitempty"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgressStore records import-job progress so the CLI can poll it
// while the worker runs.
type ProgressStore interface {
	Put(ctx context.Context, p ImportProgress) error
	Get(ctx context.Context, jobID string) (*ImportProgress, error)
	AddImported(ctx context.Context, jobID string, n int64) error
	AddFailed(ctx context.Context, jobID string, n int64) error
	SetState(ctx context.Context, jobID string, state JobState, errMsg string) error
}
