// internal/workers/import_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"github.com/GGT-dev-tech/auctionos/internal/adapters/storage"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
	"github.com/GGT-dev-tech/auctionos/internal/core/services"
)

const (
	TypeCSVImport        = "import:csv"
	TypeXLSXImport       = "import:xlsx"
	TypePDFImport        = "import:pdf"
	TypeCleanupTempFiles = "cleanup:temp_files"
)

// ImportJobPayload represents the payload for property import jobs.
// State, County, and the auction fields seed every row extracted from a
// PDF auction list, which carries no per-row location columns.
type ImportJobPayload struct {
	JobID       string `json:"job_id"`
	Source      string `json:"source"`
	FileName    string `json:"file_name"`
	UserID      string `json:"user_id,omitempty"`
	State       string `json:"state,omitempty"`
	County      string `json:"county,omitempty"`
	AuctionName string `json:"auction_name,omitempty"`
	AuctionDate string `json:"auction_date,omitempty"`
}

// NewImportTask builds an asynq task for a staged import source. The
// task type follows the file extension.
func NewImportTask(payload ImportJobPayload) (*asynq.Task, error) {
	var taskType string
	switch {
	case strings.HasSuffix(strings.ToLower(payload.FileName), ".csv"):
		taskType = TypeCSVImport
	case strings.HasSuffix(strings.ToLower(payload.FileName), ".xlsx"):
		taskType = TypeXLSXImport
	case strings.HasSuffix(strings.ToLower(payload.FileName), ".pdf"):
		taskType = TypePDFImport
	default:
		return nil, fmt.Errorf("unsupported import file type: %s", payload.FileName)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal import payload: %w", err)
	}
	return asynq.NewTask(taskType, data), nil
}

// ImportProcessor handles property import tasks
type ImportProcessor struct {
	importer *services.Importer
	sources  storage.SourceStore
	progress ports.ProgressStore
	logger   *slog.Logger
}

// NewImportProcessor creates a new import processor
func NewImportProcessor(importer *services.Importer, sources storage.SourceStore, progress ports.ProgressStore, logger *slog.Logger) *ImportProcessor {
	return &ImportProcessor{
		importer: importer,
		sources:  sources,
		progress: progress,
		logger:   logger.With(slog.String("processor", "import")),
	}
}

// ProcessCSV imports a staged CSV file of properties.
func (p *ImportProcessor) ProcessCSV(ctx context.Context, t *asynq.Task) error {
	return p.process(ctx, t, func(_ ImportJobPayload, filePath string) (*services.ParseResult, error) {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		return services.ParseCSV(f)
	})
}

// ProcessXLSX imports a staged Excel workbook of properties.
func (p *ImportProcessor) ProcessXLSX(ctx context.Context, t *asynq.Task) error {
	return p.process(ctx, t, func(_ ImportJobPayload, filePath string) (*services.ParseResult, error) {
		return services.ParseXLSX(filePath)
	})
}

func (p *ImportProcessor) process(ctx context.Context, t *asynq.Task, parse func(payload ImportJobPayload, filePath string) (*services.ParseResult, error)) error {
	start := time.Now()

	var payload ImportJobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	p.logger.InfoContext(ctx, "processing property import",
		slog.String("job_id", payload.JobID),
		slog.String("source", payload.Source))

	filePath, err := p.sources.FetchToTemp(ctx, payload.Source)
	if err != nil {
		return p.failJob(ctx, payload.JobID, err)
	}
	defer p.removeTemp(ctx, filePath, payload.Source)

	parsed, err := parse(payload, filePath)
	if err != nil {
		return p.failJob(ctx, payload.JobID, err)
	}

	if err := p.recordTotal(ctx, payload, int64(len(parsed.Drafts)+len(parsed.Skipped))); err != nil {
		return err
	}

	if err := p.importer.Run(ctx, payload.JobID, parsed); err != nil {
		return err
	}

	if err := p.sources.Archive(ctx, payload.Source); err != nil {
		p.logger.WarnContext(ctx, "failed to archive import source",
			slog.String("source", payload.Source),
			slog.Any("error", err))
	}

	p.logger.InfoContext(ctx, "property import completed",
		slog.String("job_id", payload.JobID),
		slog.Int("rows", len(parsed.Drafts)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

func (p *ImportProcessor) recordTotal(ctx context.Context, payload ImportJobPayload, total int64) error {
	record, err := p.progress.Get(ctx, payload.JobID)
	if err != nil {
		record = &ports.ImportProgress{
			JobID:     payload.JobID,
			Source:    payload.FileName,
			StartedAt: time.Now().UTC(),
		}
	}
	record.State = ports.JobRunning
	record.Total = total
	if err := p.progress.Put(ctx, *record); err != nil {
		return fmt.Errorf("failed to record job total: %w", err)
	}
	return nil
}

func (p *ImportProcessor) failJob(ctx context.Context, jobID string, cause error) error {
	if err := p.progress.SetState(ctx, jobID, ports.JobFailed, cause.Error()); err != nil {
		p.logger.ErrorContext(ctx, "failed to mark job failed",
			slog.String("job_id", jobID),
			slog.Any("error", err))
	}
	return cause
}

func (p *ImportProcessor) removeTemp(ctx context.Context, filePath, source string) {
	// Local sources are processed in place; only downloaded copies go.
	if filePath == source {
		return
	}
	if strings.HasPrefix(filePath, os.TempDir()) {
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			p.logger.WarnContext(ctx, "failed to remove temp file",
				slog.String("file", filePath),
				slog.Any("error", err))
		}
	}
}
