// internal/adapters/redis/progress.go
package redis_a

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
)

const progressKeyPrefix = "import:job"

// ProgressStore keeps import-job counters in Redis hashes so the worker
// and the CLI can share job state across processes. Records expire
// after the configured TTL; a missing record means the job is unknown
// or already aged out.
type ProgressStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Statically assert that *ProgressStore implements the ProgressStore port.
var _ ports.ProgressStore = (*ProgressStore)(nil)

// NewProgressStore creates a progress store. ttl bounds how long
// finished jobs remain queryable.
func NewProgressStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ProgressStore {
	return &ProgressStore{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

func progressKey(jobID string) string {
	return fmt.Sprintf("%s:%s", progressKeyPrefix, jobID)
}

// Put writes the full progress record, replacing any previous state for
// the job.
func (s *ProgressStore) Put(ctx context.Context, p ports.ImportProgress) error {
	key := progressKey(p.JobID)

	fields := map[string]interface{}{
		"state":      string(p.State),
		"source":     p.Source,
		"total":      p.Total,
		"imported":   p.Imported,
		"failed":     p.Failed,
		"error":      p.Error,
		"started_at": p.StartedAt.UTC().Format(time.RFC3339Nano),
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hset error for job %s: %w", p.JobID, err)
	}

	s.logger.DebugContext(ctx, "progress record written",
		slog.String("job_id", p.JobID),
		slog.String("state", string(p.State)),
		slog.Int64("total", p.Total))
	return nil
}

// Get reads the progress record for a job.
func (s *ProgressStore) Get(ctx context.Context, jobID string) (*ports.ImportProgress, error) {
	fields, err := s.client.HGetAll(ctx, progressKey(jobID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall error for job %s: %w", jobID, err)
	}
	if len(fields) == 0 {
		return nil, ports.ErrJobNotFound
	}

	p := &ports.ImportProgress{
		JobID:    jobID,
		State:    ports.JobState(fields["state"]),
		Source:   fields["source"],
		Total:    parseInt64(fields["total"]),
		Imported: parseInt64(fields["imported"]),
		Failed:   parseInt64(fields["failed"]),
		Error:    fields["error"],
	}
	p.StartedAt, _ = time.Parse(time.RFC3339Nano, fields["started_at"])
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, fields["updated_at"])
	return p, nil
}

// AddImported increments the imported counter.
func (s *ProgressStore) AddImported(ctx context.Context, jobID string, n int64) error {
	return s.incr(ctx, jobID, "imported", n)
}

// AddFailed increments the failed counter.
func (s *ProgressStore) AddFailed(ctx context.Context, jobID string, n int64) error {
	return s.incr(ctx, jobID, "failed", n)
}

func (s *ProgressStore) incr(ctx context.Context, jobID, field string, n int64) error {
	key := progressKey(jobID)

	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, key, field, n)
	pipe.HSet(ctx, key, "updated_at", time.Now().UTC().Format(time.RFC3339Nano))
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hincrby error for job %s: %w", jobID, err)
	}
	return nil
}

// SetState moves the job to a new lifecycle state, recording the error
// message for failed jobs.
func (s *ProgressStore) SetState(ctx context.Context, jobID string, state ports.JobState, errMsg string) error {
	key := progressKey(jobID)

	fields := map[string]interface{}{
		"state":      string(state),
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if errMsg != "" {
		fields["error"] = errMsg
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hset error for job %s: %w", jobID, err)
	}

	s.logger.DebugContext(ctx, "progress state changed",
		slog.String("job_id", jobID),
		slog.String("state", string(state)))
	return nil
}

// Ping checks if Redis is accessible.
func (s *ProgressStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping error: %w", err)
	}
	return nil
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
