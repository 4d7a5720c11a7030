// internal/adapters/redis_adapter/progress_test.go
package redis_a_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/GGT-dev-tech/auctionos/internal/adapters/redis_adapter"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
	"github.com/GGT-dev-tech/auctionos/test/helpers"
)

func newTestStore(t *testing.T) *redis_a.ProgressStore {
	t.Helper()
	tr := helpers.SetupTestRedis(t)
	return redis_a.NewProgressStore(tr.Client, time.Hour, helpers.TestLogger())
}

func TestProgressStore_PutAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	started := time.Now().UTC().Truncate(time.Second)
	err := store.Put(ctx, ports.ImportProgress{
		JobID:     "job-1",
		State:     ports.JobQueued,
		Source:    "parcels.csv",
		Total:     120,
		StartedAt: started,
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", got.JobID)
	assert.Equal(t, ports.JobQueued, got.State)
	assert.Equal(t, "parcels.csv", got.Source)
	assert.Equal(t, int64(120), got.Total)
	assert.Zero(t, got.Imported)
	assert.True(t, got.StartedAt.Equal(started))
}

func TestProgressStore_GetUnknownJob(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ports.ErrJobNotFound)
}

func TestProgressStore_Counters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, ports.ImportProgress{
		JobID: "job-2",
		State: ports.JobRunning,
		Total: 10,
	}))

	require.NoError(t, store.AddImported(ctx, "job-2", 3))
	require.NoError(t, store.AddImported(ctx, "job-2", 4))
	require.NoError(t, store.AddFailed(ctx, "job-2", 1))

	got, err := store.Get(ctx, "job-2")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Imported)
	assert.Equal(t, int64(1), got.Failed)
}

func TestProgressStore_SetState(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, ports.ImportProgress{
		JobID: "job-3",
		State: ports.JobRunning,
	}))
	require.NoError(t, store.SetState(ctx, "job-3", ports.JobFailed, "source file unreadable"))

	got, err := store.Get(ctx, "job-3")
	require.NoError(t, err)
	assert.Equal(t, ports.JobFailed, got.State)
	assert.Equal(t, "source file unreadable", got.Error)
}
