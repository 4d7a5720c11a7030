// internal/adapters/storage/source_test.go
package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GGT-dev-tech/auctionos/internal/adapters/storage"
	"github.com/GGT-dev-tech/auctionos/test/helpers"
)

func TestLocalSource_StageFetchArchive(t *testing.T) {
	base := t.TempDir()
	src, err := storage.NewLocalSource(base, helpers.TestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	source, err := src.Stage(ctx, "parcels.csv", strings.NewReader("parcel_id\n123\n"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(source, filepath.Join(base, "staging")))

	path, err := src.FetchToTemp(ctx, source)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "parcel_id\n123\n", string(data))

	require.NoError(t, src.Archive(ctx, source))
	_, err = os.Stat(source)
	assert.True(t, os.IsNotExist(err), "staged file moves out of staging")
	_, err = os.Stat(filepath.Dir(source))
	assert.True(t, os.IsNotExist(err), "emptied per-job staging dir is removed")
	_, err = os.Stat(filepath.Join(base, "archive", "parcels.csv"))
	assert.NoError(t, err)
}

func TestLocalSource_FetchMissingFile(t *testing.T) {
	src, err := storage.NewLocalSource(t.TempDir(), helpers.TestLogger())
	require.NoError(t, err)

	_, err = src.FetchToTemp(context.Background(), "/nonexistent/file.csv")
	assert.Error(t, err)
}
