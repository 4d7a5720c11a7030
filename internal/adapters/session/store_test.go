// internal/adapters/session/store_test.go
package session_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GGT-dev-tech/auctionos/internal/adapters/session"
	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
	"github.com/GGT-dev-tech/auctionos/test/helpers"
)

func newStore(t *testing.T) (*session.FileStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.json")
	store, err := session.NewFileStore(path, helpers.TestLogger())
	require.NoError(t, err)
	return store, path
}

// unsignedToken builds a JWT-shaped token with the given exp claim; the
// store never verifies signatures so a fake one is enough.
func unsignedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"exp": exp.Unix(), "sub": "u-1"})
	require.NoError(t, err)
	claims := base64.RawURLEncoding.EncodeToString(payload)
	return fmt.Sprintf("%s.%s.sig", header, claims)
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, path := newStore(t)

	assert.Equal(t, "", store.Token())
	_, err := store.Session()
	assert.ErrorIs(t, err, ports.ErrNotAuthenticated)

	sess := domain.Session{
		Token: "tok-abc",
		User:  &domain.User{ID: "u-1", Email: "admin@example.com"},
	}
	require.NoError(t, store.Save(sess))

	assert.Equal(t, "tok-abc", store.Token())

	// A fresh store must see the persisted file.
	reloaded, err := session.NewFileStore(path, helpers.TestLogger())
	require.NoError(t, err)
	got, err := reloaded.Session()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", got.Token)
	assert.Equal(t, "admin@example.com", got.User.Email)
}

func TestFileStore_Clear(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Save(domain.Session{Token: "tok"}))

	require.NoError(t, store.Clear())
	assert.Equal(t, "", store.Token())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Clearing an already-cleared store is fine.
	require.NoError(t, store.Clear())
}

func TestFileStore_Expiry(t *testing.T) {
	store, _ := newStore(t)

	exp := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	require.NoError(t, store.Save(domain.Session{Token: unsignedToken(t, exp)}))

	got, ok := store.Expiry()
	require.True(t, ok)
	assert.True(t, got.Equal(exp), "expected %s, got %s", exp, got)
}

func TestFileStore_ExpiryWithOpaqueToken(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Save(domain.Session{Token: "not-a-jwt"}))

	_, ok := store.Expiry()
	assert.False(t, ok)
}

func TestFileStore_CorruptFileTreatedAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	store, err := session.NewFileStore(path, helpers.TestLogger())
	require.NoError(t, err)

	assert.Equal(t, "", store.Token())
}
