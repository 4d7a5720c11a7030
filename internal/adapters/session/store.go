// internal/adapters/session/store.go
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
)

// FileStore persists the session as a JSON file, the CLI equivalent of
// the browser's local storage. Reads are served from memory after the
// first load; only the auth flow writes.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	session *domain.Session
	loaded  bool
}

// Statically assert that *FileStore implements the SessionStore port.
var _ ports.SessionStore = (*FileStore)(nil)

// NewFileStore creates a session store at path. An empty path places
// the file under the user config directory.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "auctionos", "session.json")
	}

	return &FileStore{
		path:   path,
		logger: logger.With(slog.String("component", "session")),
	}, nil
}

// Token returns the stored bearer token, or "" when logged out.
func (s *FileStore) Token() string {
	sess, err := s.Session()
	if err != nil {
		return ""
	}
	return sess.Token
}

// Session returns the stored session, loading it from disk on first use.
func (s *FileStore) Session() (*domain.Session, error) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		if s.session == nil {
			return nil, ports.ErrNotAuthenticated
		}
		return s.session, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.session = s.readFile()
		s.loaded = true
	}
	if s.session == nil {
		return nil, ports.ErrNotAuthenticated
	}
	return s.session, nil
}

// Expiry parses the token's exp claim without verifying the signature;
// the client only needs to know whether a login prompt is due, the
// backend remains the authority on validity.
func (s *FileStore) Expiry() (time.Time, bool) {
	sess, err := s.Session()
	if err != nil || sess.Token == "" {
		return time.Time{}, false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(sess.Token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Save writes the session to disk. The file is user-only: it holds a
// bearer token.
func (s *FileStore) Save(session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	s.session = &session
	s.loaded = true

	s.logger.Info("session saved", slog.String("path", s.path))
	return nil
}

// Clear removes the persisted session; logging out twice is not an
// error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}

	s.session = nil
	s.loaded = true

	s.logger.Info("session cleared")
	return nil
}

func (s *FileStore) readFile() *domain.Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read session file",
				slog.String("path", s.path),
				slog.String("error", err.Error()))
		}
		return nil
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("corrupt session file, ignoring",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return nil
	}
	if sess.Token == "" {
		return nil
	}
	return &sess
}
