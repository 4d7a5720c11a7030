// internal/core/ports/session.go
package ports

import (
	"errors"
	"time"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
)

// ErrNotAuthenticated is returned when an operation needs a session and
// none is stored.
var ErrNotAuthenticated = errors.New("not authenticated")

// SessionStore persists the client session across process runs. The
// store is single-writer: only the auth flow calls Save and Clear;
// every API call reads Token.
type SessionStore interface {
	// Token returns the stored bearer token, or "" when logged out.
	Token() string
	// Session returns the full stored session or ErrNotAuthenticated.
	Session() (*domain.Session, error)
	// Expiry reports the token expiry claim when one is present.
	Expiry() (time.Time, bool)
	Save(session domain.Session) error
	Clear() error
}
