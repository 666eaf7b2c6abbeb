// Package credentials is the console's credential store: the one place that
// keeps the session token and the cached user record between runs.
//
// Every other package gets a Store injected; none of them touches the
// underlying storage. The token carries no expiry; the store learns that a
// token is dead only when the gateway clears it after a 401.
package credentials

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
)

// ErrNoCredentials is returned by Get when no token is stored.
var ErrNoCredentials = errors.New("no stored credentials")

// Credentials is what a successful sign-in leaves behind. User is nil when
// only a token is present.
type Credentials struct {
	Token string
	User  *models.User
}

// Store persists the session token and the cached user record.
//
// Contract:
//   - Set replaces both values atomically.
//   - Get returns ErrNoCredentials when the token is absent or empty.
//   - Clear removes both values and is idempotent.
//
// Implementations must be safe for concurrent use.
type Store interface {
	Set(ctx context.Context, token string, user models.User) error
	Get(ctx context.Context) (Credentials, error)
	Clear(ctx context.Context) error
}
