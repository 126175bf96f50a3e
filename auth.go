// auth.go
// -------
// AuthTokenMiddleware guarantees every outgoing request carries a currently
// valid bearer token, refreshing it at most once per expiry under mutual
// exclusion.
//
// The cached token is the only mutable shared state in the toolkit. A single
// mutex per middleware instance guards the full check-refresh-publish
// sequence: the validity check, the fetch, the cache replacement, and the
// optional write-through to the token store all happen while the lock is
// held. Concurrent callers arriving with an expired or absent token therefore
// observe exactly one FetchToken call and all read the same refreshed token.
// The lock is held across the fetch's network I/O; refreshes are rare
// relative to request volume, so that trade is acceptable.
package batchbridge

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// AuthTokenMiddleware injects "Authorization: Bearer <token>" into every
// request it processes, refreshing the token through its TokenEndpoint when
// the cached one is absent or expired.
type AuthTokenMiddleware struct {
	endpoint TokenEndpoint
	store    TokenStore // optional; nil disables persistence
	logger   zerolog.Logger
	now      func() time.Time

	mu    sync.Mutex
	token *Token
}

// NewAuthTokenMiddleware builds the middleware around a token endpoint. If
// store is non-nil the cache is seeded from it (a missing stored token is
// fine) and every refreshed token is written through.
func NewAuthTokenMiddleware(endpoint TokenEndpoint, store TokenStore) (*AuthTokenMiddleware, error) {
	m := &AuthTokenMiddleware{
		endpoint: endpoint,
		store:    store,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	if store != nil {
		tok, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("loading persisted token: %w", err)
		}
		m.token = tok
	}
	return m, nil
}

// SetLogger attaches a logger for debug events (refreshes, injections).
func (m *AuthTokenMiddleware) SetLogger(logger zerolog.Logger) {
	m.logger = logger
}

// ProcessRequest ensures a valid token and injects the Authorization header.
// On refresh failure the error is an *AuthRefreshError and the cached token
// is left unchanged, so a subsequent call may retry.
func (m *AuthTokenMiddleware) ProcessRequest(params RequestParams) (RequestParams, error) {
	value, err := m.currentTokenValue()
	if err != nil {
		return nil, err
	}

	m.logger.Debug().Msg("adding auth token to request header")
	out := params.Clone()
	out.Headers()["Authorization"] = "Bearer " + value
	return out, nil
}

// currentTokenValue returns a valid token value, refreshing first if needed.
// The whole check-refresh-publish sequence runs under the instance lock.
func (m *AuthTokenMiddleware) currentTokenValue() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == nil || !m.token.ValidAt(m.now()) {
		m.logger.Debug().Msg("requesting a fresh auth token")
		tok, err := m.endpoint.FetchToken()
		if err != nil {
			return "", &AuthRefreshError{Err: err}
		}
		m.token = tok
		if m.store != nil {
			if err := m.store.Save(tok); err != nil {
				m.logger.Warn().Err(err).Msg("persisting refreshed token failed")
			}
		}
	}
	return m.token.Value, nil
}
