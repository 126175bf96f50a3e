package mock

import (
	"sync"
	"time"

	batchbridge "github.com/batchgate/batch-bridge"
)

// TokenEndpoint is a scripted batchbridge.TokenEndpoint. It counts fetches,
// can fail on demand, and can simulate a slow token service so concurrency
// tests get a wide race window.
type TokenEndpoint struct {
	Token *batchbridge.Token
	Err   error
	Delay time.Duration

	mu      sync.Mutex
	fetches int
}

func (e *TokenEndpoint) FetchToken() (*batchbridge.Token, error) {
	e.mu.Lock()
	e.fetches++
	e.mu.Unlock()

	if e.Delay > 0 {
		time.Sleep(e.Delay)
	}
	if e.Err != nil {
		return nil, e.Err
	}
	tok := *e.Token
	return &tok, nil
}

// Fetches returns how many times FetchToken was called.
func (e *TokenEndpoint) Fetches() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fetches
}
