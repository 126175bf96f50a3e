// errors.go
// ---------
// Typed errors for the orchestration layer. Everything here surfaces to the
// caller unchanged; nothing in the toolkit swallows or retries. Transport and
// token-endpoint failures pass through as whatever error those collaborators
// produced, wrapped where extra context helps diagnostics.
package batchbridge

import (
	"fmt"
	"time"
)

// InvalidIntervalError reports a batching window whose start is after its
// end, or a non-positive chunk size. It is raised before any network
// activity.
type InvalidIntervalError struct {
	Start     time.Time
	End       time.Time
	ChunkSize time.Duration
	Reason    string
}

func (e *InvalidIntervalError) Error() string {
	return "invalid interval: " + e.Reason
}

// BatchingTargetNotFoundError reports that the batching combinator could not
// locate the time-window parameters: either no source held a start value, or
// no declared parameter nor request-options override offered a place to put
// the rewritten window.
type BatchingTargetNotFoundError struct {
	Param     string
	Placement Placement
}

func (e *BatchingTargetNotFoundError) Error() string {
	return fmt.Sprintf("no place for batching parameter %q: expected it under the call's %s options or declared arguments", e.Param, e.Placement)
}

// AuthRefreshError reports a failed token refresh. The middleware's cached
// token is left unchanged, so a later call may retry the refresh.
type AuthRefreshError struct {
	Err error
}

func (e *AuthRefreshError) Error() string {
	return fmt.Sprintf("auth token refresh failed: %v", e.Err)
}

func (e *AuthRefreshError) Unwrap() error { return e.Err }

// HTTPStatusError reports a non-2xx response from the transport. The body is
// kept for diagnostics.
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	body := e.Body
	if len(body) > 256 {
		body = body[:256]
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, body)
}
