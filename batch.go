// batch.go
// --------
// BatchingCombinator wraps an endpoint function whose logical inputs include
// a start time and an optional end time, and replaces a single call spanning
// [start, end) with one sequential call per chunk, returning the ordered
// per-chunk responses.
//
// Where the time window lives in a call is resolved by an explicit precedence
// policy over a closed set of sources, highest first:
//
//  1. the per-call request-options override for the configured placement
//     (the raw JSON body or raw query mapping) when the start or end key is
//     already present there;
//  2. the call's declared arguments when the start key is present there;
//  3. otherwise the call fails with *BatchingTargetNotFoundError.
//
// Chunk calls run strictly sequentially in ascending order on the calling
// goroutine; callers rely on in-order side effects. A failing chunk aborts
// the whole batched call and earlier chunk responses are discarded.
package batchbridge

import (
	"fmt"
	"time"

	"github.com/batchgate/batch-bridge/internal"
	"github.com/rs/zerolog"
)

// Placement names where a batched call's time values live in the outgoing
// request.
type Placement string

const (
	// PlacementBody rewrites the window inside the JSON request body.
	PlacementBody Placement = "body"
	// PlacementQuery rewrites the window inside the query parameters.
	PlacementQuery Placement = "query"
)

// EndpointFunc is the callable shape produced by Client endpoint builders and
// consumed by the combinator: one logical call in, one response out.
type EndpointFunc func(call *Call) (*Response, error)

// BatchedEndpointFunc is a batched endpoint: one logical call in, one
// response per chunk out, in chunk order.
type BatchedEndpointFunc func(call *Call) ([]*Response, error)

// BatchConfig configures a BatchingCombinator.
type BatchConfig struct {
	// StartParam and EndParam are the call's parameter names for the window.
	StartParam string
	EndParam   string
	// ChunkSize is the maximal chunk duration; must be strictly positive.
	ChunkSize time.Duration
	// Placement says where the time values live in the outgoing request.
	Placement Placement
}

// BatchingCombinator splits calls over a time window into per-chunk calls.
// Construct with NewBatchingCombinator; the configuration is immutable
// afterwards and the combinator is safe to share.
type BatchingCombinator struct {
	cfg    BatchConfig
	logger zerolog.Logger
	now    func() time.Time
}

// NewBatchingCombinator validates the configuration at decoration time: a
// zero or negative chunk size, a missing parameter name, or an unknown
// placement fails here, before any call is made.
func NewBatchingCombinator(cfg BatchConfig) (*BatchingCombinator, error) {
	if cfg.ChunkSize <= 0 {
		return nil, &InvalidIntervalError{
			ChunkSize: cfg.ChunkSize,
			Reason:    fmt.Sprintf("chunk size must be positive, got %v", cfg.ChunkSize),
		}
	}
	if cfg.StartParam == "" || cfg.EndParam == "" {
		return nil, fmt.Errorf("batch config needs both start and end parameter names")
	}
	switch cfg.Placement {
	case PlacementBody, PlacementQuery:
	default:
		return nil, fmt.Errorf("unsupported placement %q; expected %q or %q", cfg.Placement, PlacementBody, PlacementQuery)
	}
	return &BatchingCombinator{
		cfg:    cfg,
		logger: zerolog.Nop(),
		now:    time.Now,
	}, nil
}

// SetLogger attaches a logger for per-chunk debug events.
func (b *BatchingCombinator) SetLogger(logger zerolog.Logger) {
	b.logger = logger
}

// Wrap decorates an endpoint function with time-interval batching.
//
// The returned function resolves the call's window (an absent end pins to
// "now" once, at call start), validates it, computes chunk boundaries, and
// invokes fn once per chunk with the window arguments rewritten to the
// chunk's ISO-8601 boundaries, every other argument preserved. start == end
// yields zero calls and an empty result.
func (b *BatchingCombinator) Wrap(fn EndpointFunc) BatchedEndpointFunc {
	return func(call *Call) ([]*Response, error) {
		if call == nil {
			call = &Call{}
		}

		start, end, err := b.extractWindow(call)
		if err != nil {
			return nil, err
		}
		if end.IsZero() {
			end = b.now().UTC()
		}

		chunks, err := ChunkInterval(start, end, b.cfg.ChunkSize)
		if err != nil {
			return nil, err
		}
		if len(chunks) == 1 {
			b.logger.Debug().Msg("chunk size covers the entire requested interval")
		}

		responses := make([]*Response, 0, len(chunks))
		for i, chunk := range chunks {
			chunkCall := call.Clone()
			if err := b.rewriteWindow(chunkCall, chunk); err != nil {
				return nil, err
			}
			b.logger.Debug().
				Int("chunk", i).
				Str("start", internal.FormatISO(chunk.Start)).
				Str("end", internal.FormatISO(chunk.End)).
				Msg("dispatching chunk")
			resp, err := fn(chunkCall)
			if err != nil {
				return nil, err
			}
			responses = append(responses, resp)
		}
		return responses, nil
	}
}

// extractWindow resolves the call's start and end values. Per key, the
// request-options override wins over the declared argument. A missing start
// is a *BatchingTargetNotFoundError; a missing end stays zero for the caller
// to pin.
func (b *BatchingCombinator) extractWindow(call *Call) (time.Time, time.Time, error) {
	startVal := b.lookup(call, b.cfg.StartParam)
	endVal := b.lookup(call, b.cfg.EndParam)

	if startVal == nil {
		return time.Time{}, time.Time{}, &BatchingTargetNotFoundError{
			Param:     b.cfg.StartParam,
			Placement: b.cfg.Placement,
		}
	}
	start, err := internal.ParseISO(startVal)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("batch start %q: %w", b.cfg.StartParam, err)
	}

	var end time.Time
	if endVal != nil {
		end, err = internal.ParseISO(endVal)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("batch end %q: %w", b.cfg.EndParam, err)
		}
	}
	return start, end, nil
}

// lookup reads one window parameter, override source first.
func (b *BatchingCombinator) lookup(call *Call, param string) interface{} {
	switch b.cfg.Placement {
	case PlacementQuery:
		if call.Options != nil {
			if v, ok := call.Options.Query[param]; ok {
				return v
			}
		}
	case PlacementBody:
		if call.Options != nil {
			if v, ok := call.Options.JSON[param]; ok {
				return v
			}
		}
	}
	if v, ok := call.Args[param]; ok {
		return v
	}
	return nil
}

// rewriteWindow writes the chunk boundaries into the call, following the
// precedence policy. The call is the chunk's private clone, so writes never
// reach the original.
func (b *BatchingCombinator) rewriteWindow(call *Call, chunk Chunk) error {
	startISO := internal.FormatISO(chunk.Start)
	endISO := internal.FormatISO(chunk.End)

	switch b.cfg.Placement {
	case PlacementQuery:
		if call.Options != nil && call.Options.Query != nil {
			q := call.Options.Query
			_, hasStart := q[b.cfg.StartParam]
			_, hasEnd := q[b.cfg.EndParam]
			if hasStart || hasEnd {
				q[b.cfg.StartParam] = startISO
				q[b.cfg.EndParam] = endISO
				return nil
			}
		}
	case PlacementBody:
		if call.Options != nil && call.Options.JSON != nil {
			body := call.Options.JSON
			_, hasStart := body[b.cfg.StartParam]
			_, hasEnd := body[b.cfg.EndParam]
			if hasStart || hasEnd {
				body[b.cfg.StartParam] = startISO
				body[b.cfg.EndParam] = endISO
				return nil
			}
		}
	}

	if _, ok := call.Args[b.cfg.StartParam]; ok {
		call.Args[b.cfg.StartParam] = startISO
		call.Args[b.cfg.EndParam] = endISO
		return nil
	}

	return &BatchingTargetNotFoundError{
		Param:     b.cfg.StartParam,
		Placement: b.cfg.Placement,
	}
}
