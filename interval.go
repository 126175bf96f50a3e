// interval.go
// -----------
// Chunk-boundary arithmetic for time-interval batching.
//
// An interval [start, end) is cut into contiguous, non-overlapping chunks of
// at most chunkSize each; the end of chunk i equals the start of chunk i+1,
// and the union of all chunks reproduces the interval exactly. Adding the
// chunk size near the edge of the representable time range saturates instead
// of overflowing, so a call near the boundary still terminates.
package batchbridge

import (
	"fmt"
	"time"

	"github.com/batchgate/batch-bridge/internal"
)

// Chunk is one contiguous sub-interval of a batched call's time window,
// dispatched as one physical request. Start is inclusive, End exclusive.
type Chunk struct {
	Start time.Time
	End   time.Time
}

// ChunkInterval cuts [start, end) into chunks of at most chunkSize.
//
// start == end legitimately yields zero chunks. chunkSize >= end-start yields
// exactly one chunk equal to the interval. A non-positive chunkSize or a
// start after end is an *InvalidIntervalError.
func ChunkInterval(start, end time.Time, chunkSize time.Duration) ([]Chunk, error) {
	if chunkSize <= 0 {
		return nil, &InvalidIntervalError{
			Start:     start,
			End:       end,
			ChunkSize: chunkSize,
			Reason:    fmt.Sprintf("chunk size must be positive, got %v", chunkSize),
		}
	}
	if start.After(end) {
		return nil, &InvalidIntervalError{
			Start:     start,
			End:       end,
			ChunkSize: chunkSize,
			Reason:    fmt.Sprintf("start %s is after end %s", internal.FormatISO(start), internal.FormatISO(end)),
		}
	}

	var chunks []Chunk
	cur := start
	for cur.Before(end) {
		next := internal.SaturatingAdd(cur, chunkSize)
		if next.After(end) {
			next = end
		}
		chunks = append(chunks, Chunk{Start: cur, End: next})
		cur = next
	}
	return chunks, nil
}
