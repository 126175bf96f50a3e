package mock

import (
	"sync"

	batchbridge "github.com/batchgate/batch-bridge"
)

// Dispatcher is a scripted batchbridge.Dispatcher for tests and examples. It
// records every request it receives and answers with Handler when set, Err
// when set, or a canned 200 otherwise.
type Dispatcher struct {
	Handler func(params batchbridge.RequestParams) (*batchbridge.Response, error)
	Err     error

	mu       sync.Mutex
	requests []batchbridge.RequestParams
}

func (d *Dispatcher) Send(params batchbridge.RequestParams) (*batchbridge.Response, error) {
	d.mu.Lock()
	d.requests = append(d.requests, params.Clone())
	d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}
	if d.Handler != nil {
		return d.Handler(params)
	}
	return &batchbridge.Response{
		StatusCode: 200,
		Headers:    map[string]string{},
		Data:       []byte(`{"success":true}`),
	}, nil
}

// Requests returns the recorded requests in arrival order.
func (d *Dispatcher) Requests() []batchbridge.RequestParams {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]batchbridge.RequestParams, len(d.requests))
	copy(out, d.requests)
	return out
}
