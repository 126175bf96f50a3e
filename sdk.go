// sdk.go
// ------
// The sdk.go file contains the core Client struct and its methods. This is
// the main entry point of the toolkit for users.
//
// Key functionalities include:
// - Building a client with NewClient() around a base URL
// - Declaring endpoint functions once with Get()/Post()/Endpoint()
// - Running every outgoing call through the middleware pipeline
// - Handing final request parameters to the Dispatcher
//
// The Client composes a MiddlewarePipeline and a Dispatcher so that endpoint
// functions stay declarative: cross-cutting behavior (auth headers, request
// mutation, time-interval batching via BatchingCombinator) is layered on
// without each endpoint reimplementing it.
package batchbridge

import (
	"net/http"
	"time"

	"github.com/batchgate/batch-bridge/internal"
	"github.com/rs/zerolog"
)

// Client builds and dispatches requests against one API base URL. The
// middleware list and configuration are immutable after construction and the
// client may be shared read-only across goroutines; the only mutable shared
// state lives inside individual middleware (the auth token cache), which
// guard it themselves.
type Client struct {
	baseURL    string
	pipeline   *MiddlewarePipeline
	dispatcher Dispatcher
	logger     zerolog.Logger
}

// ClientOption customizes a Client at construction.
type ClientOption func(*Client)

// WithMiddleware sets the middleware applied, in order, before every
// dispatch.
func WithMiddleware(middlewares ...Middleware) ClientOption {
	return func(c *Client) {
		c.pipeline = NewMiddlewarePipeline(middlewares...)
	}
}

// WithDispatcher replaces the default HTTP dispatcher.
func WithDispatcher(d Dispatcher) ClientOption {
	return func(c *Client) {
		c.dispatcher = d
	}
}

// WithLogger attaches a logger for debug events.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient builds a client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  baseURL,
		pipeline: NewMiddlewarePipeline(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dispatcher == nil {
		c.dispatcher = NewHTTPDispatcher()
	}
	return c
}

// BaseURL returns the client's base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Get declares a GET endpoint at path. Declared call arguments become query
// parameters; fixed options may be nil.
func (c *Client) Get(path string, fixed *RequestOptions) EndpointFunc {
	return c.Endpoint(NewRequestDescriptor(http.MethodGet, c.baseURL, path, fixed))
}

// Post declares a POST endpoint at path. Declared call arguments become the
// JSON body; fixed options may be nil.
func (c *Client) Post(path string, fixed *RequestOptions) EndpointFunc {
	return c.Endpoint(NewRequestDescriptor(http.MethodPost, c.baseURL, path, fixed))
}

// Endpoint turns a descriptor into a callable endpoint function. Each
// invocation expands the path template, assembles request parameters from
// declared arguments, descriptor options, and per-call options (in ascending
// precedence), runs the middleware pipeline, and dispatches.
func (c *Client) Endpoint(desc RequestDescriptor) EndpointFunc {
	return func(call *Call) (*Response, error) {
		if call == nil {
			call = &Call{}
		}

		url, err := desc.Expand(call.PathVars)
		if err != nil {
			return nil, err
		}

		params := NewRequestParams(desc.Method, url)
		applyArgs(params, desc.Method, call.Args)
		params.ApplyOptions(desc.Options)
		params.ApplyOptions(call.Options)

		final, err := c.pipeline.Apply(params)
		if err != nil {
			return nil, err
		}

		c.logger.Debug().
			Str("method", final.Method()).
			Str("url", final.URL()).
			Msg("dispatching request")
		return c.dispatcher.Send(final)
	}
}

// applyArgs folds declared arguments into the params: body keys for
// body-carrying methods, query parameters otherwise.
func applyArgs(params RequestParams, method string, args map[string]interface{}) {
	if len(args) == 0 {
		return
	}
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		body := params.JSONBody()
		for k, v := range args {
			body[k] = v
		}
	default:
		query := params.Query()
		for k, v := range args {
			query[k] = queryValue(v)
		}
	}
}

// queryValue renders one declared argument as a query-string value.
func queryValue(v interface{}) string {
	switch tv := v.(type) {
	case string:
		return tv
	case time.Time:
		return internal.FormatISO(tv)
	default:
		return stringify(tv)
	}
}
