// request_response.go
// -------------------
// Request and response shapes shared by the whole toolkit.
//
// RequestParams is the open mapping passed between pipeline stages: an
// ordinary map with free-form string keys, of which a handful are reserved
// for request construction ("method", "url", "headers", "query", "json").
// Middleware may add, overwrite, or ignore any key. Typed accessors below
// cover the reserved keys so callers never spell them out.
//
// Response is the normalized HTTP response handed back by a Dispatcher.
package batchbridge

import "maps"

// Reserved RequestParams keys.
const (
	KeyMethod  = "method"
	KeyURL     = "url"
	KeyHeaders = "headers"
	KeyQuery   = "query"
	KeyJSON    = "json"
)

// RequestParams is an open mapping of request-construction fields passed
// between pipeline stages. The reserved keys hold:
//
//	method  string
//	url     string
//	headers map[string]string (nested mapping, per-header)
//	query   map[string]string (query-string parameters)
//	json    map[string]interface{} (JSON request body)
//
// Everything else is free-form and flows through untouched.
type RequestParams map[string]interface{}

// NewRequestParams returns params seeded with a method and URL.
func NewRequestParams(method, url string) RequestParams {
	return RequestParams{
		KeyMethod: method,
		KeyURL:    url,
	}
}

// Method returns the HTTP method, or "" if unset.
func (p RequestParams) Method() string {
	s, _ := p[KeyMethod].(string)
	return s
}

// URL returns the request URL, or "" if unset.
func (p RequestParams) URL() string {
	s, _ := p[KeyURL].(string)
	return s
}

// Headers returns the nested header mapping, creating it if absent. The
// returned map is live: writes are visible to later stages.
func (p RequestParams) Headers() map[string]string {
	if h, ok := p[KeyHeaders].(map[string]string); ok {
		return h
	}
	h := make(map[string]string)
	p[KeyHeaders] = h
	return h
}

// Query returns the query-parameter mapping, creating it if absent.
func (p RequestParams) Query() map[string]string {
	if q, ok := p[KeyQuery].(map[string]string); ok {
		return q
	}
	q := make(map[string]string)
	p[KeyQuery] = q
	return q
}

// JSONBody returns the JSON body mapping, creating it if absent.
func (p RequestParams) JSONBody() map[string]interface{} {
	if b, ok := p[KeyJSON].(map[string]interface{}); ok {
		return b
	}
	b := make(map[string]interface{})
	p[KeyJSON] = b
	return b
}

// HasJSONBody reports whether a JSON body mapping is present (even if empty).
func (p RequestParams) HasJSONBody() bool {
	_, ok := p[KeyJSON].(map[string]interface{})
	return ok
}

// Clone returns a copy safe to modify without affecting the original. The
// top-level map and the reserved nested mappings are copied; other values are
// shared.
func (p RequestParams) Clone() RequestParams {
	out := make(RequestParams, len(p))
	maps.Copy(out, p)
	if h, ok := p[KeyHeaders].(map[string]string); ok {
		out[KeyHeaders] = maps.Clone(h)
	}
	if q, ok := p[KeyQuery].(map[string]string); ok {
		out[KeyQuery] = maps.Clone(q)
	}
	if b, ok := p[KeyJSON].(map[string]interface{}); ok {
		out[KeyJSON] = maps.Clone(b)
	}
	return out
}

// ApplyOptions merges per-call options into the params. Nested mappings merge
// key-wise with the options winning; scalar option fields never remove
// existing keys.
func (p RequestParams) ApplyOptions(opts *RequestOptions) {
	if opts == nil {
		return
	}
	if len(opts.Headers) > 0 {
		maps.Copy(p.Headers(), opts.Headers)
	}
	if len(opts.Query) > 0 {
		maps.Copy(p.Query(), opts.Query)
	}
	if len(opts.JSON) > 0 {
		maps.Copy(p.JSONBody(), opts.JSON)
	}
}

// RequestOptions carries the caller-controlled parts of one call: extra
// headers, raw query parameters, and a raw JSON body. Options supplied at the
// call site take precedence over options fixed on the endpoint's descriptor,
// which in turn take precedence over values derived from declared arguments.
type RequestOptions struct {
	Headers map[string]string
	Query   map[string]string
	JSON    map[string]interface{}
}

// Clone returns a deep copy of the options.
func (o *RequestOptions) Clone() *RequestOptions {
	if o == nil {
		return nil
	}
	return &RequestOptions{
		Headers: maps.Clone(o.Headers),
		Query:   maps.Clone(o.Query),
		JSON:    maps.Clone(o.JSON),
	}
}

// Call is one logical invocation of an endpoint function: path template
// variables, declared arguments by name, and optional per-call options.
type Call struct {
	// PathVars fills {name} segments of the endpoint's path template.
	PathVars map[string]string
	// Args are the endpoint's declared parameters. For GET endpoints they
	// become query parameters; for POST endpoints they become the JSON body.
	Args map[string]interface{}
	// Options override anything derived from Args or fixed on the
	// descriptor.
	Options *RequestOptions
}

// Clone returns a deep copy of the call, so a per-chunk rewrite never leaks
// into the caller's view of its own arguments.
func (c *Call) Clone() *Call {
	if c == nil {
		return &Call{}
	}
	return &Call{
		PathVars: maps.Clone(c.PathVars),
		Args:     maps.Clone(c.Args),
		Options:  c.Options.Clone(),
	}
}

// Response is the normalized result of a dispatched request.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Data       []byte
}
