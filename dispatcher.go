// dispatcher.go
// -------------
// HTTPDispatcher is the default Dispatcher: it performs one plain HTTP call
// for fully-assembled request parameters. No retries, no backoff, no
// redirect policy of its own; a non-2xx status becomes an *HTTPStatusError
// carrying the status and body, network failures propagate wrapped. Timeout
// policy belongs to the *http.Client the caller supplies.
package batchbridge

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// HTTPDispatcher sends requests over net/http.
type HTTPDispatcher struct {
	client *http.Client
	logger zerolog.Logger
}

// DispatcherOption customizes an HTTPDispatcher at construction.
type DispatcherOption func(*HTTPDispatcher)

// WithHTTPClient supplies the underlying *http.Client (timeouts, proxies,
// transports).
func WithHTTPClient(client *http.Client) DispatcherOption {
	return func(d *HTTPDispatcher) {
		d.client = client
	}
}

// WithClientCertificate presents a TLS client certificate on every request.
// Ignored when WithHTTPClient supplies a client of its own.
func WithClientCertificate(cert tls.Certificate) DispatcherOption {
	return func(d *HTTPDispatcher) {
		if d.client != nil {
			return
		}
		d.client = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{Certificates: []tls.Certificate{cert}},
			},
		}
	}
}

// NewHTTPDispatcher builds a dispatcher; without options it uses a default
// http.Client.
func NewHTTPDispatcher(opts ...DispatcherOption) *HTTPDispatcher {
	d := &HTTPDispatcher{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	if d.client == nil {
		d.client = &http.Client{}
	}
	return d
}

// SetLogger attaches a logger for per-request debug events.
func (d *HTTPDispatcher) SetLogger(logger zerolog.Logger) {
	d.logger = logger
}

// Send performs the HTTP call described by params and returns the normalized
// response. A response outside 2xx yields a nil response and an
// *HTTPStatusError.
func (d *HTTPDispatcher) Send(params RequestParams) (*Response, error) {
	method := params.Method()
	rawURL := params.URL()
	if method == "" || rawURL == "" {
		return nil, fmt.Errorf("request params need both method and url, got method=%q url=%q", method, rawURL)
	}

	fullURL, err := appendQuery(rawURL, params)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if params.HasJSONBody() {
		encoded, err := json.Marshal(params.JSONBody())
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequest(method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if h, ok := params[KeyHeaders].(map[string]string); ok {
		for k, v := range h {
			httpReq.Header.Set(k, v)
		}
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	d.logger.Debug().Str("method", method).Str("url", fullURL).Msg("sending request")
	httpResp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending %s %s: %w", method, fullURL, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &HTTPStatusError{StatusCode: httpResp.StatusCode, Body: data}
	}

	headers := make(map[string]string)
	for k, vals := range httpResp.Header {
		if len(vals) > 0 {
			headers[strings.ToLower(k)] = vals[0]
		}
	}
	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    headers,
		Data:       data,
	}, nil
}

// appendQuery merges the params' query mapping into the URL's query string.
func appendQuery(rawURL string, params RequestParams) (string, error) {
	q, ok := params[KeyQuery].(map[string]string)
	if !ok || len(q) == 0 {
		return rawURL, nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", rawURL, err)
	}
	values := parsed.Query()
	for k, v := range q {
		values.Set(k, v)
	}
	parsed.RawQuery = values.Encode()
	return parsed.String(), nil
}

// stringify renders an arbitrary value for a query parameter.
func stringify(v interface{}) string {
	return fmt.Sprintf("%v", v)
}
