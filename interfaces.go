package batchbridge

// Middleware is the single capability every request-transformation step
// implements. ProcessRequest receives the request parameters assembled so far
// and returns the (possibly replaced) parameters for the next stage.
//
// Implementations must not mutate the input in place; clone, modify, return.
// A middleware with nothing to change may return its input unchanged.
type Middleware interface {
	ProcessRequest(params RequestParams) (RequestParams, error)
}

// Dispatcher performs the physical HTTP call for fully-assembled request
// parameters. It is the plain transport collaborator: no retries, no
// connection management policy, no reinterpretation of responses beyond
// status checking. A non-2xx status is reported as an *HTTPStatusError.
type Dispatcher interface {
	Send(params RequestParams) (*Response, error)
}

// TokenEndpoint fetches a fresh bearer token from a vendor-specific token
// service, performing one network round trip and normalizing the vendor
// response into the canonical Token shape.
//
// A TokenEndpoint instance is owned by exactly one AuthTokenMiddleware.
type TokenEndpoint interface {
	FetchToken() (*Token, error)
}

// TokenStore persists tokens between runs. Load returns (nil, nil) when
// nothing has been stored yet; that is not an error.
type TokenStore interface {
	Load() (*Token, error)
	Save(token *Token) error
}
