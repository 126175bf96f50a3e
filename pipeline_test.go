package batchbridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// middlewareFunc adapts a function to the Middleware interface for tests.
type middlewareFunc func(params RequestParams) (RequestParams, error)

func (f middlewareFunc) ProcessRequest(params RequestParams) (RequestParams, error) {
	return f(params)
}

func TestMiddlewarePipeline_AppliesInOrder(t *testing.T) {
	appendMark := func(mark string) Middleware {
		return middlewareFunc(func(params RequestParams) (RequestParams, error) {
			out := params.Clone()
			trail, _ := out["trail"].(string)
			out["trail"] = trail + mark
			return out, nil
		})
	}

	pipeline := NewMiddlewarePipeline(appendMark("a"), appendMark("b"), appendMark("c"))
	out, err := pipeline.Apply(RequestParams{})
	require.NoError(t, err)
	assert.Equal(t, "abc", out["trail"])
}

func TestMiddlewarePipeline_FailureStopsFold(t *testing.T) {
	boom := errors.New("boom")
	var reached bool

	pipeline := NewMiddlewarePipeline(
		middlewareFunc(func(params RequestParams) (RequestParams, error) {
			return nil, boom
		}),
		middlewareFunc(func(params RequestParams) (RequestParams, error) {
			reached = true
			return params, nil
		}),
	)

	_, err := pipeline.Apply(RequestParams{})
	require.ErrorIs(t, err, boom)
	assert.False(t, reached, "later middleware must not run after a failure")
}

func TestMiddlewarePipeline_SkipsNilMiddleware(t *testing.T) {
	pipeline := NewMiddlewarePipeline(nil, middlewareFunc(func(params RequestParams) (RequestParams, error) {
		return params, nil
	}), nil)
	assert.Equal(t, 1, pipeline.Len())
}

func TestMiddlewarePipeline_EmptyIsIdentity(t *testing.T) {
	params := NewRequestParams("GET", "https://example.test/x")
	out, err := NewMiddlewarePipeline().Apply(params)
	require.NoError(t, err)
	assert.Equal(t, params, out)
}
