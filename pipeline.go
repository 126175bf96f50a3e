// pipeline.go
// -----------
// MiddlewarePipeline composes an ordered list of Middleware into one
// transformation applied before every dispatch.
//
// The order is caller-specified and never reordered: the fold runs strictly
// left to right, each stage receiving the previous stage's output. Any stage
// failing aborts the fold immediately; there is no partial application and no
// fallback to a later stage. The middleware list is immutable after
// construction and safe to share across goroutines.
package batchbridge

// MiddlewarePipeline folds an ordered middleware list over request
// parameters.
type MiddlewarePipeline struct {
	middlewares []Middleware
}

// NewMiddlewarePipeline builds a pipeline from middleware in application
// order. Nil entries carry no transformation capability and are skipped.
func NewMiddlewarePipeline(middlewares ...Middleware) *MiddlewarePipeline {
	kept := make([]Middleware, 0, len(middlewares))
	for _, mw := range middlewares {
		if mw != nil {
			kept = append(kept, mw)
		}
	}
	return &MiddlewarePipeline{middlewares: kept}
}

// Len returns the number of stages in the pipeline.
func (p *MiddlewarePipeline) Len() int {
	return len(p.middlewares)
}

// Apply runs every stage over params in list order and returns the final
// parameters. The first failing stage's error propagates unchanged.
func (p *MiddlewarePipeline) Apply(params RequestParams) (RequestParams, error) {
	out := params
	for _, mw := range p.middlewares {
		next, err := mw.ProcessRequest(out)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
