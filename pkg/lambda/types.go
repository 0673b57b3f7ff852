package lambda

import "context"

// Request represents a generic HTTP request for serverless functions.
// It is the canonical descriptor every inbound envelope is normalized into.
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
	RequestID   string            `json:"request_id"`
	Kind        EnvelopeKind      `json:"kind"`
}

// IsPreflight reports whether the request is a CORS preflight
func (r *Request) IsPreflight() bool {
	return r.Method == MethodOptions
}

// Param returns a path parameter, or "" when absent
func (r *Request) Param(name string) string {
	if r.PathParams == nil {
		return ""
	}
	return r.PathParams[name]
}

// Query returns a query parameter, or "" when absent
func (r *Request) Query(name string) string {
	if r.QueryParams == nil {
		return ""
	}
	return r.QueryParams[name]
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// HandlerFunc is a framework-agnostic handler
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)
