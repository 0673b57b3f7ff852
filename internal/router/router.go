// Package router matches canonical requests against a fixed table of
// method and path patterns.
package router

import (
	"strings"

	"todo-lambda-api/pkg/lambda"
)

// Handler serves a routed request
type Handler = lambda.HandlerFunc

// Route is a single entry of the route table
type Route struct {
	Name    string
	Method  string
	Pattern *Pattern
	Handler Handler
}

// Router holds routes in precedence order
type Router struct {
	routes []*Route
}

// New creates an empty router
func New() *Router {
	return &Router{}
}

// Handle registers a route. Earlier registrations win.
func (r *Router) Handle(method, pattern, name string, h Handler) *Router {
	r.routes = append(r.routes, &Route{
		Name:    name,
		Method:  strings.ToUpper(method),
		Pattern: MustCompile(pattern),
		Handler: h,
	})
	return r
}

// GET registers a GET route
func (r *Router) GET(pattern, name string, h Handler) *Router {
	return r.Handle("GET", pattern, name, h)
}

// POST registers a POST route
func (r *Router) POST(pattern, name string, h Handler) *Router {
	return r.Handle("POST", pattern, name, h)
}

// PUT registers a PUT route
func (r *Router) PUT(pattern, name string, h Handler) *Router {
	return r.Handle("PUT", pattern, name, h)
}

// DELETE registers a DELETE route
func (r *Router) DELETE(pattern, name string, h Handler) *Router {
	return r.Handle("DELETE", pattern, name, h)
}

// Match returns the first route whose method and pattern accept the request
func (r *Router) Match(method, path string) (*Route, Params, bool) {
	method = strings.ToUpper(method)
	for _, route := range r.routes {
		if route.Method != method {
			continue
		}
		if params, ok := route.Pattern.Match(path); ok {
			return route, params, true
		}
	}
	return nil, nil, false
}

// Routes returns the registered routes in precedence order
func (r *Router) Routes() []*Route {
	out := make([]*Route, len(r.routes))
	copy(out, r.routes)
	return out
}
