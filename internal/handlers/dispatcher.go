package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"todo-lambda-api/internal/metrics"
	"todo-lambda-api/internal/router"
	"todo-lambda-api/pkg/lambda"
)

const (
	routePreflight = "preflight"
	routeNotFound  = "not_found"
	routeLimited   = "rate_limited"
)

// Dispatcher routes canonical requests to the todo handlers and converts
// every outcome into a response
type Dispatcher struct {
	router    *router.Router
	responses *lambda.ResponseBuilder
	limiter   *rate.Limiter
	metrics   *metrics.Metrics
}

// DispatcherOption configures a Dispatcher
type DispatcherOption func(*Dispatcher)

// WithRateLimit rejects requests beyond rps with a burst allowance. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) DispatcherOption {
	return func(d *Dispatcher) {
		if rps <= 0 {
			d.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		d.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics records dispatch outcomes
func WithMetrics(m *metrics.Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// NewDispatcher builds the route table over the todo handler
func NewDispatcher(todoHandler *TodoHandler, responses *lambda.ResponseBuilder, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		router:    NewRouter(todoHandler),
		responses: responses,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewRouter returns the fixed todo route table in precedence order
func NewRouter(h *TodoHandler) *router.Router {
	return router.New().
		GET("/todos", "list_todos", h.HandleList).
		GET("/todos/{id}", "get_todo", h.HandleGet).
		POST("/todos", "create_todo", h.HandleCreate).
		PUT("/todos/{id}", "update_todo", h.HandleUpdate).
		DELETE("/todos/{id}", "delete_todo", h.HandleDelete).
		GET("/health", "health", h.HandleHealth)
}

// Dispatch resolves the route and runs its handler. Expected error kinds
// (unknown record, missing text, unknown route, rate limit) come back as
// 4xx responses; any other error is returned to the caller untouched.
func (d *Dispatcher) Dispatch(ctx context.Context, req *lambda.Request) (*lambda.Response, string, error) {
	if req.IsPreflight() {
		return d.responses.Preflight(), routePreflight, nil
	}

	if d.limiter != nil && !d.limiter.Allow() {
		d.metrics.RateLimited()
		resp, err := d.errorResponse(&RateLimitError{})
		return resp, routeLimited, err
	}

	route, params, ok := d.router.Match(req.Method, req.Path)
	if !ok {
		resp, err := d.errorResponse(&RouteNotFoundError{Method: req.Method, Path: req.Path})
		return resp, routeNotFound, err
	}

	req.PathParams = params
	resp, err := route.Handler(ctx, req)
	if err != nil {
		resp, err = d.errorResponse(err)
	}
	return resp, route.Name, err
}

// Handle is the single adapter between dispatch results and the wire: it
// never fails, turning uncaught errors and panics into 500 responses.
func (d *Dispatcher) Handle(ctx context.Context, req *lambda.Request) (resp *lambda.Response) {
	start := time.Now()
	routeName := "unknown"

	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": req.RequestID,
				"method":     req.Method,
				"path":       req.Path,
				"panic":      fmt.Sprintf("%v", r),
			}).Error("Recovered from handler panic")
			resp = d.responses.InternalError(fmt.Errorf("%v", r))
		}
		d.logOutcome(req, routeName, resp.StatusCode, time.Since(start))
	}()

	resp, name, err := d.Dispatch(ctx, req)
	routeName = name
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"request_id": req.RequestID,
			"method":     req.Method,
			"path":       req.Path,
			"route":      name,
			"error":      err.Error(),
		}).Error("Request failed")
		return d.responses.InternalError(err)
	}
	if resp == nil {
		return d.responses.InternalError(fmt.Errorf("route %s produced no response", name))
	}

	return resp
}

func (d *Dispatcher) errorResponse(err error) (*lambda.Response, error) {
	status, body, ok := classifyError(err)
	if !ok {
		return nil, err
	}
	return d.responses.JSON(status, body)
}

func (d *Dispatcher) logOutcome(req *lambda.Request, routeName string, status int, latency time.Duration) {
	d.metrics.ObserveRequest(routeName, req.Method, status, latency)

	fields := logrus.Fields{
		"request_id":  req.RequestID,
		"envelope":    req.Kind.String(),
		"method":      req.Method,
		"path":        req.Path,
		"route":       routeName,
		"status_code": status,
		"latency_ms":  float64(latency.Nanoseconds()) / 1000000,
	}

	switch {
	case status >= http.StatusInternalServerError:
		logrus.WithFields(fields).Error("Server error")
	case status >= http.StatusBadRequest:
		logrus.WithFields(fields).Warn("Client error")
	default:
		logrus.WithFields(fields).Info("Request completed")
	}
}
