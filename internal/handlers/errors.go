package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"todo-lambda-api/internal/repositories"
)

// Error messages returned to clients
const (
	MsgTodoNotFound     = "Todo not found"
	MsgTextRequired     = "Text is required"
	MsgEndpointNotFound = "Endpoint not found"
	MsgRateLimited      = "Rate limit exceeded"
	MsgBodyTooLarge     = "Request body too large"
	MsgBodyUnreadable   = "Request body could not be read"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error  string `json:"error"`
	ID     string `json:"id,omitempty"`
	Path   string `json:"path,omitempty"`
	Method string `json:"method,omitempty"`
}

// RouteNotFoundError is returned when no route accepts the method and path
type RouteNotFoundError struct {
	Method string
	Path   string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("no route for %s %s", e.Method, e.Path)
}

// RateLimitError is returned when the dispatcher rejects a request
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

// classifyError maps an expected error kind to its status and body.
// ok is false for anything that must surface as an uncaught failure.
func classifyError(err error) (status int, body *ErrorResponse, ok bool) {
	var routeErr *RouteNotFoundError
	var limitErr *RateLimitError

	switch {
	case err == nil:
		return 0, nil, false
	case errors.As(err, &routeErr):
		return http.StatusNotFound, &ErrorResponse{
			Error:  MsgEndpointNotFound,
			Path:   routeErr.Path,
			Method: routeErr.Method,
		}, true
	case errors.As(err, &limitErr):
		return http.StatusTooManyRequests, &ErrorResponse{Error: MsgRateLimited}, true
	case repositories.IsNotFound(err):
		return http.StatusNotFound, &ErrorResponse{
			Error: MsgTodoNotFound,
			ID:    repositories.ErrorID(err),
		}, true
	case repositories.IsValidation(err):
		return http.StatusBadRequest, &ErrorResponse{Error: MsgTextRequired}, true
	default:
		return 0, nil, false
	}
}
