package lambda

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// CORSHeaders is the fixed header set attached to every response
type CORSHeaders struct {
	AllowOrigin  string
	AllowHeaders string
	AllowMethods string
}

// DefaultCORSHeaders returns the header values served when nothing is configured
func DefaultCORSHeaders() CORSHeaders {
	return CORSHeaders{
		AllowOrigin:  "*",
		AllowHeaders: "Content-Type",
		AllowMethods: "OPTIONS,GET,POST,PUT,DELETE",
	}
}

// ResponseBuilder wraps results into canonical responses carrying the fixed headers
type ResponseBuilder struct {
	cors CORSHeaders
}

// NewResponseBuilder creates a builder; empty header values fall back to the defaults
func NewResponseBuilder(cors CORSHeaders) *ResponseBuilder {
	defaults := DefaultCORSHeaders()
	if cors.AllowOrigin == "" {
		cors.AllowOrigin = defaults.AllowOrigin
	}
	if cors.AllowHeaders == "" {
		cors.AllowHeaders = defaults.AllowHeaders
	}
	if cors.AllowMethods == "" {
		cors.AllowMethods = defaults.AllowMethods
	}
	return &ResponseBuilder{cors: cors}
}

// Headers returns a fresh copy of the fixed header set
func (b *ResponseBuilder) Headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  b.cors.AllowOrigin,
		"Access-Control-Allow-Headers": b.cors.AllowHeaders,
		"Access-Control-Allow-Methods": b.cors.AllowMethods,
	}
}

// JSON serializes v as the response body
func (b *ResponseBuilder) JSON(statusCode int, v interface{}) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response body: %w", err)
	}

	return &Response{
		StatusCode: statusCode,
		Headers:    b.Headers(),
		Body:       body,
	}, nil
}

// Empty returns a response without a body
func (b *ResponseBuilder) Empty(statusCode int) *Response {
	return &Response{
		StatusCode: statusCode,
		Headers:    b.Headers(),
		Body:       []byte{},
	}
}

// Preflight acknowledges a CORS preflight request
func (b *ResponseBuilder) Preflight() *Response {
	return b.Empty(http.StatusOK)
}

// InternalError converts an uncaught failure into a 500 carrying its message
func (b *ResponseBuilder) InternalError(err error) *Response {
	message := "Internal server error"
	if err != nil {
		message = err.Error()
	}

	// Marshalling a map of strings cannot fail.
	body, _ := json.Marshal(map[string]string{"error": message})

	return &Response{
		StatusCode: http.StatusInternalServerError,
		Headers:    b.Headers(),
		Body:       body,
	}
}

// ToProxyResponse converts the response into the platform wire shape
func (r *Response) ToProxyResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}
