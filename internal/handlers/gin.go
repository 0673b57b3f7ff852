package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"todo-lambda-api/internal/middleware"
	"todo-lambda-api/pkg/lambda"
)

// GinHandler serves the dispatcher behind gin so the local server answers
// exactly like the deployed function
func (d *Dispatcher) GinHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := RequestFromHTTP(c.Request, c.GetString(middleware.RequestIDKey))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": c.GetString(middleware.RequestIDKey),
				"path":       c.Request.URL.Path,
				"error":      err.Error(),
			}).Warn("Failed to read request body")

			status, message := http.StatusBadRequest, MsgBodyUnreadable
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status, message = http.StatusRequestEntityTooLarge, MsgBodyTooLarge
			}
			resp, _ := d.responses.JSON(status, &ErrorResponse{Error: message})
			writeGinResponse(c, resp)
			return
		}

		writeGinResponse(c, d.Handle(c.Request.Context(), req))
	}
}

func writeGinResponse(c *gin.Context, resp *lambda.Response) {
	for k, v := range resp.Headers {
		c.Header(k, v)
	}
	if len(resp.Body) == 0 {
		c.Status(resp.StatusCode)
		return
	}
	c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
}

// RequestFromHTTP converts a net/http request into the canonical request.
// Body size is bounded by middleware.RequestSizeLimit; a read failure such
// as an exceeded limit is returned rather than replaced by an empty object.
func RequestFromHTTP(r *http.Request, requestID string) (*lambda.Request, error) {
	body := []byte(lambda.DefaultBody)
	if r.Body != nil {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		if len(raw) > 0 {
			body = raw
		}
	}

	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[strings.ToLower(k)] = r.Header.Get(k)
	}

	query := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	if requestID == "" {
		requestID = uuid.New().String()
	}

	path := r.URL.Path
	if path == "" {
		path = lambda.DefaultPath
	}

	return &lambda.Request{
		Method:      strings.ToUpper(r.Method),
		Path:        path,
		Headers:     headers,
		QueryParams: query,
		Body:        body,
		PathParams:  map[string]string{},
		RequestID:   requestID,
		Kind:        lambda.KindDirect,
	}, nil
}
