package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"todo-lambda-api/internal/repositories"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantOK     bool
		wantStatus int
		wantBody   *ErrorResponse
	}{
		{
			name:       "route not found",
			err:        &RouteNotFoundError{Method: "PATCH", Path: "/todos/1"},
			wantOK:     true,
			wantStatus: http.StatusNotFound,
			wantBody:   &ErrorResponse{Error: MsgEndpointNotFound, Path: "/todos/1", Method: "PATCH"},
		},
		{
			name:       "rate limited",
			err:        &RateLimitError{},
			wantOK:     true,
			wantStatus: http.StatusTooManyRequests,
			wantBody:   &ErrorResponse{Error: MsgRateLimited},
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("failed to get todo: %w", repositories.NotFoundError("get", "todo", "abc")),
			wantOK:     true,
			wantStatus: http.StatusNotFound,
			wantBody:   &ErrorResponse{Error: MsgTodoNotFound, ID: "abc"},
		},
		{
			name:       "validation",
			err:        repositories.ValidationError("todo", "", errors.New("text missing")),
			wantOK:     true,
			wantStatus: http.StatusBadRequest,
			wantBody:   &ErrorResponse{Error: MsgTextRequired},
		},
		{
			name:   "duplicate is not an expected outcome",
			err:    repositories.DuplicateError("todo", "abc"),
			wantOK: false,
		},
		{
			name:   "plain error",
			err:    errors.New("boom"),
			wantOK: false,
		},
		{
			name:   "nil",
			err:    nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, ok := classifyError(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestRouteNotFoundErrorMessage(t *testing.T) {
	err := &RouteNotFoundError{Method: "GET", Path: "/nope"}
	assert.Equal(t, "no route for GET /nope", err.Error())
}
