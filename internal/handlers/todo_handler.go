package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"todo-lambda-api/internal/metrics"
	"todo-lambda-api/internal/models"
	"todo-lambda-api/internal/services"
	"todo-lambda-api/pkg/lambda"
)

// Version is reported by the health route
const Version = "1.0.0"

// TodoHandler handles todo-related requests
type TodoHandler struct {
	todoService services.TodoService
	responses   *lambda.ResponseBuilder
	metrics     *metrics.Metrics
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoService services.TodoService, responses *lambda.ResponseBuilder, m *metrics.Metrics) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		responses:   responses,
		metrics:     m,
	}
}

// HandleList godoc
// @Summary List todos
// @Description Get every todo, optionally filtered by completion
// @Tags todos
// @Produce json
// @Param completed query bool false "Filter by completion"
// @Success 200 {object} models.TodoList
// @Router /todos [get]
func (h *TodoHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	filters := &models.TodoFilters{}
	if completed := req.Query("completed"); completed != "" {
		if val, err := strconv.ParseBool(completed); err == nil {
			filters.Completed = &val
		}
	}

	todos, err := h.todoService.ListTodos(ctx, filters)
	h.metrics.RecordOperation("list", err)
	if err != nil {
		return nil, err
	}

	return h.responses.JSON(http.StatusOK, models.NewTodoList(todos))
}

// HandleGet godoc
// @Summary Get a todo
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} models.Todo
// @Failure 404 {object} ErrorResponse
// @Router /todos/{id} [get]
func (h *TodoHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	todo, err := h.todoService.GetTodo(ctx, req.Param("id"))
	h.metrics.RecordOperation("get", err)
	if err != nil {
		return nil, err
	}

	return h.responses.JSON(http.StatusOK, todo)
}

// HandleCreate godoc
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param todo body models.CreateTodoRequest true "Todo text"
// @Success 201 {object} models.Todo
// @Failure 400 {object} ErrorResponse
// @Router /todos [post]
func (h *TodoHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	body := decodeBody[models.CreateTodoRequest](req)

	todo, err := h.todoService.CreateTodo(ctx, &body)
	h.metrics.RecordOperation("create", err)
	if err != nil {
		return nil, err
	}
	h.refreshCount(ctx)

	return h.responses.JSON(http.StatusCreated, todo)
}

// HandleUpdate godoc
// @Summary Update a todo
// @Description Only the fields present in the body change
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param todo body models.UpdateTodoRequest true "Fields to change"
// @Success 200 {object} models.Todo
// @Failure 404 {object} ErrorResponse
// @Router /todos/{id} [put]
func (h *TodoHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	body := decodeBody[models.UpdateTodoRequest](req)

	todo, err := h.todoService.UpdateTodo(ctx, req.Param("id"), &body)
	h.metrics.RecordOperation("update", err)
	if err != nil {
		return nil, err
	}

	return h.responses.JSON(http.StatusOK, todo)
}

// HandleDelete godoc
// @Summary Delete a todo
// @Tags todos
// @Param id path string true "Todo ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /todos/{id} [delete]
func (h *TodoHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	err := h.todoService.DeleteTodo(ctx, req.Param("id"))
	h.metrics.RecordOperation("delete", err)
	if err != nil {
		return nil, err
	}
	h.refreshCount(ctx)

	return h.responses.Empty(http.StatusNoContent), nil
}

// HandleHealth reports liveness and the number of records held
func (h *TodoHandler) HandleHealth(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	count, err := h.todoService.CountTodos(ctx)
	if err != nil {
		return nil, err
	}

	return h.responses.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"count":   count,
		"version": Version,
	})
}

func (h *TodoHandler) refreshCount(ctx context.Context) {
	if h.metrics == nil {
		return
	}
	if count, err := h.todoService.CountTodos(ctx); err == nil {
		h.metrics.SetTodoCount(count)
	}
}

// decodeBody parses the JSON body. A payload that is not a JSON object of
// the expected shape is treated as an empty object.
func decodeBody[T any](req *lambda.Request) T {
	var body T
	if len(req.Body) == 0 {
		return body
	}

	if err := json.Unmarshal(req.Body, &body); err != nil {
		logrus.WithFields(logrus.Fields{
			"request_id": req.RequestID,
			"path":       req.Path,
			"error":      err.Error(),
		}).Debug("Malformed request body, using empty object")

		var empty T
		return empty
	}
	return body
}
