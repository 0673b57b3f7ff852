package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"todo-lambda-api/internal/models"
	"todo-lambda-api/internal/repositories"
)

// todoService implements the TodoService interface
type todoService struct {
	todoRepo  repositories.TodoRepository
	validator *validator.Validate
	now       func() time.Time
}

// NewTodoService creates a new todo service instance. A nil clock defaults to time.Now.
func NewTodoService(todoRepo repositories.TodoRepository, now func() time.Time) TodoService {
	if now == nil {
		now = time.Now
	}
	return &todoService{
		todoRepo:  todoRepo,
		validator: validator.New(),
		now:       now,
	}
}

// ListTodos returns every todo matching the filters
func (s *todoService) ListTodos(ctx context.Context, filters *models.TodoFilters) ([]*models.Todo, error) {
	todos, err := s.todoRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// GetTodo retrieves a todo by ID
func (s *todoService) GetTodo(ctx context.Context, id string) (*models.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// CreateTodo validates the request and stores a new todo
func (s *todoService) CreateTodo(ctx context.Context, req *models.CreateTodoRequest) (*models.Todo, error) {
	if req == nil {
		req = &models.CreateTodoRequest{}
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, repositories.ValidationError("todo", "", err)
	}

	todo := models.NewTodo(*req.Text, s.now())
	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"todo_id": todo.ID,
	}).Debug("Todo created")

	return todo, nil
}

// UpdateTodo applies a partial update to an existing todo
func (s *todoService) UpdateTodo(ctx context.Context, id string, req *models.UpdateTodoRequest) (*models.Todo, error) {
	if req == nil {
		req = &models.UpdateTodoRequest{}
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, repositories.ValidationError("todo", id, err)
	}

	todo, err := s.todoRepo.Patch(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// DeleteTodo removes a todo
func (s *todoService) DeleteTodo(ctx context.Context, id string) error {
	if err := s.todoRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// CountTodos returns the number of stored todos
func (s *todoService) CountTodos(ctx context.Context) (int, error) {
	count, err := s.todoRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}
	return count, nil
}

// SeedTodos creates one todo per text, skipping blanks
func (s *todoService) SeedTodos(ctx context.Context, texts []string) (int, error) {
	created := 0
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if _, err := s.CreateTodo(ctx, &models.CreateTodoRequest{Text: &text}); err != nil {
			return created, fmt.Errorf("failed to seed todo %q: %w", text, err)
		}
		created++
	}
	return created, nil
}
