package services

import (
	"context"

	"todo-lambda-api/internal/models"
)

// TodoService defines the business operations over todo items
type TodoService interface {
	// ListTodos returns every todo matching the filters
	ListTodos(ctx context.Context, filters *models.TodoFilters) ([]*models.Todo, error)

	// GetTodo retrieves a todo by ID
	GetTodo(ctx context.Context, id string) (*models.Todo, error)

	// CreateTodo validates the request and stores a new todo
	CreateTodo(ctx context.Context, req *models.CreateTodoRequest) (*models.Todo, error)

	// UpdateTodo applies a partial update to an existing todo
	UpdateTodo(ctx context.Context, id string, req *models.UpdateTodoRequest) (*models.Todo, error)

	// DeleteTodo removes a todo
	DeleteTodo(ctx context.Context, id string) error

	// CountTodos returns the number of stored todos
	CountTodos(ctx context.Context) (int, error)

	// SeedTodos creates one todo per text, skipping blanks
	SeedTodos(ctx context.Context, texts []string) (int, error)
}
