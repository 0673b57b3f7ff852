package repositories

import (
	"context"

	"todo-lambda-api/internal/models"
)

// TodoRepository owns the todo records. Implementations must apply every
// mutation atomically: a failed Patch or Delete leaves the store unchanged.
type TodoRepository interface {
	// List returns every todo matching the filters. Order is not guaranteed.
	List(ctx context.Context, filters *models.TodoFilters) ([]*models.Todo, error)

	// GetByID retrieves a todo by its ID
	GetByID(ctx context.Context, id string) (*models.Todo, error)

	// Create stores a new todo. The entity must already carry its ID and timestamps.
	Create(ctx context.Context, todo *models.Todo) error

	// Patch overwrites the fields present in the patch and refreshes UpdatedAt
	Patch(ctx context.Context, id string, patch *models.UpdateTodoRequest) (*models.Todo, error)

	// Delete removes a todo by its ID
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored todos
	Count(ctx context.Context) (int, error)
}
