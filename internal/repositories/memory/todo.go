// Package memory holds the volatile in-memory todo store. Its contents live
// as long as the process (one Lambda execution context) and are lost on a
// cold start.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"todo-lambda-api/internal/models"
	"todo-lambda-api/internal/repositories"
)

const entityTodo = "todo"

var errNilTodo = errors.New("todo cannot be nil")

var _ repositories.TodoRepository = (*TodoStore)(nil)

// Clock returns the current time. Tests substitute a deterministic clock.
type Clock func() time.Time

// TodoStore is an in-memory implementation of repositories.TodoRepository.
// Records are copied on the way in and out so callers never share state
// with the map.
type TodoStore struct {
	mu    sync.RWMutex
	todos map[string]*models.Todo
	now   Clock
}

// Option configures a TodoStore
type Option func(*TodoStore)

// WithClock overrides the clock used to stamp UpdatedAt on patches
func WithClock(clock Clock) Option {
	return func(s *TodoStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewTodoStore creates an empty TodoStore
func NewTodoStore(opts ...Option) *TodoStore {
	s := &TodoStore{
		todos: make(map[string]*models.Todo),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now exposes the store clock so callers stamp new records consistently
func (s *TodoStore) Now() time.Time {
	return s.now()
}

// List implements repositories.TodoRepository.List
func (s *TodoStore) List(ctx context.Context, filters *models.TodoFilters) ([]*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]*models.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		if !filters.Matches(todo) {
			continue
		}
		todos = append(todos, todo.Clone())
	}

	return todos, nil
}

// GetByID implements repositories.TodoRepository.GetByID
func (s *TodoStore) GetByID(ctx context.Context, id string) (*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todo, exists := s.todos[id]
	if !exists {
		return nil, repositories.NotFoundError("get", entityTodo, id)
	}

	return todo.Clone(), nil
}

// Create implements repositories.TodoRepository.Create
func (s *TodoStore) Create(ctx context.Context, todo *models.Todo) error {
	if todo == nil {
		return repositories.ValidationError(entityTodo, "", errNilTodo)
	}

	if err := todo.Validate(); err != nil {
		return repositories.ValidationError(entityTodo, todo.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[todo.ID]; exists {
		return repositories.DuplicateError(entityTodo, todo.ID)
	}

	s.todos[todo.ID] = todo.Clone()
	return nil
}

// Patch implements repositories.TodoRepository.Patch
func (s *TodoStore) Patch(ctx context.Context, id string, patch *models.UpdateTodoRequest) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, exists := s.todos[id]
	if !exists {
		return nil, repositories.NotFoundError("patch", entityTodo, id)
	}

	todo.Apply(patch, s.now())

	return todo.Clone(), nil
}

// Delete implements repositories.TodoRepository.Delete
func (s *TodoStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[id]; !exists {
		return repositories.NotFoundError("delete", entityTodo, id)
	}

	delete(s.todos, id)
	return nil
}

// Count implements repositories.TodoRepository.Count
func (s *TodoStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.todos), nil
}

// Reset drops every record, simulating a cold start
func (s *TodoStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos = make(map[string]*models.Todo)
}
