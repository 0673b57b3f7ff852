package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Todo represents a single todo item
type Todo struct {
	ID        string    `json:"id" validate:"required,uuid"`
	Text      string    `json:"text" validate:"required"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTodo creates a new todo with generated ID and identical timestamps
func NewTodo(text string, now time.Time) *Todo {
	return &Todo{
		ID:        uuid.New().String(),
		Text:      text,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the todo data
func (t *Todo) Validate() error {
	if err := validate.Struct(t); err != nil {
		return err
	}

	if t.UpdatedAt.Before(t.CreatedAt) {
		return fmt.Errorf("todo updatedAt %s is before createdAt %s",
			t.UpdatedAt.Format(time.RFC3339Nano), t.CreatedAt.Format(time.RFC3339Nano))
	}

	return nil
}

// Apply overwrites the fields present in the patch and refreshes UpdatedAt.
// UpdatedAt never moves backwards, even if the supplied clock does.
func (t *Todo) Apply(patch *UpdateTodoRequest, now time.Time) {
	if patch != nil {
		if patch.Text != nil {
			t.Text = *patch.Text
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
	}

	if now.After(t.UpdatedAt) {
		t.UpdatedAt = now
	}
}

// Clone returns a copy that shares no state with the receiver
func (t *Todo) Clone() *Todo {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// String returns a short description used in log lines
func (t *Todo) String() string {
	status := "open"
	if t.Completed {
		status = "done"
	}
	return fmt.Sprintf("%s [%s] %s", t.ID, status, strings.TrimSpace(t.Text))
}

// CreateTodoRequest is the payload accepted when creating a todo
type CreateTodoRequest struct {
	Text *string `json:"text" validate:"required,min=1"`
}

// UpdateTodoRequest is a partial update. Nil fields are left untouched;
// a text that is present must not be empty.
type UpdateTodoRequest struct {
	Text      *string `json:"text,omitempty" validate:"omitempty,min=1"`
	Completed *bool   `json:"completed,omitempty"`
}

// TodoFilters narrows a list of todos
type TodoFilters struct {
	Completed *bool `json:"completed,omitempty"`
}

// Matches reports whether the todo passes the filters
func (f *TodoFilters) Matches(t *Todo) bool {
	if f == nil {
		return true
	}
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	return true
}

// TodoList is the body returned when listing todos
type TodoList struct {
	Todos []*Todo `json:"todos"`
	Count int     `json:"count"`
}

// NewTodoList wraps todos, never producing a null array
func NewTodoList(todos []*Todo) *TodoList {
	if todos == nil {
		todos = []*Todo{}
	}
	return &TodoList{
		Todos: todos,
		Count: len(todos),
	}
}
