package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"todo-lambda-api/internal/models"
	"todo-lambda-api/internal/repositories"
	"todo-lambda-api/internal/repositories/memory"
	. "todo-lambda-api/internal/services"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

type TodoServiceTestSuite struct {
	suite.Suite
	Store   *memory.TodoStore
	Service TodoService
	now     time.Time
}

func (s *TodoServiceTestSuite) SetupTest() {
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Store = memory.NewTodoStore(memory.WithClock(func() time.Time {
		s.now = s.now.Add(time.Second)
		return s.now
	}))
	s.Service = NewTodoService(s.Store, s.Store.Now)
}

func TestTodoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TodoServiceTestSuite))
}

func (s *TodoServiceTestSuite) TestCreateTodo_Success() {
	todo, err := s.Service.CreateTodo(context.Background(), &models.CreateTodoRequest{Text: strPtr("buy milk")})

	s.Require().NoError(err)
	assert.NotEmpty(s.T(), todo.ID)
	assert.Equal(s.T(), "buy milk", todo.Text)
	assert.False(s.T(), todo.Completed)
	assert.True(s.T(), todo.CreatedAt.Equal(todo.UpdatedAt))

	stored, err := s.Service.GetTodo(context.Background(), todo.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), todo, stored)
}

func (s *TodoServiceTestSuite) TestCreateTodo_MissingText() {
	for name, req := range map[string]*models.CreateTodoRequest{
		"nil request": nil,
		"absent text": {},
		"empty text":  {Text: strPtr("")},
	} {
		s.Run(name, func() {
			_, err := s.Service.CreateTodo(context.Background(), req)
			assert.True(s.T(), repositories.IsValidation(err))

			count, err := s.Service.CountTodos(context.Background())
			s.Require().NoError(err)
			assert.Zero(s.T(), count)
		})
	}
}

func (s *TodoServiceTestSuite) TestUpdateTodo_PartialFields() {
	ctx := context.Background()
	todo, err := s.Service.CreateTodo(ctx, &models.CreateTodoRequest{Text: strPtr("buy milk")})
	s.Require().NoError(err)

	updated, err := s.Service.UpdateTodo(ctx, todo.ID, &models.UpdateTodoRequest{Completed: boolPtr(true)})
	s.Require().NoError(err)
	assert.Equal(s.T(), "buy milk", updated.Text)
	assert.True(s.T(), updated.Completed)
	assert.True(s.T(), updated.UpdatedAt.After(todo.UpdatedAt))

	renamed, err := s.Service.UpdateTodo(ctx, todo.ID, &models.UpdateTodoRequest{Text: strPtr("buy bread")})
	s.Require().NoError(err)
	assert.Equal(s.T(), "buy bread", renamed.Text)
	assert.True(s.T(), renamed.Completed)

	touched, err := s.Service.UpdateTodo(ctx, todo.ID, nil)
	s.Require().NoError(err)
	assert.True(s.T(), touched.UpdatedAt.After(renamed.UpdatedAt))
}

func (s *TodoServiceTestSuite) TestUpdateTodo_RejectsEmptyText() {
	ctx := context.Background()
	todo, err := s.Service.CreateTodo(ctx, &models.CreateTodoRequest{Text: strPtr("buy milk")})
	s.Require().NoError(err)

	_, err = s.Service.UpdateTodo(ctx, todo.ID, &models.UpdateTodoRequest{Text: strPtr(""), Completed: boolPtr(true)})
	assert.True(s.T(), repositories.IsValidation(err))

	stored, err := s.Service.GetTodo(ctx, todo.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), todo, stored)
	s.Require().NoError(stored.Validate())
}

func (s *TodoServiceTestSuite) TestUnknownID() {
	ctx := context.Background()

	_, err := s.Service.GetTodo(ctx, "missing")
	assert.True(s.T(), repositories.IsNotFound(err))
	assert.Equal(s.T(), "missing", repositories.ErrorID(err))

	_, err = s.Service.UpdateTodo(ctx, "missing", &models.UpdateTodoRequest{Completed: boolPtr(true)})
	assert.True(s.T(), repositories.IsNotFound(err))

	err = s.Service.DeleteTodo(ctx, "missing")
	assert.True(s.T(), repositories.IsNotFound(err))
}

func (s *TodoServiceTestSuite) TestDeleteTodo() {
	ctx := context.Background()
	todo, err := s.Service.CreateTodo(ctx, &models.CreateTodoRequest{Text: strPtr("buy milk")})
	s.Require().NoError(err)

	s.Require().NoError(s.Service.DeleteTodo(ctx, todo.ID))

	_, err = s.Service.GetTodo(ctx, todo.ID)
	assert.True(s.T(), repositories.IsNotFound(err))
}

func (s *TodoServiceTestSuite) TestListTodos_Filter() {
	ctx := context.Background()
	first, _ := s.Service.CreateTodo(ctx, &models.CreateTodoRequest{Text: strPtr("a")})
	s.Service.CreateTodo(ctx, &models.CreateTodoRequest{Text: strPtr("b")})
	_, err := s.Service.UpdateTodo(ctx, first.ID, &models.UpdateTodoRequest{Completed: boolPtr(true)})
	s.Require().NoError(err)

	all, err := s.Service.ListTodos(ctx, nil)
	s.Require().NoError(err)
	assert.Len(s.T(), all, 2)

	done, err := s.Service.ListTodos(ctx, &models.TodoFilters{Completed: boolPtr(true)})
	s.Require().NoError(err)
	s.Require().Len(done, 1)
	assert.Equal(s.T(), first.ID, done[0].ID)
}

func (s *TodoServiceTestSuite) TestSeedTodos() {
	created, err := s.Service.SeedTodos(context.Background(), []string{"buy milk", "  ", "", " walk dog "})

	s.Require().NoError(err)
	assert.Equal(s.T(), 2, created)

	todos, err := s.Service.ListTodos(context.Background(), nil)
	s.Require().NoError(err)

	texts := []string{}
	for _, todo := range todos {
		texts = append(texts, todo.Text)
	}
	assert.ElementsMatch(s.T(), []string{"buy milk", "walk dog"}, texts)
}

// failingRepo fails every call so error wrapping can be observed
type failingRepo struct {
	repositories.TodoRepository
	err error
}

func (r *failingRepo) List(ctx context.Context, filters *models.TodoFilters) ([]*models.Todo, error) {
	return nil, r.err
}

func (r *failingRepo) Create(ctx context.Context, todo *models.Todo) error {
	return r.err
}

func (r *failingRepo) Count(ctx context.Context) (int, error) {
	return 0, r.err
}

func TestTodoService_WrapsRepositoryErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewTodoService(&failingRepo{err: boom}, nil)
	ctx := context.Background()

	_, err := svc.ListTodos(ctx, nil)
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "failed to list todos: boom")

	_, err = svc.CreateTodo(ctx, &models.CreateTodoRequest{Text: strPtr("x")})
	assert.ErrorIs(t, err, boom)

	_, err = svc.CountTodos(ctx)
	assert.ErrorIs(t, err, boom)

	created, err := svc.SeedTodos(ctx, []string{"a", "b"})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, created)
}
