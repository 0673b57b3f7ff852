package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-lambda-api/internal/config"
	"todo-lambda-api/internal/repositories/memory"
	"todo-lambda-api/pkg/lambda"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "8081",
		Log:         config.LogConfig{Level: "info", Format: "text"},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig())
	require.NoError(t, err)

	assert.NotNil(t, container.TodoStore)
	assert.NotNil(t, container.TodoService)
	assert.NotNil(t, container.TodoHandler)
	assert.NotNil(t, container.Dispatcher)
	assert.NotNil(t, container.Metrics)
	assert.NotNil(t, container.Registry)

	count, err := container.TodoService.CountTodos(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.NoError(t, container.Close())
}

func TestNewContainerNilConfig(t *testing.T) {
	_, err := NewContainer(context.Background(), nil)
	assert.EqualError(t, err, "config cannot be nil")
}

func TestNewContainerSeedsTodos(t *testing.T) {
	cfg := testConfig()
	cfg.SeedTodos = []string{"buy milk", "walk dog"}

	container, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)

	count, err := container.TodoStore.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, container.Close())
	count, _ = container.TodoStore.Count(context.Background())
	assert.Zero(t, count)
}

func TestContainerUsesInjectedClock(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := testConfig()
	cfg.SeedTodos = []string{"buy milk"}

	container, err := NewContainer(context.Background(), cfg, memory.WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	todos, err := container.TodoStore.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].CreatedAt.Equal(fixed))
}

func TestContainerAppliesCORSConfig(t *testing.T) {
	cfg := testConfig()
	cfg.CORS.AllowOrigin = "https://example.com"

	container, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)

	resp := container.Dispatcher.Handle(context.Background(), lambda.Normalize([]byte(`{"httpMethod":"OPTIONS","path":"/todos"}`)))
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "https://example.com", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "Content-Type", resp.Headers["Access-Control-Allow-Headers"])
}

func TestContainersAreIsolated(t *testing.T) {
	first, err := NewContainer(context.Background(), testConfig())
	require.NoError(t, err)
	second, err := NewContainer(context.Background(), testConfig())
	require.NoError(t, err)

	create := []byte(`{"httpMethod":"POST","path":"/todos","body":"{\"text\":\"only here\"}"}`)
	resp := first.Dispatcher.Handle(context.Background(), lambda.Normalize(create))
	require.Equal(t, 201, resp.StatusCode)

	count, _ := second.TodoStore.Count(context.Background())
	assert.Zero(t, count)
}
