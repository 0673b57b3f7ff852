package server

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"todo-lambda-api/internal/config"
	"todo-lambda-api/internal/handlers"
	"todo-lambda-api/internal/metrics"
	"todo-lambda-api/internal/repositories/memory"
	"todo-lambda-api/internal/services"
	"todo-lambda-api/pkg/lambda"
)

// Container holds all application dependencies for one execution context
type Container struct {
	Config      *config.Config
	TodoStore   *memory.TodoStore
	TodoService services.TodoService
	TodoHandler *handlers.TodoHandler
	Dispatcher  *handlers.Dispatcher
	Metrics     *metrics.Metrics
	Registry    *prometheus.Registry
}

// NewContainer creates a new dependency injection container. The store
// starts empty apart from any configured seed todos.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...memory.Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	store := memory.NewTodoStore(opts...)
	todoService := services.NewTodoService(store, store.Now)

	responses := lambda.NewResponseBuilder(lambda.CORSHeaders{
		AllowOrigin:  cfg.CORS.AllowOrigin,
		AllowHeaders: cfg.CORS.AllowHeaders,
		AllowMethods: cfg.CORS.AllowMethods,
	})

	todoHandler := handlers.NewTodoHandler(todoService, responses, m)
	dispatcher := handlers.NewDispatcher(todoHandler, responses,
		handlers.WithMetrics(m),
		handlers.WithRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	)

	if len(cfg.SeedTodos) > 0 {
		created, err := todoService.SeedTodos(ctx, cfg.SeedTodos)
		if err != nil {
			return nil, fmt.Errorf("failed to seed todos: %w", err)
		}
		m.SetTodoCount(created)
		logrus.WithFields(logrus.Fields{
			"count": created,
		}).Info("Seeded todo store")
	}

	return &Container{
		Config:      cfg,
		TodoStore:   store,
		TodoService: todoService,
		TodoHandler: todoHandler,
		Dispatcher:  dispatcher,
		Metrics:     m,
		Registry:    registry,
	}, nil
}

// Close releases the in-memory records
func (c *Container) Close() error {
	if c.TodoStore != nil {
		c.TodoStore.Reset()
	}
	return nil
}
