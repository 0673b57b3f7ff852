package lambda

import (
	"context"
	"io"
	"sync"
	"time"
)

// ContextManager owns state that lives as long as one execution context.
// The value is built on first use, reused by every warm invocation and
// rebuilt after Cleanup. A failed build is retried on the next call.
type ContextManager[T any] struct {
	mu          sync.RWMutex
	factory     func(ctx context.Context) (T, error)
	value       T
	initialized bool
	createdAt   time.Time
	lastUsed    time.Time
	invocations int64
}

// NewContextManager creates a manager that builds its value with factory
func NewContextManager[T any](factory func(ctx context.Context) (T, error)) *ContextManager[T] {
	return &ContextManager[T]{factory: factory}
}

// Get returns the shared value, building it if needed. cold is true when
// this call performed the build.
func (cm *ContextManager[T]) Get(ctx context.Context) (value T, cold bool, err error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if !cm.initialized {
		built, err := cm.factory(ctx)
		if err != nil {
			var zero T
			return zero, false, err
		}
		cm.value = built
		cm.initialized = true
		cm.createdAt = time.Now()
		cold = true
	}

	cm.invocations++
	cm.lastUsed = time.Now()
	return cm.value, cold, nil
}

// Invocations returns how many calls were served by the current value
func (cm *ContextManager[T]) Invocations() int64 {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.invocations
}

// Age returns how long the current value has existed
func (cm *ContextManager[T]) Age() time.Duration {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	if !cm.initialized {
		return 0
	}
	return time.Since(cm.createdAt)
}

// Cleanup discards the value, closing it when it implements io.Closer.
// The next Get behaves like a cold start.
func (cm *ContextManager[T]) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if !cm.initialized {
		return nil
	}

	var closeErr error
	if closer, ok := any(cm.value).(io.Closer); ok {
		closeErr = closer.Close()
	}

	var zero T
	cm.value = zero
	cm.initialized = false
	cm.invocations = 0
	return closeErr
}
