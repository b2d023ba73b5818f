package memory

import (
	"context"
	"sync"

	"github.com/gotodo/backend/domain"
	"github.com/gotodo/backend/repository"
)

type todoRepository struct {
	mu    sync.RWMutex
	todos map[string]domain.Todo
}

// NewTodoRepository returns an in-memory TodoRepository. It backs the
// "memory" store driver and serves as the test double for handler and
// usecase tests.
func NewTodoRepository() repository.TodoRepository {
	return &todoRepository{
		todos: make(map[string]domain.Todo),
	}
}

func (r *todoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]domain.Todo, 0, len(r.todos))
	for _, todo := range r.todos {
		todos = append(todos, todo)
	}
	return todos, nil
}

func (r *todoRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todo, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return &todo, nil
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if todo == nil || todo.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.todos[todo.ID] = *todo
	return todo, nil
}

func (r *todoRepository) Replace(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if todo == nil || todo.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[todo.ID]; !ok {
		return nil, domain.ErrTodoNotFound
	}
	r.todos[todo.ID] = *todo
	return todo, nil
}

func (r *todoRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}
