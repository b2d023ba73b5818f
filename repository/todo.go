package repository

import (
	"context"

	"github.com/gotodo/backend/domain"
)

// TodoRepository abstracts the keyed-document backend. Implementations
// must return domain.ErrTodoNotFound when the addressed document does
// not exist; any other backend failure propagates as-is.
type TodoRepository interface {
	List(ctx context.Context) ([]domain.Todo, error)
	GetByID(ctx context.Context, id string) (*domain.Todo, error)
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	Replace(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	Delete(ctx context.Context, id string) error
}
