package todo

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gotodo/backend/domain"
	appLogger "github.com/gotodo/backend/pkg/logger"
	"github.com/gotodo/backend/repository"
)

// UseCase enforces the todo invariants in front of whichever store
// driver is configured: ids are minted here on create, a fresh todo is
// never born completed, and a replace always stores under the addressed id.
type UseCase struct {
	todos  repository.TodoRepository
	logger *zap.Logger
}

func New(todos repository.TodoRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		todos:  todos,
		logger: logger,
	}
}

func (uc *UseCase) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	todos, err := uc.todos.List(ctx)
	if err != nil {
		appLogger.WithRequestID(ctx, uc.logger).Error("failed to list todos", zap.Error(err))
		return nil, err
	}
	return todos, nil
}

func (uc *UseCase) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	todo, err := uc.todos.GetByID(ctx, id)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			appLogger.WithRequestID(ctx, uc.logger).Error("failed to get todo", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return todo, nil
}

// CreateTodo mints the id and forces completed=false, overriding
// whatever the client sent for either field.
func (uc *UseCase) CreateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if todo == nil {
		return nil, domain.ErrInvalidPayload
	}

	todo.ID = uuid.NewString()
	todo.Completed = false

	created, err := uc.todos.Create(ctx, todo)
	if err != nil {
		appLogger.WithRequestID(ctx, uc.logger).Error("failed to create todo", zap.Error(err))
		return nil, err
	}
	return created, nil
}

// ReplaceTodo stores the document under id regardless of any id value
// carried in the body, so a record's key can never drift from its
// addressed location.
func (uc *UseCase) ReplaceTodo(ctx context.Context, id string, todo *domain.Todo) (*domain.Todo, error) {
	if todo == nil {
		return nil, domain.ErrInvalidPayload
	}

	todo.ID = id

	replaced, err := uc.todos.Replace(ctx, todo)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			appLogger.WithRequestID(ctx, uc.logger).Error("failed to replace todo", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return replaced, nil
}

func (uc *UseCase) DeleteTodo(ctx context.Context, id string) error {
	err := uc.todos.Delete(ctx, id)
	if err != nil && !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		appLogger.WithRequestID(ctx, uc.logger).Error("failed to delete todo", zap.String("id", id), zap.Error(err))
	}
	return err
}
