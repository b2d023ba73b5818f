package redis

import (
	"context"
	"encoding/json"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/gotodo/backend/domain"
	"github.com/gotodo/backend/repository"
)

type todoRepository struct {
	client *redislib.Client
	prefix string
}

// NewTodoRepository creates a Redis-backed todo repository. Each todo is
// stored as a JSON document under "todo:<id>" with no expiry.
func NewTodoRepository(client *redislib.Client) repository.TodoRepository {
	return &todoRepository{
		client: client,
		prefix: "todo:",
	}
}

func (r *todoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	todos := make([]domain.Todo, 0)

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		payload, err := r.client.Get(ctx, iter.Val()).Result()
		if err != nil {
			if err == redislib.Nil {
				// deleted between SCAN and GET
				continue
			}
			return nil, err
		}
		var todo domain.Todo
		if err := json.Unmarshal([]byte(payload), &todo); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	result, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}

	var todo domain.Todo
	if err := json.Unmarshal([]byte(result), &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if todo == nil || todo.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	payload, err := json.Marshal(todo)
	if err != nil {
		return nil, err
	}
	if err := r.client.Set(ctx, r.key(todo.ID), payload, 0).Err(); err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *todoRepository) Replace(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if todo == nil || todo.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	payload, err := json.Marshal(todo)
	if err != nil {
		return nil, err
	}

	// SET ... XX succeeds only when the key already exists.
	ok, err := r.client.SetXX(ctx, r.key(todo.ID), payload, 0).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return todo, nil
}

func (r *todoRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *todoRepository) key(id string) string {
	return fmt.Sprintf("%s%s", r.prefix, id)
}
