package bolt

import (
	"context"
	"encoding/json"

	boltlib "go.etcd.io/bbolt"

	"github.com/gotodo/backend/domain"
	"github.com/gotodo/backend/repository"
)

// Bucket is the single bucket holding todo documents, key = id.
const Bucket = "todos"

type todoRepository struct {
	db     *boltlib.DB
	bucket []byte
}

// NewTodoRepository returns a bbolt-backed implementation of
// TodoRepository for embedded, single-node deployments.
func NewTodoRepository(db *boltlib.DB) repository.TodoRepository {
	return &todoRepository{
		db:     db,
		bucket: []byte(Bucket),
	}
}

func (r *todoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	todos := make([]domain.Todo, 0)

	err := r.db.View(func(tx *boltlib.Tx) error {
		return tx.Bucket(r.bucket).ForEach(func(k, v []byte) error {
			var todo domain.Todo
			if err := json.Unmarshal(v, &todo); err != nil {
				return err
			}
			todos = append(todos, todo)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	var todo domain.Todo

	err := r.db.View(func(tx *boltlib.Tx) error {
		v := tx.Bucket(r.bucket).Get([]byte(id))
		if v == nil {
			return domain.ErrTodoNotFound
		}
		return json.Unmarshal(v, &todo)
	})
	if err != nil {
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
	err = r.db.Update(func(tx *boltlib.Tx) error {
		return tx.Bucket(r.bucket).Put([]byte(todo.ID), payload)
	})
	if err != nil {
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
	err = r.db.Update(func(tx *boltlib.Tx) error {
		b := tx.Bucket(r.bucket)
		if b.Get([]byte(todo.ID)) == nil {
			return domain.ErrTodoNotFound
		}
		return b.Put([]byte(todo.ID), payload)
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *todoRepository) Delete(ctx context.Context, id string) error {
	return r.db.Update(func(tx *boltlib.Tx) error {
		b := tx.Bucket(r.bucket)
		if b.Get([]byte(id)) == nil {
			return domain.ErrTodoNotFound
		}
		return b.Delete([]byte(id))
	})
}
