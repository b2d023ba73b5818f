package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gotodo/backend/domain"
	"github.com/gotodo/backend/repository"
)

type todoRepository struct {
	pool *pgxpool.Pool
}

// NewTodoRepository returns a Postgres-backed implementation of
// TodoRepository. Todos are stored one JSONB document per row, keyed by id.
func NewTodoRepository(pool *pgxpool.Pool) repository.TodoRepository {
	return &todoRepository{pool: pool}
}

func (r *todoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	const query = `SELECT doc FROM todos`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var todo domain.Todo
		if err := json.Unmarshal(doc, &todo); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

func (r *todoRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	const query = `SELECT doc FROM todos WHERE id = $1`

	var doc []byte
	if err := r.pool.QueryRow(ctx, query, id).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}

	var todo domain.Todo
	if err := json.Unmarshal(doc, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if todo == nil || todo.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	const query = `INSERT INTO todos (id, doc) VALUES ($1, $2)`

	doc, err := json.Marshal(todo)
	if err != nil {
		return nil, err
	}
	if _, err := r.pool.Exec(ctx, query, todo.ID, doc); err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *todoRepository) Replace(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if todo == nil || todo.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	const query = `UPDATE todos SET doc = $2 WHERE id = $1`

	doc, err := json.Marshal(todo)
	if err != nil {
		return nil, err
	}
	tag, err := r.pool.Exec(ctx, query, todo.ID, doc)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTodoNotFound
	}
	return todo, nil
}

func (r *todoRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM todos WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}
