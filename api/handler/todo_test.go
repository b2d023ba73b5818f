package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/gotodo/backend/api/handler"
	"github.com/gotodo/backend/domain"
	"github.com/gotodo/backend/internal/infrastructure/monitor"
	approuter "github.com/gotodo/backend/internal/router"
	"github.com/gotodo/backend/pkg/httpcontext"
	"github.com/gotodo/backend/repository"
	"github.com/gotodo/backend/repository/memory"
	todoUC "github.com/gotodo/backend/usecase/todo"
)

// brokenRepo simulates a backend outage: every operation fails with a
// connectivity-style error that is not a NotFound outcome.
type brokenRepo struct {
	err error
}

func (r brokenRepo) List(ctx context.Context) ([]domain.Todo, error) { return nil, r.err }
func (r brokenRepo) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	return nil, r.err
}
func (r brokenRepo) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	return nil, r.err
}
func (r brokenRepo) Replace(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	return nil, r.err
}
func (r brokenRepo) Delete(ctx context.Context, id string) error { return r.err }

func newTestHandler() fasthttp.RequestHandler {
	return newHandlerWithRepo(memory.NewTodoRepository())
}

func newHandlerWithRepo(repo repository.TodoRepository) fasthttp.RequestHandler {
	uc := todoUC.New(repo, nil)
	adapter := httpcontext.NewAdapter(time.Second)
	mon := monitor.New("memory", func(ctx context.Context) error { return nil }, time.Minute, nil)

	handlers := approuter.Handlers{
		Home:   apiHandler.NewHomeHandler(adapter, nil),
		Todo:   apiHandler.NewTodoHandler(uc, adapter, nil),
		Health: apiHandler.NewHealthHandler(mon, adapter, nil),
	}
	return approuter.New(handlers).Handler
}

func doRequest(t *testing.T, h fasthttp.RequestHandler, method, uri, body string) *fasthttp.RequestCtx {
	t.Helper()

	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.Header.SetContentType("application/json")
		req.SetBodyString(body)
	}

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	h(&ctx)
	return &ctx
}

func decodeTodo(t *testing.T, ctx *fasthttp.RequestCtx) domain.Todo {
	t.Helper()

	var todo domain.Todo
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &todo))
	return todo
}

func TestCreateTodo_MintsIDAndForcesIncomplete(t *testing.T) {
	h := newTestHandler()

	ctx := doRequest(t, h, http.MethodPost, "/todos",
		`{"text":"x","deadline":"2024-01-01","completed":true,"id":"fake"}`)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	created := decodeTodo(t, ctx)
	assert.NotEqual(t, "fake", created.ID)
	assert.False(t, created.Completed)
	assert.Equal(t, "x", created.Text)
	assert.Equal(t, "2024-01-01", created.Deadline)

	_, err := uuid.Parse(created.ID)
	assert.NoError(t, err)
}

func TestCreateTodo_InvalidPayload(t *testing.T) {
	h := newTestHandler()

	ctx := doRequest(t, h, http.MethodPost, "/todos", `{not json`)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"error":"Invalid payload"}`, string(ctx.Response.Body()))
}

func TestCreateTodo_RequiredFields(t *testing.T) {
	h := newTestHandler()

	ctx := doRequest(t, h, http.MethodPost, "/todos", `{"deadline":"2024-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"error":"text is required"}`, string(ctx.Response.Body()))

	ctx = doRequest(t, h, http.MethodPost, "/todos", `{"text":"Buy milk"}`)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"error":"deadline is required"}`, string(ctx.Response.Body()))
}

func TestGetTodo_RoundTrip(t *testing.T) {
	h := newTestHandler()

	ctx := doRequest(t, h, http.MethodPost, "/todos", `{"text":"Buy milk","deadline":"2024-05-01"}`)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	created := decodeTodo(t, ctx)

	ctx = doRequest(t, h, http.MethodGet, "/todos/"+created.ID, "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, created, decodeTodo(t, ctx))
}

func TestGetTodo_Unknown(t *testing.T) {
	h := newTestHandler()

	ctx := doRequest(t, h, http.MethodGet, "/todos/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"error":"Not found"}`, string(ctx.Response.Body()))
}

func TestUpdateTodo_PathIDWins(t *testing.T) {
	h := newTestHandler()

	ctx := doRequest(t, h, http.MethodPost, "/todos", `{"text":"Buy milk","deadline":"2024-05-01"}`)
	created := decodeTodo(t, ctx)

	body := `{"id":"someone-else","text":"Buy milk","deadline":"2024-05-01","completed":true}`
	ctx = doRequest(t, h, http.MethodPut, "/todos/"+created.ID, body)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	replaced := decodeTodo(t, ctx)
	assert.Equal(t, created.ID, replaced.ID)
	assert.True(t, replaced.Completed)

	// the body's id must not have spawned a second record
	ctx = doRequest(t, h, http.MethodGet, "/todos/someone-else", "")
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())

	ctx = doRequest(t, h, http.MethodGet, "/todos/"+created.ID, "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.True(t, decodeTodo(t, ctx).Completed)
}

func TestUpdateTodo_Unknown(t *testing.T) {
	h := newTestHandler()

	ctx := doRequest(t, h, http.MethodPut, "/todos/"+uuid.NewString(),
		`{"text":"Buy milk","deadline":"2024-05-01","completed":true}`)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"error":"Not found"}`, string(ctx.Response.Body()))
}

func TestDeleteTodo_TwiceThenGone(t *testing.T) {
	h := newTestHandler()

	ctx := doRequest(t, h, http.MethodPost, "/todos", `{"text":"Buy milk","deadline":"2024-05-01"}`)
	created := decodeTodo(t, ctx)

	ctx = doRequest(t, h, http.MethodDelete, "/todos/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())

	ctx = doRequest(t, h, http.MethodDelete, "/todos/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"error":"Not found"}`, string(ctx.Response.Body()))
}

func TestDeleteTodo_Unknown(t *testing.T) {
	h := newTestHandler()

	ctx := doRequest(t, h, http.MethodDelete, "/todos/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}

func TestListTodos_ReflectsDeletes(t *testing.T) {
	h := newTestHandler()

	ctx := doRequest(t, h, http.MethodPost, "/todos", `{"text":"A","deadline":"2024-05-01"}`)
	a := decodeTodo(t, ctx)
	ctx = doRequest(t, h, http.MethodPost, "/todos", `{"text":"B","deadline":"2024-05-02"}`)
	b := decodeTodo(t, ctx)

	ctx = doRequest(t, h, http.MethodDelete, "/todos/"+a.ID, "")
	require.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())

	ctx = doRequest(t, h, http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	var todos []domain.Todo
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &todos))
	require.Len(t, todos, 1)
	assert.Equal(t, b.ID, todos[0].ID)
}

func TestListTodos_EmptyIsArray(t *testing.T) {
	h := newTestHandler()

	ctx := doRequest(t, h, http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `[]`, string(ctx.Response.Body()))
}

func TestStoreFailure_NotMaskedAsNotFound(t *testing.T) {
	h := newHandlerWithRepo(brokenRepo{err: errors.New("connection refused")})

	cases := []struct {
		name   string
		method string
		uri    string
		body   string
	}{
		{"list", http.MethodGet, "/todos", ""},
		{"get", http.MethodGet, "/todos/" + uuid.NewString(), ""},
		{"create", http.MethodPost, "/todos", `{"text":"Buy milk","deadline":"2024-05-01"}`},
		{"update", http.MethodPut, "/todos/" + uuid.NewString(), `{"text":"Buy milk","deadline":"2024-05-01"}`},
		{"delete", http.MethodDelete, "/todos/" + uuid.NewString(), ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := doRequest(t, h, tc.method, tc.uri, tc.body)
			assert.Equal(t, http.StatusInternalServerError, ctx.Response.StatusCode())
			assert.JSONEq(t, `{"error":"Internal server error"}`, string(ctx.Response.Body()))
		})
	}
}

func TestHome_ServesPage(t *testing.T) {
	h := newTestHandler()

	ctx := doRequest(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Header.ContentType()), "text/html")
	assert.Contains(t, string(ctx.Response.Body()), "TODO List")
}
