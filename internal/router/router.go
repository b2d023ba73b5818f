package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/gotodo/backend/api/handler"
)

type Handlers struct {
	Home   *apiHandler.HomeHandler
	Todo   *apiHandler.TodoHandler
	Health *apiHandler.HealthHandler
}

// New binds each handler to its method and path pattern. There is no
// middleware chain; every route dispatches straight into its handler.
func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/", handlers.Home.Index)
	r.GET("/health", handlers.Health.Check)

	r.GET("/todos", handlers.Todo.GetTodos)
	r.POST("/todos", handlers.Todo.CreateTodo)
	r.GET("/todos/{id}", handlers.Todo.GetTodo)
	r.PUT("/todos/{id}", handlers.Todo.UpdateTodo)
	r.DELETE("/todos/{id}", handlers.Todo.DeleteTodo)

	return r
}
