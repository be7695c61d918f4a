package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/taskvault/taskvault/internal/domain/repository"
	handlers "github.com/taskvault/taskvault/internal/interface/http"
	"github.com/taskvault/taskvault/internal/interface/middleware"
	"github.com/taskvault/taskvault/pkg/helpers"
)

// TodoModule wires the todo handlers behind the auth middleware.
// All routes: POST/GET /todos, GET/DELETE/PATCH /todos/:id.
type TodoModule struct {
	Handler *handlers.TodoHandler
	Users   repository.UserRepository
	Tokens  *helpers.TokenManager
}

func NewTodoModule(h *handlers.TodoHandler, users repository.UserRepository, tokens *helpers.TokenManager) *TodoModule {
	return &TodoModule{Handler: h, Users: users, Tokens: tokens}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	todos := rg.Group("/todos")
	todos.Use(middleware.Auth(m.Users, m.Tokens))
	{
		todos.POST("", m.Handler.Create)
		todos.GET("", m.Handler.List)
		todos.GET("/:id", m.Handler.Get)
		todos.DELETE("/:id", m.Handler.Delete)
		todos.PATCH("/:id", m.Handler.Update)
	}
}
