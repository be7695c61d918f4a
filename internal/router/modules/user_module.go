package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/taskvault/taskvault/internal/domain/repository"
	handlers "github.com/taskvault/taskvault/internal/interface/http"
	"github.com/taskvault/taskvault/internal/interface/middleware"
	"github.com/taskvault/taskvault/pkg/helpers"
)

// UserModule wires the user handlers.
// Public: POST /users (signup), POST /users/login — both rate limited.
// Protected: GET /users/me, DELETE /users/me/token.
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repository.UserRepository
	Tokens  *helpers.TokenManager
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, users repository.UserRepository, tokens *helpers.TokenManager, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Users: users, Tokens: tokens, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/users", signupLimiter, m.Handler.Signup)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.Users, m.Tokens))
	{
		auth.GET("/me", m.Handler.Me)
		auth.DELETE("/me/token", m.Handler.Logout)
	}
}
