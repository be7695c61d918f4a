package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/internal/application"
	pginfra "github.com/taskvault/taskvault/internal/infrastructure/postgres"
	handlers "github.com/taskvault/taskvault/internal/interface/http"
	"github.com/taskvault/taskvault/internal/router/modules"
	"github.com/taskvault/taskvault/pkg/events"
	"github.com/taskvault/taskvault/pkg/helpers"
)

// Deps are the process-lifetime collaborators constructed in main and
// threaded through explicitly; there is no package-level state.
type Deps struct {
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Tokens *helpers.TokenManager
	Events *events.Publisher
}

// InitModules builds repositories, services, and handlers from Deps and
// registers all feature modules. Call once during startup.
func InitModules(r *Registry, d Deps) {
	users := pginfra.NewUserRepository(d.Pool)
	todos := pginfra.NewTodoRepository(d.Pool)

	userSvc := application.NewUserService(users, d.Tokens, d.Redis, d.Logger, d.Events)
	todoSvc := application.NewTodoService(todos, d.Logger, d.Events)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, d.Logger), users, d.Tokens, d.Redis))
	r.Add(modules.NewTodoModule(handlers.NewTodoHandler(todoSvc, d.Logger), users, d.Tokens))
}
