package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/application"
	handlers "github.com/taskvault/taskvault/internal/interface/http"
	"github.com/taskvault/taskvault/internal/router/modules"
	"github.com/taskvault/taskvault/pkg/helpers"
	"github.com/taskvault/taskvault/pkg/validation"
)

var initOnce sync.Once

// env bundles a router wired exactly like production, with in-memory
// repositories standing in for Postgres.
type env struct {
	router *gin.Engine
	todos  *fakeTodoRepo
	users  *fakeUserRepo
	tokens *helpers.TokenManager
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	initOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Init()
	})

	todos := newFakeTodoRepo()
	users := newFakeUserRepo()
	tokens := helpers.NewTokenManager("test-secret", time.Hour)

	userSvc := application.NewUserService(users, tokens, nil, nil, nil)
	todoSvc := application.NewTodoService(todos, nil, nil)

	r := gin.New()
	root := &r.RouterGroup
	modules.NewUserModule(handlers.NewUserHandler(userSvc, nil), users, tokens, nil).Register(root)
	modules.NewTodoModule(handlers.NewTodoHandler(todoSvc, nil), users, tokens).Register(root)

	return &env{router: r, todos: todos, users: users, tokens: tokens}
}

// do runs one request through the router. A non-empty token is sent in the
// x-auth header.
func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth", token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signup registers a user over HTTP and returns its id and token.
func (e *env) signup(t *testing.T, email, password string) (id, token string) {
	t.Helper()
	w := e.do(t, "POST", "/users", "", gin.H{"email": email, "password": password})
	require.Equal(t, 200, w.Code, "signup failed: %s", w.Body.String())
	token = w.Header().Get("x-auth")
	require.NotEmpty(t, token)
	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.ID)
	return body.ID, token
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}
