package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/internal/application"
	"github.com/taskvault/taskvault/internal/domain/repository"
	"github.com/taskvault/taskvault/internal/interface/middleware"
	"github.com/taskvault/taskvault/pkg/response"
	"github.com/taskvault/taskvault/pkg/validation"
)

type TodoHandler struct {
	Svc    *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger}
}

type createTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

// updateTodoRequest binds only the two mutable fields; anything else in the
// payload is dropped, never merged. completedAt in particular is
// server-derived and ignored if submitted.
type updateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// validID reports whether id is a well-formed identifier. Malformed ids are
// rejected before any persistence call.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Create handles POST /todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	ownerID := c.GetString(middleware.CtxUserIDKey)
	t, err := h.Svc.Create(c.Request.Context(), ownerID, req.Text)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": response.FromTodo(t)})
}

// List handles GET /todos
func (h *TodoHandler) List(c *gin.Context) {
	ownerID := c.GetString(middleware.CtxUserIDKey)
	todos, err := h.Svc.List(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": response.FromTodos(todos)})
}

// Get handles GET /todos/:id
func (h *TodoHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	ownerID := c.GetString(middleware.CtxUserIDKey)
	t, err := h.Svc.Get(c.Request.Context(), id, ownerID)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": response.FromTodo(t)})
}

// Delete handles DELETE /todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	ownerID := c.GetString(middleware.CtxUserIDKey)
	t, err := h.Svc.Delete(c.Request.Context(), id, ownerID)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": response.FromTodo(t)})
}

// Update handles PATCH /todos/:id
func (h *TodoHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	ownerID := c.GetString(middleware.CtxUserIDKey)
	t, err := h.Svc.Update(c.Request.Context(), id, ownerID, application.UpdateInput{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": response.FromTodo(t)})
}

// writeLookupError maps a gateway failure on an id-scoped route. A missing
// row and another owner's row produce byte-identical 404s so existence never
// leaks; anything else is a 400 with the raw detail.
func (h *TodoHandler) writeLookupError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if h.Logger != nil {
		h.Logger.WithError(err).Warn("todo gateway error")
	}
	response.Error(c, http.StatusBadRequest, err.Error())
}
