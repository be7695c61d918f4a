package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/internal/application"
	"github.com/taskvault/taskvault/internal/domain/repository"
	"github.com/taskvault/taskvault/internal/interface/middleware"
	"github.com/taskvault/taskvault/pkg/response"
	"github.com/taskvault/taskvault/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Signup handles POST /users. The new token travels in the x-auth response
// header, never in the body.
func (h *UserHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	u, token, err := h.Svc.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("signup failed")
		}
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	c.Header(middleware.TokenHeader, token)
	c.JSON(http.StatusOK, response.FromUser(u))
}

// Login handles POST /users/login. Failures are a bare 400 with nothing that
// distinguishes an unknown email from a wrong password.
func (h *UserHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, nil)
		return
	}
	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, http.StatusBadRequest, nil)
		return
	}
	c.Header(middleware.TokenHeader, token)
	c.JSON(http.StatusOK, response.FromUser(u))
}

// Me handles GET /users/me using the identity the auth middleware resolved.
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, response.UserProfile{
		ID:    c.GetString(middleware.CtxUserIDKey),
		Email: c.GetString(middleware.CtxUserEmailKey),
	})
}

// Logout handles DELETE /users/me/token, revoking exactly the token that
// authenticated this request.
func (h *UserHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	token := c.GetString(middleware.CtxTokenKey)
	if err := h.Svc.Logout(c.Request.Context(), uid, token); err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
