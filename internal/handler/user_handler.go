package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/huellitas-app/service-adoption/internal/application"
	"github.com/huellitas-app/service-adoption/internal/platform/response"
)

// UserHandler handles registration, login and profile requests.
type UserHandler struct {
	service *application.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers all user routes.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	users := r.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/google/register", h.RegisterExternal)
		users.POST("/google/login", h.LoginExternal)
		users.GET("/profile", authMW, h.Profile)
	}
}

// Register creates a local account.
func (h *UserHandler) Register(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"user": result.User, "token": result.Token})
}

// Login authenticates with email and password.
func (h *UserHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"user": result.User, "token": result.Token})
}

// RegisterExternal creates or returns an account backed by the identity provider.
func (h *UserHandler) RegisterExternal(c *gin.Context) {
	var req application.ExternalRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}

	result, err := h.service.RegisterExternal(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{"user": result.User, "token": result.Token}
	if result.Created {
		response.Created(c, payload)
		return
	}
	response.OK(c, payload)
}

// LoginExternal authenticates an account backed by the identity provider.
func (h *UserHandler) LoginExternal(c *gin.Context) {
	var req application.ExternalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}

	result, err := h.service.LoginExternal(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"user": result.User, "token": result.Token})
}

// Profile returns the caller's account.
func (h *UserHandler) Profile(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	result, err := h.service.Profile(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"user": result})
}
