package handler

import (
	"net/http"

	"event-platform/internal/model"
	"event-platform/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users service.UserService
	auth  service.AuthService
}

func NewAuthHandler(users service.UserService, auth service.AuthService) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

// RegisterRoutes loginLimit 掛在 login 上，其餘不限制
func (h *AuthHandler) RegisterRoutes(r gin.IRouter, loginLimit gin.HandlerFunc) {
	router := r.Group("/auth")
	{
		router.POST("register", h.Register)
		router.POST("login", loginLimit, h.Login)
	}
}

type CredentialsRequest struct {
	Username string `json:"username" binding:"required,min=5"`
	Password string `json:"password" binding:"required,min=5"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	user, err := h.users.Register(c, req.Username, req.Password)
	if err != nil {
		handleError(c, err, "Register")
		return
	}
	c.JSON(http.StatusOK, model.NewUserProfile(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	token, err := h.auth.Login(c, req.Username, req.Password)
	if err != nil {
		handleError(c, err, "Login")
		return
	}
	c.JSON(http.StatusOK, token)
}
