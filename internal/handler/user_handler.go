package handler

import (
	"net/http"

	"event-platform/internal/model"
	"event-platform/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users  service.UserService
	events service.EventService
}

func NewUserHandler(users service.UserService, events service.EventService) *UserHandler {
	return &UserHandler{users: users, events: events}
}

func (h *UserHandler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	router := r.Group("/user", requireAuth)
	{
		router.GET("me", h.Me)
		router.PATCH("username", h.ChangeUsername)
		router.PATCH("password", h.ChangePassword)
		router.GET("events", h.ListEvents)
	}
}

type ChangeUsernameRequest struct {
	Username string `json:"username" binding:"required,min=5"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required,min=5"`
	NewPassword string `json:"new_password" binding:"required,min=5"`
}

type ListOwnEventsQuery struct {
	Active bool `form:"active"`
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetProfile(c, userID)
	if err != nil {
		handleError(c, err, "Me")
		return
	}
	c.JSON(http.StatusOK, model.NewUserProfile(user))
}

func (h *UserHandler) ChangeUsername(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ChangeUsernameRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	user, err := h.users.ChangeUsername(c, userID, req.Username)
	if err != nil {
		handleError(c, err, "ChangeUsername")
		return
	}
	c.JSON(http.StatusOK, model.NewUserProfile(user))
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	user, err := h.users.ChangePassword(c, userID, req.OldPassword, req.NewPassword)
	if err != nil {
		handleError(c, err, "ChangePassword")
		return
	}
	c.JSON(http.StatusOK, model.NewUserProfile(user))
}

// ListEvents ?active=true 只回傳尚未開始的活動
func (h *UserHandler) ListEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var query ListOwnEventsQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	var (
		events []*model.Event
		err    error
	)
	if query.Active {
		events, err = h.events.ListByOwnerActive(c, userID)
	} else {
		events, err = h.events.ListByOwner(c, userID)
	}
	if err != nil {
		handleError(c, err, "ListEvents")
		return
	}
	c.JSON(http.StatusOK, model.NewEventSummaries(events))
}
