package handler

import (
	"net/http"

	"event-platform/internal/model"
	"event-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler 權限檢查在 service 內，這裡只要求登入
type AdminHandler struct {
	users      service.UserService
	events     service.EventService
	activities service.ActivityService
}

func NewAdminHandler(users service.UserService, events service.EventService, activities service.ActivityService) *AdminHandler {
	return &AdminHandler{users: users, events: events, activities: activities}
}

func (h *AdminHandler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	router := r.Group("/admin", requireAuth)
	{
		router.GET("users", h.ListUsers)
		router.POST("users/:id/ban", h.BanUser)
		router.DELETE("users/:id/ban", h.BanUser)
		router.DELETE("events/:id", h.DeleteEvent)
		router.GET("activity", h.ListActivity)
	}
}

type ListActivityQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	users, err := h.users.ListAll(c, callerID)
	if err != nil {
		handleError(c, err, "ListUsers")
		return
	}

	views := make([]model.AdminUserView, 0, len(users))
	for _, u := range users {
		views = append(views, model.NewAdminUserView(u))
	}
	c.JSON(http.StatusOK, views)
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	var uri IDUri
	if err := BindUri(c, &uri); err != nil {
		return
	}

	user, err := h.users.Ban(c, uri.ID, callerID)
	if err != nil {
		handleError(c, err, "BanUser")
		return
	}
	c.JSON(http.StatusOK, model.NewAdminUserView(user))
}

func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	var uri IDUri
	if err := BindUri(c, &uri); err != nil {
		return
	}

	if err := h.events.DeleteByAdmin(c, uri.ID, callerID); err != nil {
		handleError(c, err, "DeleteEvent")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ListActivity(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	var query ListActivityQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	activities, err := h.activities.List(c, callerID, query.Limit)
	if err != nil {
		handleError(c, err, "ListActivity")
		return
	}
	c.JSON(http.StatusOK, activities)
}
