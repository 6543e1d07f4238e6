package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"event-platform/internal/model"
	"event-platform/internal/service"
	apperrors "event-platform/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	router := r.Group("/events", requireAuth)
	{
		router.POST("", h.Create)
		router.GET("active", h.ListActive)
		router.GET("history", h.ListPast)
		router.GET(":id", h.GetByID)
		router.PATCH(":id", h.Update)
	}
}

// CreateEventRequest start_time 需為帶時區的 RFC 3339
type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required,min=4"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time" binding:"required"`
	Location    string     `json:"location" binding:"required,min=4"`
}

// UpdateEventRequest 未帶的欄位維持原值；description 傳 null 會清空
type UpdateEventRequest struct {
	Title       *string        `json:"title" binding:"omitempty,min=4"`
	Description OptionalString `json:"description"`
	StartTime   *time.Time     `json:"start_time"`
	Location    *string        `json:"location" binding:"omitempty,min=4"`
}

// OptionalString 區分欄位缺席與明確的 null
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Create(c, userID, model.CreateEventParams{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   *req.StartTime,
		Location:    req.Location,
	})
	if err != nil {
		handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusOK, model.NewEventDetail(event))
}

func (h *EventHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var uri IDUri
	if err := BindUri(c, &uri); err != nil {
		return
	}
	var req UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	params := model.UpdateEventParams{
		Title:            req.Title,
		Description:      req.Description.Value,
		ClearDescription: req.Description.Set && req.Description.Value == nil,
		StartTime:        req.StartTime,
		Location:         req.Location,
	}
	if params.IsEmpty() {
		handleError(c, apperrors.New(apperrors.KindValidation, "at least one field is required"), "Update")
		return
	}

	event, err := h.service.Update(c, uri.ID, userID, params)
	if err != nil {
		handleError(c, err, "Update")
		return
	}
	c.JSON(http.StatusOK, model.NewEventDetail(event))
}

func (h *EventHandler) GetByID(c *gin.Context) {
	var uri IDUri
	if err := BindUri(c, &uri); err != nil {
		return
	}

	event, err := h.service.GetByID(c, uri.ID)
	if err != nil {
		handleError(c, err, "GetByID")
		return
	}
	c.JSON(http.StatusOK, model.NewEventDetail(event))
}

func (h *EventHandler) ListActive(c *gin.Context) {
	events, err := h.service.ListActive(c)
	if err != nil {
		handleError(c, err, "ListActive")
		return
	}
	c.JSON(http.StatusOK, model.NewEventListItems(events))
}

func (h *EventHandler) ListPast(c *gin.Context) {
	events, err := h.service.ListPast(c)
	if err != nil {
		handleError(c, err, "ListPast")
		return
	}
	c.JSON(http.StatusOK, model.NewEventListItems(events))
}
