package handler

import (
	"net/http"

	"event-platform/internal/model"
	"event-platform/internal/service"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service service.TicketService
}

func NewTicketHandler(service service.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	router := r.Group("/tickets", requireAuth)
	{
		router.POST("", h.Register)
		router.GET("", h.ListMine)
		router.DELETE(":id", h.Cancel)
	}
}

type RegisterTicketRequest struct {
	EventID int `json:"event_id" binding:"required,min=1"`
}

func (h *TicketHandler) Register(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req RegisterTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	ticket, err := h.service.RegisterForEvent(c, req.EventID, userID)
	if err != nil {
		handleError(c, err, "Register")
		return
	}
	c.JSON(http.StatusCreated, model.NewTicketDetail(ticket))
}

func (h *TicketHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var uri IDUri
	if err := BindUri(c, &uri); err != nil {
		return
	}

	if err := h.service.Cancel(c, uri.ID, userID); err != nil {
		handleError(c, err, "Cancel")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TicketHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tickets, err := h.service.ListByParticipant(c, userID)
	if err != nil {
		handleError(c, err, "ListMine")
		return
	}
	c.JSON(http.StatusOK, model.NewTicketDetails(tickets))
}
