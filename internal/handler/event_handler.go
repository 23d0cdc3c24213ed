package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imgoedu/imgo-backend/internal/model"
	"github.com/imgoedu/imgo-backend/internal/response"
	"github.com/imgoedu/imgo-backend/internal/service"
	"github.com/imgoedu/imgo-backend/internal/validator"
)

type EventHandler struct {
	eventService *service.EventService
}

func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// RecordEvent godoc
// POST /api/events
func (h *EventHandler) RecordEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, "missing sessionId/name", fields)
		return
	}

	h.eventService.Record(c.Request.Context(), req)
	response.OK(c, http.StatusOK, nil)
}
