package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imgoedu/imgo-backend/internal/response"
	"github.com/imgoedu/imgo-backend/internal/service"
)

type InsightsHandler struct {
	insightsService *service.InsightsService
}

func NewInsightsHandler(insightsService *service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// GetInsights godoc
// GET /api/insights (admin)
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	out, err := h.insightsService.Compute()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"institutions": out.Institutions,
		"benchmarks":   out.Benchmarks,
	})
}
