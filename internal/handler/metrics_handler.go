package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imgoedu/imgo-backend/internal/response"
	"github.com/imgoedu/imgo-backend/internal/service"
)

type MetricsHandler struct {
	metricsService *service.MetricsService
}

func NewMetricsHandler(metricsService *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// GetMetrics godoc
// GET /api/metrics (admin)
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.metricsService.Compute(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"totals":     metrics.Totals,
		"funnel":     metrics.Funnel,
		"lastEvents": metrics.LastEvents,
	})
}
