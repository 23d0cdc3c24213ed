package handler

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imgoedu/imgo-backend/internal/response"
)

// SystemHandler serves health and the static dataset artifact.
type SystemHandler struct {
	datasetFile string
}

func NewSystemHandler(datasetFile string) *SystemHandler {
	return &SystemHandler{datasetFile: datasetFile}
}

// Health godoc
// GET /api/health
func (h *SystemHandler) Health(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{"time": time.Now().UTC().Format(time.RFC3339)})
}

// GetUniversities godoc
// GET /api/universities
//
// Serves the artifact produced by the last linkage run as a plain file, the
// same way the frontend would fetch it from static hosting.
func (h *SystemHandler) GetUniversities(c *gin.Context) {
	if _, err := os.Stat(h.datasetFile); err != nil {
		response.Fail(c, http.StatusNotFound, "dataset_not_built")
		return
	}
	c.Header("Content-Type", "application/json; charset=utf-8")
	c.File(h.datasetFile)
}
