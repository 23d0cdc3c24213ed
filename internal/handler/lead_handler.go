package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imgoedu/imgo-backend/internal/model"
	"github.com/imgoedu/imgo-backend/internal/response"
	"github.com/imgoedu/imgo-backend/internal/service"
	"github.com/imgoedu/imgo-backend/internal/validator"
)

type LeadHandler struct {
	leadService *service.LeadService
}

func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// SubmitLead godoc
// POST /api/leads
func (h *LeadHandler) SubmitLead(c *gin.Context) {
	var req model.CreateLeadRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, "missing email/universityId/consent", fields)
		return
	}

	h.leadService.Submit(c.Request.Context(), req)
	response.OK(c, http.StatusOK, nil)
}

// ListLeads godoc
// GET /api/leads (admin)
func (h *LeadHandler) ListLeads(c *gin.Context) {
	leads, err := h.leadService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"leads": leads})
}
