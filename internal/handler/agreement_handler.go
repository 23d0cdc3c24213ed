package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imgoedu/imgo-backend/internal/model"
	"github.com/imgoedu/imgo-backend/internal/response"
	"github.com/imgoedu/imgo-backend/internal/service"
	"github.com/imgoedu/imgo-backend/internal/validator"
)

type AgreementHandler struct {
	agreementService *service.AgreementService
}

func NewAgreementHandler(agreementService *service.AgreementService) *AgreementHandler {
	return &AgreementHandler{agreementService: agreementService}
}

// CreateAgreement godoc
// POST /api/agreements (admin)
func (h *AgreementHandler) CreateAgreement(c *gin.Context) {
	var req model.CreateAgreementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, "missing universityId", fields)
		return
	}

	h.agreementService.Create(c.Request.Context(), req)
	response.OK(c, http.StatusOK, nil)
}

// ListAgreements godoc
// GET /api/agreements (admin)
func (h *AgreementHandler) ListAgreements(c *gin.Context) {
	agreements, err := h.agreementService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"agreements": agreements})
}
