package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/service"
)

type InsuranceHandler struct {
	svc *service.InsuranceService
}

func NewInsuranceHandler(svc *service.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{svc: svc}
}

func (h *InsuranceHandler) GetPolicy(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	policy, err := h.svc.GetPolicy(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, policy)
}
