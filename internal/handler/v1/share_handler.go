package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/service"
)

// ShareHandler serves the unauthenticated doctor view. The token in the
// URL is the only credential.
type ShareHandler struct {
	access *service.AccessService
}

func NewShareHandler(access *service.AccessService) *ShareHandler {
	return &ShareHandler{access: access}
}

func (h *ShareHandler) Resolve(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "share link is invalid or has been revoked"})
		return
	}

	view, err := h.access.Resolve(c.Request.Context(), token, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, view)
}
