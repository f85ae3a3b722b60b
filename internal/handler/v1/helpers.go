package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/ai"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/family"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insurance"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/service"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, document.ErrDocumentNotFound),
		errors.Is(err, family.ErrMemberNotFound),
		errors.Is(err, doctor.ErrDoctorNotFound),
		errors.Is(err, insurance.ErrPolicyNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, document.ErrInvalidDocumentType),
		errors.Is(err, document.ErrInvalidClaimStatus),
		errors.Is(err, document.ErrNotAReceipt):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, document.ErrClaimTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, ai.ErrExtractionFailed):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(),
			Code:  "EXTRACTION_FAILED",
		})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})

	case errors.Is(err, doctor.ErrAccessDenied):
		// Unmatched share tokens look identical to forbidden ones.
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "share link is invalid or has been revoked"})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// currentUser returns the authenticated user set by the auth middleware.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return uuid.Nil, false
	}
	return id, true
}
