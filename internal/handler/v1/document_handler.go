package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/ai"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/service"
)

// maxUploadBytes caps document uploads at 20 MiB, matching the inline
// payload limit of the extraction model.
const maxUploadBytes = 20 << 20

type DocumentHandler struct {
	ingestion *service.IngestionService
	query     *service.QueryService
	insurance *service.InsuranceService
}

func NewDocumentHandler(ingestion *service.IngestionService, query *service.QueryService, insurance *service.InsuranceService) *DocumentHandler {
	return &DocumentHandler{ingestion: ingestion, query: query, insurance: insurance}
}

// Upload ingests a multipart document: "file" plus "family_member_id".
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(c.PostForm("family_member_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid family_member_id: must be a valid UUID"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file exceeds the 20MB upload limit"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "could not read uploaded file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "could not read uploaded file"})
		return
	}

	doc, err := h.ingestion.Ingest(c.Request.Context(), &service.IngestCommand{
		File: ai.File{
			Name:     fileHeader.Filename,
			MIMEType: fileHeader.Header.Get("Content-Type"),
			Data:     data,
		},
		FamilyMemberID: memberID,
		UserID:         userID,
		IP:             c.ClientIP(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, doc)
}

// List returns the user's documents, newest clinical event first. Optional
// query params family_member_id and type narrow the result.
func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var memberID *uuid.UUID
	if raw := c.Query("family_member_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid family_member_id: must be a valid UUID"})
			return
		}
		memberID = &id
	}

	var docType *document.DocumentType
	if raw := c.Query("type"); raw != "" {
		t := document.DocumentType(raw)
		docType = &t
	}

	docs, err := h.query.ListDocuments(c.Request.Context(), userID, memberID, docType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if docs == nil {
		docs = []*document.HealthDocument{}
	}

	respondOK(c, docs)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	doc, err := h.query.GetDocument(c.Request.Context(), id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, doc)
}

type updateClaimStatusRequest struct {
	Status document.ClaimStatus `json:"status" binding:"required"`
}

// UpdateClaimStatus moves a receipt through the claim lifecycle.
func (h *DocumentHandler) UpdateClaimStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateClaimStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.insurance.UpdateClaimStatus(c.Request.Context(), id, userID, req.Status, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, doc)
}
