package v1

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insight"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insurance"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/service"
)

// AssistantHandler fronts the AI orchestration surface: insights, chat,
// visit summaries, and the claim co-pilot.
type AssistantHandler struct {
	assistant *service.AssistantService
	query     *service.QueryService
	insurance *service.InsuranceService
}

func NewAssistantHandler(assistant *service.AssistantService, query *service.QueryService, insurance *service.InsuranceService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, query: query, insurance: insurance}
}

type insightsRequest struct {
	FamilyMemberID *uuid.UUID `json:"family_member_id"`
	Language       string     `json:"language"`
}

// Insights generates health insights over the caller's documents and
// optionally translates them. Generation failures degrade to an empty
// list rather than an error.
func (h *AssistantHandler) Insights(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req insightsRequest
	if !bindJSON(c, &req) {
		return
	}

	docs, err := h.query.ListDocuments(c.Request.Context(), userID, req.FamilyMemberID, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	insights := h.assistant.HealthInsights(c.Request.Context(), docs)
	if req.Language != "" && req.Language != "English" {
		insights = h.assistant.TranslateInsights(c.Request.Context(), insights, req.Language)
	}
	if insights == nil {
		insights = []insight.HealthInsight{}
	}

	respondOK(c, insights)
}

type chatRequest struct {
	Message        string     `json:"message" binding:"required"`
	FamilyMemberID *uuid.UUID `json:"family_member_id"`
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req chatRequest
	if !bindJSON(c, &req) {
		return
	}

	docs, err := h.query.ListDocuments(c.Request.Context(), userID, req.FamilyMemberID, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	reply := h.assistant.ChatResponse(c.Request.Context(), req.Message, docs)
	respondOK(c, gin.H{"reply": reply})
}

type visitSummaryRequest struct {
	FamilyMemberID *uuid.UUID `json:"family_member_id"`
}

func (h *AssistantHandler) VisitSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req visitSummaryRequest
	if !bindJSON(c, &req) {
		return
	}

	docs, err := h.query.ListDocuments(c.Request.Context(), userID, req.FamilyMemberID, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	summary := h.assistant.VisitSummary(c.Request.Context(), docs)
	respondOK(c, gin.H{"summary": summary})
}

type billAnalysisRequest struct {
	DocumentID uuid.UUID `json:"document_id" binding:"required"`
}

func (h *AssistantHandler) AnalyzeBill(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req billAnalysisRequest
	if !bindJSON(c, &req) {
		return
	}

	bill, err := h.query.GetDocument(c.Request.Context(), req.DocumentID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	policy := h.policyOrNil(c, userID)

	analysis, err := h.assistant.AnalyzeBill(c.Request.Context(), bill, policy)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"analysis": analysis})
}

type appealDraftRequest struct {
	DocumentID uuid.UUID `json:"document_id" binding:"required"`
	HolderName string    `json:"holder_name"`
}

func (h *AssistantHandler) DraftAppeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req appealDraftRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.HolderName == "" {
		req.HolderName = "Policy Holder"
	}

	bill, err := h.query.GetDocument(c.Request.Context(), req.DocumentID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	policy := h.policyOrNil(c, userID)

	letter, err := h.assistant.DraftAppeal(c.Request.Context(), req.HolderName, bill, policy)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"letter": letter})
}

// policyOrNil fetches the caller's policy; a missing policy is not an
// error here, the prompts simply omit coverage context.
func (h *AssistantHandler) policyOrNil(c *gin.Context, userID uuid.UUID) *insurance.Policy {
	policy, err := h.insurance.GetPolicy(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, insurance.ErrPolicyNotFound) {
		return nil
	}
	return policy
}
