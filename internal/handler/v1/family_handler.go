package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/family"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/service"
)

type FamilyHandler struct {
	svc *service.FamilyService
}

func NewFamilyHandler(svc *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{svc: svc}
}

type addMemberRequest struct {
	Name         string `json:"name" binding:"required"`
	Relationship string `json:"relationship"`
	PhotoURL     string `json:"photo_url"`
}

func (h *FamilyHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req addMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.svc.AddMember(c.Request.Context(), &family.AddMemberCommand{
		UserID:       userID,
		Name:         req.Name,
		Relationship: req.Relationship,
		PhotoURL:     req.PhotoURL,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, member)
}

func (h *FamilyHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	members, err := h.svc.ListMembers(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if members == nil {
		members = []*family.Member{}
	}

	respondOK(c, members)
}
