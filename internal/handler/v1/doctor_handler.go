package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/service"
)

type DoctorHandler struct {
	access *service.AccessService
}

func NewDoctorHandler(access *service.AccessService) *DoctorHandler {
	return &DoctorHandler{access: access}
}

type grantAccessRequest struct {
	Doctor struct {
		ID        uuid.UUID `json:"id" binding:"required"`
		Name      string    `json:"name" binding:"required"`
		Hospital  string    `json:"hospital"`
		Specialty string    `json:"specialty"`
	} `json:"doctor" binding:"required"`
	FamilyMemberIDs []uuid.UUID `json:"family_member_ids" binding:"required"`
}

// Grant shares the listed family members with a doctor. Re-granting to a
// known doctor widens the set and returns the existing link.
func (h *DoctorHandler) Grant(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req grantAccessRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.access.Grant(c.Request.Context(), &doctor.GrantAccessCommand{
		UserID: userID,
		Profile: doctor.Profile{
			ID:        req.Doctor.ID,
			Name:      req.Doctor.Name,
			Hospital:  req.Doctor.Hospital,
			Specialty: req.Doctor.Specialty,
		},
		FamilyMemberIDs: req.FamilyMemberIDs,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, d)
}

func (h *DoctorHandler) Revoke(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.access.Revoke(c.Request.Context(), id, userID, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"revoked": true})
}

func (h *DoctorHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	doctors, err := h.access.ListDoctors(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if doctors == nil {
		doctors = []*doctor.Doctor{}
	}

	respondOK(c, doctors)
}

// SearchDirectory filters the physician directory by name or hospital.
func (h *DoctorHandler) SearchDirectory(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	results := h.access.SearchDirectory(c.Query("q"))
	if results == nil {
		results = []doctor.Profile{}
	}

	respondOK(c, results)
}
