package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insurance"
)

// InsuranceService serves the co-pilot view: the user's policy plus claim
// status transitions on receipt documents.
type InsuranceService struct {
	policyRepo insurance.Repository
	docRepo    document.Repository
	ownership  Ownership
	auditSvc   *AuditService
	log        *zap.Logger
}

func NewInsuranceService(
	policyRepo insurance.Repository,
	docRepo document.Repository,
	ownership Ownership,
	auditSvc *AuditService,
	log *zap.Logger,
) *InsuranceService {
	return &InsuranceService{
		policyRepo: policyRepo,
		docRepo:    docRepo,
		ownership:  ownership,
		auditSvc:   auditSvc,
		log:        log,
	}
}

func (s *InsuranceService) GetPolicy(ctx context.Context, userID uuid.UUID) (*insurance.Policy, error) {
	p, err := s.policyRepo.GetByUser(ctx, userID)
	if err != nil && s.ownership.DemoOwnerID != nil {
		// Shared demo deployments fall back to the demo owner's policy.
		return s.policyRepo.GetByUser(ctx, *s.ownership.DemoOwnerID)
	}
	return p, err
}

// UpdateClaimStatus moves a receipt through the claim lifecycle. Only
// receipts carry a claim status, and only legal transitions are allowed.
func (s *InsuranceService) UpdateClaimStatus(ctx context.Context, docID, userID uuid.UUID, next document.ClaimStatus, ip string) (*document.HealthDocument, error) {
	if !next.IsValid() {
		return nil, document.ErrInvalidClaimStatus
	}

	d, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !s.ownership.Allows(d.UserID, userID) {
		return nil, ErrForbidden
	}
	if !d.IsReceipt() {
		return nil, document.ErrNotAReceipt
	}
	if !d.ClaimStatus.CanTransitionTo(next) {
		return nil, document.ErrClaimTransition
	}

	if err := s.docRepo.UpdateClaimStatus(ctx, docID, next); err != nil {
		return nil, fmt.Errorf("updating claim status: %w", err)
	}
	d.ClaimStatus = next

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: &userID, Action: "update",
		ResourceType: "document", ResourceID: docID.String(), IPAddress: ip,
		Changes: fmt.Sprintf(`{"claim_status":%q}`, next),
	})
	s.log.Info("claim status updated",
		zap.String("document_id", docID.String()),
		zap.String("status", string(next)),
	)

	return d, nil
}
