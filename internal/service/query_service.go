package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
)

// QueryService derives filtered projections of the record store for
// presentation. Pure reads, no side effects; the descending clinical
// timestamp ordering comes from the repository and is preserved here.
type QueryService struct {
	docRepo   document.Repository
	ownership Ownership
}

func NewQueryService(docRepo document.Repository, ownership Ownership) *QueryService {
	return &QueryService{docRepo: docRepo, ownership: ownership}
}

// ListDocuments returns all of a user's documents, newest clinical event
// first. The optional filters compose by conjunction, e.g. "Receipts for
// family member X".
func (s *QueryService) ListDocuments(ctx context.Context, userID uuid.UUID, familyMemberID *uuid.UUID, docType *document.DocumentType) ([]*document.HealthDocument, error) {
	if docType != nil && !docType.IsValid() {
		return nil, document.ErrInvalidDocumentType
	}
	return s.docRepo.List(ctx, &document.ListDocumentsQuery{
		UserID:         &userID,
		FamilyMemberID: familyMemberID,
		Type:           docType,
	})
}

func (s *QueryService) ByFamilyMember(ctx context.Context, userID, familyMemberID uuid.UUID) ([]*document.HealthDocument, error) {
	return s.ListDocuments(ctx, userID, &familyMemberID, nil)
}

func (s *QueryService) ByType(ctx context.Context, userID uuid.UUID, docType document.DocumentType) ([]*document.HealthDocument, error) {
	return s.ListDocuments(ctx, userID, nil, &docType)
}

func (s *QueryService) GetDocument(ctx context.Context, id, userID uuid.UUID) (*document.HealthDocument, error) {
	d, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.ownership.Allows(d.UserID, userID) {
		return nil, ErrForbidden
	}
	return d, nil
}
