// Package postgres implements the domain repositories on gorm. Listing
// queries mirror the in-memory driver's ordering contract: clinical
// timestamp descending, ties broken by insertion (created_at) order.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
)

type DocumentRepository struct {
	db        *gorm.DB
	demoOwner *uuid.UUID
}

func NewDocumentRepository(db *gorm.DB, demoOwner *uuid.UUID) *DocumentRepository {
	return &DocumentRepository{db: db, demoOwner: demoOwner}
}

func (r *DocumentRepository) Create(ctx context.Context, d *document.HealthDocument) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*document.HealthDocument, error) {
	var d document.HealthDocument
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, document.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching document: %w", err)
	}
	return &d, nil
}

func (r *DocumentRepository) List(ctx context.Context, q *document.ListDocumentsQuery) ([]*document.HealthDocument, error) {
	tx := r.db.WithContext(ctx).Model(&document.HealthDocument{})

	if q.UserID != nil {
		if r.demoOwner != nil && *r.demoOwner != *q.UserID {
			tx = tx.Where("user_id IN ?", []uuid.UUID{*q.UserID, *r.demoOwner})
		} else {
			tx = tx.Where("user_id = ?", *q.UserID)
		}
	}
	if q.FamilyMemberID != nil {
		tx = tx.Where("family_member_id = ?", *q.FamilyMemberID)
	}
	if len(q.FamilyMemberIDs) > 0 {
		tx = tx.Where("family_member_id IN ?", q.FamilyMemberIDs)
	}
	if q.Type != nil {
		tx = tx.Where("type = ?", *q.Type)
	}

	var docs []*document.HealthDocument
	if err := tx.Order("clinical_timestamp DESC, created_at ASC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) UpdateClaimStatus(ctx context.Context, id uuid.UUID, status document.ClaimStatus) error {
	res := r.db.WithContext(ctx).
		Model(&document.HealthDocument{}).
		Where("id = ?", id).
		Update("claim_status", status)
	if res.Error != nil {
		return fmt.Errorf("updating claim status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return document.ErrDocumentNotFound
	}
	return nil
}

func (r *DocumentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&document.HealthDocument{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}
