package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/family"
)

type FamilyRepository struct {
	db        *gorm.DB
	demoOwner *uuid.UUID
}

func NewFamilyRepository(db *gorm.DB, demoOwner *uuid.UUID) *FamilyRepository {
	return &FamilyRepository{db: db, demoOwner: demoOwner}
}

func (r *FamilyRepository) Create(ctx context.Context, m *family.Member) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("inserting family member: %w", err)
	}
	return nil
}

func (r *FamilyRepository) GetByID(ctx context.Context, id uuid.UUID) (*family.Member, error) {
	var m family.Member
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, family.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching family member: %w", err)
	}
	return &m, nil
}

func (r *FamilyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*family.Member, error) {
	tx := r.db.WithContext(ctx)
	if r.demoOwner != nil && *r.demoOwner != userID {
		tx = tx.Where("user_id IN ?", []uuid.UUID{userID, *r.demoOwner})
	} else {
		tx = tx.Where("user_id = ?", userID)
	}

	var members []*family.Member
	if err := tx.Order("created_at ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("listing family members: %w", err)
	}
	return members, nil
}
