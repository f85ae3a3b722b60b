package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insurance"
)

type InsuranceRepository struct {
	db *gorm.DB
}

func NewInsuranceRepository(db *gorm.DB) *InsuranceRepository {
	return &InsuranceRepository{db: db}
}

// Upsert writes the user's single policy, replacing any existing row
// keyed on user_id.
func (r *InsuranceRepository) Upsert(ctx context.Context, p *insurance.Policy) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"provider_name", "policy_number",
			"deductible", "out_of_pocket_max", "co_pay",
			"updated_at",
		}),
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("upserting insurance policy: %w", err)
	}
	return nil
}

func (r *InsuranceRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*insurance.Policy, error) {
	var p insurance.Policy
	err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, insurance.ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching insurance policy: %w", err)
	}
	return &p, nil
}
