package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/doctor"
)

type DoctorRepository struct {
	db        *gorm.DB
	demoOwner *uuid.UUID
}

func NewDoctorRepository(db *gorm.DB, demoOwner *uuid.UUID) *DoctorRepository {
	return &DoctorRepository{db: db, demoOwner: demoOwner}
}

func (r *DoctorRepository) Create(ctx context.Context, d *doctor.Doctor) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("inserting doctor: %w", err)
	}
	return nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching doctor: %w", err)
	}
	return &d, nil
}

// GetByToken matches the stored raw token by exact equality.
func (r *DoctorRepository) GetByToken(ctx context.Context, token string) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, "access_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolving share token: %w", err)
	}
	return &d, nil
}

func (r *DoctorRepository) Update(ctx context.Context, d *doctor.Doctor) error {
	res := r.db.WithContext(ctx).Model(&doctor.Doctor{}).
		Where("id = ?", d.ID).
		Select("name", "hospital", "specialty", "access_token", "access_link", "family_member_ids").
		Updates(d)
	if res.Error != nil {
		return fmt.Errorf("updating doctor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return doctor.ErrDoctorNotFound
	}
	return nil
}

func (r *DoctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&doctor.Doctor{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting doctor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return doctor.ErrDoctorNotFound
	}
	return nil
}

func (r *DoctorRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*doctor.Doctor, error) {
	tx := r.db.WithContext(ctx)
	if r.demoOwner != nil && *r.demoOwner != userID {
		tx = tx.Where("user_id IN ?", []uuid.UUID{userID, *r.demoOwner})
	} else {
		tx = tx.Where("user_id = ?", userID)
	}

	var doctors []*doctor.Doctor
	if err := tx.Order("created_at ASC").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}
	return doctors, nil
}
