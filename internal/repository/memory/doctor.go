package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/doctor"
)

type DoctorRepository struct {
	mu        sync.RWMutex
	order     []uuid.UUID // insertion order
	byID      map[uuid.UUID]*doctor.Doctor
	byToken   map[string]uuid.UUID
	demoOwner *uuid.UUID
}

func NewDoctorRepository(demoOwner *uuid.UUID) *DoctorRepository {
	return &DoctorRepository{
		byID:      make(map[uuid.UUID]*doctor.Doctor),
		byToken:   make(map[string]uuid.UUID),
		demoOwner: demoOwner,
	}
}

func (r *DoctorRepository) Create(_ context.Context, d *doctor.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *d
	cp.FamilyMemberIDs = append([]uuid.UUID(nil), d.FamilyMemberIDs...)
	r.order = append(r.order, cp.ID)
	r.byID[cp.ID] = &cp
	r.byToken[cp.AccessToken] = cp.ID
	return nil
}

func (r *DoctorRepository) GetByID(_ context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clone(r.byID[id])
}

func (r *DoctorRepository) GetByToken(_ context.Context, token string) (*doctor.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byToken[token]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	return r.clone(r.byID[id])
}

func (r *DoctorRepository) Update(_ context.Context, d *doctor.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[d.ID]
	if !ok {
		return doctor.ErrDoctorNotFound
	}
	delete(r.byToken, stored.AccessToken)

	cp := *d
	cp.FamilyMemberIDs = append([]uuid.UUID(nil), d.FamilyMemberIDs...)
	r.byID[cp.ID] = &cp
	r.byToken[cp.AccessToken] = cp.ID
	return nil
}

func (r *DoctorRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return doctor.ErrDoctorNotFound
	}
	delete(r.byToken, stored.AccessToken)
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *DoctorRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*doctor.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*doctor.Doctor
	for _, id := range r.order {
		d := r.byID[id]
		if d.UserID == userID || (r.demoOwner != nil && d.UserID == *r.demoOwner) {
			cp, _ := r.clone(d)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *DoctorRepository) clone(d *doctor.Doctor) (*doctor.Doctor, error) {
	if d == nil {
		return nil, doctor.ErrDoctorNotFound
	}
	cp := *d
	cp.FamilyMemberIDs = append([]uuid.UUID(nil), d.FamilyMemberIDs...)
	return &cp, nil
}
