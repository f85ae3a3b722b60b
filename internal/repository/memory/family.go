package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/family"
)

type FamilyRepository struct {
	mu        sync.RWMutex
	members   []*family.Member // insertion order
	byID      map[uuid.UUID]*family.Member
	demoOwner *uuid.UUID
}

func NewFamilyRepository(demoOwner *uuid.UUID) *FamilyRepository {
	return &FamilyRepository{
		byID:      make(map[uuid.UUID]*family.Member),
		demoOwner: demoOwner,
	}
}

func (r *FamilyRepository) Create(_ context.Context, m *family.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	cp := *m
	r.members = append(r.members, &cp)
	r.byID[cp.ID] = &cp
	return nil
}

func (r *FamilyRepository) GetByID(_ context.Context, id uuid.UUID) (*family.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, family.ErrMemberNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *FamilyRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*family.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*family.Member
	for _, m := range r.members {
		if m.UserID == userID || (r.demoOwner != nil && m.UserID == *r.demoOwner) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}
