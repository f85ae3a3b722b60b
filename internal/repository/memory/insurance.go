package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insurance"
)

type InsuranceRepository struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID]*insurance.Policy
}

func NewInsuranceRepository() *InsuranceRepository {
	return &InsuranceRepository{byUser: make(map[uuid.UUID]*insurance.Policy)}
}

func (r *InsuranceRepository) Upsert(_ context.Context, p *insurance.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.byUser[cp.UserID] = &cp
	return nil
}

func (r *InsuranceRepository) GetByUser(_ context.Context, userID uuid.UUID) (*insurance.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUser[userID]
	if !ok {
		return nil, insurance.ErrPolicyNotFound
	}
	cp := *p
	return &cp, nil
}
