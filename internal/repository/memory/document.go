// Package memory implements the record store as in-process collections.
// It backs development, tests, and demo deployments; postgres is the
// durable sibling behind the same domain interfaces.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
)

type DocumentRepository struct {
	mu        sync.RWMutex
	docs      []*document.HealthDocument // insertion order
	byID      map[uuid.UUID]*document.HealthDocument
	demoOwner *uuid.UUID
}

func NewDocumentRepository(demoOwner *uuid.UUID) *DocumentRepository {
	return &DocumentRepository{
		byID:      make(map[uuid.UUID]*document.HealthDocument),
		demoOwner: demoOwner,
	}
}

func (r *DocumentRepository) Create(_ context.Context, d *document.HealthDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	cp := *d
	r.docs = append(r.docs, &cp)
	r.byID[cp.ID] = &cp
	return nil
}

func (r *DocumentRepository) GetByID(_ context.Context, id uuid.UUID) (*document.HealthDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return nil, document.ErrDocumentNotFound
	}
	cp := *d
	return &cp, nil
}

// List filters in insertion order, then sorts by clinical timestamp
// descending with a stable sort so ties keep insertion order. A configured
// demo owner counts as a second legitimate owner for the user filter.
func (r *DocumentRepository) List(_ context.Context, q *document.ListDocumentsQuery) ([]*document.HealthDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rest := *q
	rest.UserID = nil

	var out []*document.HealthDocument
	for _, d := range r.docs {
		if !r.ownerMatches(q, d) {
			continue
		}
		if !rest.Matches(d) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClinicalTimestamp.After(out[j].ClinicalTimestamp)
	})
	return out, nil
}

func (r *DocumentRepository) UpdateClaimStatus(_ context.Context, id uuid.UUID, status document.ClaimStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return document.ErrDocumentNotFound
	}
	d.ClaimStatus = status
	return nil
}

func (r *DocumentRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.docs)), nil
}

func (r *DocumentRepository) ownerMatches(q *document.ListDocumentsQuery, d *document.HealthDocument) bool {
	if q.UserID == nil {
		return true
	}
	if d.UserID == *q.UserID {
		return true
	}
	return r.demoOwner != nil && d.UserID == *r.demoOwner
}
