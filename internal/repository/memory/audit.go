package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain"
)

// AuditRepository keeps a bounded in-process audit trail. Oldest entries
// are discarded once the cap is reached.
type AuditRepository struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
	cap     int
}

const defaultAuditCap = 100_000

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{cap: defaultAuditCap}
}

func (r *AuditRepository) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	cp := *entry
	r.entries = append(r.entries, &cp)
	if len(r.entries) > r.cap {
		r.entries = r.entries[len(r.entries)-r.cap:]
	}
	return nil
}

func (r *AuditRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
