package document

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *HealthDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*HealthDocument, error)
	// List returns documents matching the query ordered by clinical
	// timestamp descending; ties keep insertion order.
	List(ctx context.Context, q *ListDocumentsQuery) ([]*HealthDocument, error)
	UpdateClaimStatus(ctx context.Context, id uuid.UUID, status ClaimStatus) error
	Count(ctx context.Context) (int64, error)
}
