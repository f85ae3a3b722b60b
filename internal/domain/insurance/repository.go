package insurance

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Upsert(ctx context.Context, p *Policy) error
	GetByUser(ctx context.Context, userID uuid.UUID) (*Policy, error)
}
