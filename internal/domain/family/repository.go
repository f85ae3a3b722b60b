package family

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*Member, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Member, error)
}
