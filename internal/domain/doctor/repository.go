package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	// GetByToken resolves a share token by exact equality on the stored
	// raw token. Returns ErrDoctorNotFound for unmatched tokens.
	GetByToken(ctx context.Context, token string) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	// Delete removes the doctor record entirely. No tombstone is kept, so
	// the former token stops resolving immediately.
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Doctor, error)
}
