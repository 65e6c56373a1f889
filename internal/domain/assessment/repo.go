package assessment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)
	Update(ctx context.Context, a *Assessment) error
	ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*Assessment, int, error)
}
