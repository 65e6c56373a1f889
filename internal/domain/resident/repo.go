package resident

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Resident) error
	GetByID(ctx context.Context, id uuid.UUID) (*Resident, error)
	Update(ctx context.Context, r *Resident) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Resident, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Resident, int, error)
}
