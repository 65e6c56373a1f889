package careplan

import (
	"context"

	"github.com/google/uuid"
)

type InvestigationRepository interface {
	Create(ctx context.Context, inv *Investigation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Investigation, error)
	Update(ctx context.Context, inv *Investigation) error
	ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]*Investigation, error)
	ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*Investigation, int, error)
}

type EntryRepository interface {
	Create(ctx context.Context, e *CarePlanEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*CarePlanEntry, error)
	Update(ctx context.Context, e *CarePlanEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*CarePlanEntry, int, error)
}
