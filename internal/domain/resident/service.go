package resident

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	residents Repository
}

func NewService(r Repository) *Service {
	return &Service{residents: r}
}

var validStatuses = map[string]bool{
	"active": true, "discharged": true, "deceased": true,
}

func (s *Service) Create(ctx context.Context, r *Resident) error {
	if r.FirstName == "" || r.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	if r.BirthDate.IsZero() {
		return fmt.Errorf("birth_date is required")
	}
	if r.BirthDate.After(time.Now()) {
		return fmt.Errorf("birth_date may not be in the future")
	}
	if r.AdmissionDate.IsZero() {
		return fmt.Errorf("admission_date is required")
	}
	if r.Status == "" {
		r.Status = "active"
	}
	if !validStatuses[r.Status] {
		return fmt.Errorf("invalid status: %s", r.Status)
	}
	return s.residents.Create(ctx, r)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Resident, error) {
	return s.residents.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, r *Resident) error {
	if r.Status != "" && !validStatuses[r.Status] {
		return fmt.Errorf("invalid status: %s", r.Status)
	}
	return s.residents.Update(ctx, r)
}

// Discharge marks the resident discharged as of the given date.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID, date time.Time) error {
	r, err := s.residents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r.Status != "active" {
		return fmt.Errorf("resident is not active")
	}
	if date.Before(r.AdmissionDate) {
		return fmt.Errorf("discharge_date may not precede admission_date")
	}
	r.Status = "discharged"
	r.DischargeDate = &date
	return s.residents.Update(ctx, r)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.residents.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]*Resident, int, error) {
	if status != "" {
		return s.residents.ListByStatus(ctx, status, limit, offset)
	}
	return s.residents.List(ctx, limit, offset)
}
