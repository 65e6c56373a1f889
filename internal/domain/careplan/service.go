package careplan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdscare/mdscare/internal/mds"
)

type Service struct {
	investigations InvestigationRepository
	entries        EntryRepository
	log            zerolog.Logger
}

func NewService(inv InvestigationRepository, entries EntryRepository, log zerolog.Logger) *Service {
	return &Service{investigations: inv, entries: entries, log: log}
}

// SeedFromTriggers opens one investigation per triggered care area.
// Re-running trigger analysis for the same assessment replaces nothing;
// areas that already have an open investigation are skipped so team
// findings in progress are not lost.
func (s *Service) SeedFromTriggers(ctx context.Context, residentID, assessmentID uuid.UUID, triggers []mds.CaaTrigger) error {
	existing, err := s.investigations.ListByAssessment(ctx, assessmentID)
	if err != nil {
		return err
	}
	seen := make(map[mds.CaaType]bool, len(existing))
	for _, inv := range existing {
		seen[inv.CaaType] = true
	}
	for _, trig := range triggers {
		if !trig.Triggered || seen[trig.CaaType] {
			continue
		}
		inv := &Investigation{
			ResidentID:   residentID,
			AssessmentID: assessmentID,
			CaaType:      trig.CaaType,
			TriggerItems: trig.TriggerItems,
			Rationale:    trig.Rationale,
			Status:       InvestigationOpen,
		}
		if err := s.investigations.Create(ctx, inv); err != nil {
			return fmt.Errorf("open investigation for %s: %w", trig.CaaType, err)
		}
	}
	s.log.Info().
		Str("assessment_id", assessmentID.String()).
		Int("triggered", len(triggers)).
		Msg("caa investigations seeded")
	return nil
}

func (s *Service) GetInvestigation(ctx context.Context, id uuid.UUID) (*Investigation, error) {
	return s.investigations.GetByID(ctx, id)
}

func (s *Service) ListInvestigationsByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]*Investigation, error) {
	return s.investigations.ListByAssessment(ctx, assessmentID)
}

func (s *Service) ListInvestigationsByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*Investigation, int, error) {
	return s.investigations.ListByResident(ctx, residentID, limit, offset)
}

// CompleteInvestigation records the team's findings and the decision on
// whether the care area proceeds to care planning.
func (s *Service) CompleteInvestigation(ctx context.Context, id uuid.UUID, findings string, proceed bool) (*Investigation, error) {
	inv, err := s.investigations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == InvestigationCompleted {
		return nil, fmt.Errorf("investigation is already completed")
	}
	if findings == "" {
		return nil, fmt.Errorf("findings are required")
	}
	now := time.Now()
	inv.Status = InvestigationCompleted
	inv.Findings = &findings
	inv.Proceed = &proceed
	inv.CompletedAt = &now
	if err := s.investigations.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

var validEntryStatuses = map[string]bool{
	"active": true, "resolved": true, "discontinued": true,
}

func (s *Service) CreateEntry(ctx context.Context, e *CarePlanEntry) error {
	if e.ResidentID == uuid.Nil {
		return fmt.Errorf("resident_id is required")
	}
	if e.Problem == "" || e.Goal == "" {
		return fmt.Errorf("problem and goal are required")
	}
	if e.InvestigationID != nil {
		inv, err := s.investigations.GetByID(ctx, *e.InvestigationID)
		if err != nil {
			return fmt.Errorf("investigation not found")
		}
		if inv.Status != InvestigationCompleted {
			return fmt.Errorf("investigation must be completed before care planning")
		}
		if inv.Proceed == nil || !*inv.Proceed {
			return fmt.Errorf("investigation did not proceed to care planning")
		}
	}
	if e.Status == "" {
		e.Status = "active"
	}
	if !validEntryStatuses[e.Status] {
		return fmt.Errorf("invalid status: %s", e.Status)
	}
	return s.entries.Create(ctx, e)
}

func (s *Service) GetEntry(ctx context.Context, id uuid.UUID) (*CarePlanEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *Service) UpdateEntry(ctx context.Context, e *CarePlanEntry) error {
	if e.Status != "" && !validEntryStatuses[e.Status] {
		return fmt.Errorf("invalid status: %s", e.Status)
	}
	return s.entries.Update(ctx, e)
}

func (s *Service) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return s.entries.Delete(ctx, id)
}

func (s *Service) ListEntriesByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*CarePlanEntry, int, error) {
	return s.entries.ListByResident(ctx, residentID, limit, offset)
}
