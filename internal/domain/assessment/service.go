package assessment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdscare/mdscare/internal/mds"
)

// Seeder receives triggered care areas after CAA analysis so that
// downstream care planning can open investigations. Implemented by the
// careplan service.
type Seeder interface {
	SeedFromTriggers(ctx context.Context, residentID, assessmentID uuid.UUID, triggers []mds.CaaTrigger) error
}

type Service struct {
	assessments Repository
	seeder      Seeder
	log         zerolog.Logger
}

func NewService(repo Repository, seeder Seeder, log zerolog.Logger) *Service {
	return &Service{assessments: repo, seeder: seeder, log: log}
}

func (s *Service) Create(ctx context.Context, a *Assessment) error {
	if a.ResidentID == uuid.Nil {
		return fmt.Errorf("resident_id is required")
	}
	if !ValidType(a.Type) {
		return fmt.Errorf("invalid assessment_type: %s", a.Type)
	}
	if a.ReferenceDate.IsZero() {
		return fmt.Errorf("reference_date is required")
	}
	a.Status = mds.StatusNotStarted
	a.Data = mds.Data{}
	a.SectionsCompleted = map[string]bool{}
	return s.assessments.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return s.assessments.GetByID(ctx, id)
}

func (s *Service) ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	return s.assessments.ListByResident(ctx, residentID, limit, offset)
}

// SaveSection stores the submitted item codes for one section and
// validates them against the full assessment. The section is flagged
// complete only when validation produces no blocking errors; warnings
// do not hold it back. Any save invalidates prior trigger analysis.
func (s *Service) SaveSection(ctx context.Context, id uuid.UUID, sectionID string, data mds.SectionData) (*mds.ValidationResult, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.Editable() {
		return nil, fmt.Errorf("assessment is %s and cannot be edited", a.Status)
	}
	if !mds.ValidSectionID(sectionID) {
		return nil, fmt.Errorf("unknown section: %s", sectionID)
	}

	if a.Data == nil {
		a.Data = mds.Data{}
	}
	a.Data[sectionID] = data
	result := mds.ValidateSection(sectionID, data, a.Data)
	a.SectionsCompleted[sectionID] = result.Valid

	if a.Status == mds.StatusNotStarted {
		a.Status = mds.StatusInProgress
	}
	a.CaaTriggers = nil
	a.TriggersEvaluatedAt = nil

	if err := s.assessments.Update(ctx, a); err != nil {
		return nil, err
	}
	s.log.Debug().
		Str("assessment_id", a.ID.String()).
		Str("section", sectionID).
		Bool("valid", result.Valid).
		Int("errors", len(result.Errors)).
		Int("warnings", len(result.Warnings)).
		Msg("section saved")
	return &result, nil
}

// ValidateSection re-runs validation on stored data without mutating
// the assessment.
func (s *Service) ValidateSection(ctx context.Context, id uuid.UUID, sectionID string) (*mds.ValidationResult, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !mds.ValidSectionID(sectionID) {
		return nil, fmt.Errorf("unknown section: %s", sectionID)
	}
	result := mds.ValidateSection(sectionID, a.Data[sectionID], a.Data)
	return &result, nil
}

// ValidateAll validates every cataloged section against the stored data.
func (s *Service) ValidateAll(a *Assessment) map[string]mds.ValidationResult {
	results := make(map[string]mds.ValidationResult)
	for _, sectionID := range mds.SectionIDs() {
		results[sectionID] = mds.ValidateSection(sectionID, a.Data[sectionID], a.Data)
	}
	return results
}

// Complete transitions the assessment to completed once every section
// passes validation.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !mds.ValidTransition(a.Status, mds.StatusCompleted) {
		return nil, fmt.Errorf("cannot complete assessment in status %s", a.Status)
	}
	results := s.ValidateAll(a)
	if !mds.CanComplete(results) {
		var failing []string
		for sectionID, r := range results {
			if !r.Valid {
				failing = append(failing, sectionID)
			}
		}
		return nil, fmt.Errorf("sections with blocking errors: %v", failing)
	}
	now := time.Now()
	a.Status = mds.StatusCompleted
	a.CompletedAt = &now
	for sectionID := range results {
		a.SectionsCompleted[sectionID] = true
	}
	if err := s.assessments.Update(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info().Str("assessment_id", a.ID.String()).Msg("assessment completed")
	return a, nil
}

// RunTriggers evaluates CAA trigger predicates over the full assessment
// data, persists the triggered care areas, and seeds care planning.
// The assessment must be completed first so the inputs are stable.
func (s *Service) RunTriggers(ctx context.Context, id uuid.UUID) ([]mds.CaaTrigger, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != mds.StatusCompleted && a.Status != mds.StatusSubmitted {
		return nil, fmt.Errorf("triggers require a completed assessment, status is %s", a.Status)
	}
	triggers := mds.AnalyzeTriggers(a.Data)
	now := time.Now()
	a.CaaTriggers = triggers
	a.TriggersEvaluatedAt = &now
	if err := s.assessments.Update(ctx, a); err != nil {
		return nil, err
	}
	if s.seeder != nil && len(triggers) > 0 {
		if err := s.seeder.SeedFromTriggers(ctx, a.ResidentID, a.ID, triggers); err != nil {
			return nil, fmt.Errorf("seed care planning: %w", err)
		}
	}
	s.log.Info().
		Str("assessment_id", a.ID.String()).
		Int("triggered", len(triggers)).
		Msg("caa triggers evaluated")
	return triggers, nil
}

// Submit transitions a completed assessment to submitted.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !mds.ValidTransition(a.Status, mds.StatusSubmitted) {
		return nil, fmt.Errorf("cannot submit assessment in status %s", a.Status)
	}
	now := time.Now()
	a.Status = mds.StatusSubmitted
	a.SubmittedAt = &now
	if err := s.assessments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Lock makes the assessment immutable. Trigger analysis must have run,
// even if it produced no care areas.
func (s *Service) Lock(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !mds.CanLock(a.Status, a.TriggersEvaluated()) {
		return nil, fmt.Errorf("cannot lock assessment in status %s (triggers evaluated: %t)", a.Status, a.TriggersEvaluated())
	}
	now := time.Now()
	a.Status = mds.StatusLocked
	a.LockedAt = &now
	if err := s.assessments.Update(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info().Str("assessment_id", a.ID.String()).Msg("assessment locked")
	return a, nil
}
