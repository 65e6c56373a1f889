package assessment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdscare/mdscare/internal/mds"
)

type mockRepo struct{ store map[uuid.UUID]*Assessment }

func newMockRepo() *mockRepo { return &mockRepo{store: make(map[uuid.UUID]*Assessment)} }

func (m *mockRepo) Create(_ context.Context, a *Assessment) error {
	a.ID = uuid.New()
	m.store[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Assessment, error) {
	a, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, a *Assessment) error {
	if _, ok := m.store[a.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.store[a.ID] = a
	return nil
}

func (m *mockRepo) ListByResident(_ context.Context, residentID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	var out []*Assessment
	for _, a := range m.store {
		if a.ResidentID == residentID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

type mockSeeder struct {
	calls    int
	triggers []mds.CaaTrigger
}

func (m *mockSeeder) SeedFromTriggers(_ context.Context, _, _ uuid.UUID, triggers []mds.CaaTrigger) error {
	m.calls++
	m.triggers = triggers
	return nil
}

func newTestService() (*Service, *mockRepo, *mockSeeder) {
	repo := newMockRepo()
	seeder := &mockSeeder{}
	return NewService(repo, seeder, zerolog.Nop()), repo, seeder
}

func createTest(t *testing.T, svc *Service) *Assessment {
	t.Helper()
	a := &Assessment{
		ResidentID:    uuid.New(),
		Type:          TypeAdmission,
		ReferenceDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}
	return a
}

// validSections fills every cataloged section so the assessment passes
// completion. BIMS and PHQ sums are arithmetically consistent.
func validSections() map[string]mds.SectionData {
	return map[string]mds.SectionData{
		"section_a": {
			"a0310": "01", "a0800": "1", "a0900": "1941-05-12",
			"a1600": "2024-02-01", "a1700": "1",
		},
		"section_b": {
			"b0100": "0", "b0200": "0", "b0300": "0", "b0600": "0",
			"b0700": "0", "b0800": "0", "b1000": "0", "b1200": "0",
		},
		"section_c": {
			"c0100": "1", "c0200": "3", "c0300": "6", "c0400": "6",
			"c0500": "15", "c0700": mds.Dash, "c0800": mds.Dash,
			"c1000": mds.Dash, "c1310a": "0", "c1600": "0",
		},
		"section_d": {
			"d0100": "0", "d0200a": mds.Dash, "d0200b": mds.Dash,
			"d0200c": mds.Dash, "d0200d": mds.Dash, "d0200e": mds.Dash,
			"d0200f": mds.Dash, "d0200g": mds.Dash, "d0200h": mds.Dash,
			"d0200i": mds.Dash, "d0300": mds.Dash, "d0600": "5",
		},
		"section_g": {
			"g0110a": "0", "g0110b": "0", "g0110c": "0", "g0110d": "0",
			"g0110e": "0", "g0110f": "0", "g0110g": "0", "g0110h": "0",
			"g0110i": "0", "g0110j": "0", "g0900a": "0",
		},
	}
}

func fillValid(t *testing.T, svc *Service, a *Assessment) {
	t.Helper()
	for sectionID, data := range validSections() {
		result, err := svc.SaveSection(context.Background(), a.ID, sectionID, data)
		if err != nil {
			t.Fatalf("save %s: %v", sectionID, err)
		}
		if !result.Valid {
			t.Fatalf("section %s not valid: %+v", sectionID, result.Errors)
		}
	}
}

func TestCreate_InvalidType(t *testing.T) {
	svc, _, _ := newTestService()
	a := &Assessment{ResidentID: uuid.New(), Type: "weekly", ReferenceDate: time.Now()}
	if err := svc.Create(context.Background(), a); err == nil {
		t.Fatal("expected error")
	}
}

func TestCreate_StartsNotStarted(t *testing.T) {
	svc, _, _ := newTestService()
	a := createTest(t, svc)
	if a.Status != mds.StatusNotStarted {
		t.Errorf("expected not_started, got %s", a.Status)
	}
}

func TestSaveSection_AdvancesToInProgress(t *testing.T) {
	svc, repo, _ := newTestService()
	a := createTest(t, svc)
	if _, err := svc.SaveSection(context.Background(), a.ID, "section_b", mds.SectionData{"b0100": "0"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := repo.store[a.ID]
	if got.Status != mds.StatusInProgress {
		t.Errorf("expected in_progress, got %s", got.Status)
	}
}

func TestSaveSection_UnknownSection(t *testing.T) {
	svc, _, _ := newTestService()
	a := createTest(t, svc)
	if _, err := svc.SaveSection(context.Background(), a.ID, "section_z", mds.SectionData{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSaveSection_InvalidatesTriggers(t *testing.T) {
	svc, repo, _ := newTestService()
	a := createTest(t, svc)
	fillValid(t, svc, a)
	if _, err := svc.Complete(context.Background(), a.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.RunTriggers(context.Background(), a.ID); err != nil {
		t.Fatalf("triggers: %v", err)
	}
	// Lifecycle only moves forward, but completed assessments are
	// still editable; an edit discards the prior analysis.
	if _, err := svc.SaveSection(context.Background(), a.ID, "section_b", mds.SectionData{"b0100": "0", "b0200": "2"}); err != nil {
		t.Fatalf("save after complete: %v", err)
	}
	got := repo.store[a.ID]
	if got.TriggersEvaluatedAt != nil || got.CaaTriggers != nil {
		t.Error("expected trigger analysis to be invalidated")
	}
}

func TestComplete_BlockedByErrors(t *testing.T) {
	svc, _, _ := newTestService()
	a := createTest(t, svc)
	// b0200 missing, everything else untouched.
	svc.SaveSection(context.Background(), a.ID, "section_b", mds.SectionData{"b0100": "0"})
	if _, err := svc.Complete(context.Background(), a.ID); err == nil {
		t.Fatal("expected error")
	}
}

func TestComplete_Success(t *testing.T) {
	svc, _, _ := newTestService()
	a := createTest(t, svc)
	fillValid(t, svc, a)
	got, err := svc.Complete(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != mds.StatusCompleted || got.CompletedAt == nil {
		t.Errorf("expected completed assessment, got %s", got.Status)
	}
}

func TestComplete_WrongStatus(t *testing.T) {
	svc, _, _ := newTestService()
	a := createTest(t, svc)
	if _, err := svc.Complete(context.Background(), a.ID); err == nil {
		t.Fatal("expected error completing from not_started")
	}
}

func TestRunTriggers_RequiresCompleted(t *testing.T) {
	svc, _, _ := newTestService()
	a := createTest(t, svc)
	if _, err := svc.RunTriggers(context.Background(), a.ID); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunTriggers_SeedsCarePlanning(t *testing.T) {
	svc, _, seeder := newTestService()
	a := createTest(t, svc)
	fillValid(t, svc, a)
	// Severe ADL impairment triggers care areas.
	sections := validSections()["section_g"]
	sections["g0110b"] = "4"
	if _, err := svc.SaveSection(context.Background(), a.ID, "section_g", sections); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.Complete(context.Background(), a.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	triggers, err := svc.RunTriggers(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(triggers) == 0 {
		t.Fatal("expected at least one trigger")
	}
	if seeder.calls != 1 {
		t.Errorf("expected seeder called once, got %d", seeder.calls)
	}
}

func TestRunTriggers_NoTriggersSkipsSeeder(t *testing.T) {
	svc, repo, seeder := newTestService()
	a := createTest(t, svc)
	fillValid(t, svc, a)
	if _, err := svc.Complete(context.Background(), a.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	triggers, err := svc.RunTriggers(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(triggers) != 0 {
		t.Fatalf("expected no triggers, got %+v", triggers)
	}
	if seeder.calls != 0 {
		t.Errorf("expected seeder not called, got %d calls", seeder.calls)
	}
	if !repo.store[a.ID].TriggersEvaluated() {
		t.Error("expected evaluation timestamp even with zero triggers")
	}
}

func TestSubmitAndLock(t *testing.T) {
	svc, _, _ := newTestService()
	a := createTest(t, svc)
	fillValid(t, svc, a)
	if _, err := svc.Complete(context.Background(), a.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.RunTriggers(context.Background(), a.ID); err != nil {
		t.Fatalf("triggers: %v", err)
	}
	got, err := svc.Submit(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Status != mds.StatusSubmitted {
		t.Fatalf("expected submitted, got %s", got.Status)
	}
	if _, err := svc.SaveSection(context.Background(), a.ID, "section_b", mds.SectionData{"b0100": "0"}); err == nil {
		t.Fatal("expected edit rejection after submit")
	}
	got, err = svc.Lock(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if got.Status != mds.StatusLocked || got.LockedAt == nil {
		t.Errorf("expected locked assessment, got %s", got.Status)
	}
}

func TestLock_RequiresTriggerEvaluation(t *testing.T) {
	svc, _, _ := newTestService()
	a := createTest(t, svc)
	fillValid(t, svc, a)
	if _, err := svc.Complete(context.Background(), a.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.Submit(context.Background(), a.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Lock(context.Background(), a.ID); err == nil {
		t.Fatal("expected error locking without trigger evaluation")
	}
}

func TestSubmit_SkipsStates(t *testing.T) {
	svc, _, _ := newTestService()
	a := createTest(t, svc)
	if _, err := svc.Submit(context.Background(), a.ID); err == nil {
		t.Fatal("expected error submitting from not_started")
	}
}
