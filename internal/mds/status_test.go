package mds

import "testing"

func TestValidTransition(t *testing.T) {
	steps := []struct {
		from, to Status
		ok       bool
	}{
		{StatusNotStarted, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, StatusSubmitted, true},
		{StatusSubmitted, StatusLocked, true},
		{StatusNotStarted, StatusCompleted, false},
		{StatusLocked, StatusInProgress, false},
		{StatusCompleted, StatusInProgress, false},
	}
	for _, s := range steps {
		if got := ValidTransition(s.from, s.to); got != s.ok {
			t.Errorf("%s -> %s: expected %v, got %v", s.from, s.to, s.ok, got)
		}
	}
}

func TestStatusEditable(t *testing.T) {
	for _, s := range []Status{StatusNotStarted, StatusInProgress, StatusCompleted} {
		if !s.Editable() {
			t.Errorf("%s should be editable", s)
		}
	}
	for _, s := range []Status{StatusSubmitted, StatusLocked} {
		if s.Editable() {
			t.Errorf("%s should not be editable", s)
		}
	}
}

func TestCanComplete(t *testing.T) {
	clean := map[string]ValidationResult{
		"section_a": {Valid: true},
		"section_b": {Valid: true, Warnings: []ValidationWarning{{Item: "b0200", Code: "B0200_SKIP_PATTERN"}}},
	}
	if !CanComplete(clean) {
		t.Error("warnings alone must not block completion")
	}
	clean["section_c"] = ValidationResult{Errors: []ValidationError{{Item: "c0100", Code: "C0100_REQUIRED"}}}
	if CanComplete(clean) {
		t.Error("any blocking error must prevent completion")
	}
}

func TestCanLock(t *testing.T) {
	if CanLock(StatusSubmitted, false) {
		t.Error("lock requires a recorded trigger evaluation")
	}
	if !CanLock(StatusSubmitted, true) {
		t.Error("submitted assessment with triggers evaluated should lock")
	}
	if CanLock(StatusCompleted, true) {
		t.Error("only submitted assessments lock")
	}
}

func TestFieldHelp(t *testing.T) {
	if FieldHelp("b0200") == genericHelp {
		t.Error("b0200 should have specific guidance")
	}
	if FieldHelp("B0200") != FieldHelp("b0200") {
		t.Error("lookup should be case-insensitive")
	}
	if FieldHelp("x9999") != genericHelp {
		t.Error("unknown item should fall back to generic guidance")
	}
}

func TestCatalogSkipPatternsResolve(t *testing.T) {
	// Every dependent named by a skip pattern must belong to a section
	// the engine can resolve, and the triggering field must carry the
	// pattern inline on its rule.
	for _, sp := range skipPatterns {
		if SectionForItem(sp.Field) != sp.Section {
			t.Errorf("pattern on %s registered under wrong section %s", sp.Field, sp.Section)
		}
		rule, ok := sectionRules[sp.Section][sp.Field]
		if !ok {
			t.Errorf("pattern field %s has no rule", sp.Field)
			continue
		}
		found := false
		for _, inline := range rule.Skip {
			if inline == sp {
				found = true
			}
		}
		if !found {
			t.Errorf("pattern on %s not mirrored inline on its rule", sp.Field)
		}
	}
}
