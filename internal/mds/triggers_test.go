package mds

import (
	"reflect"
	"strings"
	"testing"
)

func triggerFor(triggers []CaaTrigger, caa CaaType) *CaaTrigger {
	for i := range triggers {
		if triggers[i].CaaType == caa {
			return &triggers[i]
		}
	}
	return nil
}

func TestAnalyzeTriggers_EmptyAssessment(t *testing.T) {
	if got := AnalyzeTriggers(Data{}); len(got) != 0 {
		t.Fatalf("empty assessment must trigger nothing, got %+v", got)
	}
	if got := AnalyzeTriggers(nil); len(got) != 0 {
		t.Fatalf("nil assessment must trigger nothing, got %+v", got)
	}
}

func TestAnalyzeTriggers_Communication(t *testing.T) {
	full := Data{"section_b": {"b0200": "2"}}
	trig := triggerFor(AnalyzeTriggers(full), CaaCommunication)
	if trig == nil {
		t.Fatal("expected communication trigger")
	}
	found := false
	for _, item := range trig.TriggerItems {
		if strings.Contains(item, "B0200") {
			found = true
		}
	}
	if !found {
		t.Errorf("trigger items should name B0200, got %v", trig.TriggerItems)
	}
	if !trig.InvestigationRequired {
		t.Error("triggered care area must require investigation")
	}
}

func TestAnalyzeTriggers_AdlAbsentWhenIndependent(t *testing.T) {
	sec := SectionData{}
	for _, item := range adlItems {
		sec[item] = "0"
	}
	full := Data{"section_g": sec}
	if trig := triggerFor(AnalyzeTriggers(full), CaaAdlFunctionalRehab); trig != nil {
		t.Fatalf("independent resident must not trigger ADL care area: %+v", trig)
	}

	sec["g0110b"] = "3"
	trig := triggerFor(AnalyzeTriggers(full), CaaAdlFunctionalRehab)
	if trig == nil {
		t.Fatal("extensive assistance must trigger ADL care area")
	}
	if len(trig.TriggerItems) != 1 || !strings.Contains(trig.TriggerItems[0], "G0110B") {
		t.Errorf("trigger should name g0110b, got %v", trig.TriggerItems)
	}
}

func TestAnalyzeTriggers_Compactness(t *testing.T) {
	full := Data{
		"section_b": {"b1000": "2"},
		"section_h": {"h0300": "2"},
	}
	got := AnalyzeTriggers(full)
	if len(got) != 2 {
		t.Fatalf("expected exactly the 2 triggered areas, got %d: %+v", len(got), got)
	}
	for _, trig := range got {
		if !trig.Triggered {
			t.Errorf("emitted rows must be triggered, got %+v", trig)
		}
	}
}

func TestAnalyzeTriggers_Monotonicity(t *testing.T) {
	full := Data{"section_b": {"b0200": "3"}}
	before := AnalyzeTriggers(full)

	full["section_h"] = SectionData{"h0300": "3"}
	after := AnalyzeTriggers(full)

	for _, trig := range before {
		if triggerFor(after, trig.CaaType) == nil {
			t.Errorf("adding data removed trigger %s", trig.CaaType)
		}
	}
	if triggerFor(after, CaaUrinaryIncontinence) == nil {
		t.Error("new qualifying value should add its trigger")
	}
}

func TestAnalyzeTriggers_Deterministic(t *testing.T) {
	full := Data{
		"section_b": {"b0200": "2", "b1000": "3"},
		"section_c": {"c0500": "7", "c1310a": "1"},
		"section_d": {"d0300": "14"},
		"section_g": {"g0110c": "4", "g0110h": "3"},
	}
	first := AnalyzeTriggers(full)
	for i := 0; i < 5; i++ {
		if got := AnalyzeTriggers(full); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed", i)
		}
	}
}

func TestAnalyzeTriggers_Delirium(t *testing.T) {
	if triggerFor(AnalyzeTriggers(Data{"section_c": {"c1310a": "1"}}), CaaDelirium) == nil {
		t.Error("acute onset should trigger delirium")
	}
	if triggerFor(AnalyzeTriggers(Data{"section_c": {"c1600": "2"}}), CaaDelirium) == nil {
		t.Error("severe mental status change should trigger delirium")
	}
	if triggerFor(AnalyzeTriggers(Data{"section_c": {"c1600": "0"}}), CaaDelirium) != nil {
		t.Error("no change should not trigger delirium")
	}
}

func TestAnalyzeTriggers_CognitiveLoss(t *testing.T) {
	if triggerFor(AnalyzeTriggers(Data{"section_c": {"c0500": "12"}}), CaaCognitiveLoss) == nil {
		t.Error("BIMS 12 is in the impaired range")
	}
	if triggerFor(AnalyzeTriggers(Data{"section_c": {"c0500": "13"}}), CaaCognitiveLoss) != nil {
		t.Error("BIMS 13 is intact cognition")
	}
	if triggerFor(AnalyzeTriggers(Data{"section_c": {"c0700": "1"}}), CaaCognitiveLoss) == nil {
		t.Error("short-term memory problem should trigger cognitive loss")
	}
}

func TestAnalyzeTriggers_FallsCompoundRisk(t *testing.T) {
	// Cognitive impairment alone is a fall risk signal even with intact
	// ambulation.
	full := Data{"section_c": {"c0500": "6"}}
	if triggerFor(AnalyzeTriggers(full), CaaFalls) == nil {
		t.Error("cognitive impairment should trigger falls")
	}
	full = Data{"section_g": {"g0110d": "3"}}
	if triggerFor(AnalyzeTriggers(full), CaaFalls) == nil {
		t.Error("impaired ambulation should trigger falls")
	}
}

func TestAnalyzeTriggers_MoodThreshold(t *testing.T) {
	if triggerFor(AnalyzeTriggers(Data{"section_d": {"d0300": "9"}}), CaaMoodState) != nil {
		t.Error("PHQ-9 below threshold should not trigger")
	}
	if triggerFor(AnalyzeTriggers(Data{"section_d": {"d0300": "10"}}), CaaMoodState) == nil {
		t.Error("PHQ-9 at threshold should trigger")
	}
	if triggerFor(AnalyzeTriggers(Data{"section_d": {"d0600": "11"}}), CaaMoodState) == nil {
		t.Error("staff assessment at threshold should trigger")
	}
}

func TestAnalyzeTriggers_FailsClosedOnMalformedData(t *testing.T) {
	full := Data{
		"section_c": {"c0500": "not-a-number"},
		"section_d": {"d0300": Dash},
	}
	got := AnalyzeTriggers(full)
	if len(got) != 0 {
		t.Fatalf("malformed values must not trigger, got %+v", got)
	}
}

func TestAnalyzeTriggers_BehavioralAndActivities(t *testing.T) {
	got := AnalyzeTriggers(Data{
		"section_e": {"e0900": "2"},
		"section_f": {"f0500": "5"},
	})
	if triggerFor(got, CaaBehavioralSymptoms) == nil {
		t.Error("wandering should trigger behavioral symptoms")
	}
	if triggerFor(got, CaaActivities) == nil {
		t.Error("activity dissatisfaction should trigger activities")
	}
	// f0500 feeds psychosocial well-being too; the areas stay
	// self-contained.
	if triggerFor(got, CaaPsychosocialWellBeing) == nil {
		t.Error("activity dissatisfaction should also trigger psychosocial well-being")
	}
}
