package mds

import (
	"regexp"
	"sort"
)

// Rule declares the constraints for a single MDS item. Exactly one of
// Values, Pattern, or Type "date" describes the item's domain.
type Rule struct {
	Label    string
	Required bool
	// Values is the allowed coded value set for enumerated items.
	Values []string
	// Pattern constrains free-form coded items (e.g. two-digit scores).
	Pattern *regexp.Regexp
	// Type marks items with semantic domains; "date" items must parse
	// as YYYY-MM-DD.
	Type string
	// NoFuture marks date items that may not be after today.
	NoFuture bool
	// Skip holds the skip patterns this item triggers, mirrored in the
	// flat skipPatterns list.
	Skip []*SkipPattern
}

// SkipPattern declares that, when Condition holds over the assessment,
// the Dependent items are expected to be dashed. A filled-in dependent
// is a data-quality warning, never a blocking error.
//
// Dependents are hand-enumerated rather than derived from the
// Field..SkipTo range: the RAI manual's skip ranges are not always
// contiguous by item-code ordering.
type SkipPattern struct {
	// Section owning Field, used to serve per-section skip hint queries.
	Section string
	// Field is the item whose answer activates the pattern.
	Field string
	// SkipTo names the item the assessor jumps to, for UI hints.
	SkipTo string
	// Dependents are the items expected to be dashed while active.
	Dependents []string
	Condition  func(Data) bool
	Description string
}

// Active reports whether the pattern currently applies to the assessment.
func (sp *SkipPattern) Active(full Data) bool {
	if sp.Condition == nil {
		return false
	}
	return sp.Condition(full)
}

var (
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	bimsSumRange  = regexp.MustCompile(`^(0?[0-9]|1[0-5])$`)
	phqSumRange   = regexp.MustCompile(`^(0?[0-9]|1[0-9]|2[0-7])$`)
	staffSumRange = regexp.MustCompile(`^(0?[0-9]|[12][0-9]|30)$`)
)

// Skip patterns are declared as named variables so the rule catalog can
// reference them inline while the flat list below serves global queries.
var (
	// B0100 = 1 (comatose): skip the rest of section B and the
	// interview-based items, resume coding at ADLs.
	comatoseSkip = &SkipPattern{
		Section: "section_b",
		Field:   "b0100",
		SkipTo:  "g0110a",
		Dependents: []string{
			"b0200", "b0300", "b0600", "b0700", "b0800", "b1000", "b1200",
		},
		Condition: func(d Data) bool { return d.Item("b0100") == "1" },
		Description: "Resident is comatose; hearing, speech, and vision items should be dashed",
	}

	// C0100 = 0 (BIMS interview not conducted): the interview items
	// should be dashed and the staff assessment coded instead.
	bimsNotConductedSkip = &SkipPattern{
		Section:    "section_c",
		Field:      "c0100",
		SkipTo:     "c0700",
		Dependents: []string{"c0200", "c0300", "c0400", "c0500"},
		Condition:  func(d Data) bool { return d.Item("c0100") == "0" },
		Description: "Cognitive interview not conducted; BIMS items should be dashed",
	}

	// C0100 = 1 (BIMS conducted): the staff cognitive assessment is
	// skipped in favor of the resident interview.
	staffCognitiveSkip = &SkipPattern{
		Section:    "section_c",
		Field:      "c0100",
		SkipTo:     "c1310a",
		Dependents: []string{"c0700", "c0800", "c1000"},
		Condition:  func(d Data) bool { return d.Item("c0100") == "1" },
		Description: "Cognitive interview conducted; staff assessment items should be dashed",
	}

	// D0100 = 0 (mood interview not conducted): PHQ-9 items should be
	// dashed and the staff assessment coded instead.
	moodNotConductedSkip = &SkipPattern{
		Section: "section_d",
		Field:   "d0100",
		SkipTo:  "d0600",
		Dependents: []string{
			"d0200a", "d0200b", "d0200c", "d0200d", "d0200e",
			"d0200f", "d0200g", "d0200h", "d0200i", "d0300",
		},
		Condition:  func(d Data) bool { return d.Item("d0100") == "0" },
		Description: "Mood interview not conducted; PHQ-9 items should be dashed",
	}

	// D0100 = 1 (mood interview conducted): the staff mood assessment
	// is skipped.
	staffMoodSkip = &SkipPattern{
		Section:    "section_d",
		Field:      "d0100",
		SkipTo:     "e0200a",
		Dependents: []string{"d0600"},
		Condition:  func(d Data) bool { return d.Item("d0100") == "1" },
		Description: "Mood interview conducted; staff assessment total should be dashed",
	}
)

// skipPatterns is the flat registry consulted by ShouldSkipField and the
// advisory pass in ValidateSection.
var skipPatterns = []*SkipPattern{
	comatoseSkip,
	bimsNotConductedSkip,
	staffCognitiveSkip,
	moodNotConductedSkip,
	staffMoodSkip,
}

// sectionRules is the field rule catalog. Adding a section or item here
// is all it takes to bring it under validation; the engine itself never
// changes. Sections E, F, and H are read by trigger predicates only and
// carry no validation rules yet.
var sectionRules = map[string]map[string]Rule{
	"section_a": {
		"a0310": {Label: "Type of assessment", Required: true,
			Values: []string{"01", "02", "03", "04", "05", "06", "99"}},
		"a0800": {Label: "Gender", Required: true, Values: []string{"1", "2"}},
		"a0900": {Label: "Birth date", Required: true, Type: "date", NoFuture: true},
		"a1600": {Label: "Entry date", Required: true, Type: "date", NoFuture: true},
		"a1700": {Label: "Type of entry", Required: true, Values: []string{"1", "2"}},
	},
	"section_b": {
		"b0100": {Label: "Comatose", Required: true, Values: []string{"0", "1"},
			Skip: []*SkipPattern{comatoseSkip}},
		"b0200": {Label: "Hearing", Required: true, Values: []string{"0", "1", "2", "3"}},
		"b0300": {Label: "Hearing aid", Values: []string{"0", "1"}},
		"b0600": {Label: "Speech clarity", Required: true, Values: []string{"0", "1", "2"}},
		"b0700": {Label: "Makes self understood", Required: true, Values: []string{"0", "1", "2", "3"}},
		"b0800": {Label: "Ability to understand others", Required: true, Values: []string{"0", "1", "2", "3"}},
		"b1000": {Label: "Vision", Required: true, Values: []string{"0", "1", "2", "3", "4"}},
		"b1200": {Label: "Corrective lenses", Values: []string{"0", "1"}},
	},
	"section_c": {
		"c0100": {Label: "Should BIMS be conducted", Required: true, Values: []string{"0", "1"},
			Skip: []*SkipPattern{bimsNotConductedSkip, staffCognitiveSkip}},
		"c0200": {Label: "BIMS: repetition of three words", Values: []string{"0", "1", "2", "3"}},
		"c0300": {Label: "BIMS: temporal orientation", Values: []string{"0", "1", "2", "3", "4", "5", "6"}},
		"c0400": {Label: "BIMS: recall", Values: []string{"0", "1", "2", "3", "4", "5", "6"}},
		"c0500": {Label: "BIMS summary score", Pattern: bimsSumRange},
		"c0700": {Label: "Staff assessment: short-term memory problem", Values: []string{"0", "1"}},
		"c0800": {Label: "Staff assessment: long-term memory problem", Values: []string{"0", "1"}},
		"c1000": {Label: "Daily decision making", Values: []string{"0", "1", "2", "3"}},
		"c1310a": {Label: "Acute onset mental status change", Values: []string{"0", "1"}},
		"c1600": {Label: "Change in mental status from baseline", Values: []string{"0", "1", "2"}},
	},
	"section_d": {
		"d0100": {Label: "Should mood interview be conducted", Required: true, Values: []string{"0", "1"},
			Skip: []*SkipPattern{moodNotConductedSkip, staffMoodSkip}},
		"d0200a": {Label: "PHQ-9: little interest or pleasure", Values: []string{"0", "1", "2", "3"}},
		"d0200b": {Label: "PHQ-9: feeling down or hopeless", Values: []string{"0", "1", "2", "3"}},
		"d0200c": {Label: "PHQ-9: trouble sleeping", Values: []string{"0", "1", "2", "3"}},
		"d0200d": {Label: "PHQ-9: feeling tired", Values: []string{"0", "1", "2", "3"}},
		"d0200e": {Label: "PHQ-9: poor appetite or overeating", Values: []string{"0", "1", "2", "3"}},
		"d0200f": {Label: "PHQ-9: feeling bad about self", Values: []string{"0", "1", "2", "3"}},
		"d0200g": {Label: "PHQ-9: trouble concentrating", Values: []string{"0", "1", "2", "3"}},
		"d0200h": {Label: "PHQ-9: moving or speaking slowly", Values: []string{"0", "1", "2", "3"}},
		"d0200i": {Label: "PHQ-9: thoughts of self-harm", Values: []string{"0", "1", "2", "3"}},
		"d0300":  {Label: "PHQ-9 total severity score", Pattern: phqSumRange},
		"d0600":  {Label: "Staff assessment total severity score", Pattern: staffSumRange},
	},
	"section_g": {
		"g0110a": {Label: "ADL: bed mobility", Required: true, Values: adlCodes},
		"g0110b": {Label: "ADL: transfer", Required: true, Values: adlCodes},
		"g0110c": {Label: "ADL: walk in room", Required: true, Values: adlCodes},
		"g0110d": {Label: "ADL: walk in corridor", Required: true, Values: adlCodes},
		"g0110e": {Label: "ADL: locomotion on unit", Required: true, Values: adlCodes},
		"g0110f": {Label: "ADL: locomotion off unit", Required: true, Values: adlCodes},
		"g0110g": {Label: "ADL: dressing", Required: true, Values: adlCodes},
		"g0110h": {Label: "ADL: eating", Required: true, Values: adlCodes},
		"g0110i": {Label: "ADL: toilet use", Required: true, Values: adlCodes},
		"g0110j": {Label: "ADL: personal hygiene", Required: true, Values: adlCodes},
		"g0900a": {Label: "Resident believes increased independence possible", Values: []string{"0", "1"}},
	},
}

// ADL self-performance codes: 0 independent through 4 total dependence,
// 7 activity occurred only once or twice, 8 activity did not occur.
var adlCodes = []string{"0", "1", "2", "3", "4", "7", "8"}

// adlItems enumerates the ten G0110 self-performance items in coding order.
var adlItems = []string{
	"g0110a", "g0110b", "g0110c", "g0110d", "g0110e",
	"g0110f", "g0110g", "g0110h", "g0110i", "g0110j",
}

// SectionRules returns the rule table for a section, or nil when the
// section is not under validation.
func SectionRules(sectionID string) map[string]Rule {
	return sectionRules[sectionID]
}

// SectionIDs lists every section under validation, sorted.
func SectionIDs() []string {
	ids := make([]string, 0, len(sectionRules))
	for id := range sectionRules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SkipPatternsForSection returns the skip patterns originating in the
// given section, for UI skip-hint rendering.
func SkipPatternsForSection(sectionID string) []*SkipPattern {
	var out []*SkipPattern
	for _, sp := range skipPatterns {
		if sp.Section == sectionID {
			out = append(out, sp)
		}
	}
	return out
}

// ShouldSkipField reports whether any active skip pattern covers the
// field, so the UI can grey it out while the user is answering.
func ShouldSkipField(field string, full Data) bool {
	for _, sp := range skipPatterns {
		if !sp.Active(full) {
			continue
		}
		for _, dep := range sp.Dependents {
			if dep == field {
				return true
			}
		}
	}
	return false
}
