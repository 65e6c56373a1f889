package mds

import (
	"fmt"
	"strings"
)

// CaaType identifies one of the care areas a completed assessment can
// trigger for investigation.
type CaaType string

const (
	CaaDelirium               CaaType = "delirium"
	CaaCognitiveLoss          CaaType = "cognitive_loss"
	CaaVisualFunction         CaaType = "visual_function"
	CaaCommunication          CaaType = "communication"
	CaaAdlFunctionalRehab     CaaType = "adl_functional_rehab"
	CaaUrinaryIncontinence    CaaType = "urinary_incontinence"
	CaaPsychosocialWellBeing  CaaType = "psychosocial_well_being"
	CaaMoodState              CaaType = "mood_state"
	CaaBehavioralSymptoms     CaaType = "behavioral_symptoms"
	CaaActivities             CaaType = "activities"
	CaaFalls                  CaaType = "falls"
	CaaNutritionalStatus      CaaType = "nutritional_status"
	CaaFeedingTubes           CaaType = "feeding_tubes"
	CaaDehydration            CaaType = "dehydration_fluid_maintenance"
	CaaDentalCare             CaaType = "dental_care"
	CaaPressureUlcer          CaaType = "pressure_ulcer"
	CaaPsychotropicDrugUse    CaaType = "psychotropic_drug_use"
	CaaPhysicalRestraints     CaaType = "physical_restraints"
	CaaPainManagement         CaaType = "pain_management"
)

// CaaTrigger records that a care area fired and which item values fired
// it. InvestigationCompleted and ProceedToCarePlanning are filled in by
// the clinical review workflow, never by the engine.
type CaaTrigger struct {
	CaaType                CaaType  `json:"caa_type"`
	Triggered              bool     `json:"triggered"`
	TriggerItems           []string `json:"trigger_items"`
	InvestigationRequired  bool     `json:"investigation_required"`
	InvestigationCompleted bool     `json:"investigation_completed"`
	ProceedToCarePlanning  bool     `json:"proceed_to_care_planning"`
	Rationale              string   `json:"rationale"`
}

// caaPredicate couples a care area with its self-contained trigger
// condition. Predicates read only their own named items and fail closed
// on missing or malformed data, so a partial assessment yields a
// conservative result rather than an error.
type caaPredicate struct {
	caa       CaaType
	rationale string
	eval      func(Data) (bool, []string)
}

// hit renders one triggering item/value pair for the audit trail.
func hit(code, value, reason string) string {
	return fmt.Sprintf("%s = %s (%s)", strings.ToUpper(code), value, reason)
}

// hitIf appends a trigger-item entry when the item holds one of the
// given values.
func hitIf(d Data, items *[]string, reason, code string, values ...string) {
	if itemIn(d, code, values...) {
		*items = append(*items, hit(code, d.Item(code), reason))
	}
}

// Each care area is specified independently in the RAI manual, so
// predicates that share sub-conditions (cognitive impairment feeds both
// cognitive loss and falls) deliberately restate them rather than share
// helpers across areas.
var caaPredicates = []caaPredicate{
	{
		caa:       CaaDelirium,
		rationale: "Signs of acute mental status change suggest delirium",
		eval: func(d Data) (bool, []string) {
			var items []string
			hitIf(d, &items, "acute onset mental status change", "c1310a", "1")
			hitIf(d, &items, "change in mental status from baseline", "c1600", "1", "2")
			return len(items) > 0, items
		},
	},
	{
		caa:       CaaCognitiveLoss,
		rationale: "Assessment indicates cognitive impairment",
		eval: func(d Data) (bool, []string) {
			var items []string
			if score, ok := d.ItemInt("c0500"); ok && score <= 12 {
				items = append(items, hit("c0500", d.Item("c0500"), "BIMS score in impaired range"))
			}
			hitIf(d, &items, "impaired daily decision making", "c1000", "2", "3")
			hitIf(d, &items, "short-term memory problem", "c0700", "1")
			hitIf(d, &items, "long-term memory problem", "c0800", "1")
			return len(items) > 0, items
		},
	},
	{
		caa:       CaaVisualFunction,
		rationale: "Resident has impaired vision",
		eval: func(d Data) (bool, []string) {
			var items []string
			hitIf(d, &items, "vision impaired", "b1000", "1", "2", "3", "4")
			return len(items) > 0, items
		},
	},
	{
		caa:       CaaCommunication,
		rationale: "Resident has difficulty hearing, speaking, or being understood",
		eval: func(d Data) (bool, []string) {
			var items []string
			hitIf(d, &items, "hearing moderately or highly impaired", "b0200", "2", "3")
			hitIf(d, &items, "unclear or absent speech", "b0600", "1", "2")
			hitIf(d, &items, "difficulty making self understood", "b0700", "2", "3")
			hitIf(d, &items, "difficulty understanding others", "b0800", "2", "3")
			return len(items) > 0, items
		},
	},
	{
		caa:       CaaAdlFunctionalRehab,
		rationale: "Resident needs extensive assistance with ADLs or has rehabilitation potential",
		eval: func(d Data) (bool, []string) {
			var items []string
			for _, item := range adlItems {
				hitIf(d, &items, "extensive assistance or total dependence", item, "3", "4")
			}
			hitIf(d, &items, "resident believes increased independence possible", "g0900a", "1")
			return len(items) > 0, items
		},
	},
	{
		caa:       CaaUrinaryIncontinence,
		rationale: "Resident has some degree of urinary incontinence",
		eval: func(d Data) (bool, []string) {
			var items []string
			hitIf(d, &items, "urinary incontinence present", "h0300", "1", "2", "3")
			return len(items) > 0, items
		},
	},
	{
		caa:       CaaPsychosocialWellBeing,
		rationale: "Interview indicates unmet daily or activity preferences",
		eval: func(d Data) (bool, []string) {
			var items []string
			hitIf(d, &items, "daily preferences not met", "f0400", "4", "5")
			hitIf(d, &items, "activity preferences not met", "f0500", "4", "5")
			return len(items) > 0, items
		},
	},
	{
		caa:       CaaMoodState,
		rationale: "Mood screening score at or above the clinical threshold",
		eval: func(d Data) (bool, []string) {
			var items []string
			if score, ok := d.ItemInt("d0300"); ok && score >= 10 {
				items = append(items, hit("d0300", d.Item("d0300"), "PHQ-9 severity at or above threshold"))
			}
			if score, ok := d.ItemInt("d0600"); ok && score >= 10 {
				items = append(items, hit("d0600", d.Item("d0600"), "staff assessment severity at or above threshold"))
			}
			return len(items) > 0, items
		},
	},
	{
		caa:       CaaBehavioralSymptoms,
		rationale: "Behavioral symptoms documented during the look-back period",
		eval: func(d Data) (bool, []string) {
			var items []string
			hitIf(d, &items, "physical behavior directed toward others", "e0200a", "1", "2", "3")
			hitIf(d, &items, "verbal behavior directed toward others", "e0200b", "1", "2", "3")
			hitIf(d, &items, "behavior not directed toward others", "e0200c", "1", "2", "3")
			hitIf(d, &items, "rejection of care", "e0800", "1", "2", "3")
			hitIf(d, &items, "wandering", "e0900", "1", "2", "3")
			return len(items) > 0, items
		},
	},
	{
		caa:       CaaActivities,
		rationale: "Resident reports dissatisfaction with activity involvement",
		eval: func(d Data) (bool, []string) {
			var items []string
			hitIf(d, &items, "activity preferences not met", "f0500", "4", "5")
			return len(items) > 0, items
		},
	},
	{
		caa:       CaaFalls,
		rationale: "Impaired ambulation or cognition increases fall risk",
		eval: func(d Data) (bool, []string) {
			var items []string
			hitIf(d, &items, "impaired walking in room", "g0110c", "2", "3", "4")
			hitIf(d, &items, "impaired walking in corridor", "g0110d", "2", "3", "4")
			if score, ok := d.ItemInt("c0500"); ok && score <= 12 {
				items = append(items, hit("c0500", d.Item("c0500"), "cognitive impairment increases fall risk"))
			}
			hitIf(d, &items, "impaired decision making increases fall risk", "c1000", "2", "3")
			return len(items) > 0, items
		},
	},
	{
		caa:       CaaNutritionalStatus,
		rationale: "Resident requires extensive assistance with eating",
		eval: func(d Data) (bool, []string) {
			var items []string
			hitIf(d, &items, "dependent for eating", "g0110h", "3", "4")
			return len(items) > 0, items
		},
	},
}

// AnalyzeTriggers evaluates every registered care-area predicate against
// the assessment and returns the triggered areas in registry order. Care
// areas that did not trigger are absent from the result. The pass is a
// pure function: identical data always yields an identical list.
func AnalyzeTriggers(full Data) []CaaTrigger {
	if full == nil {
		full = Data{}
	}
	var out []CaaTrigger
	for _, p := range caaPredicates {
		triggered, items := p.eval(full)
		if !triggered {
			continue
		}
		out = append(out, CaaTrigger{
			CaaType:               p.caa,
			Triggered:             true,
			TriggerItems:          items,
			InvestigationRequired: true,
			Rationale:             p.rationale,
		})
	}
	return out
}
