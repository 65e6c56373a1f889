package mds

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError is a blocking finding: the section cannot be marked
// complete while any remain.
type ValidationError struct {
	Item    string `json:"item"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationWarning is an advisory finding surfaced to the assessor but
// never blocking progression.
type ValidationWarning struct {
	Item    string `json:"item"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating one section.
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
}

func errCode(item, suffix string) string {
	return strings.ToUpper(item) + "_" + suffix
}

// ValidateSection checks one section's answers against the field rule
// catalog. full carries the whole assessment so skip patterns and
// cross-section conditions can be evaluated; it may be partial.
//
// Unknown sections validate clean; the catalog grows incrementally and
// an unmodeled section is not a failure.
func ValidateSection(sectionID string, data SectionData, full Data) ValidationResult {
	result := ValidationResult{Valid: true}
	rules, ok := sectionRules[sectionID]
	if !ok {
		return result
	}
	if data == nil {
		data = SectionData{}
	}
	if full == nil {
		full = Data{}
	}

	for _, item := range sortedItems(rules) {
		rule := rules[item]
		value, present := data[item]
		if !present || value == "" {
			if rule.Required {
				result.Errors = append(result.Errors, ValidationError{
					Item: item, Code: errCode(item, "REQUIRED"),
					Message: fmt.Sprintf("%s is required", rule.Label),
				})
			}
			continue
		}
		if value == Dash {
			continue
		}
		result.Errors = append(result.Errors, checkDomain(item, value, rule)...)
	}

	switch sectionID {
	case "section_c":
		result.Errors = append(result.Errors, checkBIMS(data)...)
	case "section_d":
		result.Errors = append(result.Errors, checkPHQ(data)...)
	case "section_g":
		result.Warnings = append(result.Warnings, checkADLConsistency(data)...)
	}

	result.Warnings = append(result.Warnings, skipViolations(sectionID, data, full)...)
	result.Valid = len(result.Errors) == 0
	return result
}

// checkDomain validates a present, non-dashed value against the rule's
// declared domain.
func checkDomain(item, value string, rule Rule) []ValidationError {
	if rule.Type == "date" {
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return []ValidationError{{
				Item: item, Code: errCode(item, "FORMAT"),
				Message: fmt.Sprintf("%s must be a date in YYYY-MM-DD format", rule.Label),
			}}
		}
		if rule.NoFuture && t.After(time.Now()) {
			return []ValidationError{{
				Item: item, Code: errCode(item, "FUTURE"),
				Message: fmt.Sprintf("%s may not be in the future", rule.Label),
			}}
		}
		return nil
	}
	if rule.Pattern != nil {
		if !rule.Pattern.MatchString(value) {
			return []ValidationError{{
				Item: item, Code: errCode(item, "FORMAT"),
				Message: fmt.Sprintf("%s is out of range: %q", rule.Label, value),
			}}
		}
		return nil
	}
	if len(rule.Values) > 0 {
		for _, allowed := range rule.Values {
			if value == allowed {
				return nil
			}
		}
		return []ValidationError{{
			Item: item, Code: errCode(item, "INVALID"),
			Message: fmt.Sprintf("%s has invalid code %q", rule.Label, value),
		}}
	}
	return nil
}

// bimsComponents are the BIMS score items whose sum must equal C0500.
var bimsComponents = []string{"c0200", "c0300", "c0400"}

// checkBIMS enforces the cognitive interview branch: once C0100 records
// that the interview was conducted, every BIMS item becomes required,
// and the recorded summary must equal the component sum exactly.
func checkBIMS(data SectionData) []ValidationError {
	var errs []ValidationError
	if data["c0100"] != "1" {
		return nil
	}
	missing := false
	for _, item := range append(append([]string{}, bimsComponents...), "c0500") {
		v := data[item]
		if v == "" || v == Dash {
			errs = append(errs, ValidationError{
				Item: item, Code: errCode(item, "REQUIRED"),
				Message: fmt.Sprintf("%s is required when the interview was conducted", sectionRules["section_c"][item].Label),
			})
			missing = true
		}
	}
	if missing {
		return errs
	}
	errs = append(errs, checkSum(data, "c0500", bimsComponents, "BIMS summary score")...)
	return errs
}

// phqComponents are the nine PHQ-9 items whose sum must equal D0300.
var phqComponents = []string{
	"d0200a", "d0200b", "d0200c", "d0200d", "d0200e",
	"d0200f", "d0200g", "d0200h", "d0200i",
}

// checkPHQ mirrors checkBIMS for the resident mood interview.
func checkPHQ(data SectionData) []ValidationError {
	var errs []ValidationError
	if data["d0100"] != "1" {
		return nil
	}
	missing := false
	for _, item := range append(append([]string{}, phqComponents...), "d0300") {
		v := data[item]
		if v == "" || v == Dash {
			errs = append(errs, ValidationError{
				Item: item, Code: errCode(item, "REQUIRED"),
				Message: fmt.Sprintf("%s is required when the interview was conducted", sectionRules["section_d"][item].Label),
			})
			missing = true
		}
	}
	if missing {
		return errs
	}
	errs = append(errs, checkSum(data, "d0300", phqComponents, "PHQ-9 total severity score")...)
	return errs
}

// checkSum recomputes a derived summary from its components using exact
// integer arithmetic and compares it to the recorded value. It only
// fires when every contributing item parses; domain errors for the
// components themselves are reported separately.
func checkSum(data SectionData, summary string, components []string, label string) []ValidationError {
	expected := 0
	for _, item := range components {
		n, ok := parseScore(data[item])
		if !ok {
			return nil
		}
		expected += n
	}
	recorded, ok := parseScore(data[summary])
	if !ok {
		return nil
	}
	if recorded != expected {
		return []ValidationError{{
			Item: summary, Code: errCode(summary, "CALCULATION"),
			Message: fmt.Sprintf("%s is %d but components sum to %d", label, recorded, expected),
		}}
	}
	return nil
}

func parseScore(v string) (int, bool) {
	if v == "" || v == Dash {
		return 0, false
	}
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// adlOrderings pairs a harder task with an easier related one. Coding
// more help for the easier task is clinically unusual and flagged as a
// warning; exceptions are plausible, so it never blocks.
var adlOrderings = []struct {
	harder, easier string
}{
	{"g0110d", "g0110c"}, // walk in corridor vs walk in room
	{"g0110f", "g0110e"}, // locomotion off unit vs on unit
}

func checkADLConsistency(data SectionData) []ValidationWarning {
	var warns []ValidationWarning
	for _, pair := range adlOrderings {
		hard, okH := parseScore(data[pair.harder])
		easy, okE := parseScore(data[pair.easier])
		// Codes 7 and 8 mean the activity did not meaningfully occur and
		// carry no ordering.
		if !okH || !okE || hard > 4 || easy > 4 {
			continue
		}
		if hard < easy {
			warns = append(warns, ValidationWarning{
				Item: pair.harder, Code: errCode(pair.harder, "LOGIC_CHECK"),
				Message: fmt.Sprintf("%s (%d) is coded as less assistance than %s (%d)",
					sectionRules["section_g"][pair.harder].Label, hard,
					sectionRules["section_g"][pair.easier].Label, easy),
			})
		}
	}
	return warns
}

// skipViolations walks the flat skip-pattern registry and warns about
// dependents in this section that hold a real value while their pattern
// is active.
func skipViolations(sectionID string, data SectionData, full Data) []ValidationWarning {
	var warns []ValidationWarning
	for _, sp := range skipPatterns {
		if !sp.Active(full) {
			continue
		}
		for _, dep := range sp.Dependents {
			if SectionForItem(dep) != sectionID {
				continue
			}
			v, present := data[dep]
			if !present || v == "" || v == Dash {
				continue
			}
			warns = append(warns, ValidationWarning{
				Item: dep, Code: errCode(dep, "SKIP_PATTERN"),
				Message: fmt.Sprintf("%s should be dashed: %s", strings.ToUpper(dep), sp.Description),
			})
		}
	}
	return warns
}
