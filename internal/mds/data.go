// Package mds implements the clinical assessment rules engine for the
// CMS Minimum Data Set: the per-section field validation engine and the
// Care Area Assessment (CAA) trigger analysis that feeds care planning.
//
// Everything in this package is a pure function of its arguments and the
// static catalogs below. The package does no I/O and holds no mutable
// state, so engines may be invoked concurrently without coordination.
package mds

import (
	"sort"
	"strconv"
	"strings"
)

// Dash is the sentinel an assessor records for an item that was skipped
// or not assessable. A dashed item passes domain checks; the RAI manual
// treats it as "no value", not as an answer.
const Dash = "-"

// SectionData holds one section's answers, item code -> coded value.
type SectionData map[string]string

// Data is a full assessment's answer set keyed by section id
// ("section_a" ... "section_h"). Sections not yet filled in are simply
// absent.
type Data map[string]SectionData

// ValidSectionID reports whether id names an MDS section ("section_a"
// through "section_h"). Sections without catalog rules are still valid
// containers: trigger predicates read items from sections E, F, and H
// that carry no validation rules.
func ValidSectionID(id string) bool {
	if len(id) != len("section_a") || !strings.HasPrefix(id, "section_") {
		return false
	}
	c := id[len(id)-1]
	return c >= 'a' && c <= 'h'
}

// SectionForItem resolves an MDS item code to the section that owns it.
// Item codes begin with their section letter (b0200 lives in section_b).
func SectionForItem(code string) string {
	if code == "" {
		return ""
	}
	return "section_" + strings.ToLower(code[:1])
}

// Item returns the recorded value for an item code anywhere in the
// assessment, or "" when the item is unanswered.
func (d Data) Item(code string) string {
	sec, ok := d[SectionForItem(code)]
	if !ok {
		return ""
	}
	return sec[code]
}

// ItemInt parses an item as an integer score. The second return is false
// when the item is absent, dashed, or not numeric; callers treat that
// as "no value" rather than an error.
func (d Data) ItemInt(code string) (int, bool) {
	v := d.Item(code)
	if v == "" || v == Dash {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// itemIn reports whether the item holds one of the given coded values.
// Absent and dashed items never match.
func itemIn(d Data, code string, values ...string) bool {
	v := d.Item(code)
	if v == "" || v == Dash {
		return false
	}
	for _, want := range values {
		if v == want {
			return true
		}
	}
	return false
}

// sortedItems returns the item codes of a rule table in stable order so
// validation output is deterministic across runs.
func sortedItems(rules map[string]Rule) []string {
	items := make([]string, 0, len(rules))
	for code := range rules {
		items = append(items, code)
	}
	sort.Strings(items)
	return items
}
