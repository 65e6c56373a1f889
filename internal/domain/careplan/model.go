// Package careplan tracks CAA investigations opened by trigger analysis
// and the care plan entries that come out of them.
package careplan

import (
	"time"

	"github.com/google/uuid"

	"github.com/mdscare/mdscare/internal/mds"
)

// Investigation is the clinical review of one triggered care area. One
// row is opened per triggered CAA when an assessment's trigger analysis
// runs; the interdisciplinary team records its findings and decides
// whether the area proceeds to care planning.
type Investigation struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	ResidentID   uuid.UUID   `db:"resident_id" json:"resident_id"`
	AssessmentID uuid.UUID   `db:"assessment_id" json:"assessment_id"`
	CaaType      mds.CaaType `db:"caa_type" json:"caa_type"`
	TriggerItems []string    `db:"trigger_items" json:"trigger_items"`
	Rationale    string      `db:"rationale" json:"rationale"`
	Status       string      `db:"status" json:"status"`
	Findings     *string     `db:"findings" json:"findings,omitempty"`
	Proceed      *bool       `db:"proceed" json:"proceed,omitempty"`
	CompletedAt  *time.Time  `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// Investigation statuses.
const (
	InvestigationOpen      = "open"
	InvestigationCompleted = "completed"
)

// CarePlanEntry is one problem/goal/intervention line in the resident's
// care plan, usually produced by a completed investigation.
type CarePlanEntry struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	ResidentID      uuid.UUID  `db:"resident_id" json:"resident_id"`
	InvestigationID *uuid.UUID `db:"investigation_id" json:"investigation_id,omitempty"`
	Problem         string     `db:"problem" json:"problem"`
	Goal            string     `db:"goal" json:"goal"`
	Interventions   string     `db:"interventions" json:"interventions"`
	Status          string     `db:"status" json:"status"`
	TargetDate      *time.Time `db:"target_date" json:"target_date,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
