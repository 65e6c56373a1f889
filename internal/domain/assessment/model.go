// Package assessment manages MDS assessment lifecycles: section data
// capture, validation, completion, CAA trigger analysis, and locking.
package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/mdscare/mdscare/internal/mds"
)

// Assessment types per the federally defined schedule.
const (
	TypeAdmission         = "admission"
	TypeAnnual            = "annual"
	TypeSignificantChange = "significant_change"
	TypeQuarterly         = "quarterly"
	TypeDischarge         = "discharge"
	TypeDeath             = "death"
)

var validTypes = map[string]bool{
	TypeAdmission:         true,
	TypeAnnual:            true,
	TypeSignificantChange: true,
	TypeQuarterly:         true,
	TypeDischarge:         true,
	TypeDeath:             true,
}

// ValidType reports whether t is a recognized assessment type.
func ValidType(t string) bool { return validTypes[t] }

// Assessment is one MDS assessment instance for a resident. The Type is
// fixed at creation. Data holds raw item codes keyed by section then item.
type Assessment struct {
	ID                  uuid.UUID         `db:"id" json:"id"`
	ResidentID          uuid.UUID         `db:"resident_id" json:"resident_id"`
	Type                string            `db:"assessment_type" json:"assessment_type"`
	Status              mds.Status        `db:"status" json:"status"`
	ReferenceDate       time.Time         `db:"reference_date" json:"reference_date"`
	Data                mds.Data          `db:"data" json:"data"`
	SectionsCompleted   map[string]bool   `db:"sections_completed" json:"sections_completed"`
	CaaTriggers         []mds.CaaTrigger  `db:"caa_triggers" json:"caa_triggers,omitempty"`
	TriggersEvaluatedAt *time.Time        `db:"triggers_evaluated_at" json:"triggers_evaluated_at,omitempty"`
	CompletedAt         *time.Time        `db:"completed_at" json:"completed_at,omitempty"`
	SubmittedAt         *time.Time        `db:"submitted_at" json:"submitted_at,omitempty"`
	LockedAt            *time.Time        `db:"locked_at" json:"locked_at,omitempty"`
	CreatedAt           time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time         `db:"updated_at" json:"updated_at"`
}

// TriggersEvaluated reports whether CAA analysis has been run since the
// assessment was completed.
func (a *Assessment) TriggersEvaluated() bool { return a.TriggersEvaluatedAt != nil }
