package mds

// Status is the assessment lifecycle state. Transitions are driven by
// the surrounding workflow; this package only supplies the pure
// preconditions for the gated ones.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusSubmitted  Status = "submitted"
	StatusLocked     Status = "locked"
)

// validTransitions is the linear lifecycle; no state is revisited.
var validTransitions = map[Status]Status{
	StatusNotStarted: StatusInProgress,
	StatusInProgress: StatusCompleted,
	StatusCompleted:  StatusSubmitted,
	StatusSubmitted:  StatusLocked,
}

// ValidTransition reports whether from -> to is a legal lifecycle step.
func ValidTransition(from, to Status) bool {
	return validTransitions[from] == to
}

// Editable reports whether item edits are still permitted by policy.
func (s Status) Editable() bool {
	return s != StatusSubmitted && s != StatusLocked
}

// CanComplete gates in_progress -> completed: every validated section
// must be free of blocking errors. Warnings do not block.
func CanComplete(results map[string]ValidationResult) bool {
	for _, r := range results {
		if len(r.Errors) > 0 {
			return false
		}
	}
	return true
}

// CanLock gates submitted -> locked: trigger evaluation must have run
// at least once so a caa_triggers list is on record. An empty list from
// a real evaluation still satisfies the gate.
func CanLock(status Status, triggersEvaluated bool) bool {
	return status == StatusSubmitted && triggersEvaluated
}
