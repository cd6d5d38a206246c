package workflow

import (
	"fmt"
	"sort"

	"case-governance-be/pkg/policy"
)

// Status is a draft's lifecycle state. Transitions only happen through
// ValidateTransition followed by a compare-and-set commit in the draft store.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusCheckPolicy Status = "check_policy"
	StatusEditing     Status = "editing"
	StatusBlocked     Status = "blocked"
	StatusSigned      Status = "signed"
	StatusWrittenBack Status = "written_back"
	StatusArchived    Status = "archived"
)

// validTransitions is the full edge set of the clinician draft workflow.
// archived is terminal.
var validTransitions = map[Status][]Status{
	StatusDraft:       {StatusCheckPolicy, StatusEditing},
	StatusCheckPolicy: {StatusEditing, StatusBlocked},
	StatusEditing:     {StatusCheckPolicy, StatusSigned},
	StatusSigned:      {StatusWrittenBack},
	StatusWrittenBack: {StatusArchived},
	StatusBlocked:     {StatusEditing},
	StatusArchived:    {},
}

// IsValid reports whether s is a known workflow status.
func IsValid(s Status) bool {
	_, ok := validTransitions[s]
	return ok
}

// ValidateTransition checks the edge current -> target against the transition
// table and verifies every supplied condition is met. It is a pure predicate:
// the caller commits the new status only after an allowed verdict, holding
// the per-draft serialization guarantee.
func ValidateTransition(current, target Status, conditions map[string]bool) *policy.Verdict {
	allowed, ok := validTransitions[current]
	if !ok {
		return &policy.Verdict{
			Allowed: false,
			Reason:  fmt.Sprintf("Unknown workflow status: %s", current),
		}
	}

	edgeValid := false
	for _, t := range allowed {
		if t == target {
			edgeValid = true
			break
		}
	}
	if !edgeValid {
		return &policy.Verdict{
			Allowed: false,
			Reason:  fmt.Sprintf("Invalid state transition: %s -> %s", current, target),
		}
	}

	// Collect every unmet condition, sorted so verdicts are deterministic.
	missing := make([]string, 0)
	for cond, met := range conditions {
		if !met {
			missing = append(missing, cond)
		}
	}
	sort.Strings(missing)

	if len(missing) > 0 {
		return &policy.Verdict{
			Allowed:           false,
			Reason:            fmt.Sprintf("Missing required conditions for %s -> %s", current, target),
			MissingConditions: missing,
		}
	}

	return &policy.Verdict{
		Allowed: true,
		Reason:  fmt.Sprintf("Valid transition: %s -> %s", current, target),
	}
}
