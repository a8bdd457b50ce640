// Package eligibility computes the read-side views over a role's pipeline:
// which candidates are ready for evaluation and how far each candidate's
// required-field checklist has progressed. Nothing in this package mutates
// candidate state.
package eligibility

import (
	"github.com/google/uuid"

	"github.com/gftan/agentic-recruiter/internal/types"
)

// Interviews maps candidate id to the candidate's interview record. A
// missing entry or nil value means no interview has been recorded yet.
type Interviews map[uuid.UUID]*types.Interview

// Eligible reports whether a single candidate belongs to the active
// evaluation set. A candidate qualifies only when it sits in the
// evaluation column, has not been ruled out, and its interview counts
// as complete.
func Eligible(c types.Candidate, iv *types.Interview) bool {
	return c.Column == types.ColumnEvaluation &&
		!c.NotPushingForward &&
		!c.SentToClient &&
		iv.Complete()
}

// ActiveEvaluationSet filters candidates down to those eligible for
// evaluation. Candidates already sent to the client are excluded; they
// are surfaced through ReferenceSet instead. Input order is preserved.
func ActiveEvaluationSet(candidates []types.Candidate, interviews Interviews) []types.Candidate {
	var out []types.Candidate
	for _, c := range candidates {
		if Eligible(c, interviews[c.ID]) {
			out = append(out, c)
		}
	}
	return out
}

// ReferenceSet returns the candidates already sent to the client. They
// never re-enter the active evaluation set but stay available as
// read-only context for the evaluation agent.
func ReferenceSet(candidates []types.Candidate) []types.Candidate {
	var out []types.Candidate
	for _, c := range candidates {
		if c.SentToClient {
			out = append(out, c)
		}
	}
	return out
}

// InterviewComplete exposes the completion predicate used for the
// ready-for-review badge. It is the same rule eligibility uses.
func InterviewComplete(iv *types.Interview) bool {
	return iv.Complete()
}

// ChecklistItem is one row of the requirement-collection view.
type ChecklistItem struct {
	Field     string  `json:"field"`
	Collected bool    `json:"collected"`
	Value     *string `json:"value,omitempty"`
}

// ChecklistView reports, for each requirement field the role declares,
// whether the interview collected a non-empty answer. Fields appear in
// the role's declared order; callers must not re-sort the result.
func ChecklistView(role types.Role, iv *types.Interview) []ChecklistItem {
	items := make([]ChecklistItem, 0, len(role.CandidateRequirementFields))
	for _, field := range role.CandidateRequirementFields {
		item := ChecklistItem{Field: field}
		if v, ok := iv.Response(field); ok {
			item.Collected = true
			item.Value = &v
		}
		items = append(items, item)
	}
	return items
}
