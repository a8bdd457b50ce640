// Package pipeline applies validated candidate transitions and keeps derived
// attributes consistent with their drivers.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gftan/agentic-recruiter/internal/types"
)

// ErrCandidateNotFound indicates the command targets a candidate missing
// from the board.
type ErrCandidateNotFound struct {
	CandidateID uuid.UUID
}

func (e *ErrCandidateNotFound) Error() string {
	return fmt.Sprintf("candidate not found: %s", e.CandidateID)
}

// ErrInvalidColumn indicates a move to a column outside the fixed set.
// Rejected locally; no request is issued.
type ErrInvalidColumn struct {
	Column types.Column
}

func (e *ErrInvalidColumn) Error() string {
	return fmt.Sprintf("invalid target column: %q", e.Column)
}

// ErrUnknownChecklistKey indicates a checklist change naming a key outside
// the fixed set.
type ErrUnknownChecklistKey struct {
	Key string
}

func (e *ErrUnknownChecklistKey) Error() string {
	return fmt.Sprintf("unknown checklist key: %q", e.Key)
}

// IsValidation reports whether err is a local validation rejection, i.e.
// the command never reached the store.
func IsValidation(err error) bool {
	switch err.(type) {
	case *ErrInvalidColumn, *ErrUnknownChecklistKey:
		return true
	default:
		return false
	}
}
