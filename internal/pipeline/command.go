package pipeline

import (
	"github.com/google/uuid"

	"github.com/gftan/agentic-recruiter/internal/types"
)

// Flag names the two write-once terminal flags a candidate can carry.
type Flag string

// Terminal flags. Both are display overrides, not column replacements, and
// neither has an unset path.
const (
	FlagNotPushingForward Flag = "not_pushing_forward"
	FlagSentToClient      Flag = "sent_to_client"
)

// Command is one validated mutation against the candidate table. Commands
// are applied through Board.Apply, the single write entry point.
type Command interface {
	// Candidate returns the id of the candidate the command targets.
	Candidate() uuid.UUID
}

// Move transfers a candidate to a target column. Moving to the current
// column is an idempotent no-op: no request is issued and nothing changes.
type Move struct {
	CandidateID uuid.UUID
	To          types.Column
}

// Candidate implements Command.
func (m Move) Candidate() uuid.UUID { return m.CandidateID }

// SetFlag sets one of the write-once terminal flags to true. Setting an
// already-set flag is a no-op. The candidate's column is retained for
// historical filtering.
type SetFlag struct {
	CandidateID uuid.UUID
	Flag        Flag
}

// Candidate implements Command.
func (s SetFlag) Candidate() uuid.UUID { return s.CandidateID }

// ToggleChecklist flips one named checklist item and persists the entire
// checklist mapping. The update is optimistic: on persistence failure the
// toggle is rolled back to its prior value.
type ToggleChecklist struct {
	CandidateID uuid.UUID
	Key         string
}

// Candidate implements Command.
func (t ToggleChecklist) Candidate() uuid.UUID { return t.CandidateID }

// SetChecklist applies explicit values for named checklist items, with the
// same persistence and rollback behavior as ToggleChecklist.
type SetChecklist struct {
	CandidateID uuid.UUID
	Items       types.Checklist
}

// Candidate implements Command.
func (s SetChecklist) Candidate() uuid.UUID { return s.CandidateID }

// MarkOutreachSent records that the outreach message was sent, storing the
// final message text alongside the flag.
type MarkOutreachSent struct {
	CandidateID uuid.UUID
	Message     string
}

// Candidate implements Command.
func (m MarkOutreachSent) Candidate() uuid.UUID { return m.CandidateID }
