// Package types provides type definitions for structured data used throughout the recruiting pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Column identifies the pipeline stage a candidate card sits in.
type Column string

// The three pipeline columns, in board order.
const (
	ColumnOutreach   Column = "outreach"
	ColumnFollowUp   Column = "follow-up"
	ColumnEvaluation Column = "evaluation"
)

// Columns lists the valid columns in display order.
var Columns = []Column{ColumnOutreach, ColumnFollowUp, ColumnEvaluation}

// Valid reports whether c is one of the three pipeline columns.
func (c Column) Valid() bool {
	switch c {
	case ColumnOutreach, ColumnFollowUp, ColumnEvaluation:
		return true
	}
	return false
}

// Rank returns the display position of the column. Unknown or empty
// columns sort after the known ones.
func (c Column) Rank() int {
	switch c {
	case ColumnOutreach:
		return 0
	case ColumnFollowUp:
		return 1
	case ColumnEvaluation:
		return 2
	default:
		return 3
	}
}

// NormalizeColumn maps an empty or unknown value to the default outreach column.
func NormalizeColumn(c Column) Column {
	if c.Valid() {
		return c
	}
	return ColumnOutreach
}

// Display shades used on candidate cards. Color is always a projection of
// (column, sent_to_client, not_pushing_forward); it is never accepted as
// independent input.
const (
	ColorOutreach     = "amber-transparent"
	ColorActive       = "blue-transparent"
	ColorSentToClient = "green-transparent"
	ColorNotPushing   = "gray-transparent"
)

// DeriveColor computes the display color for a candidate card. The terminal
// flags are display overrides: not_pushing_forward wins over sent_to_client,
// which wins over the column shade.
func DeriveColor(col Column, sentToClient, notPushingForward bool) string {
	if notPushingForward {
		return ColorNotPushing
	}
	if sentToClient {
		return ColorSentToClient
	}
	if NormalizeColumn(col) == ColumnOutreach {
		return ColorOutreach
	}
	return ColorActive
}

// Candidate represents one candidate card on the pipeline board.
type Candidate struct {
	ID              uuid.UUID `json:"id"`
	RoleID          uuid.UUID `json:"role_id"`
	Name            string    `json:"name"`
	Summary         string    `json:"summary,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	Experience      string    `json:"experience,omitempty"`
	Column          Column    `json:"column"`
	Color           string    `json:"color"`
	OutreachSent    bool      `json:"outreach_sent"`
	OutreachMessage string    `json:"outreach_message,omitempty"`
	Checklist       Checklist `json:"checklist"`
	// Write-once terminal flags. Once set, the candidate is excluded from
	// active outreach/evaluation actions but keeps its column for history.
	NotPushingForward bool      `json:"not_pushing_forward"`
	SentToClient      bool      `json:"sent_to_client"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the candidate.
func (c *Candidate) Clone() *Candidate {
	cp := *c
	if c.Skills != nil {
		cp.Skills = append([]string(nil), c.Skills...)
	}
	cp.Checklist = c.Checklist.Clone()
	return &cp
}

// SortCandidates orders candidates by (column rank, name). The sort is
// stable so equal pairs keep their relative order.
func SortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		ri, rj := cands[i].Column.Rank(), cands[j].Column.Rank()
		if ri != rj {
			return ri < rj
		}
		return cands[i].Name < cands[j].Name
	})
}

// StatusPatch is a partial candidate-status update issued against the
// persistence layer. Nil fields are left untouched.
type StatusPatch struct {
	Column            *Column   `json:"column,omitempty"`
	Color             *string   `json:"color,omitempty"`
	OutreachSent      *bool     `json:"outreach_sent,omitempty"`
	OutreachMessage   *string   `json:"outreach_message,omitempty"`
	NotPushingForward *bool     `json:"not_pushing_forward,omitempty"`
	SentToClient      *bool     `json:"sent_to_client,omitempty"`
	Checklist         Checklist `json:"checklist,omitempty"`
}
